package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironmentOnly(t *testing.T) {
	t.Setenv("LEGALADVISOR_OPENAI_API_KEY", "sk-test-123")
	t.Setenv("LEGALADVISOR_SEARCH_API_KEY", "tvly-test-456")

	cfg, err := Load("")
	require.NoError(t, err, "env-only loading must work without a config file")

	assert.Equal(t, "sk-test-123", cfg.OpenAI.APIKey)
	assert.Equal(t, "tvly-test-456", cfg.Search.APIKey)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LEGALADVISOR_OPENAI_API_KEY", "sk-test-123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 5, cfg.Analysis.MaxLinks)
	assert.Equal(t, 50, cfg.Analysis.MinCaseLength)
	assert.Equal(t, 10*time.Second, cfg.Analysis.FetchTimeout)
	assert.Empty(t, cfg.Search.APIKey)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("LEGALADVISOR_OPENAI_API_KEY", "sk-test-123")
	t.Setenv("LEGALADVISOR_SERVER_PORT", "9090")
	t.Setenv("LEGALADVISOR_ANALYSIS_MAX_LINKS", "2")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2, cfg.Analysis.MaxLinks)
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("LEGALADVISOR_OPENAI_API_KEY", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai.api_key")
}
