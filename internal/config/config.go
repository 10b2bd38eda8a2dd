package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Search   SearchConfig   `mapstructure:"search"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	APIEndpoint string  `mapstructure:"endpoint"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int64   `mapstructure:"max_tokens"`
}

type SearchConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Endpoint   string        `mapstructure:"endpoint"`
	MaxResults int           `mapstructure:"max_results"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type AnalysisConfig struct {
	// MinCaseLength is the minimum accepted case description length
	MinCaseLength int `mapstructure:"min_case_length"`

	// MaxLinks caps how many references are fetched per request
	MaxLinks         int           `mapstructure:"max_links"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	FetchConcurrency int           `mapstructure:"fetch_concurrency"`
}

// Load reads configuration from an optional YAML file plus
// LEGALADVISOR_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)

	v.SetDefault("openai.endpoint", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.temperature", 0.2)
	v.SetDefault("openai.max_tokens", 4000)

	v.SetDefault("search.endpoint", "https://api.tavily.com")
	v.SetDefault("search.max_results", 5)
	v.SetDefault("search.timeout", 30*time.Second)

	v.SetDefault("analysis.min_case_length", 50)
	v.SetDefault("analysis.max_links", 5)
	v.SetDefault("analysis.fetch_timeout", 10*time.Second)
	v.SetDefault("analysis.fetch_concurrency", 3)

	v.SetEnvPrefix("LEGALADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only surfaces keys viper already knows about; the
	// secrets have no defaults, so they must be bound explicitly or
	// Unmarshal never sees them.
	_ = v.BindEnv("openai.api_key")
	_ = v.BindEnv("search.api_key")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai.api_key is required (LEGALADVISOR_OPENAI_API_KEY)")
	}

	slog.Info("configuration loaded successfully")
	return &cfg, nil
}
