package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caselens/legal-advisor/internal/config"
)

func TestSearchRoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "eviction notice requirements", req["query"])
		assert.Equal(t, "test-key", req["api_key"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"query":"eviction notice requirements","results":[{"title":"Housing Act","url":"https://law.example/act","content":"30 days notice required","score":0.91}]}`))
	}))
	defer ts.Close()

	c, err := NewClient(&config.SearchConfig{
		Endpoint:   ts.URL,
		APIKey:     "test-key",
		MaxResults: 3,
		Timeout:    5 * time.Second,
	})
	require.NoError(t, err)

	resp, err := c.Search(context.Background(), "eviction notice requirements")
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Housing Act", resp.Results[0].Title)
	assert.Equal(t, "https://law.example/act", resp.Results[0].URL)
}

func TestSearchNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer ts.Close()

	c, err := NewClient(&config.SearchConfig{Endpoint: ts.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	_, err := NewClient(&config.SearchConfig{})
	require.Error(t, err)
}
