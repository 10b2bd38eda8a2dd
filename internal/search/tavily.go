package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/caselens/legal-advisor/internal/config"
)

// Client is a minimal Tavily web-search client. It is the only outbound
// collaborator the reasoning agent uses for research.
type Client struct {
	endpoint   string
	apiKey     string
	maxResults int
	httpClient *http.Client
}

func NewClient(cfg *config.SearchConfig) (*Client, error) {
	slog.Info("Creating search client", "endpoint", cfg.Endpoint)
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("search endpoint cannot be empty")
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	Topic       string `json:"topic,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type SearchResponse struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer"`
	Results []Result `json:"results"`
}

type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Search runs one query against the search API.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	slog.Debug("Executing web search", "query", query)

	payload, err := json.Marshal(searchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		SearchDepth: "advanced",
		Topic:       "general",
		MaxResults:  c.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API status %d: %s", resp.StatusCode, body)
	}

	var out SearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	slog.Debug("Web search completed", "query", query, "results", len(out.Results))
	return &out, nil
}
