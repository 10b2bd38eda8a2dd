package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/caselens/legal-advisor/apimodels"
	"github.com/caselens/legal-advisor/internal/config"
)

const (
	maxSummaryLen    = 250
	minParagraphLen  = 100
	defaultUserAgent = "legal-advisor/1.0"
)

// Summarizer fetches cited pages and condenses them into short summaries.
// It is a total function over its input: every URL yields exactly one
// LinkSummary, failures included, in input order.
type Summarizer struct {
	httpClient  *http.Client
	maxLinks    int
	concurrency int
}

func New(cfg *config.AnalysisConfig) *Summarizer {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	concurrency := cfg.FetchConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Summarizer{
		httpClient:  &http.Client{Timeout: timeout},
		maxLinks:    cfg.MaxLinks,
		concurrency: concurrency,
	}
}

// Summarize produces one LinkSummary per URL. Fetches run concurrently,
// bounded by the configured concurrency; results are written by index so
// output order always matches input order. URLs beyond the configured link
// cap are reported as error entries without being fetched.
func (s *Summarizer) Summarize(ctx context.Context, urls []string) []apimodels.LinkSummary {
	summaries := make([]apimodels.LinkSummary, len(urls))
	if len(urls) == 0 {
		return summaries
	}

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for i, u := range urls {
		if s.maxLinks > 0 && i >= s.maxLinks {
			summaries[i] = apimodels.LinkSummary{
				URL:     u,
				Title:   u,
				Summary: fmt.Sprintf("Skipped: only the first %d references are summarized.", s.maxLinks),
				Status:  apimodels.LinkStatusError,
			}
			continue
		}

		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			summaries[i] = s.fetchOne(ctx, u)
		}(i, u)
	}
	wg.Wait()

	return summaries
}

func (s *Summarizer) fetchOne(ctx context.Context, url string) apimodels.LinkSummary {
	slog.Debug("Fetching reference", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errorSummary(url, fmt.Sprintf("Invalid URL: %v", err))
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		slog.Warn("Reference fetch failed", "url", url, "error", err)
		return errorSummary(url, fmt.Sprintf("Failed to fetch: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("Reference fetch returned non-2xx", "url", url, "status", resp.StatusCode)
		return errorSummary(url, fmt.Sprintf("Failed to fetch with status: %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return errorSummary(url, fmt.Sprintf("Failed to parse page: %v", err))
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = url
	}

	summary := extractSummary(doc)
	if summary == "" {
		summary = "Content summary not available."
	}

	return apimodels.LinkSummary{
		URL:     url,
		Title:   title,
		Summary: truncate(summary, maxSummaryLen),
		Status:  apimodels.LinkStatusSuccess,
	}
}

// extractSummary prefers the meta description, then the first paragraph of
// substantial length.
func extractSummary(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			return desc
		}
	}

	var summary string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if len(text) > minParagraphLen {
			summary = text
			return false
		}
		return true
	})
	return summary
}

func errorSummary(url, note string) apimodels.LinkSummary {
	return apimodels.LinkSummary{
		URL:     url,
		Title:   url,
		Summary: note,
		Status:  apimodels.LinkStatusError,
	}
}

// truncate cuts on a rune boundary so multibyte content stays valid UTF-8.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
