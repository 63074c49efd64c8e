// Package transport fetches raw JSON payloads from the upstream provider
// over HTTP. It deliberately knows nothing about component schemas -
// that decoding and validation lives in the scraping package.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"football-golden-scraper/internal/models"
)

// Fetcher retrieves a JSON object from a URL. Each component scraper calls
// FetchJSON once per attempt; failures are reported, never panicked.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) (map[string]any, error)
}

// HTTPFetcher is the default Fetcher: a plain net/http client with a
// bounded timeout and a small retry budget for transient failures.
// Concurrent season scrapes give each worker its own HTTPFetcher so no
// *http.Client state is shared across goroutines.
type HTTPFetcher struct {
	Client     *http.Client
	UserAgent  string
	MaxRetries int
	RetryWait  time.Duration
}

// NewHTTPFetcher builds an HTTPFetcher with sane defaults: a 15s per-request
// timeout and two retries on transport failure.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:     &http.Client{Timeout: 15 * time.Second},
		UserAgent:  "football-golden-scraper/1.0",
		MaxRetries: 2,
		RetryWait:  500 * time.Millisecond,
	}
}

// FetchJSON performs a GET request against url and decodes the body as a
// JSON object. A body that is not a JSON object is wrapped with
// models.ErrDecode and not retried; request failures and non-2xx responses
// are retried and, once the budget is spent, wrapped with
// models.ErrTransport. Callers (the component pipeline) attach the
// component kind and URL.
func (f *HTTPFetcher) FetchJSON(ctx context.Context, url string) (map[string]any, error) {
	var lastErr error
	attempts := f.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.RetryWait):
			}
		}

		body, err := f.doRequest(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}

		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			// Decode failures are not retried: a malformed body won't
			// change on the next attempt.
			return nil, fmt.Errorf("%w: %v", models.ErrDecode, err)
		}
		return payload, nil
	}
	return nil, fmt.Errorf("%w: %v", models.ErrTransport, lastErr)
}

func (f *HTTPFetcher) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}
