package scraping

import (
	"context"
	"fmt"
)

// fakeFetcher serves canned JSON payloads by URL and never touches the
// network, so component/match/season tests run without a real transport.
// Read-only after setup, so it's safe to share across the worker
// goroutines a season-scraper test spins up.
type fakeFetcher struct {
	responses map[string]map[string]any
	errs      map[string]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		responses: map[string]map[string]any{},
		errs:      map[string]error{},
	}
}

func (f *fakeFetcher) FetchJSON(ctx context.Context, url string) (map[string]any, error) {
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if resp, ok := f.responses[url]; ok {
		return resp, nil
	}
	return nil, fmt.Errorf("fakeFetcher: no response registered for %s", url)
}
