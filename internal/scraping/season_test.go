package scraping

import (
	"context"
	"testing"

	"football-golden-scraper/internal/models"
	"football-golden-scraper/internal/transport"
)

func TestChunkMatchesDistributesRemainder(t *testing.T) {
	ids := []models.MatchID{1, 2, 3, 4, 5, 6, 7}
	chunks := chunkMatches(ids, 3)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	total := 0
	for _, c := range chunks {
		total += len(c)
		if len(c) == 0 {
			t.Fatal("expected no empty chunks")
		}
	}
	if total != len(ids) {
		t.Fatalf("expected all %d ids distributed, got %d", len(ids), total)
	}

	// 7 ids / 3 workers = 2 remainder 1: first chunk gets the extra item.
	if len(chunks[0]) != 3 || len(chunks[1]) != 2 || len(chunks[2]) != 2 {
		t.Fatalf("unexpected chunk sizes: %v %v %v", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}

func TestChunkMatchesNeverExceedsWorkerCount(t *testing.T) {
	ids := []models.MatchID{1, 2}
	chunks := chunkMatches(ids, 5)
	if len(chunks) != 2 {
		t.Fatalf("expected chunking to cap at len(ids)=2 when workers > ids, got %d chunks", len(chunks))
	}
}

func TestChunkMatchesEmptyInput(t *testing.T) {
	chunks := chunkMatches(nil, 4)
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks for empty input, got %d", len(chunks))
	}
}

func TestScrapeSeasonProducesUniqueSortedMatchIDs(t *testing.T) {
	fetcher := newFakeFetcher()
	for _, id := range []int{103, 101, 102} {
		url := "https://example.invalid/api/event/" + itoa(id)
		fetcher.responses[url] = map[string]any{
			"homeTeam": map[string]any{"id": 1, "name": "Home FC"},
			"awayTeam": map[string]any{"id": 2, "name": "Away FC"},
		}
	}

	scraper := &SeasonScraper{
		Descriptors: testDescriptors(),
		NewFetcher:  func() transport.Fetcher { return fetcher },
		MaxWorkers:  2,
	}

	events := []models.EventSummary{{MatchID: 103}, {MatchID: 101}, {MatchID: 102}}
	run := scraper.ScrapeSeason(context.Background(), 1, 1, events, 1)

	if len(run.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(run.Matches))
	}

	seen := map[models.MatchID]bool{}
	for i, m := range run.Matches {
		if seen[m.MatchID] {
			t.Fatalf("duplicate match id %d in run", m.MatchID)
		}
		seen[m.MatchID] = true
		if i > 0 && run.Matches[i-1].MatchID > m.MatchID {
			t.Fatalf("matches not sorted by id: %v", run.Matches)
		}
	}

	if run.SuccessfulMatches != 3 || run.FailedMatches != 0 {
		t.Fatalf("expected all matches successful, got success=%d failed=%d", run.SuccessfulMatches, run.FailedMatches)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
