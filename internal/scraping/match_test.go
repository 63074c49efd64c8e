package scraping

import (
	"context"
	"testing"

	"football-golden-scraper/internal/models"
)

func testDescriptors() Descriptors {
	return Descriptors{
		Base:      BaseDescriptor("https://example.invalid/api/event/{match_id}"),
		Stats:     StatsDescriptor("https://example.invalid/api/event/{match_id}/statistics"),
		Lineup:    LineupDescriptor("https://example.invalid/api/event/{match_id}/lineups"),
		Incidents: IncidentsDescriptor("https://example.invalid/api/event/{match_id}/incidents"),
		Graph:     GraphDescriptor("https://example.invalid/api/event/{match_id}/graph"),
	}
}

func TestScrapeMatchIsolatesComponentFailures(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.responses["https://example.invalid/api/event/101"] = map[string]any{
		"homeTeam": map[string]any{"id": 1, "name": "Home FC"},
		"awayTeam": map[string]any{"id": 2, "name": "Away FC"},
	}
	// stats left unregistered -> transport error

	scraper := &MatchScraper{Fetcher: fetcher, Descriptors: testDescriptors()}
	record := scraper.ScrapeMatch(context.Background(), 101, []models.ComponentKind{models.ComponentBase, models.ComponentStats})

	if !record.HasBase() {
		t.Fatal("expected base to succeed")
	}
	if record.Errors[models.ComponentStats].Status != models.StatusFailed {
		t.Fatalf("expected stats to fail, got %s", record.Errors[models.ComponentStats].Status)
	}
	if record.Errors[models.ComponentLineup].Status != models.StatusNotAttempted {
		t.Fatalf("expected lineup to be not_attempted, got %s", record.Errors[models.ComponentLineup].Status)
	}
}

func TestScrapeMatchNoBaseFailure(t *testing.T) {
	fetcher := newFakeFetcher()
	scraper := &MatchScraper{Fetcher: fetcher, Descriptors: testDescriptors()}

	record := scraper.ScrapeMatch(context.Background(), 999, models.AllComponents)
	if record.HasBase() {
		t.Fatal("expected HasBase to be false when the base fetch fails")
	}
}
