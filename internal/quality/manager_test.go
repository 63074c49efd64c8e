package quality

import (
	"context"
	"errors"
	"testing"
	"time"

	"football-golden-scraper/internal/models"
	"football-golden-scraper/internal/scraping"
	"football-golden-scraper/internal/storage"
	"football-golden-scraper/internal/transport"
)

type fakeFetcher struct {
	responses map[string]map[string]any
}

func (f *fakeFetcher) FetchJSON(ctx context.Context, url string) (map[string]any, error) {
	if resp, ok := f.responses[url]; ok {
		return resp, nil
	}
	return nil, errors.New("no response registered for " + url)
}

func newManagerForTest(t *testing.T) (*Manager, *fakeFetcher) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewHandler(dir, 54, 62408)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	fetcher := &fakeFetcher{responses: map[string]map[string]any{
		"https://example.invalid/api/tournament/54/season/62408/events": {
			"events": []any{
				map[string]any{"matchId": 101, "status": map[string]any{"code": 100}},
			},
		},
		"https://example.invalid/api/event/101": {
			"homeTeam": map[string]any{"id": 1, "name": "Home FC"},
			"awayTeam": map[string]any{"id": 2, "name": "Away FC"},
		},
		"https://example.invalid/api/event/101/statistics": {
			"periods": []any{map[string]any{"period": "ALL", "groups": []any{}}},
		},
		"https://example.invalid/api/event/101/lineups": {
			"home": map[string]any{"starters": []any{map[string]any{"id": 1, "name": "P1"}}},
			"away": map[string]any{"starters": []any{map[string]any{"id": 2, "name": "P2"}}},
		},
		"https://example.invalid/api/event/101/incidents": {
			"events": []any{map[string]any{"incidentType": "goal", "minute": 10}},
		},
		"https://example.invalid/api/event/101/graph": {
			"points": []any{map[string]any{"minute": 1, "value": 0}},
		},
	}}

	descriptors := scraping.Descriptors{
		Base:      scraping.BaseDescriptor("https://example.invalid/api/event/{match_id}"),
		Stats:     scraping.StatsDescriptor("https://example.invalid/api/event/{match_id}/statistics"),
		Lineup:    scraping.LineupDescriptor("https://example.invalid/api/event/{match_id}/lineups"),
		Incidents: scraping.IncidentsDescriptor("https://example.invalid/api/event/{match_id}/incidents"),
		Graph:     scraping.GraphDescriptor("https://example.invalid/api/event/{match_id}/graph"),
	}

	seasonScraper := &scraping.SeasonScraper{
		Descriptors: descriptors,
		NewFetcher:  func() transport.Fetcher { return fetcher },
		MaxWorkers:  2,
	}

	events := &scraping.EventsLister{
		Fetcher:             fetcher,
		URLTemplate:         "https://example.invalid/api/tournament/{tournamentID}/season/{seasonID}/events",
		CompletedStatusCode: 100,
	}

	manager := &Manager{
		TournamentID: 54,
		SeasonID:     62408,
		Storage:      store,
		Comparator: &Comparator{
			ActiveComponents: append([]models.ComponentKind{}, models.AllComponents...),
			Exclusions:       map[models.ComponentKind][]string{},
		},
		Scraper:               seasonScraper,
		Events:                events,
		RetrySuccessThreshold: 0.5,
		MaxRetryRounds:        5,
	}
	return manager, fetcher
}

func TestBuildConsensusAnalysisRequiresTwoRuns(t *testing.T) {
	manager, _ := newManagerForTest(t)

	if _, err := manager.ExecuteScrapingRun(context.Background()); err != nil {
		t.Fatalf("ExecuteScrapingRun: %v", err)
	}

	_, err := manager.BuildConsensusAnalysis()
	if !errors.Is(err, models.ErrInsufficientRuns) {
		t.Fatalf("expected ErrInsufficientRuns with a single run, got %v", err)
	}
}

func TestRunRepairCycleEndToEnd(t *testing.T) {
	manager, _ := newManagerForTest(t)

	golden, err := manager.RunRepairCycle(context.Background())
	if err != nil {
		t.Fatalf("RunRepairCycle: %v", err)
	}
	if len(golden) != 1 {
		t.Fatalf("expected golden dataset of size 1 for a perfectly agreeing season, got %d", len(golden))
	}
	if golden[101].Base == nil || golden[101].Base.HomeTeam.Name != "Home FC" {
		t.Fatalf("unexpected golden record: %+v", golden[101])
	}
}

func TestRetrySucceededHelper(t *testing.T) {
	run := models.SeasonRun{}
	m := models.NewMatchRecord(101)
	m.SetComponent(models.ComponentIncidents, &models.Incidents{}, time.Time{})
	run.Matches = []models.MatchRecord{*m}

	plan := models.RetryPlan{Targets: []models.RetryTarget{
		{MatchID: 101, Components: []models.ComponentKind{models.ComponentIncidents, models.ComponentStats}},
	}}

	if retrySucceeded(run, plan, 0.6) {
		t.Fatal("expected 1/2 = 0.5 success rate to fall below a 0.6 threshold")
	}
	if !retrySucceeded(run, plan, 0.5) {
		t.Fatal("expected 1/2 = 0.5 success rate to meet a 0.5 threshold")
	}
}
