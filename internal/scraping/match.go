package scraping

import (
	"context"
	"fmt"
	"time"

	"football-golden-scraper/internal/models"
	"football-golden-scraper/internal/transport"
)

// componentRunner erases the generic ComponentDescriptor[T] so a match
// scraper can hold all five component pipelines in one slice. Each runner
// fetches its component and reports the typed value as `any`; MatchRecord
// knows how to place it back by kind (models.MatchRecord.SetComponent).
type componentRunner struct {
	kind models.ComponentKind
	run  func(ctx context.Context, fetcher transport.Fetcher, matchID models.MatchID) (any, error)
}

func runnerFor[T any](d ComponentDescriptor[T]) componentRunner {
	return componentRunner{
		kind: d.Kind,
		run: func(ctx context.Context, fetcher transport.Fetcher, matchID models.MatchID) (any, error) {
			return FetchComponent(ctx, fetcher, d, matchID)
		},
	}
}

// Descriptors bundles the five component pipelines built from a
// config.LinksConfig, ready to hand to a MatchScraper or SeasonScraper.
type Descriptors struct {
	Base      ComponentDescriptor[models.BaseMatch]
	Stats     ComponentDescriptor[models.Stats]
	Lineup    ComponentDescriptor[models.Lineup]
	Incidents ComponentDescriptor[models.Incidents]
	Graph     ComponentDescriptor[models.Graph]
}

func (d Descriptors) runners(kinds []models.ComponentKind) []componentRunner {
	want := make(map[models.ComponentKind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}

	var out []componentRunner
	for _, kind := range models.AllComponents {
		if !want[kind] {
			continue
		}
		switch kind {
		case models.ComponentBase:
			out = append(out, runnerFor(d.Base))
		case models.ComponentStats:
			out = append(out, runnerFor(d.Stats))
		case models.ComponentLineup:
			out = append(out, runnerFor(d.Lineup))
		case models.ComponentIncidents:
			out = append(out, runnerFor(d.Incidents))
		case models.ComponentGraph:
			out = append(out, runnerFor(d.Graph))
		}
	}
	return out
}

// MatchScraper attempts a declared subset of components for one match,
// exactly once each, isolating each component's failure from the rest.
// It never returns an error itself - a wholly failed match is still a
// valid MatchRecord with every component marked failed.
type MatchScraper struct {
	Fetcher     transport.Fetcher
	Descriptors Descriptors
}

// ScrapeMatch attempts every component in kinds (declared order in
// models.AllComponents is used regardless of the order passed in) and
// returns the assembled record.
func (s *MatchScraper) ScrapeMatch(ctx context.Context, matchID models.MatchID, kinds []models.ComponentKind) *models.MatchRecord {
	record := models.NewMatchRecord(matchID)
	record.ScrapedAt = time.Now()

	for _, runner := range s.Descriptors.runners(kinds) {
		attemptedAt := time.Now()
		value, err := runner.run(ctx, s.Fetcher, matchID)
		if err != nil {
			if runner.kind == models.ComponentBase {
				err = fmt.Errorf("%w: %v", models.ErrNoBase, err)
			}
			record.SetComponentFailure(runner.kind, err, attemptedAt)
			continue
		}
		record.SetComponent(runner.kind, value, attemptedAt)
	}

	return record
}
