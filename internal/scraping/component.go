// Package scraping implements the component, match, events, and season
// scrapers: one generic fetch/decode/validate pipeline driven by a table
// of component descriptors, a match scraper that runs that pipeline once
// per component, an events lister that filters a season's fixtures down
// to completed ones, and a season scraper that fans match scraping out
// across a worker pool.
package scraping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"football-golden-scraper/internal/models"
	"football-golden-scraper/internal/transport"
)

// ComponentDescriptor parameterises the generic component pipeline: how to
// build the URL for a match, how to decode the raw JSON into T, and how to
// validate the decoded value. One descriptor value replaces what the
// original expressed as a per-component scraper class.
type ComponentDescriptor[T any] struct {
	Kind        models.ComponentKind
	URLTemplate string
	Decode      func(raw map[string]any) (*T, error)
	Validate    func(*T) error
}

// BuildURL substitutes {match_id} in the descriptor's URL template.
func (d ComponentDescriptor[T]) BuildURL(matchID models.MatchID) string {
	return strings.ReplaceAll(d.URLTemplate, "{match_id}", strconv.FormatInt(int64(matchID), 10))
}

// FetchComponent runs the full fetch/decode/validate pipeline for one
// match/component pair. Any failure is wrapped with the component kind
// and URL and classified by the models error taxonomy; it is returned to
// the caller, never panicked - component failures are expected and
// isolated by the match scraper.
func FetchComponent[T any](ctx context.Context, fetcher transport.Fetcher, d ComponentDescriptor[T], matchID models.MatchID) (*T, error) {
	url := d.BuildURL(matchID)

	raw, err := fetcher.FetchJSON(ctx, url)
	if err != nil {
		if errors.Is(err, models.ErrDecode) {
			return nil, &models.ComponentError{Component: d.Kind, URL: url, Err: err}
		}
		return nil, models.NewTransportError(d.Kind, url, err)
	}

	value, err := d.Decode(raw)
	if err != nil {
		return nil, models.NewDecodeError(d.Kind, url, err)
	}

	if d.Validate != nil {
		if err := d.Validate(value); err != nil {
			return nil, models.NewSchemaError(d.Kind, url, err)
		}
	}

	return value, nil
}

// decodeVia round-trips raw through JSON into a freshly allocated T. Every
// component decoder below uses this so the descriptor table only needs to
// supply field-level validation, not a hand-written unmarshaler.
func decodeVia[T any](raw map[string]any) (*T, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-marshaling response: %w", err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshaling into %T: %w", out, err)
	}
	return &out, nil
}

// BaseDescriptor validates that the match has both team identities (a
// non-zero id and a non-empty name per side) - the minimum for the match to
// have an identity at all. The status and other fields are not checked.
func BaseDescriptor(urlTemplate string) ComponentDescriptor[models.BaseMatch] {
	return ComponentDescriptor[models.BaseMatch]{
		Kind:        models.ComponentBase,
		URLTemplate: urlTemplate,
		Decode:      decodeVia[models.BaseMatch],
		Validate: func(b *models.BaseMatch) error {
			if b.HomeTeam.ID == 0 || b.AwayTeam.ID == 0 {
				return fmt.Errorf("base match missing a team identity")
			}
			if b.HomeTeam.Name == "" || b.AwayTeam.Name == "" {
				return fmt.Errorf("base match missing a team name")
			}
			return nil
		},
	}
}

// StatsDescriptor validates that at least one statistic period was
// returned; an empty-but-well-formed payload is still a schema failure
// because it signals the upstream shape changed under us.
func StatsDescriptor(urlTemplate string) ComponentDescriptor[models.Stats] {
	return ComponentDescriptor[models.Stats]{
		Kind:        models.ComponentStats,
		URLTemplate: urlTemplate,
		Decode:      decodeVia[models.Stats],
		Validate: func(s *models.Stats) error {
			if len(s.Periods) == 0 {
				return fmt.Errorf("stats has no periods")
			}
			return nil
		},
	}
}

// LineupDescriptor validates that both sides have at least one starter.
func LineupDescriptor(urlTemplate string) ComponentDescriptor[models.Lineup] {
	return ComponentDescriptor[models.Lineup]{
		Kind:        models.ComponentLineup,
		URLTemplate: urlTemplate,
		Decode:      decodeVia[models.Lineup],
		Validate: func(l *models.Lineup) error {
			if len(l.Home.Starters) == 0 || len(l.Away.Starters) == 0 {
				return fmt.Errorf("lineup missing starters for one side")
			}
			return nil
		},
	}
}

// validIncidentTypes is the closed set of tags the Incident sum type
// accepts. An unrecognised tag fails the component rather than being
// silently dropped.
var validIncidentTypes = map[models.IncidentType]bool{
	models.IncidentGoal:         true,
	models.IncidentCard:         true,
	models.IncidentSubstitution: true,
	models.IncidentVarDecision:  true,
	models.IncidentPeriod:       true,
}

// IncidentsDescriptor validates every event's tag is recognised.
func IncidentsDescriptor(urlTemplate string) ComponentDescriptor[models.Incidents] {
	return ComponentDescriptor[models.Incidents]{
		Kind:        models.ComponentIncidents,
		URLTemplate: urlTemplate,
		Decode:      decodeVia[models.Incidents],
		Validate: func(inc *models.Incidents) error {
			for i, e := range inc.Events {
				if !validIncidentTypes[e.IncidentType] {
					return fmt.Errorf("incident %d has unrecognised type %q", i, e.IncidentType)
				}
			}
			return nil
		},
	}
}

// GraphDescriptor validates the momentum graph has at least one point.
func GraphDescriptor(urlTemplate string) ComponentDescriptor[models.Graph] {
	return ComponentDescriptor[models.Graph]{
		Kind:        models.ComponentGraph,
		URLTemplate: urlTemplate,
		Decode:      decodeVia[models.Graph],
		Validate: func(g *models.Graph) error {
			if len(g.Points) == 0 {
				return fmt.Errorf("graph has no points")
			}
			return nil
		},
	}
}
