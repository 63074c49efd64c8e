package models

import "time"

// ComponentOutcome is the per-component entry in MatchRecord.Errors: what
// happened when the match scraper attempted this component.
//
// Invariant: Status == StatusSuccess iff the corresponding component field
// on MatchRecord is non-nil.
type ComponentOutcome struct {
	Status       ComponentStatus `json:"status"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	AttemptedAt  time.Time       `json:"attemptedAt,omitempty"`
}

// MatchRecord is the full per-match result of one match scrape: every
// component that was attempted, whether it succeeded, and the typed payload
// when it did. A map of component kind -> ComponentOutcome keeps adding a
// component additive rather than schema-breaking.
type MatchRecord struct {
	MatchID   MatchID   `json:"matchId"`
	ScrapedAt time.Time `json:"scrapedAt"`

	Base      *BaseMatch `json:"base,omitempty"`
	Stats     *Stats     `json:"stats,omitempty"`
	Lineup    *Lineup    `json:"lineup,omitempty"`
	Incidents *Incidents `json:"incidents,omitempty"`
	Graph     *Graph     `json:"graph,omitempty"`

	Errors map[ComponentKind]ComponentOutcome `json:"errors"`
}

// NewMatchRecord returns a MatchRecord with every known component marked
// not_attempted; the match scraper fills in outcomes as it runs.
func NewMatchRecord(matchID MatchID) *MatchRecord {
	errs := make(map[ComponentKind]ComponentOutcome, len(AllComponents))
	for _, c := range AllComponents {
		errs[c] = ComponentOutcome{Status: StatusNotAttempted}
	}
	return &MatchRecord{MatchID: matchID, Errors: errs}
}

// Component returns the typed payload for kind, or nil if it was not
// scraped or failed. Used by the comparator and golden assembly to project
// a component out of a match generically.
func (m *MatchRecord) Component(kind ComponentKind) any {
	switch kind {
	case ComponentBase:
		if m.Base == nil {
			return nil
		}
		return m.Base
	case ComponentStats:
		if m.Stats == nil {
			return nil
		}
		return m.Stats
	case ComponentLineup:
		if m.Lineup == nil {
			return nil
		}
		return m.Lineup
	case ComponentIncidents:
		if m.Incidents == nil {
			return nil
		}
		return m.Incidents
	case ComponentGraph:
		if m.Graph == nil {
			return nil
		}
		return m.Graph
	default:
		return nil
	}
}

// SetComponent stores a successfully scraped component payload and its
// outcome in one place, keeping the status/value invariant intact.
func (m *MatchRecord) SetComponent(kind ComponentKind, value any, attemptedAt time.Time) {
	switch kind {
	case ComponentBase:
		if v, ok := value.(*BaseMatch); ok {
			m.Base = v
		}
	case ComponentStats:
		if v, ok := value.(*Stats); ok {
			m.Stats = v
		}
	case ComponentLineup:
		if v, ok := value.(*Lineup); ok {
			m.Lineup = v
		}
	case ComponentIncidents:
		if v, ok := value.(*Incidents); ok {
			m.Incidents = v
		}
	case ComponentGraph:
		if v, ok := value.(*Graph); ok {
			m.Graph = v
		}
	}
	m.Errors[kind] = ComponentOutcome{Status: StatusSuccess, AttemptedAt: attemptedAt}
}

// SetComponentFailure records a failed attempt at kind without touching the
// component payload (which stays nil, preserving the success/non-nil
// invariant).
func (m *MatchRecord) SetComponentFailure(kind ComponentKind, err error, attemptedAt time.Time) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	m.Errors[kind] = ComponentOutcome{
		Status:       StatusFailed,
		ErrorMessage: msg,
		AttemptedAt:  attemptedAt,
	}
}

// HasBase reports whether the base component was scraped successfully.
// Without it the match has no identity and cannot enter the golden
// dataset.
func (m *MatchRecord) HasBase() bool {
	return m.Base != nil && m.Errors[ComponentBase].Status == StatusSuccess
}

// SuccessCount returns how many components in this record succeeded.
func (m *MatchRecord) SuccessCount() int {
	n := 0
	for _, outcome := range m.Errors {
		if outcome.Status == StatusSuccess {
			n++
		}
	}
	return n
}
