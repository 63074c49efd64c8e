package models

import "time"

// RunKind distinguishes a full season scrape from a targeted retry of a
// subset of matches/components.
type RunKind string

const (
	RunFull    RunKind = "full"
	RunPartial RunKind = "partial"
)

// SeasonEventList is the filtered event list for one season: only
// fixtures whose status matched the configured completed code at fetch
// time. Nothing in this repository persists it: storage has no event-list
// file, and every full scrape fetches the list again.
type SeasonEventList struct {
	TournamentID TournamentID   `json:"tournamentId"`
	SeasonID     SeasonID       `json:"seasonId"`
	FetchedAt    time.Time      `json:"fetchedAt"`
	Events       []EventSummary `json:"events"`
}

// SeasonRun is one full or partial scraping pass over a season: every
// match attempted, in match-id order, plus aggregate counters.
type SeasonRun struct {
	TournamentID TournamentID `json:"tournamentId"`
	SeasonID     SeasonID     `json:"seasonId"`
	RunID        RunID        `json:"runId"`
	Kind         RunKind      `json:"kind"`

	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`

	Matches []MatchRecord `json:"matches"`

	TotalMatches      int `json:"totalMatches"`
	SuccessfulMatches int `json:"successfulMatches"`
	FailedMatches     int `json:"failedMatches"`

	ErrorsSummary []string `json:"errorsSummary,omitempty"`
}

// Finalize computes the aggregate counters and error summary from Matches.
// A match counts as successful when it has a base component; otherwise it
// is failed.
func (r *SeasonRun) Finalize() {
	r.TotalMatches = len(r.Matches)
	r.SuccessfulMatches = 0
	r.FailedMatches = 0
	r.ErrorsSummary = nil
	for _, m := range r.Matches {
		if m.HasBase() {
			r.SuccessfulMatches++
		} else {
			r.FailedMatches++
		}
		for kind, outcome := range m.Errors {
			if outcome.Status == StatusFailed {
				r.ErrorsSummary = append(r.ErrorsSummary,
					string(kind)+": "+outcome.ErrorMessage)
			}
		}
	}
}

// MatchByID returns the match record for id, or nil if this run doesn't
// contain it (e.g. a retry run that only covers a subset).
func (r *SeasonRun) MatchByID(id MatchID) *MatchRecord {
	for i := range r.Matches {
		if r.Matches[i].MatchID == id {
			return &r.Matches[i]
		}
	}
	return nil
}

// RetryTarget names one (match, component) pair the quality manager wants
// re-scraped. A retry run only attempts the components listed here for
// each match, never the full component set; single-run-only matches
// retry their full component set instead - see RetryPlan.FullComponents.
type RetryTarget struct {
	MatchID    MatchID         `json:"matchId"`
	Components []ComponentKind `json:"components"`
}

// RetryPlan is the output of consensus analysis: which matches need a
// retry pass and with which components, split between partial targets
// (only the disagreeing components) and matches that only appeared in one
// run so far, which must be retried on every component since there is no
// per-component disagreement to localize yet.
type RetryPlan struct {
	Targets         []RetryTarget `json:"targets"`
	FullComponents  []MatchID     `json:"fullComponents"`
}

// IsEmpty reports whether this plan has no work left, the loop-termination
// condition for the quality manager's repair cycle.
func (p *RetryPlan) IsEmpty() bool {
	return p == nil || (len(p.Targets) == 0 && len(p.FullComponents) == 0)
}
