// Package models holds the data types shared across the scraping, storage,
// and quality packages: identifiers, component schemas, run/consensus
// results, and the typed error taxonomy.
package models

// TournamentID identifies a competition (e.g. a league) at the upstream
// provider. Opaque and positive; never generated locally.
type TournamentID int64

// SeasonID identifies one season of a tournament at the upstream provider.
type SeasonID int64

// MatchID identifies a single match at the upstream provider.
type MatchID int64

// RunID is a monotonically increasing number local to one (tournament,
// season) pair. Run numbers are never reused.
type RunID int

// ComponentKind is one of the five match aspects the system scrapes.
// The set is closed and ordered; the ordering is the canonical iteration
// and display order used throughout storage and consensus artifacts.
type ComponentKind string

const (
	ComponentBase      ComponentKind = "base"
	ComponentStats     ComponentKind = "stats"
	ComponentLineup    ComponentKind = "lineup"
	ComponentIncidents ComponentKind = "incidents"
	ComponentGraph     ComponentKind = "graph"
)

// AllComponents lists every known component kind in canonical order.
// Base is special: without it a match has no identity and cannot enter
// the golden dataset.
var AllComponents = []ComponentKind{
	ComponentBase,
	ComponentStats,
	ComponentLineup,
	ComponentIncidents,
	ComponentGraph,
}

// ComponentStatus is the outcome of one attempt to scrape a component.
type ComponentStatus string

const (
	StatusSuccess      ComponentStatus = "success"
	StatusFailed       ComponentStatus = "failed"
	StatusNotAttempted ComponentStatus = "not_attempted"
)

// CompletedEventStatusCode is the upstream status.code value that marks a
// fixture as completed. Tunable via configuration (scraper.completed_status_code);
// this is only the documented default.
const CompletedEventStatusCode = 100
