package models

import "time"

// Venue is the ground a match is played at.
type Venue struct {
	Name     string `json:"name"`
	City     string `json:"city,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// Team is a minimal team identity, shared by base, lineup and stats.
type Team struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
	Slug      string `json:"slug,omitempty"`
}

// EventStatus mirrors the upstream status object on a fixture.
type EventStatus struct {
	Code        int    `json:"code"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Score carries the final and per-period scoreline.
type Score struct {
	Home          int            `json:"home"`
	Away          int            `json:"away"`
	PeriodByHome  map[string]int `json:"periodByHome,omitempty"`
	PeriodByAway  map[string]int `json:"periodByAway,omitempty"`
}

// BaseMatch is the `base` component: identity, venue, teams, score, status.
// Without this component a match cannot enter the golden dataset.
type BaseMatch struct {
	TournamentID int64       `json:"tournamentId"`
	SeasonID     int64       `json:"seasonId"`
	RoundName    string      `json:"roundName,omitempty"`
	Venue        *Venue      `json:"venue,omitempty"`
	HomeTeam     Team        `json:"homeTeam"`
	AwayTeam     Team        `json:"awayTeam"`
	Kickoff      time.Time   `json:"kickoff"`
	Status       EventStatus `json:"status"`
	Score        *Score      `json:"score,omitempty"`
	Referee      string      `json:"referee,omitempty"`
}

// StatisticItem is one named home/away pair inside a statistic group, e.g.
// "Ball possession": 54 / 46.
type StatisticItem struct {
	Name        string  `json:"name"`
	Home        float64 `json:"home"`
	Away        float64 `json:"away"`
	CompareCode int     `json:"compareCode,omitempty"`
}

// StatisticGroup is a named collection of items, e.g. "Shots".
type StatisticGroup struct {
	GroupName string          `json:"groupName"`
	Items     []StatisticItem `json:"items"`
}

// StatisticsPeriod is one period's worth of statistic groups, e.g. "ALL",
// "1ST_HALF", "2ND_HALF". Ordering is preserved from upstream.
type StatisticsPeriod struct {
	Period string           `json:"period"`
	Groups []StatisticGroup `json:"groups"`
}

// Stats is the `stats` component: ordered per-period statistic groups.
type Stats struct {
	Periods []StatisticsPeriod `json:"periods"`
}

// Player is one lineup entry, starter or substitute.
type Player struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ShirtNumber   int    `json:"shirtNumber,omitempty"`
	Position      string `json:"position,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	IsSubstitute  bool   `json:"isSubstitute"`
}

// MissingPlayer is a player unavailable for the match, with the reason.
type MissingPlayer struct {
	Player Player `json:"player"`
	Reason string `json:"reason,omitempty"`
}

// TeamLineup is one side's full lineup.
type TeamLineup struct {
	Formation      string          `json:"formation,omitempty"`
	Starters       []Player        `json:"starters"`
	Substitutes    []Player        `json:"substitutes"`
	MissingPlayers []MissingPlayer `json:"missingPlayers,omitempty"`
}

// Lineup is the `lineup` component: both sides' team lineups.
type Lineup struct {
	Home TeamLineup `json:"home"`
	Away TeamLineup `json:"away"`
}

// IncidentType discriminates the Incident sum type. Unknown tags must fail
// the component rather than silently drop the element.
type IncidentType string

const (
	IncidentGoal         IncidentType = "goal"
	IncidentCard         IncidentType = "card"
	IncidentSubstitution IncidentType = "substitution"
	IncidentVarDecision  IncidentType = "var_decision"
	IncidentPeriod       IncidentType = "period"
)

// Incident is a single match event, tagged by IncidentType. Only the fields
// relevant to the tag are populated; the others are left zero-valued. This
// mirrors a tagged union without needing Go generics over sum types.
type Incident struct {
	IncidentType IncidentType `json:"incidentType"`
	Minute       int          `json:"minute"`
	AddedTime    int          `json:"addedTime,omitempty"`
	IsHome       bool         `json:"isHome"`

	// goal
	ScorerID   int64 `json:"scorerId,omitempty"`
	AssistID   int64 `json:"assistId,omitempty"`
	HomeScore  int   `json:"homeScore,omitempty"`
	AwayScore  int   `json:"awayScore,omitempty"`
	IsPenalty  bool  `json:"isPenalty,omitempty"`
	IsOwnGoal  bool  `json:"isOwnGoal,omitempty"`

	// card
	PlayerID int64  `json:"playerId,omitempty"`
	CardType string `json:"cardType,omitempty"` // yellow|red|second_yellow

	// substitution
	PlayerInID  int64 `json:"playerInId,omitempty"`
	PlayerOutID int64 `json:"playerOutId,omitempty"`

	// var_decision
	VarDecision string `json:"varDecision,omitempty"`
	Confirmed   bool   `json:"confirmed,omitempty"`

	// period
	PeriodName string `json:"periodName,omitempty"`
}

// Incidents is the `incidents` component: the ordered match event timeline.
type Incidents struct {
	Events []Incident `json:"events"`
}

// GraphPoint is one sample of the momentum graph.
type GraphPoint struct {
	Minute int `json:"minute"`
	Value  int `json:"value"`
}

// Graph is the `graph` component: the momentum timeline plus period breaks.
type Graph struct {
	Points          []GraphPoint `json:"points"`
	PeriodBoundary1 int          `json:"periodBoundary1,omitempty"`
	PeriodBoundary2 int          `json:"periodBoundary2,omitempty"`
}

// EventSummary is one entry in a season's event list: enough to identify
// and filter matches before scraping the rest of their components.
type EventSummary struct {
	MatchID MatchID     `json:"matchId"`
	Status  EventStatus `json:"status"`
}
