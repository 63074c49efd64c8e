package models

// RunPair identifies an unordered pair of runs compared against each other.
// Stored with the lower RunID first so pairs compare equal regardless of
// comparison order (needed for deterministic sorting downstream).
type RunPair struct {
	A RunID `json:"a"`
	B RunID `json:"b"`
}

// NewRunPair builds a RunPair with its members in canonical (ascending)
// order.
func NewRunPair(x, y RunID) RunPair {
	if x <= y {
		return RunPair{A: x, B: y}
	}
	return RunPair{A: y, B: x}
}

// ComponentConsensusResult is the outcome of comparing one component across
// every pair of available runs for one match.
//
// HasConsensus is true the moment at least one pair agrees - a
// deliberately weak threshold. Consensus does not require a majority,
// just one agreeing pair; do not strengthen this to a majority rule.
type ComponentConsensusResult struct {
	Component      ComponentKind `json:"component"`
	AgreedPairs    []RunPair     `json:"agreedPairs"`
	DisagreedPairs []RunPair     `json:"disagreedPairs"`
	HasConsensus   bool          `json:"hasConsensus"`
}

// ConsensusRuns returns the set of run IDs that took part in at least one
// agreeing pair, in ascending order with duplicates removed.
func (c ComponentConsensusResult) ConsensusRuns() []RunID {
	seen := map[RunID]bool{}
	var out []RunID
	for _, p := range c.AgreedPairs {
		if !seen[p.A] {
			seen[p.A] = true
			out = append(out, p.A)
		}
		if !seen[p.B] {
			seen[p.B] = true
			out = append(out, p.B)
		}
	}
	sortRunIDs(out)
	return out
}

// OutlierRuns returns run IDs that appeared in a disagreement but never in
// any agreement - candidates to exclude when picking the golden run.
func (c ComponentConsensusResult) OutlierRuns() []RunID {
	agree := map[RunID]bool{}
	for _, p := range c.AgreedPairs {
		agree[p.A] = true
		agree[p.B] = true
	}
	seen := map[RunID]bool{}
	var out []RunID
	for _, p := range c.DisagreedPairs {
		for _, r := range []RunID{p.A, p.B} {
			if !agree[r] && !seen[r] {
				seen[r] = true
				out = append(out, r)
			}
		}
	}
	sortRunIDs(out)
	return out
}

func sortRunIDs(ids []RunID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// MatchConsensusResult is the consensus outcome for one match across all
// attempted components.
type MatchConsensusResult struct {
	MatchID         MatchID                                  `json:"matchId"`
	Components      map[ComponentKind]ComponentConsensusResult `json:"components"`
	HasConsensus    bool                                     `json:"hasConsensus"`
	RetryComponents []ComponentKind                          `json:"retryComponents,omitempty"`
	SingleRunOnly   bool                                     `json:"singleRunOnly"`
}

// SeasonConsensusResult is one season's full consensus analysis: every
// match that appeared in at least one run, keyed by match id.
type SeasonConsensusResult struct {
	TournamentID           TournamentID                    `json:"tournamentId"`
	SeasonID               SeasonID                        `json:"seasonId"`
	ComparedRuns           []RunID                         `json:"comparedRuns"`
	Matches                map[MatchID]MatchConsensusResult `json:"matches"`
	MatchesInSingleRunOnly []MatchID                       `json:"matchesInSingleRunOnly,omitempty"`
}

// PerfectConsensus returns matches where every attempted component reached
// consensus, none are flagged for retry, and no pair of runs disagreed on
// any component.
func (s SeasonConsensusResult) PerfectConsensus() []MatchID {
	var out []MatchID
	for id, m := range s.Matches {
		if m.HasConsensus && len(m.RetryComponents) == 0 && !m.hasDisagreement() {
			out = append(out, id)
		}
	}
	return out
}

// ConsensusWithOutliers returns matches that reached consensus overall but
// where at least one pair of runs disagreed on some component (an outlier
// run whose disagreement didn't bring down match-level consensus), or a
// component is still flagged for retry.
func (s SeasonConsensusResult) ConsensusWithOutliers() []MatchID {
	var out []MatchID
	for id, m := range s.Matches {
		if m.HasConsensus && (len(m.RetryComponents) > 0 || m.hasDisagreement()) {
			out = append(out, id)
		}
	}
	return out
}

// hasDisagreement reports whether any component of m has a disagreeing
// run pair.
func (m MatchConsensusResult) hasDisagreement() bool {
	for _, cc := range m.Components {
		if len(cc.DisagreedPairs) > 0 {
			return true
		}
	}
	return false
}

// Failed returns matches without match-level consensus: at least one
// active component lacks an agreeing run pair, or the match appeared in
// only one run.
func (s SeasonConsensusResult) Failed() []MatchID {
	var out []MatchID
	for id, m := range s.Matches {
		if !m.HasConsensus {
			out = append(out, id)
		}
	}
	return out
}

// GoldenSelection records, for each match and component, which run number
// was chosen as the canonical source. Selection always picks the
// lowest-numbered run among the agreeing set, for determinism.
type GoldenSelection map[MatchID]map[ComponentKind]RunID

// GoldenDataset is the final frozen season output: one fully assembled
// MatchRecord per match that reached consensus, built by pulling each
// component from the run named in a GoldenSelection.
type GoldenDataset map[MatchID]MatchRecord
