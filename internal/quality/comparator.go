// Package quality compares component payloads across runs to build a
// consensus, and provides the manager that drives the
// scrape-compare-retry cycle to a frozen golden dataset.
package quality

import (
	"encoding/json"
	"sort"

	"football-golden-scraper/internal/models"
)

// Comparator compares the same component across two runs by structural
// equality, after dropping configured fields (e.g. timestamps) that are
// expected to differ run-to-run without signalling a real disagreement.
type Comparator struct {
	ActiveComponents []models.ComponentKind
	Exclusions       map[models.ComponentKind][]string
}

// componentToMap flattens a component value to a generic map via JSON, so
// field exclusion can operate on key names without a type switch per
// component - the same "dump to dict, drop keys, compare dicts" idiom the
// original comparator uses with Pydantic's model_dump(exclude=...).
func componentToMap(value any, excluded []string) (map[string]any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	for _, key := range excluded {
		delete(m, key)
	}
	return m, nil
}

func mapsEqual(a, b map[string]any) bool {
	da, err := json.Marshal(a)
	if err != nil {
		return false
	}
	db, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(normalizeJSON(da)) == string(normalizeJSON(db))
}

// normalizeJSON re-marshals through a generic interface so key ordering
// doesn't affect the byte comparison (encoding/json sorts map keys on
// marshal, so a single round-trip is enough).
func normalizeJSON(data []byte) []byte {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return data
	}
	out, err := json.Marshal(v)
	if err != nil {
		return data
	}
	return out
}

// CompareComponent reports whether component kind is structurally equal
// between m1 and m2, excluding configured fields. A component missing
// from either match counts as unequal, a fail-closed default.
func (c *Comparator) CompareComponent(m1, m2 *models.MatchRecord, kind models.ComponentKind) bool {
	v1 := m1.Component(kind)
	v2 := m2.Component(kind)
	if v1 == nil || v2 == nil {
		return false
	}

	excluded := c.Exclusions[kind]
	map1, err := componentToMap(v1, excluded)
	if err != nil {
		return false
	}
	map2, err := componentToMap(v2, excluded)
	if err != nil {
		return false
	}
	return mapsEqual(map1, map2)
}

// CompareAllComponents compares every active component between m1 and m2.
func (c *Comparator) CompareAllComponents(m1, m2 *models.MatchRecord) map[models.ComponentKind]bool {
	results := make(map[models.ComponentKind]bool, len(c.ActiveComponents))
	for _, kind := range c.ActiveComponents {
		results[kind] = c.CompareComponent(m1, m2, kind)
	}
	return results
}

// BuildComponentConsensus compares component kind for matchID across every
// pair of runs and reports whether at least one pair agreed. This is a
// deliberately weak threshold - one agreeing pair is enough, not a
// majority.
func BuildComponentConsensus(comparator *Comparator, runs []models.SeasonRun, matchID models.MatchID, kind models.ComponentKind) models.ComponentConsensusResult {
	result := models.ComponentConsensusResult{Component: kind}

	type runMatch struct {
		runID models.RunID
		match *models.MatchRecord
	}
	var present []runMatch
	for _, run := range runs {
		if m := run.MatchByID(matchID); m != nil {
			present = append(present, runMatch{run.RunID, m})
		}
	}

	for i := 0; i < len(present); i++ {
		for j := i + 1; j < len(present); j++ {
			pair := models.NewRunPair(present[i].runID, present[j].runID)
			if comparator.CompareComponent(present[i].match, present[j].match, kind) {
				result.AgreedPairs = append(result.AgreedPairs, pair)
			} else {
				result.DisagreedPairs = append(result.DisagreedPairs, pair)
			}
		}
	}

	result.HasConsensus = len(result.AgreedPairs) >= 1
	return result
}

// BuildMatchConsensus builds the per-component consensus for matchID
// across runs, then derives the match-level fields: HasConsensus (every
// active component reached consensus), RetryComponents (the components
// that didn't), and SingleRunOnly (the match appeared in fewer than two
// runs, so there was nothing to compare - see RetryPlan.FullComponents
// for how this case is retried).
func BuildMatchConsensus(comparator *Comparator, runs []models.SeasonRun, matchID models.MatchID) models.MatchConsensusResult {
	result := models.MatchConsensusResult{
		MatchID:    matchID,
		Components: make(map[models.ComponentKind]models.ComponentConsensusResult, len(comparator.ActiveComponents)),
	}

	runsWithMatch := 0
	for _, run := range runs {
		if run.MatchByID(matchID) != nil {
			runsWithMatch++
		}
	}
	result.SingleRunOnly = runsWithMatch < 2

	if result.SingleRunOnly {
		result.HasConsensus = false
		result.RetryComponents = append([]models.ComponentKind{}, comparator.ActiveComponents...)
		return result
	}

	allConsensus := true
	for _, kind := range comparator.ActiveComponents {
		cc := BuildComponentConsensus(comparator, runs, matchID, kind)
		result.Components[kind] = cc
		if !cc.HasConsensus {
			allConsensus = false
			result.RetryComponents = append(result.RetryComponents, kind)
		}
	}
	result.HasConsensus = allConsensus

	return result
}

// BuildSeasonConsensus runs BuildMatchConsensus over every match id that
// appears in at least one of runs, in ascending match-id order for
// deterministic output.
func BuildSeasonConsensus(comparator *Comparator, tournamentID models.TournamentID, seasonID models.SeasonID, runs []models.SeasonRun) models.SeasonConsensusResult {
	seen := map[models.MatchID]bool{}
	var ids []models.MatchID
	for _, run := range runs {
		for _, m := range run.Matches {
			if !seen[m.MatchID] {
				seen[m.MatchID] = true
				ids = append(ids, m.MatchID)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var runIDs []models.RunID
	for _, run := range runs {
		runIDs = append(runIDs, run.RunID)
	}
	sort.Slice(runIDs, func(i, j int) bool { return runIDs[i] < runIDs[j] })

	result := models.SeasonConsensusResult{
		TournamentID: tournamentID,
		SeasonID:     seasonID,
		ComparedRuns: runIDs,
		Matches:      make(map[models.MatchID]models.MatchConsensusResult, len(ids)),
	}

	for _, id := range ids {
		mc := BuildMatchConsensus(comparator, runs, id)
		result.Matches[id] = mc
		if mc.SingleRunOnly {
			result.MatchesInSingleRunOnly = append(result.MatchesInSingleRunOnly, id)
		}
	}

	return result
}

// BuildRetryPlan turns a SeasonConsensusResult into the next retry round:
// matches that disagreed on specific components are retried on just those
// components; matches only seen in one run so far are retried on the full
// component set, since there's no per-component disagreement to localize
// yet.
func BuildRetryPlan(consensus models.SeasonConsensusResult) models.RetryPlan {
	var plan models.RetryPlan

	var ids []models.MatchID
	for id := range consensus.Matches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		mc := consensus.Matches[id]
		if mc.SingleRunOnly {
			plan.FullComponents = append(plan.FullComponents, id)
			continue
		}
		if len(mc.RetryComponents) > 0 {
			plan.Targets = append(plan.Targets, models.RetryTarget{
				MatchID:    id,
				Components: append([]models.ComponentKind{}, mc.RetryComponents...),
			})
		}
	}

	return plan
}
