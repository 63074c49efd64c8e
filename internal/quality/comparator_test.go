package quality

import (
	"testing"
	"time"

	"football-golden-scraper/internal/models"
)

func testComparator() *Comparator {
	return &Comparator{
		ActiveComponents: append([]models.ComponentKind{}, models.AllComponents...),
		Exclusions: map[models.ComponentKind][]string{
			models.ComponentBase:      {"scrapedAt"},
			models.ComponentStats:     {"scrapedAt"},
			models.ComponentLineup:    {"scrapedAt"},
			models.ComponentIncidents: {"scrapedAt"},
			models.ComponentGraph:     {"scrapedAt"},
		},
	}
}

func fullMatch(id models.MatchID, incidentMinute int) models.MatchRecord {
	m := models.NewMatchRecord(id)
	at := time.Time{}
	m.SetComponent(models.ComponentBase, &models.BaseMatch{
		HomeTeam: models.Team{ID: 1, Name: "Home FC"},
		AwayTeam: models.Team{ID: 2, Name: "Away FC"},
	}, at)
	m.SetComponent(models.ComponentStats, &models.Stats{
		Periods: []models.StatisticsPeriod{{Period: "ALL", Groups: []models.StatisticGroup{
			{GroupName: "Shots", Items: []models.StatisticItem{{Name: "Total", Home: 10, Away: 8}}},
		}}},
	}, at)
	m.SetComponent(models.ComponentLineup, &models.Lineup{
		Home: models.TeamLineup{Starters: []models.Player{{ID: 1, Name: "P1"}}},
		Away: models.TeamLineup{Starters: []models.Player{{ID: 2, Name: "P2"}}},
	}, at)
	m.SetComponent(models.ComponentIncidents, &models.Incidents{
		Events: []models.Incident{{IncidentType: models.IncidentGoal, Minute: incidentMinute, ScorerID: 1}},
	}, at)
	m.SetComponent(models.ComponentGraph, &models.Graph{
		Points: []models.GraphPoint{{Minute: 1, Value: 0}, {Minute: 90, Value: 2}},
	}, at)
	return *m
}

func runWith(runID models.RunID, matches ...models.MatchRecord) models.SeasonRun {
	run := models.SeasonRun{TournamentID: 54, SeasonID: 62408, RunID: runID, Matches: matches}
	run.Finalize()
	return run
}

// Scenario 1: two full runs, perfect agreement.
func TestScenarioTwoFullRunsPerfectAgreement(t *testing.T) {
	comparator := testComparator()
	m101 := fullMatch(101, 10)
	m102 := fullMatch(102, 20)

	run1 := runWith(1, m101, m102)
	run2 := runWith(2, fullMatch(101, 10), fullMatch(102, 20))

	consensus := BuildSeasonConsensus(comparator, 54, 62408, []models.SeasonRun{run1, run2})

	if len(consensus.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(consensus.Matches))
	}
	if len(consensus.PerfectConsensus()) != 2 {
		t.Fatalf("expected perfect consensus for both matches, got %v", consensus.PerfectConsensus())
	}
	if len(consensus.Failed()) != 0 {
		t.Fatalf("expected no failed matches, got %v", consensus.Failed())
	}
}

// Scenario 2: two runs, one component disagrees on one match.
func TestScenarioOneComponentDisagrees(t *testing.T) {
	comparator := testComparator()
	run1 := runWith(1, fullMatch(101, 10))
	run2 := runWith(2, fullMatch(101, 99)) // incidents minute differs

	consensus := BuildSeasonConsensus(comparator, 54, 62408, []models.SeasonRun{run1, run2})
	mc := consensus.Matches[101]

	if mc.HasConsensus {
		t.Fatal("expected match 101 to lack consensus")
	}
	if len(mc.RetryComponents) != 1 || mc.RetryComponents[0] != models.ComponentIncidents {
		t.Fatalf("expected retry_components = [incidents], got %v", mc.RetryComponents)
	}

	plan := BuildRetryPlan(consensus)
	if len(plan.Targets) != 1 || plan.Targets[0].MatchID != 101 {
		t.Fatalf("expected retry plan targeting match 101, got %+v", plan.Targets)
	}
	if len(plan.Targets[0].Components) != 1 || plan.Targets[0].Components[0] != models.ComponentIncidents {
		t.Fatalf("expected retry plan for 101 to only list incidents, got %v", plan.Targets[0].Components)
	}
}

// Scenario 3: three runs, two agree, one is an outlier.
func TestScenarioOutlierAmongThreeRuns(t *testing.T) {
	comparator := testComparator()
	outlierLineup := fullMatch(101, 10)
	agreeingA := fullMatch(101, 10)
	agreeingB := fullMatch(101, 10)
	outlierLineup.Lineup.Home.Starters[0].Name = "Different Player"

	run1 := runWith(1, outlierLineup)
	run2 := runWith(2, agreeingA)
	run3 := runWith(3, agreeingB)

	consensus := BuildSeasonConsensus(comparator, 54, 62408, []models.SeasonRun{run1, run2, run3})
	cc := consensus.Matches[101].Components[models.ComponentLineup]

	if !cc.HasConsensus {
		t.Fatal("expected lineup to have consensus")
	}
	runs := cc.ConsensusRuns()
	if len(runs) != 2 || runs[0] != 2 || runs[1] != 3 {
		t.Fatalf("expected consensus_runs = {2,3}, got %v", runs)
	}
	outliers := cc.OutlierRuns()
	if len(outliers) != 1 || outliers[0] != 1 {
		t.Fatalf("expected outlier_runs = {1}, got %v", outliers)
	}

	selected, ok := pickGoldenRun(cc)
	if !ok || selected != 2 {
		t.Fatalf("expected golden selection to pick run 2 (lowest consensus run), got %d (ok=%v)", selected, ok)
	}
}

// Scenario 4: partial retry repairs a failure.
func TestScenarioPartialRetryRepairsFailure(t *testing.T) {
	comparator := testComparator()
	run1 := runWith(1, fullMatch(101, 10))
	run2 := runWith(2, fullMatch(101, 99))

	// Partial run 3: only match 101, only incidents, matching run 2.
	repaired := models.NewMatchRecord(101)
	repaired.SetComponent(models.ComponentIncidents, &models.Incidents{
		Events: []models.Incident{{IncidentType: models.IncidentGoal, Minute: 99, ScorerID: 1}},
	}, time.Time{})
	run3 := models.SeasonRun{TournamentID: 54, SeasonID: 62408, RunID: 3, Kind: models.RunPartial, Matches: []models.MatchRecord{*repaired}}
	run3.Finalize()

	consensus := BuildSeasonConsensus(comparator, 54, 62408, []models.SeasonRun{run1, run2, run3})
	mc := consensus.Matches[101]

	if !mc.HasConsensus {
		t.Fatalf("expected match 101 to reach consensus after the partial retry, got %+v", mc)
	}

	manager := &Manager{TournamentID: 54, SeasonID: 62408, Comparator: comparator}
	golden := buildGoldenFromRuns(manager, consensus, []models.SeasonRun{run1, run2, run3})

	if len(golden) != 1 {
		t.Fatalf("expected golden dataset size 1, got %d", len(golden))
	}
	assembled := golden[101]
	if len(assembled.Incidents.Events) != 1 || assembled.Incidents.Events[0].Minute != 99 {
		t.Fatalf("expected assembled incidents to match run 2/3's value, got %+v", assembled.Incidents)
	}
}

// Scenario 5: a match only present in one run.
func TestScenarioMatchOnlyInOneRun(t *testing.T) {
	comparator := testComparator()
	run1 := runWith(1, fullMatch(101, 10))
	run2 := runWith(2, fullMatch(101, 10), fullMatch(102, 20))

	consensus := BuildSeasonConsensus(comparator, 54, 62408, []models.SeasonRun{run1, run2})

	if len(consensus.MatchesInSingleRunOnly) != 1 || consensus.MatchesInSingleRunOnly[0] != 102 {
		t.Fatalf("expected matches_in_single_run_only = [102], got %v", consensus.MatchesInSingleRunOnly)
	}

	plan := BuildRetryPlan(consensus)
	found := false
	for _, id := range plan.FullComponents {
		if id == 102 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected retry plan to include match 102 for a full component retry, got %+v", plan.FullComponents)
	}

	manager := &Manager{TournamentID: 54, SeasonID: 62408, Comparator: comparator}
	golden := buildGoldenFromRuns(manager, consensus, []models.SeasonRun{run1, run2})
	if _, ok := golden[101]; !ok {
		t.Fatal("expected golden dataset to contain match 101")
	}
	if _, ok := golden[102]; ok {
		t.Fatal("expected golden dataset to exclude single-run match 102")
	}
}

// buildGoldenFromRuns is a copy of the selection logic in
// Manager.BuildGoldenDataset (not shared with it), taking runs directly so
// tests can exercise it without a storage.Handler.
func buildGoldenFromRuns(m *Manager, consensus models.SeasonConsensusResult, runs []models.SeasonRun) models.GoldenDataset {
	runByID := make(map[models.RunID]models.SeasonRun, len(runs))
	for _, r := range runs {
		runByID[r.RunID] = r
	}

	dataset := make(models.GoldenDataset)
	for id, mc := range consensus.Matches {
		if !mc.HasConsensus {
			continue
		}
		assembled := models.NewMatchRecord(id)
		for kind, cc := range mc.Components {
			runID, ok := pickGoldenRun(cc)
			if !ok {
				continue
			}
			run, ok := runByID[runID]
			if !ok {
				continue
			}
			match := run.MatchByID(id)
			if match == nil {
				continue
			}
			if value := match.Component(kind); value != nil {
				assembled.SetComponent(kind, value, time.Time{})
			}
		}
		dataset[id] = *assembled
	}
	return dataset
}

func TestRetryPlanMinimality(t *testing.T) {
	comparator := testComparator()
	run1 := runWith(1, fullMatch(101, 10))
	run2 := runWith(2, fullMatch(101, 10))

	consensus := BuildSeasonConsensus(comparator, 54, 62408, []models.SeasonRun{run1, run2})
	plan := BuildRetryPlan(consensus)

	if !plan.IsEmpty() {
		t.Fatalf("expected an empty retry plan when every component has consensus, got %+v", plan)
	}
}
