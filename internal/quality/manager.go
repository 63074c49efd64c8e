package quality

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"football-golden-scraper/internal/config"
	"football-golden-scraper/internal/logging"
	"football-golden-scraper/internal/models"
	"football-golden-scraper/internal/scraping"
	"football-golden-scraper/internal/storage"
)

// Manager is the main orchestrator. It owns one season's storage handle
// and comparator, and drives the scrape -> consensus -> retry ->
// consensus -> golden cycle.
type Manager struct {
	TournamentID models.TournamentID
	SeasonID     models.SeasonID

	Storage    *storage.Handler
	Comparator *Comparator
	Scraper    *scraping.SeasonScraper
	Events     *scraping.EventsLister

	RetrySuccessThreshold float64
	MaxRetryRounds        int

	Logger *logging.Logger
}

// NewManager wires a Manager from a loaded config, a storage handler for
// this (tournament, season), and a season scraper/events lister already
// pointed at the right fetcher and descriptors.
func NewManager(cfg *config.Config, store *storage.Handler, seasonScraper *scraping.SeasonScraper, events *scraping.EventsLister, tournamentID models.TournamentID, seasonID models.SeasonID, logger *logging.Logger) *Manager {
	active := make([]models.ComponentKind, 0, len(cfg.Quality.ActiveComponents))
	for _, name := range cfg.Quality.ActiveComponents {
		active = append(active, models.ComponentKind(name))
	}
	exclusions := make(map[models.ComponentKind][]string, len(cfg.Quality.ComparatorExclusions))
	for name, fields := range cfg.Quality.ComparatorExclusions {
		exclusions[models.ComponentKind(name)] = fields
	}

	return &Manager{
		TournamentID: tournamentID,
		SeasonID:     seasonID,
		Storage:      store,
		Comparator:   &Comparator{ActiveComponents: active, Exclusions: exclusions},
		Scraper:      seasonScraper,
		Events:       events,

		RetrySuccessThreshold: cfg.Scraper.RetrySuccessThreshold,
		MaxRetryRounds:        5,
		Logger:                logger,
	}
}

func (m *Manager) logger() *logging.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return logging.Nop()
}

// ExecuteScrapingRun performs one full season scrape and persists it as
// the next run.
func (m *Manager) ExecuteScrapingRun(ctx context.Context) (models.SeasonRun, error) {
	events, err := m.Events.ListCompletedEvents(ctx, m.TournamentID, m.SeasonID)
	if err != nil {
		return models.SeasonRun{}, err
	}

	run := m.Scraper.ScrapeSeason(ctx, m.TournamentID, m.SeasonID, events, 0)

	runID, err := m.Storage.SaveRun(run)
	if err != nil {
		return models.SeasonRun{}, err
	}
	run.RunID = runID

	m.logger().Info("scraping run saved")
	return run, nil
}

// ExecuteScrapingRetry re-scrapes exactly the matches/components named in
// plan and persists the result as a partial run.
func (m *Manager) ExecuteScrapingRetry(ctx context.Context, plan models.RetryPlan) (models.SeasonRun, error) {
	run := m.Scraper.RunRetry(ctx, m.TournamentID, m.SeasonID, plan, 0)

	runID, err := m.Storage.SaveRun(run)
	if err != nil {
		return models.SeasonRun{}, err
	}
	run.RunID = runID

	if !retrySucceeded(run, plan, m.RetrySuccessThreshold) {
		m.logger().Warn("retry run recovered fewer than the configured fraction of requested components")
	}
	m.logger().Info("retry run saved")
	return run, nil
}

// retrySucceeded reports whether at least threshold of the components
// requested in plan came back successfully in run - a lenient acceptance
// criterion: even a partially-recovered retry is useful, so this is only
// surfaced as a log signal, never used to discard the run.
func retrySucceeded(run models.SeasonRun, plan models.RetryPlan, threshold float64) bool {
	requested := 0
	succeeded := 0

	countMatch := func(matchID models.MatchID, components []models.ComponentKind) {
		match := run.MatchByID(matchID)
		for _, kind := range components {
			requested++
			if match != nil && match.Errors[kind].Status == models.StatusSuccess {
				succeeded++
			}
		}
	}

	for _, target := range plan.Targets {
		countMatch(target.MatchID, target.Components)
	}
	for _, matchID := range plan.FullComponents {
		countMatch(matchID, models.AllComponents)
	}

	if requested == 0 {
		return true
	}
	return float64(succeeded)/float64(requested) >= threshold
}

// BuildConsensusAnalysis compares every run on disk and persists the
// result. Fails with ErrInsufficientRuns if fewer than two runs exist -
// there's nothing to compare otherwise.
func (m *Manager) BuildConsensusAnalysis() (models.SeasonConsensusResult, error) {
	runs, loadErrs := m.Storage.LoadAllRuns()
	for _, e := range loadErrs {
		m.logger().Warn("skipped a corrupted run file: " + e.Error())
	}

	if len(runs) < 2 {
		return models.SeasonConsensusResult{}, models.InsufficientRunsErrorf(m.TournamentID, m.SeasonID, len(runs))
	}

	consensus := BuildSeasonConsensus(m.Comparator, m.TournamentID, m.SeasonID, runs)

	if _, err := m.Storage.SaveConsensus(consensus); err != nil {
		return models.SeasonConsensusResult{}, err
	}

	return consensus, nil
}

// BuildGoldenDataset selects, for every match that reached consensus, the
// lowest-numbered agreeing run per component and assembles the frozen
// dataset from those selections: deterministic golden selection always
// picks the lowest-numbered consensus run.
func (m *Manager) BuildGoldenDataset(consensus models.SeasonConsensusResult) (models.GoldenDataset, error) {
	runs, loadErrs := m.Storage.LoadAllRuns()
	for _, e := range loadErrs {
		m.logger().Warn("skipped a corrupted run file: " + e.Error())
	}

	runByID := make(map[models.RunID]models.SeasonRun, len(runs))
	for _, r := range runs {
		runByID[r.RunID] = r
	}

	dataset := make(models.GoldenDataset)

	var ids []models.MatchID
	for id := range consensus.Matches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		mc := consensus.Matches[id]
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

	if err := m.Storage.SaveGolden(dataset); err != nil {
		return nil, err
	}

	return dataset, nil
}

// pickGoldenRun returns the lowest run id among the component's agreeing
// set, the deterministic golden-selection rule.
func pickGoldenRun(cc models.ComponentConsensusResult) (models.RunID, bool) {
	runs := cc.ConsensusRuns()
	if len(runs) == 0 {
		return 0, false
	}
	return runs[0], true
}

// RunRepairCycle is the fixed-shape repair loop: scrape twice, build
// consensus, then alternate retry/consensus until the retry plan is empty
// or MaxRetryRounds is exhausted, and finally freeze the golden dataset.
// Storage failures are fatal and abort the cycle; component-level
// failures inside a run are tolerated and simply feed the next retry
// round.
func (m *Manager) RunRepairCycle(ctx context.Context) (models.GoldenDataset, error) {
	correlationID := uuid.NewString()
	cycleLog := m.logger().WithCorrelation(correlationID)
	prevLogger := m.Logger
	m.Logger = cycleLog
	defer func() { m.Logger = prevLogger }()
	if m.Scraper != nil && m.Scraper.Logger != nil {
		prevScraperLogger := m.Scraper.Logger
		m.Scraper.Logger = prevScraperLogger.WithCorrelation(correlationID)
		defer func() { m.Scraper.Logger = prevScraperLogger }()
	}
	cycleLog.Info("repair cycle started")

	if _, err := m.ExecuteScrapingRun(ctx); err != nil {
		return nil, err
	}
	if _, err := m.ExecuteScrapingRun(ctx); err != nil {
		return nil, err
	}

	consensus, err := m.BuildConsensusAnalysis()
	if err != nil {
		return nil, err
	}

	plan := BuildRetryPlan(consensus)
	for round := 0; !plan.IsEmpty() && round < m.MaxRetryRounds; round++ {
		if _, err := m.ExecuteScrapingRetry(ctx, plan); err != nil {
			return nil, err
		}
		consensus, err = m.BuildConsensusAnalysis()
		if err != nil {
			return nil, err
		}
		plan = BuildRetryPlan(consensus)
	}

	golden, err := m.BuildGoldenDataset(consensus)
	if err != nil {
		return nil, err
	}
	cycleLog.Info("repair cycle finished")
	return golden, nil
}
