package scraping

import (
	"context"
	"sync"
	"time"

	"football-golden-scraper/internal/logging"
	"football-golden-scraper/internal/models"
	"football-golden-scraper/internal/transport"
)

// FetcherFactory builds one Fetcher per worker so no transport handle is
// shared across goroutines.
type FetcherFactory func() transport.Fetcher

// SeasonScraper scrapes every completed match in a season, fanning the
// work out across a bounded worker pool, and also drives a sequential
// retry pass over a narrower plan.
type SeasonScraper struct {
	Descriptors Descriptors
	NewFetcher  FetcherFactory
	MaxWorkers  int
	Logger      *logging.Logger
}

func (s *SeasonScraper) logger() *logging.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logging.Nop()
}

// chunkMatches splits ids into at most numChunks contiguous, non-empty
// partitions, distributing the remainder one-per-chunk to the first
// chunks. Static partition-per-worker chunking, not a shared task queue.
func chunkMatches(ids []models.MatchID, numChunks int) [][]models.MatchID {
	if numChunks <= 0 {
		numChunks = 1
	}
	if numChunks > len(ids) {
		numChunks = len(ids)
	}
	if numChunks == 0 {
		return nil
	}

	chunkSize := len(ids) / numChunks
	remainder := len(ids) % numChunks

	var chunks [][]models.MatchID
	start := 0
	for i := 0; i < numChunks; i++ {
		end := start + chunkSize
		if i < remainder {
			end++
		}
		if start >= len(ids) {
			break
		}
		if end > len(ids) {
			end = len(ids)
		}
		if start < end {
			chunks = append(chunks, ids[start:end])
		}
		start = end
	}
	return chunks
}

// ScrapeSeason runs a full pass over the given events (already listed and
// filtered by the caller), scraping every match's full component set across
// the worker pool.
func (s *SeasonScraper) ScrapeSeason(ctx context.Context, tournamentID models.TournamentID, seasonID models.SeasonID, events []models.EventSummary, runID models.RunID) models.SeasonRun {
	ids := make([]models.MatchID, len(events))
	for i, e := range events {
		ids[i] = e.MatchID
	}

	started := time.Now()
	matches := s.scrapePool(ctx, ids, models.AllComponents)

	run := models.SeasonRun{
		TournamentID: tournamentID,
		SeasonID:     seasonID,
		RunID:        runID,
		Kind:         models.RunFull,
		StartedAt:    started,
		Matches:      matches,
	}
	run.Duration = time.Since(started)
	run.Finalize()
	return run
}

// RunRetry is a retry pass: it only re-scrapes the components named in
// plan for each target match, sequentially through a single
// Fetcher - a retry round is small and does not warrant pool overhead, and
// running it single-threaded keeps load on the upstream provider low
// right after a disagreement.
func (s *SeasonScraper) RunRetry(ctx context.Context, tournamentID models.TournamentID, seasonID models.SeasonID, plan models.RetryPlan, runID models.RunID) models.SeasonRun {
	started := time.Now()
	fetcher := s.newFetcher()
	scraper := &MatchScraper{Fetcher: fetcher, Descriptors: s.Descriptors}

	var matches []models.MatchRecord
	for _, target := range plan.Targets {
		matches = append(matches, *scraper.ScrapeMatch(ctx, target.MatchID, target.Components))
	}
	for _, matchID := range plan.FullComponents {
		matches = append(matches, *scraper.ScrapeMatch(ctx, matchID, models.AllComponents))
	}
	sortMatchesByID(matches)

	run := models.SeasonRun{
		TournamentID: tournamentID,
		SeasonID:     seasonID,
		RunID:        runID,
		Kind:         models.RunPartial,
		StartedAt:    started,
		Matches:      matches,
	}
	run.Duration = time.Since(started)
	run.Finalize()
	return run
}

func (s *SeasonScraper) newFetcher() transport.Fetcher {
	if s.NewFetcher != nil {
		return s.NewFetcher()
	}
	return transport.NewHTTPFetcher()
}

// scrapePool runs one match scraper per worker over a static partition of
// ids, aggregating results behind a mutex. Grounded in a
// semaphore+WaitGroup+result-slot pattern used for concurrent source
// scraping, generalised here from per-source to per-match-chunk.
func (s *SeasonScraper) scrapePool(ctx context.Context, ids []models.MatchID, kinds []models.ComponentKind) []models.MatchRecord {
	workers := s.MaxWorkers
	if workers <= 0 {
		workers = 1
	}

	chunks := chunkMatches(ids, workers)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		progress int
		results  = make([]models.MatchRecord, 0, len(ids))
	)

	log := s.logger()

	for chunkIndex, chunk := range chunks {
		wg.Add(1)
		go func(chunkIndex int, chunk []models.MatchID) {
			defer wg.Done()

			fetcher := s.newFetcher()
			scraper := &MatchScraper{Fetcher: fetcher, Descriptors: s.Descriptors}

			local := make([]models.MatchRecord, 0, len(chunk))
			for _, matchID := range chunk {
				record := scraper.ScrapeMatch(ctx, matchID, kinds)
				local = append(local, *record)

				mu.Lock()
				progress++
				mu.Unlock()
				log.WithMatch(int64(matchID)).Debug("match scraped")
			}

			mu.Lock()
			results = append(results, local...)
			mu.Unlock()
		}(chunkIndex, chunk)
	}

	wg.Wait()
	log.Info("season pool complete")

	sortMatchesByID(results)
	return results
}

func sortMatchesByID(matches []models.MatchRecord) {
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j-1].MatchID > matches[j].MatchID; j-- {
			matches[j-1], matches[j] = matches[j], matches[j-1]
		}
	}
}
