package main

import (
	"fmt"

	"football-golden-scraper/internal/config"
	"football-golden-scraper/internal/logging"
	"football-golden-scraper/internal/models"
	"football-golden-scraper/internal/quality"
	"football-golden-scraper/internal/scraping"
	"football-golden-scraper/internal/storage"
	"football-golden-scraper/internal/transport"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

func newLogger() *logging.Logger {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	return logging.New(logging.Config{Level: level, Format: logging.FormatConsole})
}

func buildDescriptors(cfg *config.Config) scraping.Descriptors {
	return scraping.Descriptors{
		Base:      scraping.BaseDescriptor(cfg.Links.BaseMatch),
		Stats:     scraping.StatsDescriptor(cfg.Links.Stats),
		Lineup:    scraping.LineupDescriptor(cfg.Links.Lineup),
		Incidents: scraping.IncidentsDescriptor(cfg.Links.Incidents),
		Graph:     scraping.GraphDescriptor(cfg.Links.Graph),
	}
}

// buildManager wires together storage, the season scraper, the events
// lister, and the quality manager for one (tournament, season) pair - the
// shared setup every subcommand needs.
func buildManager(cfg *config.Config, tournamentID models.TournamentID, seasonID models.SeasonID, logger *logging.Logger) (*quality.Manager, error) {
	store, err := storage.NewHandler(cfg.Storage.BaseDir, tournamentID, seasonID)
	if err != nil {
		return nil, err
	}

	descriptors := buildDescriptors(cfg)

	seasonScraper := &scraping.SeasonScraper{
		Descriptors: descriptors,
		NewFetcher:  func() transport.Fetcher { return transport.NewHTTPFetcher() },
		MaxWorkers:  cfg.Scraper.MaxWorkers,
		Logger:      logger,
	}

	events := &scraping.EventsLister{
		Fetcher:             transport.NewHTTPFetcher(),
		URLTemplate:         cfg.Links.EventsSeason,
		CompletedStatusCode: cfg.Scraper.CompletedStatusCode,
	}

	return quality.NewManager(cfg, store, seasonScraper, events, tournamentID, seasonID, logger), nil
}
