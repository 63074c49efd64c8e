package main

import (
	"context"
	"fmt"

	"football-golden-scraper/internal/models"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Args:  cobra.NoArgs,
	Short: "Run the full scrape/compare/retry cycle for a season",
	Long:  `Runs the fixed-shape repair loop: scrape twice, build consensus, retry disagreeing matches until consensus holds or the retry budget is exhausted, then freeze the golden dataset.`,
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().Int64("tournament-id", 0, "tournament id (required)")
	updateCmd.Flags().Int64("season-id", 0, "season id (required)")
	_ = updateCmd.MarkFlagRequired("tournament-id")
	_ = updateCmd.MarkFlagRequired("season-id")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	tournamentID, _ := cmd.Flags().GetInt64("tournament-id")
	seasonID, _ := cmd.Flags().GetInt64("season-id")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	manager, err := buildManager(cfg, models.TournamentID(tournamentID), models.SeasonID(seasonID), logger)
	if err != nil {
		return err
	}

	golden, err := manager.RunRepairCycle(context.Background())
	if err != nil {
		return fmt.Errorf("repair cycle failed: %w", err)
	}

	fmt.Printf("golden dataset built: %d matches\n", len(golden))
	return nil
}
