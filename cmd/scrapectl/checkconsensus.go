package main

import (
	"fmt"

	"football-golden-scraper/internal/models"

	"github.com/spf13/cobra"
)

var checkConsensusCmd = &cobra.Command{
	Use:   "check-consensus",
	Args:  cobra.NoArgs,
	Short: "Build and print a consensus analysis from runs already on disk",
	Long:  `Compares every run already saved for a season and reports how many matches reached consensus, how many still disagree, and which matches only appeared in one run.`,
	RunE:  runCheckConsensus,
}

func init() {
	checkConsensusCmd.Flags().Int64("tournament-id", 0, "tournament id (required)")
	checkConsensusCmd.Flags().Int64("season-id", 0, "season id (required)")
	_ = checkConsensusCmd.MarkFlagRequired("tournament-id")
	_ = checkConsensusCmd.MarkFlagRequired("season-id")
}

func runCheckConsensus(cmd *cobra.Command, args []string) error {
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

	consensus, err := manager.BuildConsensusAnalysis()
	if err != nil {
		return err
	}

	fmt.Printf("runs compared: %d\n", len(consensus.ComparedRuns))
	fmt.Printf("perfect consensus: %d\n", len(consensus.PerfectConsensus()))
	fmt.Printf("consensus with outliers: %d\n", len(consensus.ConsensusWithOutliers()))
	fmt.Printf("failed: %d\n", len(consensus.Failed()))
	fmt.Printf("single-run only: %d\n", len(consensus.MatchesInSingleRunOnly))
	return nil
}
