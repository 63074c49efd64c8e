package main

import (
	"fmt"

	"football-golden-scraper/internal/models"

	"github.com/spf13/cobra"
)

var buildGoldenCmd = &cobra.Command{
	Use:   "build-golden",
	Args:  cobra.NoArgs,
	Short: "Freeze the golden dataset from the latest consensus analysis",
	Long:  `Selects the lowest-numbered agreeing run per component for every match that reached consensus and overwrites the season's golden dataset.`,
	RunE:  runBuildGolden,
}

func init() {
	buildGoldenCmd.Flags().Int64("tournament-id", 0, "tournament id (required)")
	buildGoldenCmd.Flags().Int64("season-id", 0, "season id (required)")
	_ = buildGoldenCmd.MarkFlagRequired("tournament-id")
	_ = buildGoldenCmd.MarkFlagRequired("season-id")
}

func runBuildGolden(cmd *cobra.Command, args []string) error {
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

	golden, err := manager.BuildGoldenDataset(consensus)
	if err != nil {
		return err
	}

	fmt.Printf("golden dataset built: %d matches\n", len(golden))
	return nil
}
