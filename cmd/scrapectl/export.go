package main

import (
	"fmt"

	"football-golden-scraper/internal/models"
	"football-golden-scraper/internal/storage"

	"github.com/spf13/cobra"
)

// exportCmd loads a season's golden dataset and hands it off to a
// tabular flattener. The flattener itself is an external collaborator -
// this command only verifies the golden dataset exists and reports its
// size, since flattening golden records into tables is not part of this
// system.
var exportCmd = &cobra.Command{
	Use:   "export",
	Args:  cobra.NoArgs,
	Short: "Check that a season's golden dataset is ready for tabular export",
	Long:  `Loads the season's frozen golden dataset. Flattening to a tabular export format is handled by an external collaborator, not by this binary.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().Int64("tournament-id", 0, "tournament id (required)")
	exportCmd.Flags().Int64("season-id", 0, "season id (required)")
	_ = exportCmd.MarkFlagRequired("tournament-id")
	_ = exportCmd.MarkFlagRequired("season-id")
}

func runExport(cmd *cobra.Command, args []string) error {
	tournamentID, _ := cmd.Flags().GetInt64("tournament-id")
	seasonID, _ := cmd.Flags().GetInt64("season-id")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.NewHandler(cfg.Storage.BaseDir, models.TournamentID(tournamentID), models.SeasonID(seasonID))
	if err != nil {
		return err
	}

	golden, ok, err := store.LoadGolden()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no golden dataset on disk for tournament %d season %d; run build-golden first", tournamentID, seasonID)
	}

	fmt.Printf("golden dataset ready for export: %d matches\n", len(golden))
	fmt.Println("tabular flattening is handled outside this binary")
	return nil
}
