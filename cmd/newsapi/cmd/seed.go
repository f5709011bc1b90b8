package cmd

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/go-news-api/internal/seed"
)

var seedDataset string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reset the store to an embedded fixture set",
	Long: `seed migrates the store at DB_PATH, deletes every row and inserts the
chosen fixture set. Article and comment ids restart at 1.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedDataset, "dataset", "",
		fmt.Sprintf("fixture set (%s); defaults to SEED_DATASET", strings.Join(seed.Datasets(), "|")))
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dataset := cfg.Store.SeedDataset
	if seedDataset != "" {
		dataset = strings.ToLower(seedDataset)
	}

	db, err := openStore(cfg.Store.Path, false)
	if err != nil {
		return err
	}
	defer closeStore(db)

	if err := seed.RunDataset(cmd.Context(), db, dataset); err != nil {
		return err
	}
	log.Info().Str("dataset", dataset).Str("path", cfg.Store.Path).Msg("store seeded")
	return nil
}
