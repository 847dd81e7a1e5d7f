package prune

import (
	"fmt"
	"time"

	"finch/internal/config"
	"finch/internal/datastore"

	"github.com/spf13/cobra"
)

var maxAgeDays int

var Cmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete stored market snapshots older than the retention window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		days := cfg.Data.MaxAgeDays
		if maxAgeDays > 0 {
			days = maxAgeDays
		}

		store, err := datastore.New(cfg.Data.Dir)
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}

		removed, err := store.Prune(time.Duration(days) * 24 * time.Hour)
		if err != nil {
			return fmt.Errorf("pruning snapshots: %w", err)
		}

		fmt.Printf("removed %d snapshots older than %d days from %s\n", removed, days, store.Dir())
		return nil
	},
}

func init() {
	Cmd.Flags().IntVar(&maxAgeDays, "max-age-days", 0, "override snapshot retention in days")
}
