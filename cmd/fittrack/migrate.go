// ABOUTME: CLI command copying data between storage backends.
// ABOUTME: Folds flat-store data back into the embedded engine.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fittrack/fittrack/internal/storage"
)

var (
	migrateFrom string
	migrateTo   string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy all data between storage backends",
	Long: `Copy the profile registry and every profile's data from one
storage backend to the other.

When the embedded engine fails to open, the tool silently falls back
to the flat store and the two copies diverge. Once the engine is
healthy again, run:

  fittrack migrate --from flat --to badger

to fold the flat-store data back in. The destination's collections
are overwritten; the source is left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination backends must differ")
		}

		src, err := openBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer src.Close()

		dst, err := openBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		defer dst.Close()

		summary, err := storage.CopyData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %d profiles, %d workouts, %d goals from %s to %s",
			summary.Profiles, summary.Workouts, summary.Goals, migrateFrom, migrateTo)
		return nil
	},
}

func openBackend(name string) (storage.RecordStore, error) {
	switch name {
	case "badger":
		return storage.OpenBadger(cfg.BadgerDir())
	case "flat":
		return storage.OpenFlat(cfg.FlatPath())
	default:
		return nil, fmt.Errorf("unknown backend: %q (use badger or flat)", name)
	}
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "flat", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "badger", "destination backend")

	rootCmd.AddCommand(migrateCmd)
}
