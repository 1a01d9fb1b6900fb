// ABOUTME: CLI commands for exporting and importing profile data.
// ABOUTME: Export writes JSON or YAML; import accepts JSON, all-or-nothing.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fittrack/fittrack/internal/storage"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active profile's data",
	Long: `Write the active profile's workouts, goals, and health profile
to a file.

The JSON export is the canonical interchange format and round-trips
through 'fittrack import'. YAML is offered for human reading.

EXAMPLES:

  fittrack export
  fittrack export -o backup.json
  fittrack export --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFormat != "json" && exportFormat != "yaml" {
			return fmt.Errorf("unknown format: %s (use json or yaml)", exportFormat)
		}

		data := trk.Export(cfg.InstallID)

		var out []byte
		var err error
		if exportFormat == "yaml" {
			out, err = data.YAML()
		} else {
			out, err = data.JSON()
		}
		if err != nil {
			return fmt.Errorf("failed to serialize export: %w", err)
		}

		path := exportOutput
		if path == "" {
			path = data.Filename(exportFormat)
		}
		if err := os.WriteFile(path, out, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		color.Green("✓ Exported %d workouts and %d goals to %s",
			len(data.Workouts), len(data.Goals), path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON export into the active profile",
	Long: `Replace the active profile's data with the contents of a JSON
export file.

The import is all-or-nothing: a file that does not parse or lacks the
profile, workouts, and goals keys is rejected and nothing changes.
Imported records are re-stamped with the active profile's ID, so an
export from one profile can seed another.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		if err := trk.ImportJSON(data); err != nil {
			var formatErr *storage.ImportFormatError
			if errors.As(err, &formatErr) {
				return fmt.Errorf("not a valid export file: %w", err)
			}
			return fmt.Errorf("failed to import: %w", err)
		}

		color.Green("✓ Imported %d workouts and %d goals",
			len(trk.Workouts()), len(trk.Goals()))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default timestamped)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format (json or yaml)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
