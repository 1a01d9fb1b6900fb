// ABOUTME: Root Cobra command for the fittrack CLI.
// ABOUTME: Owns config, store, and tracker lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/models"
	"github.com/fittrack/fittrack/internal/storage"
	"github.com/fittrack/fittrack/internal/tracker"
)

var (
	cfg   *config.Config
	store storage.RecordStore
	trk   *tracker.Tracker
)

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "Personal fitness tracker",
	Long: `FitTrack is a local-first personal fitness tracker.

WHAT IT TRACKS:

  Workouts       type, duration, calories, notes, per day
  Goals          calorie, duration, or frequency targets with deadlines,
                 completed automatically as your workouts add up
  Weight         dated body-weight history, one entry per day
  Profile        health profile driving BMI, BMR, TDEE, and body-fat
                 estimates

PROFILES:

  All data is partitioned by profile. Create one per person (or per
  training persona) and switch freely; each profile has its own
  workouts, goals, and health profile.

  $ fittrack profile create "Anna"
  $ fittrack profile switch 2
  $ fittrack profile list

QUICK START:

  $ fittrack workout add run -d 30 -c 320     # Log a run
  $ fittrack workout list                     # See recent workouts
  $ fittrack goal add "May burn" calories 5000 --deadline 2026-05-31
  $ fittrack weight add 82.5                  # Log today's weight
  $ fittrack stats                            # Derived health metrics

DATA STORAGE:

  Data lives in an embedded database at ~/.local/share/fittrack/db.
  When that engine cannot be opened the tool transparently falls back
  to a flat key-value store at ~/.local/share/fittrack/flat.db; use
  'fittrack migrate' to fold fallback data back in later.

MCP INTEGRATION:

  Run 'fittrack mcp' to start the Model Context Protocol server for
  use with MCP-compatible AI assistants:

  {
    "mcpServers": {
      "fittrack": { "command": "fittrack", "args": ["mcp"] }
    }
  }`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that never touch storage
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// migrate opens both backends itself; holding the embedded
		// engine's directory lock here would block it
		if cmd.Name() == "migrate" {
			return nil
		}

		store, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		trk, err = tracker.New(store, cfg.GetCurrentProfile())
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("failed to initialize tracker: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if trk != nil && cfg != nil {
			cfg.CurrentProfile = trk.CurrentProfileID()
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
		}
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// parseDate accepts a YYYY-MM-DD date, defaulting empty to today.
func parseDate(s string) (string, error) {
	if s == "" {
		return time.Now().Format(models.DateFormat), nil
	}
	if _, err := time.Parse(models.DateFormat, s); err != nil {
		return "", fmt.Errorf("invalid date: %s (use YYYY-MM-DD)", s)
	}
	return s, nil
}

// Both helpers measure in runes so multibyte text keeps the columns
// aligned and never gets cut mid-character.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
