// ABOUTME: CLI commands for the weight history.
// ABOUTME: One entry per date; re-logging a date replaces it.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var weightDate string

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight over time",
	Long: `Record body weight measurements in kilograms.

Weight history keeps one entry per date: logging a weight for a date
that already has one replaces it. The profile's current weight always
follows the newest entry, and the very first entry seeds the initial
weight used for progress display.

EXAMPLES:

  fittrack weight add 82.5
  fittrack weight add 81.9 --date 2026-08-15
  fittrack weight list
  fittrack weight delete 2026-08-15`,
}

var weightAddCmd = &cobra.Command{
	Use:   "add <kg>",
	Short: "Log a weight measurement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var kg float64
		if _, err := fmt.Sscanf(args[0], "%f", &kg); err != nil {
			return fmt.Errorf("invalid weight: %s", args[0])
		}

		date, err := parseDate(weightDate)
		if err != nil {
			return err
		}
		if err := trk.AddWeightEntry(date, kg); err != nil {
			return fmt.Errorf("failed to log weight: %w", err)
		}

		color.Green("✓ Logged %.1f kg on %s", kg, date)
		return nil
	},
}

var weightListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the weight history",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile := trk.UserProfile()
		if len(profile.WeightHistory) == 0 {
			fmt.Println("No weight entries found.")
			return nil
		}

		faint := color.New(color.Faint)
		var prev float64
		for i, e := range profile.WeightHistory {
			delta := ""
			if i > 0 {
				delta = faint.Sprintf("%+.1f", e.Weight-prev)
			}
			fmt.Printf("%s  %6.1f kg  %s\n", e.Date, e.Weight, delta)
			prev = e.Weight
		}
		if profile.WeightGoal > 0 {
			fmt.Printf("\nGoal: %.1f kg (%.1f to go)\n",
				profile.WeightGoal, profile.Weight-profile.WeightGoal)
		}
		return nil
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:     "delete <date>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete the entry for a date",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDate(args[0])
		if err != nil {
			return err
		}

		if err := trk.DeleteWeightEntry(date); err != nil {
			return fmt.Errorf("failed to delete weight entry: %w", err)
		}

		color.Yellow("✗ Deleted weight entry for %s", date)
		return nil
	},
}

func init() {
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "measurement date (YYYY-MM-DD, default today)")

	weightCmd.AddCommand(weightAddCmd)
	weightCmd.AddCommand(weightListCmd)
	weightCmd.AddCommand(weightDeleteCmd)
	rootCmd.AddCommand(weightCmd)
}
