// ABOUTME: CLI commands for managing fitness goals.
// ABOUTME: Supports add, list, toggle, and delete subcommands.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fittrack/fittrack/internal/models"
)

var (
	goalWorkoutType string
	goalDeadline    string
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"g"},
	Short:   "Manage fitness goals",
	Long: `Set fitness targets evaluated against your workout history.

TARGET TYPES:

  calories    Total calories burned across all workouts
  duration    Total minutes across all workouts
  frequency   Number of workouts, optionally of one type

Progress is recomputed every time the workout set changes. A goal
that reaches 100% is marked completed and stays completed even if
workouts are later deleted; only 'goal toggle' flips it back.

EXAMPLES:

  fittrack goal add "May burn" calories 5000 --deadline 2026-05-31
  fittrack goal add "Move more" duration 600
  fittrack goal add "Run often" frequency 12 --workout-type run
  fittrack goal list
  fittrack goal toggle 1715324400000`,
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title> <target-type> <target-value>",
	Short: "Add a new goal",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]
		if !models.IsValidTargetType(args[1]) {
			return fmt.Errorf("unknown target type: %s (use calories, duration, or frequency)", args[1])
		}
		targetValue, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid target value: %s", args[2])
		}

		g := models.NewGoal(trk.CurrentProfileID(), title, models.TargetType(args[1]), targetValue, goalDeadline)
		if goalWorkoutType != "" {
			g.WithWorkoutType(goalWorkoutType)
		}

		if err := trk.AddGoal(g); err != nil {
			return fmt.Errorf("failed to add goal: %w", err)
		}

		color.Green("✓ Added goal %q", g.Title)
		fmt.Printf("  %s %s %.0f\n",
			color.New(color.Faint).Sprint(g.ID),
			g.TargetType, g.TargetValue)
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals with progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		goals := trk.Goals()
		if len(goals) == 0 {
			fmt.Println("No goals found.")
			return nil
		}

		workouts := trk.Workouts()
		faint := color.New(color.Faint)
		now := time.Now()
		for _, g := range goals {
			status := fmt.Sprintf("%3d%%", g.Progress(workouts))
			if g.Completed {
				status = color.GreenString("done")
			} else if g.Deadline != "" {
				days := g.DaysLeft(now)
				switch {
				case days > 0:
					status += faint.Sprintf(" %dd left", days)
				case days == 0:
					status += color.YellowString(" last day")
				default:
					status += color.RedString(" overdue")
				}
			}
			fmt.Printf("%s %s %s %.0f  %s\n",
				faint.Sprint(g.ID),
				padRight(truncate(g.Title, 24), 24),
				padRight(string(g.TargetType), 9),
				g.TargetValue,
				status)
		}
		return nil
	},
}

var goalToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Toggle a goal's completed flag",
	Long: `Toggle a goal between completed and open.

This is the only way to un-complete a goal: automatic recomputation
marks goals completed but never reverts them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid goal id: %s", args[0])
		}

		if err := trk.ToggleGoal(id); err != nil {
			return fmt.Errorf("failed to toggle goal: %w", err)
		}

		color.Green("✓ Toggled goal %d", id)
		return nil
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid goal id: %s", args[0])
		}

		if err := trk.DeleteGoal(id); err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}

		color.Yellow("✗ Deleted goal %d", id)
		return nil
	},
}

func init() {
	goalAddCmd.Flags().StringVar(&goalWorkoutType, "workout-type", "", "workout type filter (frequency goals)")
	goalAddCmd.Flags().StringVar(&goalDeadline, "deadline", "", "deadline (YYYY-MM-DD)")

	goalCmd.AddCommand(goalAddCmd)
	goalCmd.AddCommand(goalListCmd)
	goalCmd.AddCommand(goalToggleCmd)
	goalCmd.AddCommand(goalDeleteCmd)
	rootCmd.AddCommand(goalCmd)
}
