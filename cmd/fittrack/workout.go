// ABOUTME: CLI commands for managing workouts.
// ABOUTME: Supports add, list, edit, and delete subcommands.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fittrack/fittrack/internal/models"
)

var (
	workoutDuration int
	workoutCalories int
	workoutDate     string
	workoutNotes    string
	workoutType     string
	workoutLimit    int

	editDuration int
	editCalories int
	editDate     string
	editNotes    string
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Manage workouts",
	Long: `Track workout sessions for the active profile.

WORKFLOW:

  1. Log a workout:    fittrack workout add run -d 30 -c 320
  2. Review history:   fittrack workout list
  3. Fix a record:     fittrack workout edit 1715324400000 -c 350
  4. Remove a record:  fittrack workout delete 1715324400000

Logging a workout re-evaluates your goals: a calorie or duration goal
whose total crosses its target is marked completed automatically.

The workout type is freeform - use whatever makes sense for you:
  run, lift, swim, cycle, yoga, hiit, walk, climb, etc.`,
}

var workoutAddCmd = &cobra.Command{
	Use:   "add <type>",
	Short: "Log a new workout",
	Long: `Log a new workout session for the active profile.

Examples:
  fittrack workout add run --duration 45 --calories 400
  fittrack workout add lift -d 60 -c 280 --notes "Leg day"
  fittrack workout add cycle -d 90 -c 600 --date 2026-08-30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDate(workoutDate)
		if err != nil {
			return err
		}

		w := models.NewWorkout(trk.CurrentProfileID(), args[0], workoutDuration, workoutCalories)
		w.WithDate(date)
		if workoutNotes != "" {
			w.WithNotes(workoutNotes)
		}

		if err := trk.AddWorkout(w); err != nil {
			return fmt.Errorf("failed to add workout: %w", err)
		}

		color.Green("✓ Logged %s", w.Type)
		fmt.Printf("  %s %s  %d min  %d kcal\n",
			color.New(color.Faint).Sprint(w.ID),
			w.Date, w.Duration, w.Calories)
		return nil
	},
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	Long: `List recent workouts for the active profile, newest first.

Each line shows: ID  DATE  TYPE  DURATION  CALORIES  (NOTES)

Use --type to filter and --limit to cap the number of results.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts := trk.Workouts()

		shown := 0
		faint := color.New(color.Faint)
		for _, w := range workouts {
			if workoutType != "" && w.Type != workoutType {
				continue
			}
			notes := ""
			if w.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(w.Notes, 30))
			}
			fmt.Printf("%s %s %s %3d min %5d kcal%s\n",
				faint.Sprint(w.ID),
				w.Date,
				padRight(w.Type, 16),
				w.Duration,
				w.Calories,
				notes)
			shown++
			if workoutLimit > 0 && shown >= workoutLimit {
				break
			}
		}

		if shown == 0 {
			fmt.Println("No workouts found.")
		}
		return nil
	},
}

var workoutEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a workout",
	Long: `Edit a logged workout. Only the given flags change; other fields
keep their stored values.

Examples:
  fittrack workout edit 1715324400000 --calories 350
  fittrack workout edit 1715324400000 -d 45 --notes "felt great"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id: %s", args[0])
		}

		var current *models.Workout
		for _, w := range trk.Workouts() {
			if w.ID == id {
				current = &w
				break
			}
		}
		if current == nil {
			return fmt.Errorf("workout not found: %d", id)
		}

		if cmd.Flags().Changed("duration") {
			current.Duration = editDuration
		}
		if cmd.Flags().Changed("calories") {
			current.Calories = editCalories
		}
		if cmd.Flags().Changed("notes") {
			current.Notes = editNotes
		}
		if cmd.Flags().Changed("date") {
			date, err := parseDate(editDate)
			if err != nil {
				return err
			}
			current.Date = date
		}

		if err := trk.UpdateWorkout(*current); err != nil {
			return fmt.Errorf("failed to update workout: %w", err)
		}

		color.Green("✓ Updated %s", current.Type)
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout by its ID (first column of 'workout list').

This permanently deletes the record. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid workout id: %s", args[0])
		}

		if err := trk.DeleteWorkout(id); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.Yellow("✗ Deleted workout %d", id)
		return nil
	},
}

func init() {
	workoutAddCmd.Flags().IntVarP(&workoutDuration, "duration", "d", 30, "duration in minutes")
	workoutAddCmd.Flags().IntVarP(&workoutCalories, "calories", "c", 0, "calories burned")
	workoutAddCmd.Flags().StringVar(&workoutDate, "date", "", "workout date (YYYY-MM-DD, default today)")
	workoutAddCmd.Flags().StringVar(&workoutNotes, "notes", "", "workout notes")

	workoutListCmd.Flags().StringVarP(&workoutType, "type", "t", "", "filter by workout type")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max number of results")

	workoutEditCmd.Flags().IntVarP(&editDuration, "duration", "d", 0, "duration in minutes")
	workoutEditCmd.Flags().IntVarP(&editCalories, "calories", "c", 0, "calories burned")
	workoutEditCmd.Flags().StringVar(&editDate, "date", "", "workout date (YYYY-MM-DD)")
	workoutEditCmd.Flags().StringVar(&editNotes, "notes", "", "workout notes")

	workoutCmd.AddCommand(workoutAddCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutEditCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
