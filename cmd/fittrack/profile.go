// ABOUTME: CLI commands for the profile registry and health profile.
// ABOUTME: Each profile is an isolated data partition; delete cascades.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	profileWeight   float64
	profileHeight   float64
	profileAge      int
	profileGender   string
	profileActivity string
	profileGoal     float64
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Aliases: []string{"p"},
	Short:   "Manage profiles and health settings",
	Long: `Manage isolated profiles and the active profile's health settings.

Each profile owns its own workouts, goals, weight history, and health
settings. Deleting a profile removes all of its data. Deleting the
last profile recreates an empty default.

The active profile is remembered between runs and can be overridden
with the FITTRACK_PROFILE environment variable.

EXAMPLES:

  fittrack profile create "Alice"
  fittrack profile list
  fittrack profile switch 1756713600000
  fittrack profile set --weight 82.5 --height 180 --age 34 --gender male
  fittrack profile show
  fittrack profile delete 1756713600000`,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := trk.CreateProfile(args[0])
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		color.Green("✓ Created profile %q", p.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(p.ID))
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		faint := color.New(color.Faint)
		current := trk.CurrentProfileID()
		for _, p := range trk.Profiles() {
			marker := " "
			if p.ID == current {
				marker = color.GreenString("*")
			}
			fmt.Printf("%s %s %s\n", marker, faint.Sprint(p.ID), p.Name)
		}
		return nil
	},
}

var profileSwitchCmd = &cobra.Command{
	Use:   "switch <id>",
	Short: "Switch the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid profile id: %s", args[0])
		}

		if err := trk.SwitchProfile(id); err != nil {
			return fmt.Errorf("failed to switch profile: %w", err)
		}

		color.Green("✓ Switched to profile %d", id)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a profile and all of its data",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid profile id: %s", args[0])
		}

		if err := trk.DeleteProfile(id); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}

		color.Yellow("✗ Deleted profile %d and its data", id)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update health settings for the active profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := trk.UserProfile()

		if cmd.Flags().Changed("weight") {
			p.Weight = profileWeight
		}
		if cmd.Flags().Changed("height") {
			p.Height = profileHeight
		}
		if cmd.Flags().Changed("age") {
			p.Age = profileAge
		}
		if cmd.Flags().Changed("gender") {
			p.Gender = profileGender
		}
		if cmd.Flags().Changed("activity") {
			p.ActivityLevel = profileActivity
		}
		if cmd.Flags().Changed("goal-weight") {
			p.WeightGoal = profileGoal
		}

		if err := trk.UpdateProfile(p); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		color.Green("✓ Updated profile")
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active profile's health settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := trk.UserProfile()
		faint := color.New(color.Faint)

		fmt.Printf("%s %s\n", p.Name, faint.Sprint(p.ID))
		if p.Weight > 0 {
			fmt.Printf("  weight    %.1f kg\n", p.Weight)
		}
		if p.Height > 0 {
			fmt.Printf("  height    %.0f cm\n", p.Height)
		}
		if p.Age > 0 {
			fmt.Printf("  age       %d\n", p.Age)
		}
		if p.Gender != "" {
			fmt.Printf("  gender    %s\n", p.Gender)
		}
		fmt.Printf("  activity  %s\n", p.ActivityLevel)
		if p.WeightGoal > 0 {
			fmt.Printf("  goal      %.1f kg\n", p.WeightGoal)
		}
		return nil
	},
}

func init() {
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "weight in kg")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "height in cm")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "age in years")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "gender (male/female)")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "activity level (sedentary, light, moderate, active, veryActive)")
	profileSetCmd.Flags().Float64Var(&profileGoal, "goal-weight", 0, "target weight in kg")

	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileSwitchCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}
