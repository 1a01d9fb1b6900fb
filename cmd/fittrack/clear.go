// ABOUTME: CLI command wiping all stored data.
// ABOUTME: Requires --force; recreates the default profile afterwards.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var clearForce bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all data across every profile",
	Long: `Delete every workout, goal, weight entry, and profile.

This wipes ALL profiles, not just the active one, and cannot be
undone. A fresh default profile is created afterwards. Consider
'fittrack export' first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearForce {
			return fmt.Errorf("refusing to wipe all data without --force")
		}

		if err := trk.FactoryReset(); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}

		color.Yellow("✗ All data cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearForce, "force", false, "confirm wiping all data")
	rootCmd.AddCommand(clearCmd)
}
