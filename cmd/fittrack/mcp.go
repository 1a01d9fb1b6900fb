// ABOUTME: CLI command starting the MCP server over stdio.
// ABOUTME: Exposes the tracker to MCP-compatible AI assistants.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/fittrack/fittrack/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server over stdio.

TOOLS:

  log_workout      Log a workout for the active profile
  list_workouts    List workouts, optionally filtered by type
  delete_workout   Delete a workout by ID
  add_goal         Add a fitness goal
  list_goals       List goals with computed progress
  log_weight       Record a body-weight measurement
  get_profile      Health profile plus derived BMI/BMR/TDEE
  switch_profile   Switch the active profile

RESOURCES:

  fittrack://summary   Workout totals and derived metrics
  fittrack://goals     Goal progress overview

This command is meant to be launched by an MCP client, not run
interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcpserver.NewServer(trk)
		if err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		if err := server.Serve(cmd.Context()); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
