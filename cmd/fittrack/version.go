// ABOUTME: CLI command printing the build version.
// ABOUTME: Version is stamped at build time via ldflags.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fittrack version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fittrack %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
