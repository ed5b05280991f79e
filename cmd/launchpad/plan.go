package main

import (
	"os"

	"github.com/aretw0/launchpad/internal/cli"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [dir] [-- program args...]",
	Short: "Show what a launch would do without running anything",
	Long:  `Resolves the configuration and prints each step with the command it would run. Exits 1 if a step is already known to fail.`,
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(cli.Plan(runOptions(cmd, args)))
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
