package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/launchpad"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of launchpad",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("launchpad version %s\n", strings.TrimSpace(launchpad.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
