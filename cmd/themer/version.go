package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/themer"
	"github.com/aretw0/themer/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of themer",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if tui.IsTerminal(out) {
			tui.PrintBanner(out, themer.Version)
			return
		}
		fmt.Fprintf(out, "themer version %s\n", strings.TrimSpace(themer.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
