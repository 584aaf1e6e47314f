package main

import (
	"github.com/aretw0/themer/internal/cli"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [dir]",
	Short: "Remove the scratch directory and the cache state",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Clean(cmd.Context(), commonFlags(cmd, args), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
