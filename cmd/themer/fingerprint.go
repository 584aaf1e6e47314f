package main

import (
	"github.com/aretw0/themer/internal/cli"
	"github.com/spf13/cobra"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint <file>...",
	Short: "Print the content fingerprint used by the build cache",
	Long:  `Prints the sha256 fingerprint of each file. Use - to read stdin.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Fingerprint(args, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(fingerprintCmd)
}
