package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "themer",
	Short: "themer compiles one stylesheet per theme from a tree of LESS sources",
	Long: `themer aggregates the .less files of a project, layers them over the
theme and layout kits and renders one CSS file per requested theme.
Unchanged sources and themes are detected by fingerprint and skipped.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Project directory containing the style sources")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Build file (default: themer.yaml|yml|json|hcl in --dir)")
	rootCmd.PersistentFlags().String("scratch", "", "Scratch directory (default: <dir>/.themer/temp)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address sharing the cache state between hosts")
	rootCmd.PersistentFlags().String("log-level", "", "Log level on stderr: debug, info, warn, error (default: silent)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
}
