package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath string
	logFile    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "popcal",
	Short:         "Pop up a calendar in the terminal and print the picked date",
	Long:          "popcal opens a date or date-range picker anchored to an input box and prints the confirmed value to stdout, so scripts can use it like a prompt.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: pick a single date
		return pickCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("popcal %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.config/popcal/config.yaml, then config.toml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write debug logs to this file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging (to --log-file or ~/.local/state/popcal/popcal.log)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(rangeCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errCancelled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
