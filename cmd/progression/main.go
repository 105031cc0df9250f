// Package main is the entry point for the progression CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	profileFlag string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "progression",
	Short: "StudyQuest progression engine",
	Long: `Progression drives the StudyQuest learning game: experience and levels,
per-zone mastery, daily streaks, battle scoring, and codex unlocks.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "progression.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "profile ID (defaults to the configured profile)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simulateCmd)
}
