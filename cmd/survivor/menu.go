package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/platform/tui"
	"github.com/vovakirdan/tui-survivor/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the start screen",
	Long: `Show the start screen with every mode and its stats.

Pick a mode with Enter, press Tab for the scoreboard. Finishing or
leaving a run returns to the start screen.`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagLogFile, "log", "", "Write a session log to this file")
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger, closeLog, err := runLogger(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	preset, _ := config.ParsePreset(flagDifficulty)
	opts := tui.Options{Store: store, Logger: logger, Difficulty: preset}
	if err := tui.RunSession(runtimeConfig(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
