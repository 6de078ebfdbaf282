package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivor/internal/games/survivor"
	"github.com/vovakirdan/tui-survivor/internal/registry"
	"github.com/vovakirdan/tui-survivor/internal/storage"
	"github.com/vovakirdan/tui-survivor/internal/stream"
)

var (
	flagSpectateAddr  string
	flagSpectateMode  string
	flagSpectateRuns  int
	flagRestartDelay  time.Duration
	flagSpectateStore bool
)

var spectateCmd = &cobra.Command{
	Use:   "spectate",
	Short: "Stream autopilot runs to websocket spectators",
	Long: `Play autopilot runs back to back and broadcast every frame.

Spectators connect to /ws and receive one MessagePack frame per tick:
the full snapshot plus its HUD. A late joiner first gets the latest frame.
/healthz reports the number of connected spectators.

Examples:
  survivor spectate
  survivor spectate --addr :9000 --mode survivor_boss
  survivor spectate --max-runs 3 --seed 7 --save`,
	Run: runSpectate,
}

func init() {
	spectateCmd.Flags().StringVar(&flagSpectateAddr, "addr", ":8080", "HTTP listen address")
	spectateCmd.Flags().StringVar(&flagSpectateMode, "mode", survivor.GameID, "Mode to play")
	spectateCmd.Flags().IntVar(&flagSpectateRuns, "max-runs", 0, "Stop after this many runs (0 = forever)")
	spectateCmd.Flags().DurationVar(&flagRestartDelay, "restart-delay", 5*time.Second, "Pause between runs")
	spectateCmd.Flags().BoolVar(&flagSpectateStore, "save", false, "Record finished runs in the database")
}

func runSpectate(_ *cobra.Command, _ []string) {
	if !registry.Exists(flagSpectateMode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", flagSpectateMode)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "survivor-spectate",
	})

	var store *storage.Store
	if flagSpectateStore {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("runs will not be recorded", "error", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	cfg := stream.Config{
		Address:      flagSpectateAddr,
		FPS:          flagFPS,
		Mode:         flagSpectateMode,
		Seed:         flagSeed,
		RestartDelay: flagRestartDelay,
		MaxRuns:      flagSpectateRuns,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := stream.NewServer(cfg, store, logger).ListenAndServe(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
