package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/core"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor"
	"github.com/vovakirdan/tui-survivor/internal/platform/tui"
	"github.com/vovakirdan/tui-survivor/internal/registry"
	"github.com/vovakirdan/tui-survivor/internal/storage"
)

var (
	flagBossRush     bool
	flagLogFile      string
	flagRunConfig    string
	flagSpeed        float64
	flagForkCount    int
	flagForkCooldown float64
	flagGarlicRadius float64
	flagRegen        float64
	flagInvincible   bool
	flagNoFork       bool
	flagStartAtBoss  bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a run",
	Long: `Start a run in the given mode (default: survivor).

Controls:
  WASD/Arrows  - Move (weapons fire on their own)
  1-5          - Pick an upgrade on level up
  Enter        - Pick the highlighted upgrade
  X            - Skip the upgrade offer
  P            - Pause
  R            - Restart (after game over)
  B/Esc        - Back (when paused or over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Dev overrides (normal mode only):
  --speed, --fork-count, --fork-cooldown, --garlic-radius, --regen,
  --invincible, --no-fork, --start-at-boss, or a whole --run-config file.

Examples:
  survivor play
  survivor play --boss-rush
  survivor play --difficulty hard --seed 42
  survivor play --invincible --start-at-boss
  survivor play --run-config ./dev-run.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	f := playCmd.Flags()
	f.BoolVar(&flagBossRush, "boss-rush", false, "Play the boss-rush mode")
	f.StringVar(&flagLogFile, "log", "", "Write a run log to this file")
	f.StringVar(&flagRunConfig, "run-config", "", "Path to a YAML file with run overrides")
	f.Float64Var(&flagSpeed, "speed", 0, "Override player speed")
	f.IntVar(&flagForkCount, "fork-count", 0, "Override forks per volley")
	f.Float64Var(&flagForkCooldown, "fork-cooldown", 0, "Override fork cooldown in seconds")
	f.Float64Var(&flagGarlicRadius, "garlic-radius", 0, "Override garlic aura radius")
	f.Float64Var(&flagRegen, "regen", 0, "Override health regeneration per second")
	f.BoolVar(&flagInvincible, "invincible", false, "Ignore contact damage")
	f.BoolVar(&flagNoFork, "no-fork", false, "Start without the fork launcher")
	f.BoolVar(&flagStartAtBoss, "start-at-boss", false, "Jump the clock to the boss arrival")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := survivor.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if flagBossRush {
		gameID = survivor.BossRushID
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'survivor list' to see available modes.")
		os.Exit(1)
	}

	run, err := runOverridesFromFlags(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	survivor.SetRunConfig(run)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the run still works
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

	if _, err := tui.Run(game, runtimeConfig(), tui.Options{Store: store, Logger: logger}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// runtimeConfig builds the platform settings from the terminal and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// runOverridesFromFlags starts from --run-config and lets explicit flags win.
func runOverridesFromFlags(cmd *cobra.Command) (config.RunConfig, error) {
	var run config.RunConfig
	if flagRunConfig != "" {
		loaded, err := config.LoadRun(flagRunConfig)
		if err != nil {
			return run, err
		}
		run = loaded
	}

	f := cmd.Flags()
	if f.Changed("speed") {
		run.PlayerSpeed = &flagSpeed
	}
	if f.Changed("fork-count") {
		if flagForkCount < 0 {
			return run, fmt.Errorf("--fork-count must not be negative")
		}
		run.ForkCount = &flagForkCount
	}
	if f.Changed("fork-cooldown") {
		if flagForkCooldown <= 0 {
			return run, fmt.Errorf("--fork-cooldown must be positive")
		}
		run.ForkCooldown = &flagForkCooldown
	}
	if f.Changed("garlic-radius") {
		run.GarlicRadius = &flagGarlicRadius
	}
	if f.Changed("regen") {
		run.RegenRate = &flagRegen
	}
	if f.Changed("invincible") {
		run.Invincible = flagInvincible
	}
	if f.Changed("no-fork") {
		run.DisableFork = flagNoFork
	}
	if f.Changed("start-at-boss") {
		run.StartAtBoss = flagStartAtBoss
	}
	return run, nil
}

// runLogger returns a logger writing to path, or a nil logger when path is
// empty. The terminal belongs to the game, so nothing logs to stderr.
func runLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		Prefix:          "survivor",
	})
	return logger, func() { file.Close() }, nil
}
