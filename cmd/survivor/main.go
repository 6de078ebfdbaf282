// survivor is a terminal survival shooter: move, let your weapons fire on
// their own, level up, and outlast the waves until the boss falls.
//
// Usage:
//
//	survivor play [mode]     - Play a mode (survivor, survivor_boss)
//	survivor menu            - Start screen with mode picker and scoreboard
//	survivor serve           - Start SSH server for remote play
//	survivor spectate        - Stream autopilot runs to websocket spectators
//	survivor sim             - Run headless autopilot runs and print outcomes
//	survivor scores [mode]   - Show the best and recent runs
//	survivor config          - Print the effective tuning as YAML
//	survivor list            - List available modes
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.arcade/survivor.db)
//	--config <path>       - Load tuning from a YAML file
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "survivor",
	Short: "Tralalero Survivor - survive the waves in your terminal",
	Long: `Tralalero Survivor is a top-down survival shooter for the terminal.

You only move. Your fork launcher and garlic aura fire on their own.
Enemies drop experience orbs; every level up offers upgrades to choose
from. Survive until the boss arrives and defeat it to clear the run.

Available commands:
  play      - Play a mode directly
  menu      - Start screen with mode picker and scoreboard
  serve     - Start SSH server for remote play
  spectate  - Stream autopilot runs over websocket
  sim       - Headless autopilot runs
  scores    - View best and recent runs
  config    - Print the effective tuning
  list      - Show available modes

Examples:
  survivor play
  survivor play survivor_boss
  survivor menu --difficulty hard
  survivor serve --ssh :2222
  survivor sim --runs 20 --seed 1`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagDifficulty != "" {
			if _, ok := config.ParsePreset(flagDifficulty); !ok {
				return fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
			}
		}
		survivor.SetConfigPath(flagConfig)
		survivor.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/survivor.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(spectateCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
