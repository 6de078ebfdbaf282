package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivor/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective tuning as YAML",
	Long: `Print the tuning a run would use after the config file and the
difficulty preset are applied. The output is a valid config file.

Examples:
  survivor config > ~/.arcade/configs/survivor.yaml
  survivor config --difficulty hard
  survivor config --config ./my-survivor.yaml
  survivor config --defaults`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.LoadSurvivor(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	preset, _ := config.ParsePreset(flagDifficulty)
	config.ApplySurvivorPreset(&cfg, preset)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid tuning: %v\n", err)
		os.Exit(1)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
