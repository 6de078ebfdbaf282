package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const survivorFile = "survivor.yaml"

// LoadSurvivor loads the simulation tuning.
// Search order: customPath -> ~/.arcade/configs/survivor.yaml ->
// ./configs/survivor.yaml -> embedded default -> DefaultSurvivorConfig.
// Documents are decoded over the defaults, so a file may set only the keys
// it wants to change.
func LoadSurvivor(customPath string) (SurvivorConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SurvivorConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseSurvivor(data)
		if err != nil {
			return SurvivorConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(survivorFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSurvivor(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", survivorFile)); err == nil {
		if cfg, err := parseSurvivor(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parseSurvivor(defaultSurvivorYAML); err == nil {
		return cfg, nil
	}
	return DefaultSurvivorConfig(), nil
}

func parseSurvivor(data []byte) (SurvivorConfig, error) {
	cfg := DefaultSurvivorConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SurvivorConfig{}, err
	}
	if err := Validate(cfg); err != nil {
		return SurvivorConfig{}, err
	}
	return cfg, nil
}

// LoadRun reads per-run overrides from a YAML file.
func LoadRun(path string) (RunConfig, error) {
	var run RunConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return run, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &run); err != nil {
		return run, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return run, nil
}

// Marshal renders the effective configuration as YAML.
func Marshal(cfg SurvivorConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// Validate rejects tunings the simulation cannot run with.
func Validate(cfg SurvivorConfig) error {
	var errs []error
	if cfg.World.ViewportWidth <= 0 || cfg.World.ViewportHeight <= 0 {
		errs = append(errs, errors.New("world viewport must be positive"))
	}
	if cfg.World.WidthFactor < 1 {
		errs = append(errs, errors.New("world width_factor must be at least 1"))
	}
	if cfg.Player.Size <= 0 || cfg.Player.Health <= 0 {
		errs = append(errs, errors.New("player size and health must be positive"))
	}
	if cfg.Player.XPToNextLevel <= 0 {
		errs = append(errs, errors.New("player xp_to_next_level must be positive"))
	}
	if len(cfg.Player.FirePoints) == 0 {
		errs = append(errs, errors.New("player needs at least one fire point"))
	}
	if cfg.Spawning.Capacity <= 0 {
		errs = append(errs, errors.New("spawning capacity must be positive"))
	}
	if cfg.Progression.MaxChoices <= 0 {
		errs = append(errs, errors.New("progression max_choices must be positive"))
	}
	if cfg.Boss.WarningTime > cfg.Boss.SpawnTime {
		errs = append(errs, errors.New("boss warning_time exceeds spawn_time"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplySurvivorPreset adjusts wave pressure for a difficulty preset.
func ApplySurvivorPreset(cfg *SurvivorConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawning.Interval = 2.5
		cfg.Spawning.HealthGrowthAmount = 5
		cfg.Player.Health = 150
	case DifficultyHard:
		cfg.Spawning.Interval = 1.5
		cfg.Spawning.HealthGrowthAmount = 12
		cfg.Spawning.Capacity = 200
	case DifficultyFixed:
		// Batches and enemy health stay at their t=0 values.
		cfg.Spawning.BatchGrowthPeriod = 0
		cfg.Spawning.HealthGrowthAmount = 0
	}
}
