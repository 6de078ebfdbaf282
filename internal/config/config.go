// Package config provides YAML-based tuning for the survivor simulation,
// per-run overrides and difficulty presets.
package config

import "github.com/vovakirdan/tui-survivor/internal/core"

// SurvivorConfig contains every tunable constant of the simulation.
type SurvivorConfig struct {
	World       WorldConfig       `yaml:"world"`
	Player      PlayerConfig      `yaml:"player"`
	Weapons     WeaponsConfig     `yaml:"weapons"`
	Enemies     EnemiesConfig     `yaml:"enemies"`
	Spawning    SpawningConfig    `yaml:"spawning"`
	MiniBoss    MiniBossConfig    `yaml:"mini_boss"`
	Boss        BossConfig        `yaml:"boss"`
	Loot        LootConfig        `yaml:"loot"`
	Progression ProgressionConfig `yaml:"progression"`
}

// WorldConfig defines the visible viewport and the scrolling world.
type WorldConfig struct {
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
	WidthFactor    float64 `yaml:"width_factor"` // world width in viewports
}

// Width returns the world width in pixels.
func (w WorldConfig) Width() float64 {
	return w.ViewportWidth * w.WidthFactor
}

// PlayerConfig defines the starting player.
type PlayerConfig struct {
	Size           float64     `yaml:"size"`
	Health         float64     `yaml:"health"`
	Speed          float64     `yaml:"speed"`
	XPToNextLevel  int         `yaml:"xp_to_next_level"`
	PickupRadius   float64     `yaml:"pickup_radius"`
	IFrameDuration float64     `yaml:"iframe_duration"`
	FirePoints     []core.Vec2 `yaml:"fire_points"` // offsets from the player centre
}

// WeaponsConfig holds the two weapon archetypes.
type WeaponsConfig struct {
	Fork   ForkConfig   `yaml:"fork"`
	Garlic GarlicConfig `yaml:"garlic"`
}

// ForkConfig defines the launcher weapon.
type ForkConfig struct {
	Cooldown           float64 `yaml:"cooldown"`
	ProjectileSpeed    float64 `yaml:"projectile_speed"`
	ProjectileLifespan float64 `yaml:"projectile_lifespan"`
	ProjectileSize     float64 `yaml:"projectile_size"`
	Damage             float64 `yaml:"damage"`
	Count              int     `yaml:"count"`
	MaxCount           int     `yaml:"max_count"`
	Spread             float64 `yaml:"spread"`    // radians between fan members
	SpinRate           float64 `yaml:"spin_rate"` // degrees per second
}

// GarlicConfig defines the aura weapon.
type GarlicConfig struct {
	Cooldown float64 `yaml:"cooldown"`
	Damage   float64 `yaml:"damage"`
	Radius   float64 `yaml:"radius"`
}

// EnemyStats are the base numbers of one enemy archetype.
type EnemyStats struct {
	Size    float64 `yaml:"size"`
	Health  float64 `yaml:"health"`
	Speed   float64 `yaml:"speed"`
	Damage  float64 `yaml:"damage"`
	XPValue int     `yaml:"xp_value"`
}

// EnemiesConfig holds the ordinary enemy archetypes.
type EnemiesConfig struct {
	Pufferfish EnemyStats `yaml:"pufferfish"`
	Octopus    EnemyStats `yaml:"octopus"`
}

// SpawningConfig drives ordinary wave spawns.
type SpawningConfig struct {
	Interval           float64 `yaml:"interval"`
	Capacity           int     `yaml:"capacity"`
	EdgeMargin         float64 `yaml:"edge_margin"`
	BatchGrowthPeriod  float64 `yaml:"batch_growth_period"`  // seconds per extra enemy in a batch
	HealthGrowthPeriod float64 `yaml:"health_growth_period"` // seconds per health step
	HealthGrowthAmount float64 `yaml:"health_growth_amount"`
	ToughChance        float64 `yaml:"tough_chance"` // probability of an octopus
}

// ProjectileConfig describes an enemy projectile.
type ProjectileConfig struct {
	Damage   float64 `yaml:"damage"`
	Speed    float64 `yaml:"speed"`
	Lifespan float64 `yaml:"lifespan"`
	Size     float64 `yaml:"size"`
}

// MiniBossConfig drives the recurring mini-boss.
type MiniBossConfig struct {
	Stats          EnemyStats       `yaml:"stats"`
	StartTime      float64          `yaml:"start_time"`
	Interval       float64          `yaml:"interval"`
	AttackCooldown float64          `yaml:"attack_cooldown"`
	MaxHealth      float64          `yaml:"max_health"` // health reached at the boss time
	Projectile     ProjectileConfig `yaml:"projectile"`
}

// BossConfig drives the scripted boss fight.
type BossConfig struct {
	Stats             EnemyStats       `yaml:"stats"`
	SpawnTime         float64          `yaml:"spawn_time"`
	WarningTime       float64          `yaml:"warning_time"`
	AttackCooldown    float64          `yaml:"attack_cooldown"`
	Missile           ProjectileConfig `yaml:"missile"`
	EnrageFraction    float64          `yaml:"enrage_fraction"`
	TriggerRadius     float64          `yaml:"trigger_radius"`
	BlastRadius       float64          `yaml:"blast_radius"`
	BlastMultiplier   float64          `yaml:"blast_multiplier"`
	ExplosionDuration float64          `yaml:"explosion_duration"`
}

// LootConfig defines death drops and pickup behaviour.
type LootConfig struct {
	LateGameTime     float64 `yaml:"late_game_time"`
	FreezeChance     float64 `yaml:"freeze_chance"`
	MagnetChance     float64 `yaml:"magnet_chance"`
	LateFreezeChance float64 `yaml:"late_freeze_chance"`
	LateMagnetChance float64 `yaml:"late_magnet_chance"`
	FreezeDuration   float64 `yaml:"freeze_duration"`
	OrbPullSpeed     float64 `yaml:"orb_pull_speed"`
	OrbSize          float64 `yaml:"orb_size"`
	ItemSize         float64 `yaml:"item_size"`
}

// ProgressionConfig defines the level threshold curve.
type ProgressionConfig struct {
	EarlyGrowth float64 `yaml:"early_growth"` // threshold multiplier below SwitchLevel
	LateGrowth  float64 `yaml:"late_growth"`
	LateBonus   float64 `yaml:"late_bonus"`
	SwitchLevel int     `yaml:"switch_level"`
	MaxChoices  int     `yaml:"max_choices"`
}

// RunConfig holds the per-run overrides applied at reset. Nil pointers leave
// the catalog defaults untouched.
type RunConfig struct {
	PlayerSpeed  *float64 `yaml:"player_speed,omitempty"`
	ForkCount    *int     `yaml:"fork_count,omitempty"`
	ForkCooldown *float64 `yaml:"fork_cooldown,omitempty"`
	GarlicRadius *float64 `yaml:"garlic_radius,omitempty"`
	RegenRate    *float64 `yaml:"regen_rate,omitempty"`
	Invincible   bool     `yaml:"invincible,omitempty"`
	DisableFork  bool     `yaml:"disable_fork,omitempty"`
	StartAtBoss  bool     `yaml:"start_at_boss,omitempty"`
}

// IsZero reports whether the run uses catalog defaults only.
func (r RunConfig) IsZero() bool {
	return r.PlayerSpeed == nil && r.ForkCount == nil && r.ForkCooldown == nil &&
		r.GarlicRadius == nil && r.RegenRate == nil &&
		!r.Invincible && !r.DisableFork && !r.StartAtBoss
}

// BossRushRun returns the overrides of the boss-rush mode: a heavily
// upgraded player dropped straight into the boss fight.
func BossRushRun() RunConfig {
	return RunConfig{
		PlayerSpeed:  ptr(600.0),
		ForkCount:    ptr(5),
		ForkCooldown: ptr(0.3),
		GarlicRadius: ptr(250.0),
		RegenRate:    ptr(0.1),
		StartAtBoss:  true,
	}
}

func ptr[T any](v T) *T {
	return &v
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
