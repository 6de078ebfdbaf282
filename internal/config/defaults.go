package config

import (
	_ "embed"
	"math"

	"github.com/vovakirdan/tui-survivor/internal/core"
)

//go:embed defaults/survivor.yaml
var defaultSurvivorYAML []byte

// DefaultSurvivorConfig returns the built-in tuning. The embedded YAML
// carries the same numbers.
func DefaultSurvivorConfig() SurvivorConfig {
	return SurvivorConfig{
		World: WorldConfig{
			ViewportWidth:  1920,
			ViewportHeight: 1080,
			WidthFactor:    3,
		},
		Player: PlayerConfig{
			Size:           96,
			Health:         100,
			Speed:          450,
			XPToNextLevel:  2,
			PickupRadius:   150,
			IFrameDuration: 1,
			FirePoints:     []core.Vec2{{X: -24, Y: 35}, {X: 24, Y: 35}},
		},
		Weapons: WeaponsConfig{
			Fork: ForkConfig{
				Cooldown:           0.75,
				ProjectileSpeed:    600,
				ProjectileLifespan: 1.5,
				ProjectileSize:     30,
				Damage:             10,
				Count:              1,
				MaxCount:           5,
				Spread:             math.Pi / 16,
				SpinRate:           360,
			},
			Garlic: GarlicConfig{
				Cooldown: 0.33,
				Damage:   35,
				Radius:   120,
			},
		},
		Enemies: EnemiesConfig{
			Pufferfish: EnemyStats{Size: 40, Health: 10, Speed: 150, Damage: 12, XPValue: 2},
			Octopus:    EnemyStats{Size: 55, Health: 30, Speed: 100, Damage: 20, XPValue: 10},
		},
		Spawning: SpawningConfig{
			Interval:           2,
			Capacity:           150,
			EdgeMargin:         50,
			BatchGrowthPeriod:  12.5,
			HealthGrowthPeriod: 20,
			HealthGrowthAmount: 8,
			ToughChance:        0.3,
		},
		MiniBoss: MiniBossConfig{
			Stats:          EnemyStats{Size: 128, Health: 300, Speed: 100, Damage: 100, XPValue: 150},
			StartTime:      120,
			Interval:       30,
			AttackCooldown: 1,
			MaxHealth:      1000,
			Projectile:     ProjectileConfig{Damage: 40, Speed: 450, Lifespan: 4, Size: 60},
		},
		Boss: BossConfig{
			Stats:             EnemyStats{Size: 256, Health: 3500, Speed: 150, Damage: 70, XPValue: 0},
			SpawnTime:         270,
			WarningTime:       5,
			AttackCooldown:    0.3,
			Missile:           ProjectileConfig{Damage: 65, Speed: 800, Lifespan: 4, Size: 40},
			EnrageFraction:    1.0 / 3.0,
			TriggerRadius:     120,
			BlastRadius:       180,
			BlastMultiplier:   0.6,
			ExplosionDuration: 0.5,
		},
		Loot: LootConfig{
			LateGameTime:     210,
			FreezeChance:     0.004,
			MagnetChance:     0.004,
			LateFreezeChance: 0.002,
			LateMagnetChance: 0.002,
			FreezeDuration:   4,
			OrbPullSpeed:     800,
			OrbSize:          24,
			ItemSize:         32,
		},
		Progression: ProgressionConfig{
			EarlyGrowth: 1.5,
			LateGrowth:  1.2,
			LateBonus:   3,
			SwitchLevel: 4,
			MaxChoices:  5,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultSurvivorYAML
}
