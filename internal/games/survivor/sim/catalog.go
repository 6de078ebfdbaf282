package sim

import (
	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/core"
)

// Display names. Presentation only; logic keys off WeaponKind.
const (
	ForkName   = "Spinning Fork"
	GarlicName = "Garlic Aura"
)

// Weapon IDs are stable because a player owns at most one of each kind.
const (
	forkID   = "weapon_fork"
	garlicID = "weapon_garlic"
	playerID = "player"
	bossID   = "enemy_boss"
)

func newFork(cfg config.ForkConfig) Weapon {
	return Weapon{
		ID:       forkID,
		Name:     ForkName,
		Kind:     WeaponFork,
		Level:    1,
		Cooldown: cfg.Cooldown,
		Spec: LauncherSpec{
			ProjectileSpeed:    cfg.ProjectileSpeed,
			ProjectileLifespan: cfg.ProjectileLifespan,
			Damage:             cfg.Damage,
			Count:              cfg.Count,
		},
	}
}

func newGarlic(cfg config.GarlicConfig) Weapon {
	return Weapon{
		ID:       garlicID,
		Name:     GarlicName,
		Kind:     WeaponGarlic,
		Level:    1,
		Cooldown: cfg.Cooldown,
		Spec: AuraSpec{
			Damage: cfg.Damage,
			Radius: cfg.Radius,
			Active: true,
		},
	}
}

// newPlayer places a fresh player with the fork in the middle of the world.
func newPlayer(cfg config.SurvivorConfig) Player {
	p := cfg.Player
	return Player{
		ID:            playerID,
		Pos:           core.V(cfg.World.Width()/2, cfg.World.ViewportHeight/2),
		Size:          p.Size,
		Health:        p.Health,
		MaxHealth:     p.Health,
		Speed:         p.Speed,
		Level:         1,
		XPToNextLevel: p.XPToNextLevel,
		PickupRadius:  p.PickupRadius,
		Weapons:       []Weapon{newFork(cfg.Weapons.Fork)},
	}
}

func enemyStats(cfg config.SurvivorConfig, kind EnemyKind) config.EnemyStats {
	switch kind {
	case EnemyOctopus:
		return cfg.Enemies.Octopus
	case EnemyMiniBoss:
		return cfg.MiniBoss.Stats
	case EnemyBoss:
		return cfg.Boss.Stats
	default:
		return cfg.Enemies.Pufferfish
	}
}

// newEnemy builds an enemy of the given kind at full health. The engine
// assigns the ID when the enemy enters the world.
func newEnemy(cfg config.SurvivorConfig, kind EnemyKind, pos core.Vec2, health float64) Enemy {
	st := enemyStats(cfg, kind)
	return Enemy{
		Kind:      kind,
		Pos:       pos,
		Size:      st.Size,
		Health:    health,
		MaxHealth: health,
		Speed:     st.Speed,
		Damage:    st.Damage,
		XPValue:   st.XPValue,
	}
}
