package sim

import "fmt"

// damagedFlash is how long after a hit the player reads as damaged.
const damagedFlash = 0.8

// WeaponStat is one HUD line for an owned weapon.
type WeaponStat struct {
	Name  string
	Kind  WeaponKind
	Level int
	DPS   float64
}

// HUD holds the values derived from a state for display.
type HUD struct {
	Health, MaxHealth float64
	HealthPct         float64 // 0..100
	XP, XPToNext      int
	XPPct             float64 // 0..100
	Level             int
	Clock             string // mm:ss of game time
	Kills             int
	Weapons           []WeaponStat
	Frozen            bool
	Damaged           bool
	HasBoss           bool
	BossHealthPct     float64
	BossWarning       bool
	Status            Status
}

// DeriveHUD computes the display values for s.
func DeriveHUD(s State) HUD {
	p := s.Player
	h := HUD{
		Health:      p.Health,
		MaxHealth:   p.MaxHealth,
		HealthPct:   percent(p.Health, p.MaxHealth),
		XP:          p.XP,
		XPToNext:    p.XPToNextLevel,
		XPPct:       percent(float64(p.XP), float64(p.XPToNextLevel)),
		Level:       p.Level,
		Clock:       Clock(s.GameTime),
		Kills:       s.Kills,
		Frozen:      s.FreezeTimer > 0,
		Damaged:     p.IFrames > damagedFlash,
		BossWarning: s.BossWarning,
		Status:      s.Status,
	}
	for _, w := range p.Weapons {
		h.Weapons = append(h.Weapons, WeaponStat{Name: w.Name, Kind: w.Kind, Level: w.Level, DPS: DPS(w)})
	}
	if b, ok := s.Boss(); ok {
		h.HasBoss = true
		h.BossHealthPct = percent(b.Health, b.MaxHealth)
	}
	return h
}

// DPS estimates the sustained damage per second of a weapon against a
// single target. A zero cooldown counts as one second.
func DPS(w Weapon) float64 {
	cd := w.Cooldown
	if cd == 0 {
		cd = 1
	}
	switch spec := w.Spec.(type) {
	case LauncherSpec:
		return spec.Damage * float64(max(spec.Count, 1)) / cd
	case AuraSpec:
		return spec.Damage / cd
	default:
		return 0
	}
}

// Clock formats seconds as mm:ss.
func Clock(seconds float64) string {
	total := int(max(seconds, 0))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// HealthRatio returns an enemy's remaining health in [0, 1].
func HealthRatio(en Enemy) float64 {
	return percent(en.Health, en.MaxHealth) / 100
}

func percent(v, of float64) float64 {
	if of <= 0 {
		return 0
	}
	return min(max(v/of*100, 0), 100)
}
