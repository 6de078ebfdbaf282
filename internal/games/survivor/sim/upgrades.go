package sim

import "github.com/vovakirdan/tui-survivor/internal/config"

// Upgrade is one entry of the level-up catalog.
type Upgrade struct {
	ID          string
	Title       string
	Description string

	// Target is the weapon the upgrade modifies, or WeaponNone for player
	// upgrades. AddsWeapon marks upgrades that grant Target instead.
	Target     WeaponKind
	AddsWeapon bool

	// Apply returns the upgraded player. It must not modify its argument.
	Apply func(Player) Player
	// IsMaxed reports that the upgrade can no longer be offered. May be nil.
	IsMaxed func(Player) bool
}

// Eligible reports whether the upgrade may be offered to p.
func (u Upgrade) Eligible(p Player) bool {
	if u.IsMaxed != nil && u.IsMaxed(p) {
		return false
	}
	if u.Target != WeaponNone && !u.AddsWeapon && !p.HasWeapon(u.Target) {
		return false
	}
	return true
}

// modifiesWeapon reports whether choosing u bumps the target weapon's level.
func (u Upgrade) modifiesWeapon() bool {
	return u.Target != WeaponNone && !u.AddsWeapon
}

// withWeapon returns a copy of p whose weapon of the given kind has been
// passed through fn. p is returned unchanged when it lacks the weapon.
func withWeapon(p Player, kind WeaponKind, fn func(*Weapon)) Player {
	i := p.Weapon(kind)
	if i < 0 {
		return p
	}
	p.Weapons = cloneSlice(p.Weapons)
	fn(&p.Weapons[i])
	return p
}

func withLauncher(p Player, kind WeaponKind, fn func(*Weapon, *LauncherSpec)) Player {
	return withWeapon(p, kind, func(w *Weapon) {
		if l, ok := w.Launcher(); ok {
			fn(w, &l)
			w.Spec = l
		}
	})
}

func withAura(p Player, kind WeaponKind, fn func(*Weapon, *AuraSpec)) Player {
	return withWeapon(p, kind, func(w *Weapon) {
		if a, ok := w.Aura(); ok {
			fn(w, &a)
			w.Spec = a
		}
	})
}

// Catalog builds the upgrade list for a tuning.
func Catalog(cfg config.SurvivorConfig) []Upgrade {
	garlic := cfg.Weapons.Garlic
	maxForks := cfg.Weapons.Fork.MaxCount

	return []Upgrade{
		{
			ID:          "add_garlic",
			Title:       "Mamma's Garlic",
			Description: "Nearby enemies choke on a pungent aura.",
			Target:      WeaponGarlic,
			AddsWeapon:  true,
			Apply: func(p Player) Player {
				if p.HasWeapon(WeaponGarlic) {
					return p
				}
				p.Weapons = append(cloneSlice(p.Weapons), newGarlic(garlic))
				return p
			},
			IsMaxed: func(p Player) bool { return p.HasWeapon(WeaponGarlic) },
		},
		{
			ID:          "fork_multishot",
			Title:       "More Forks!",
			Description: "The fork throws one more projectile per volley.",
			Target:      WeaponFork,
			Apply: func(p Player) Player {
				return withLauncher(p, WeaponFork, func(_ *Weapon, l *LauncherSpec) { l.Count++ })
			},
			IsMaxed: func(p Player) bool {
				i := p.Weapon(WeaponFork)
				if i < 0 {
					return false
				}
				l, _ := p.Weapons[i].Launcher()
				return l.Count >= maxForks
			},
		},
		{
			ID:          "fork_damage",
			Title:       "Sharper Fork",
			Description: "Fork damage +5.",
			Target:      WeaponFork,
			Apply: func(p Player) Player {
				return withLauncher(p, WeaponFork, func(_ *Weapon, l *LauncherSpec) { l.Damage += 5 })
			},
		},
		{
			ID:          "fork_cooldown",
			Title:       "Faster Fork",
			Description: "Fork cooldown -15%.",
			Target:      WeaponFork,
			Apply: func(p Player) Player {
				return withWeapon(p, WeaponFork, func(w *Weapon) { w.Cooldown *= 0.85 })
			},
		},
		{
			ID:          "garlic_damage",
			Title:       "Extra Stinky",
			Description: "The garlic aura hits harder.",
			Target:      WeaponGarlic,
			Apply: func(p Player) Player {
				return withAura(p, WeaponGarlic, func(_ *Weapon, a *AuraSpec) { a.Damage += 8 })
			},
		},
		{
			ID:          "garlic_cooldown",
			Title:       "Garlic Press",
			Description: "The garlic aura pulses 20% faster.",
			Target:      WeaponGarlic,
			Apply: func(p Player) Player {
				return withWeapon(p, WeaponGarlic, func(w *Weapon) { w.Cooldown *= 0.8 })
			},
		},
		{
			ID:          "garlic_area",
			Title:       "Bigger Stink",
			Description: "The garlic aura reaches further.",
			Target:      WeaponGarlic,
			Apply: func(p Player) Player {
				return withAura(p, WeaponGarlic, func(_ *Weapon, a *AuraSpec) { a.Radius += 40 })
			},
		},
		{
			ID:          "player_speed",
			Title:       "Speedy Sneakers",
			Description: "Move 15% faster.",
			Apply: func(p Player) Player {
				p.Speed *= 1.15
				return p
			},
		},
		{
			ID:          "player_health",
			Title:       "Extra Anchovies",
			Description: "Max health +20.",
			Apply: func(p Player) Player {
				p.MaxHealth += 20
				p.Health = min(p.Health+20, p.MaxHealth)
				return p
			},
		},
		{
			ID:          "player_pickup",
			Title:       "Ravioli Magnet",
			Description: "Pick items up from further away.",
			Apply: func(p Player) Player {
				p.PickupRadius += 50
				return p
			},
		},
		{
			ID:          "player_regen",
			Title:       "Self-Repair Nanites",
			Description: "Regenerate 2.5% of max health per second. Stacks once.",
			Apply: func(p Player) Player {
				p.RegenRate += 0.025
				return p
			},
			IsMaxed: func(p Player) bool { return p.RegenRate >= 0.05 },
		},
	}
}
