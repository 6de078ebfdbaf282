package sim

import "math"

// nextThreshold grows the XP requirement after reaching level.
func (e *Engine) nextThreshold(current, level int) int {
	pr := e.cfg.Progression
	var t float64
	if level < pr.SwitchLevel {
		t = math.Floor(float64(current) * pr.EarlyGrowth)
	} else {
		t = math.Floor(float64(current)*pr.LateGrowth + pr.LateBonus)
	}
	return max(int(t), 1)
}

// resolveLevelUps spends XP while it covers the threshold. Calling it again
// on its own result is a no-op.
func (e *Engine) resolveLevelUps(p Player) Player {
	if p.XPToNextLevel <= 0 {
		p.XPToNextLevel = 1
	}
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = e.nextThreshold(p.XPToNextLevel, p.Level)
	}
	return p
}

// Offer returns up to MaxChoices eligible upgrade IDs in random order.
func (e *Engine) Offer(p Player, rng RNG) []string {
	var ids []string
	for _, u := range e.upgrades {
		if u.Eligible(p) {
			ids = append(ids, u.ID)
		}
	}
	Shuffle(rng, len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if n := e.cfg.Progression.MaxChoices; len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

// chooseUpgrade applies u and bumps the level of the weapon it modifies.
// Upgrades that add a weapon leave the new weapon at level 1.
func chooseUpgrade(p Player, u Upgrade) Player {
	p = u.Apply(p)
	if u.modifiesWeapon() {
		p = withWeapon(p, u.Target, func(w *Weapon) { w.Level++ })
	}
	return p
}
