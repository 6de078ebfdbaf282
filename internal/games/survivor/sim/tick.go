package sim

import (
	"math"

	"github.com/vovakirdan/tui-survivor/internal/core"
)

// tick advances one frame. s is already a private copy.
//
// Step order matters: firing and enemy attacks read the enemy list from the
// start of the frame, and enemies move only after damage has been resolved.
func (e *Engine) tick(s State, in Tick, rng RNG) State {
	cfg := e.cfg
	dt := max(in.Delta, 0)

	s.GameTime = in.GameTime
	s.SpawnTimer += dt

	p := &s.Player
	boss, hasBoss := s.Boss()

	if s.FreezeTimer > 0 {
		s.FreezeTimer = max(0, s.FreezeTimer-dt)
	}
	if hasBoss {
		s.BossAttackTimer = max(0, s.BossAttackTimer-dt)
	}

	if p.RegenRate > 0 {
		p.Health = min(p.MaxHealth, p.Health+p.MaxHealth*p.RegenRate*dt)
	}

	e.movePlayer(p, in.Intents, dt)

	if p.IFrames > 0 {
		p.IFrames = max(0, p.IFrames-dt)
	}

	enraged := hasBoss && boss.Health < boss.MaxHealth*cfg.Boss.EnrageFraction
	carried := len(s.Explosions)
	projectiles := e.detonate(&s, enraged)

	e.collectPickups(&s, dt)

	ledger := make(map[string]float64)
	projectiles = append(projectiles, e.fireWeapons(&s, ledger, rng)...)
	projectiles = append(projectiles, e.enemyAttacks(&s, boss, hasBoss)...)

	projectiles = integrate(projectiles, dt, cfg.Weapons.Fork.SpinRate)
	projectiles = hitEnemies(projectiles, s.Enemies, ledger)
	projectiles = e.hitPlayer(p, projectiles, s.Enemies, enraged)
	s.Projectiles = projectiles

	e.resolveDeaths(&s, ledger, rng)
	e.moveEnemies(&s, dt)

	s.Explosions = ageExplosions(s.Explosions, carried, dt)
	return s
}

// movePlayer applies held intents. Diagonals are not normalised.
func (e *Engine) movePlayer(p *Player, in Intents, dt float64) {
	step := p.Speed * dt
	if in.Has(IntentUp) {
		p.Pos.Y -= step
	}
	if in.Has(IntentDown) {
		p.Pos.Y += step
	}
	if in.Has(IntentLeft) {
		p.Pos.X -= step
	}
	if in.Has(IntentRight) {
		p.Pos.X += step
	}
	half := p.Size / 2
	p.Pos.X = core.ClampF(p.Pos.X, half, e.cfg.World.Width()-half)
	p.Pos.Y = core.ClampF(p.Pos.Y, half, e.cfg.World.ViewportHeight-half)
}

// detonate blows up enraged-boss missiles that got close to the player and
// returns the surviving projectiles.
func (e *Engine) detonate(s *State, enraged bool) []Projectile {
	bc := e.cfg.Boss
	p := &s.Player
	kept := make([]Projectile, 0, len(s.Projectiles))

	for _, pr := range s.Projectiles {
		if !enraged || pr.Kind != ProjectileBoss {
			kept = append(kept, pr)
			continue
		}
		d := pr.Pos.Dist(p.Pos)
		if d >= bc.TriggerRadius {
			kept = append(kept, pr)
			continue
		}
		s.Explosions = append(s.Explosions, Explosion{
			ID:       s.newID("explosion"),
			Pos:      pr.Pos,
			Size:     bc.BlastRadius * 2,
			Duration: bc.ExplosionDuration,
		})
		if d < p.Size/2+bc.BlastRadius && p.IFrames <= 0 && !p.Invincible {
			p.Health -= pr.Damage * bc.BlastMultiplier
			p.IFrames = e.cfg.Player.IFrameDuration
		}
	}
	return kept
}

// collectPickups picks up everything under the player, then pulls XP orbs
// that are magnetised or inside the pickup radius.
func (e *Engine) collectPickups(s *State, dt float64) {
	loot := e.cfg.Loot
	p := &s.Player

	xp := 0
	magnet := false
	remaining := make([]Pickup, 0, len(s.Pickups))
	for _, pk := range s.Pickups {
		if pk.Pos.Dist(p.Pos) >= p.Size/2 {
			remaining = append(remaining, pk)
			continue
		}
		switch pk.Kind {
		case PickupXP:
			xp += pk.Value
		case PickupMagnet:
			magnet = true
		case PickupFreezeBomb:
			s.FreezeTimer = loot.FreezeDuration
		}
	}
	p.XP += xp

	for i := range remaining {
		pk := &remaining[i]
		if pk.Kind != PickupXP {
			continue
		}
		if magnet {
			pk.Magnetized = true
		}
		d := pk.Pos.Dist(p.Pos)
		if (d < p.PickupRadius || pk.Magnetized) && d > 1 {
			pk.Pos = pk.Pos.Add(pk.Pos.Toward(p.Pos).Scale(loot.OrbPullSpeed * dt))
		}
	}
	s.Pickups = remaining
}

// fireWeapons fires every weapon whose cooldown has elapsed. Aura hits go
// straight into the ledger; launcher volleys are returned.
func (e *Engine) fireWeapons(s *State, ledger map[string]float64, rng RNG) []Projectile {
	var out []Projectile
	p := &s.Player
	now := s.GameTime

	for i := range p.Weapons {
		w := &p.Weapons[i]
		if now-w.LastFired <= w.Cooldown {
			continue
		}
		w.LastFired = now

		switch spec := w.Spec.(type) {
		case LauncherSpec:
			out = append(out, e.fireLauncher(s, w.ID, &spec, rng)...)
			w.Spec = spec
		case AuraSpec:
			if !spec.Active {
				continue
			}
			for _, en := range s.Enemies {
				if en.Pos.Dist(p.Pos) < spec.Radius {
					ledger[en.ID] += spec.Damage
				}
			}
		}
	}
	return out
}

// fireLauncher fans Count projectiles at the nearest enemy, or in a random
// direction when there is none, from the next fire point.
func (e *Engine) fireLauncher(s *State, weaponID string, l *LauncherSpec, rng RNG) []Projectile {
	fork := e.cfg.Weapons.Fork
	points := e.cfg.Player.FirePoints
	p := s.Player

	var angle float64
	if target, ok := nearestEnemy(s.Enemies, p.Pos); ok {
		angle = p.Pos.Angle(target.Pos)
	} else {
		angle = rng.Float64() * 2 * math.Pi
	}

	fp := 0
	if len(points) > 0 {
		fp = l.FirePoint % len(points)
	}
	start := p.Pos
	if len(points) > 0 {
		start = start.Add(points[fp])
	}

	out := make([]Projectile, 0, l.Count)
	for i := 0; i < l.Count; i++ {
		a := angle - fork.Spread*float64(l.Count-1)/2 + float64(i)*fork.Spread
		out = append(out, Projectile{
			ID:       s.newID("proj"),
			Kind:     ProjectilePlayer,
			WeaponID: weaponID,
			Pos:      start,
			Size:     fork.ProjectileSize,
			Velocity: core.FromAngle(a, l.ProjectileSpeed),
			Damage:   l.Damage,
			Lifespan: l.ProjectileLifespan,
			Angle:    a * 180 / math.Pi,
		})
	}
	if len(points) > 0 {
		l.FirePoint = (fp + 1) % len(points)
	}
	return out
}

// nearestEnemy returns the closest enemy; ties go to the earlier one.
func nearestEnemy(enemies []Enemy, from core.Vec2) (Enemy, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, en := range enemies {
		if d := en.Pos.Dist(from); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Enemy{}, false
	}
	return enemies[best], true
}

// enemyAttacks lets mini-bosses and the boss shoot at the player.
func (e *Engine) enemyAttacks(s *State, boss Enemy, hasBoss bool) []Projectile {
	var out []Projectile
	mb := e.cfg.MiniBoss
	target := s.Player.Pos
	now := s.GameTime

	for i := range s.Enemies {
		en := &s.Enemies[i]
		if en.Kind != EnemyMiniBoss || now-en.LastAttack <= mb.AttackCooldown {
			continue
		}
		a := en.Pos.Angle(target)
		out = append(out, Projectile{
			ID:       s.newID("proj"),
			Kind:     ProjectileMiniBoss,
			WeaponID: "miniboss_aura",
			Pos:      en.Pos,
			Size:     mb.Projectile.Size,
			Velocity: core.FromAngle(a, mb.Projectile.Speed),
			Damage:   mb.Projectile.Damage,
			Lifespan: mb.Projectile.Lifespan,
			Angle:    a*180/math.Pi + 90,
		})
		en.LastAttack = now
	}

	if hasBoss && s.BossAttackTimer <= 0 {
		bc := e.cfg.Boss
		s.BossAttackTimer = bc.AttackCooldown
		a := boss.Pos.Angle(target)
		out = append(out, Projectile{
			ID:       s.newID("proj"),
			Kind:     ProjectileBoss,
			WeaponID: "boss_missile",
			Pos:      boss.Pos,
			Size:     bc.Missile.Size,
			Velocity: core.FromAngle(a, bc.Missile.Speed),
			Damage:   bc.Missile.Damage,
			Lifespan: bc.Missile.Lifespan,
			Angle:    a * 180 / math.Pi,
		})
	}
	return out
}

// integrate moves projectiles, spins the player's and drops expired ones.
func integrate(projectiles []Projectile, dt, spin float64) []Projectile {
	kept := projectiles[:0]
	for _, pr := range projectiles {
		pr.Pos = pr.Pos.Add(pr.Velocity.Scale(dt))
		pr.Lifespan -= dt
		if pr.Kind == ProjectilePlayer {
			pr.Angle += spin * dt
		}
		if pr.Lifespan > 0 {
			kept = append(kept, pr)
		}
	}
	return kept
}

// hitEnemies books player projectile damage. A projectile damages every
// enemy it overlaps and is then consumed.
func hitEnemies(projectiles []Projectile, enemies []Enemy, ledger map[string]float64) []Projectile {
	kept := projectiles[:0]
	for _, pr := range projectiles {
		if pr.Kind != ProjectilePlayer {
			kept = append(kept, pr)
			continue
		}
		hit := false
		for _, en := range enemies {
			if core.Overlaps(pr.Pos, pr.Size, en.Pos, en.Size) {
				ledger[en.ID] += pr.Damage
				hit = true
			}
		}
		if !hit {
			kept = append(kept, pr)
		}
	}
	return kept
}

// hitPlayer applies at most one source of damage to the player: contact
// first, then a hostile projectile, which is consumed.
func (e *Engine) hitPlayer(p *Player, projectiles []Projectile, enemies []Enemy, enraged bool) []Projectile {
	if p.Invincible || p.IFrames > 0 {
		return projectiles
	}
	iframes := e.cfg.Player.IFrameDuration

	for _, en := range enemies {
		if core.Overlaps(p.Pos, p.Size, en.Pos, en.Size) {
			p.Health -= en.Damage
			p.IFrames = iframes
			return projectiles
		}
	}

	for i, pr := range projectiles {
		hostile := pr.Kind == ProjectileMiniBoss || (pr.Kind == ProjectileBoss && !enraged)
		if !hostile || !core.Overlaps(p.Pos, p.Size, pr.Pos, pr.Size) {
			continue
		}
		p.Health -= pr.Damage
		p.IFrames = iframes
		return append(projectiles[:i:i], projectiles[i+1:]...)
	}
	return projectiles
}

// resolveDeaths applies the ledger and replaces the dead with loot.
func (e *Engine) resolveDeaths(s *State, ledger map[string]float64, rng RNG) {
	loot := e.cfg.Loot
	late := s.GameTime > loot.LateGameTime
	freeze, magnet := loot.FreezeChance, loot.MagnetChance
	if late {
		freeze, magnet = loot.LateFreezeChance, loot.LateMagnetChance
	}

	alive := s.Enemies[:0]
	for _, en := range s.Enemies {
		en.Health -= ledger[en.ID]
		if en.Health > 0 {
			alive = append(alive, en)
			continue
		}
		s.Kills++
		if en.Kind == EnemyBoss {
			continue
		}

		drop := Pickup{ID: s.newID("pickup"), Pos: en.Pos, Size: loot.ItemSize}
		switch r := rng.Float64(); {
		case r < freeze:
			drop.Kind = PickupFreezeBomb
		case r < freeze+magnet:
			drop.Kind = PickupMagnet
		default:
			drop.Kind = PickupXP
			drop.Size = loot.OrbSize
			drop.Value = en.XPValue
		}
		s.Pickups = append(s.Pickups, drop)
	}
	s.Enemies = alive
}

// moveEnemies eases the boss toward its hover point and walks the rest
// toward the player. Freeze stops ordinary enemies only.
func (e *Engine) moveEnemies(s *State, dt float64) {
	p := s.Player
	frozen := s.FreezeTimer > 0

	for i := range s.Enemies {
		en := &s.Enemies[i]
		var target core.Vec2
		switch {
		case en.Kind == EnemyBoss:
			target = core.V(e.CameraX(p.Pos.X)+e.cfg.World.ViewportWidth/2, p.Pos.Y/2)
		case frozen && en.Kind != EnemyMiniBoss:
			continue
		default:
			target = p.Pos
		}

		if en.Pos.Dist(target) <= 1 {
			continue
		}
		dir := en.Pos.Toward(target)
		if en.Kind != EnemyBoss {
			en.Velocity = dir.Scale(en.Speed)
		}
		en.Pos = en.Pos.Add(dir.Scale(en.Speed * dt))
	}
}

// ageExplosions ages the explosions carried into this frame and drops the
// expired ones. Explosions created this frame start at full duration.
func ageExplosions(explosions []Explosion, carried int, dt float64) []Explosion {
	kept := explosions[:0]
	for i, ex := range explosions {
		if i < carried {
			ex.Duration -= dt
		}
		if ex.Duration > 0 {
			kept = append(kept, ex)
		}
	}
	return kept
}
