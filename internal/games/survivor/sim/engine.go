package sim

import (
	"strconv"

	"github.com/vovakirdan/tui-survivor/internal/config"
)

// Engine applies actions to states. It holds only immutable tuning and is
// safe to share between goroutines.
type Engine struct {
	cfg      config.SurvivorConfig
	upgrades []Upgrade
	byID     map[string]int
}

// NewEngine creates an engine for a tuning.
func NewEngine(cfg config.SurvivorConfig) *Engine {
	ups := Catalog(cfg)
	byID := make(map[string]int, len(ups))
	for i, u := range ups {
		byID[u.ID] = i
	}
	return &Engine{cfg: cfg, upgrades: ups, byID: byID}
}

// Config returns the engine tuning.
func (e *Engine) Config() config.SurvivorConfig {
	return e.cfg
}

// Upgrades returns the catalog in declaration order.
func (e *Engine) Upgrades() []Upgrade {
	return e.upgrades
}

// Upgrade looks up a catalog entry.
func (e *Engine) Upgrade(id string) (Upgrade, bool) {
	i, ok := e.byID[id]
	if !ok {
		return Upgrade{}, false
	}
	return e.upgrades[i], true
}

// NewState returns the initial state of a run.
func (e *Engine) NewState(run config.RunConfig) State {
	return e.Apply(State{}, Reset{Run: run}, nil)
}

// Apply is the only way state changes. s is never modified; rng is used by
// Tick and Settle only and may be nil for other actions.
func (e *Engine) Apply(s State, a Action, rng RNG) State {
	next := s.Clone()

	switch a := a.(type) {
	case Tick:
		if next.Status != StatusRunning {
			return next
		}
		next = e.tick(next, a, rng)
	case ResolveLevelUps:
		next.Player = e.resolveLevelUps(next.Player)
	case ApplyUpgrade:
		u, ok := e.Upgrade(a.UpgradeID)
		if !ok {
			return next
		}
		next.Player = chooseUpgrade(next.Player, u)
		next = resume(next)
	case SkipUpgrade:
		next = resume(next)
	case RaiseBossWarning:
		if !next.BossActive {
			next.BossWarning = true
		}
	case SpawnBoss:
		next = e.spawnBoss(next)
	case AddEnemies:
		next = e.addEnemies(next, a)
	case Settle:
		next = e.settle(next, rng)
	case Reset:
		next = e.reset(a.Run)
	}

	next.CameraX = e.CameraX(next.Player.Pos.X)
	return next
}

func resume(s State) State {
	if s.Status == StatusChoosingUpgrade {
		s.Status = StatusRunning
	}
	s.Choices = nil
	return s
}

// newID hands out run-unique IDs from the state counter.
func (s *State) newID(prefix string) string {
	s.NextID++
	return prefix + "_" + strconv.FormatUint(s.NextID, 10)
}

func (e *Engine) reset(run config.RunConfig) State {
	s := State{
		Player: newPlayer(e.cfg),
		Status: StatusRunning,
	}
	p := &s.Player

	if run.DisableFork {
		if i := p.Weapon(WeaponFork); i >= 0 {
			p.Weapons = append(p.Weapons[:i], p.Weapons[i+1:]...)
		}
	}
	p.Invincible = run.Invincible
	if run.PlayerSpeed != nil && *run.PlayerSpeed > 0 {
		p.Speed = *run.PlayerSpeed
	}
	if run.RegenRate != nil {
		p.RegenRate = *run.RegenRate
	}
	if run.ForkCooldown != nil && *run.ForkCooldown > 0 {
		*p = withWeapon(*p, WeaponFork, func(w *Weapon) { w.Cooldown = *run.ForkCooldown })
	}
	if run.ForkCount != nil && *run.ForkCount > 0 {
		*p = withLauncher(*p, WeaponFork, func(_ *Weapon, l *LauncherSpec) { l.Count = *run.ForkCount })
	}
	if run.GarlicRadius != nil && *run.GarlicRadius > 0 {
		if !p.HasWeapon(WeaponGarlic) {
			p.Weapons = append(p.Weapons, newGarlic(e.cfg.Weapons.Garlic))
		}
		*p = withAura(*p, WeaponGarlic, func(_ *Weapon, a *AuraSpec) { a.Radius = *run.GarlicRadius })
	}

	if run.StartAtBoss {
		boss := e.cfg.Boss
		s.GameTime = boss.SpawnTime - boss.WarningTime - 0.1
		s.BossActive = true
		s.Enemies = []Enemy{e.bossAt(s.Player)}
	}
	return s
}

func (e *Engine) bossAt(p Player) Enemy {
	st := e.cfg.Boss.Stats
	b := newEnemy(e.cfg, EnemyBoss, p.Pos, st.Health)
	b.ID = bossID
	b.Pos.X = e.CameraX(p.Pos.X) + e.cfg.World.ViewportWidth/2
	b.Pos.Y = -st.Size
	return b
}

func (e *Engine) spawnBoss(s State) State {
	if _, ok := s.Boss(); ok {
		s.BossActive = true
		s.BossWarning = false
		return s
	}
	// The boss never waits for room: evict the oldest ordinary enemy.
	if len(s.Enemies) >= e.cfg.Spawning.Capacity {
		for i, en := range s.Enemies {
			if en.Kind == EnemyPufferfish || en.Kind == EnemyOctopus {
				s.Enemies = append(s.Enemies[:i], s.Enemies[i+1:]...)
				break
			}
		}
	}
	s.Enemies = append(s.Enemies, e.bossAt(s.Player))
	s.BossActive = true
	s.BossWarning = false
	return s
}

func (e *Engine) addEnemies(s State, a AddEnemies) State {
	switch a.Origin {
	case OriginWave:
		s.SpawnTimer = 0
	case OriginMiniBoss:
		s.LastMiniBossSpawn = s.GameTime
	}

	room := e.cfg.Spawning.Capacity - len(s.Enemies)
	if room <= 0 {
		return s
	}
	batch := a.Enemies
	if len(batch) > room {
		batch = batch[:room]
	}
	for _, en := range batch {
		if en.ID == "" {
			prefix := "enemy"
			if en.Kind == EnemyMiniBoss {
				prefix = "enemy_mini_boss"
			}
			en.ID = s.newID(prefix)
		}
		s.Enemies = append(s.Enemies, en)
	}
	return s
}

func (e *Engine) settle(s State, rng RNG) State {
	if s.Status != StatusRunning {
		return s
	}
	if s.Player.Health <= 0 {
		s.Status = StatusDefeated
		return s
	}
	if s.BossActive {
		if _, ok := s.Boss(); !ok {
			s.Status = StatusVictorious
			return s
		}
	}
	if s.Player.XP >= s.Player.XPToNextLevel {
		s.Player = e.resolveLevelUps(s.Player)
		s.Choices = e.Offer(s.Player, rng)
		if len(s.Choices) > 0 {
			s.Status = StatusChoosingUpgrade
		}
	}
	return s
}
