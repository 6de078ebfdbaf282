package sim

import (
	"math"

	"github.com/vovakirdan/tui-survivor/internal/core"
)

// Direct decides this frame's spawns. It reads the state and returns the
// actions to apply in order; it never changes anything itself.
//
// Once the boss is active nothing else spawns, including on the frame the
// boss arrives.
func (e *Engine) Direct(s State, rng RNG) []Action {
	if s.Status != StatusRunning || s.BossActive {
		return nil
	}
	bc := e.cfg.Boss
	t := s.GameTime

	if t >= bc.SpawnTime {
		return []Action{SpawnBoss{}}
	}

	var out []Action
	if !s.BossWarning && t >= bc.SpawnTime-bc.WarningTime {
		out = append(out, RaiseBossWarning{})
	}
	if s.SpawnTimer > e.cfg.Spawning.Interval {
		out = append(out, AddEnemies{Enemies: e.wave(s, rng), Origin: OriginWave})
	}
	mb := e.cfg.MiniBoss
	if t >= mb.StartTime && t-s.LastMiniBossSpawn >= mb.Interval {
		out = append(out, AddEnemies{Enemies: []Enemy{e.miniBoss(s, rng)}, Origin: OriginMiniBoss})
	}
	return out
}

// WaveSize is the number of ordinary enemies in a batch at game time t.
func (e *Engine) WaveSize(t float64) int {
	period := e.cfg.Spawning.BatchGrowthPeriod
	if period <= 0 {
		return 1
	}
	return 1 + int(math.Floor(t/period))
}

// WaveHealthBonus is the extra health of ordinary enemies at game time t.
func (e *Engine) WaveHealthBonus(t float64) float64 {
	sp := e.cfg.Spawning
	if sp.HealthGrowthPeriod <= 0 {
		return 0
	}
	return math.Floor(t/sp.HealthGrowthPeriod) * sp.HealthGrowthAmount
}

// MiniBossHealth interpolates the mini-boss health across the window from
// its first appearance to the boss.
func (e *Engine) MiniBossHealth(t float64) float64 {
	mb := e.cfg.MiniBoss
	floor := mb.Stats.Health
	window := e.cfg.Boss.SpawnTime - mb.StartTime
	if window <= 0 {
		return floor
	}
	return floor + (max(0, t-mb.StartTime)/window)*(mb.MaxHealth-floor)
}

func (e *Engine) wave(s State, rng RNG) []Enemy {
	n := e.WaveSize(s.GameTime)
	bonus := e.WaveHealthBonus(s.GameTime)
	out := make([]Enemy, 0, n)
	for i := 0; i < n; i++ {
		pos := e.edgePoint(s, rng)
		kind := EnemyPufferfish
		if rng.Float64() < e.cfg.Spawning.ToughChance {
			kind = EnemyOctopus
		}
		out = append(out, newEnemy(e.cfg, kind, pos, enemyStats(e.cfg, kind).Health+bonus))
	}
	return out
}

func (e *Engine) miniBoss(s State, rng RNG) Enemy {
	return newEnemy(e.cfg, EnemyMiniBoss, e.edgePoint(s, rng), e.MiniBossHealth(s.GameTime))
}

// edgePoint picks a random point just outside one of the four viewport edges.
func (e *Engine) edgePoint(s State, rng RNG) core.Vec2 {
	w := e.cfg.World
	m := e.cfg.Spawning.EdgeMargin
	camX := e.CameraX(s.Player.Pos.X)

	switch rng.Intn(4) {
	case 0:
		return core.V(camX+rng.Float64()*w.ViewportWidth, -m)
	case 1:
		return core.V(camX+rng.Float64()*w.ViewportWidth, w.ViewportHeight+m)
	case 2:
		return core.V(camX-m, rng.Float64()*w.ViewportHeight)
	default:
		return core.V(camX+w.ViewportWidth+m, rng.Float64()*w.ViewportHeight)
	}
}
