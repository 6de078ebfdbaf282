package survivor

import (
	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/core"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
)

// Autopilot plays headless runs. It runs from nearby enemies, collects XP
// orbs when nothing threatens and always takes the first upgrade.
type Autopilot struct {
	// ThreatRadius is how close an enemy must be to count.
	ThreatRadius float64
	// WallMargin keeps the player from being pinned against the world edge.
	WallMargin float64

	width, height float64
}

// NewAutopilot returns an autopilot for a world of the given size.
func NewAutopilot(world config.WorldConfig) *Autopilot {
	return &Autopilot{
		ThreatRadius: 400,
		WallMargin:   150,
		width:        world.Width(),
		height:       world.ViewportHeight,
	}
}

// Intents implements Controller.
func (a *Autopilot) Intents(s sim.State) sim.Intents {
	p := s.Player

	if away, ok := a.flee(s); ok {
		return a.toIntents(away.Add(a.wallPush(s)))
	}
	if orb, ok := nearestOrb(s.Pickups, p.Pos); ok {
		return a.toIntents(orb.Sub(p.Pos))
	}
	return 0
}

// Pick implements Controller.
func (a *Autopilot) Pick(_ sim.State, offered []sim.Upgrade) (string, bool) {
	if len(offered) == 0 {
		return "", false
	}
	return offered[0].ID, true
}

// flee returns the direction away from the weighted centroid of the
// enemies in range. Closer enemies weigh more.
func (a *Autopilot) flee(s sim.State) (core.Vec2, bool) {
	p := s.Player.Pos
	var sum core.Vec2
	total := 0.0
	for _, en := range s.Enemies {
		d := en.Pos.Dist(p)
		if d >= a.ThreatRadius {
			continue
		}
		w := 1 / max(d, 1)
		sum = sum.Add(en.Pos.Scale(w))
		total += w
	}
	if total == 0 {
		return core.Vec2{}, false
	}
	centroid := sum.Scale(1 / total)
	away := p.Sub(centroid)
	if away.Len() < 1 {
		// Surrounded symmetrically: pick a side.
		away = core.V(1, 0)
	}
	return core.Vec2{}.Toward(away), true
}

// wallPush points back into the world when the player is near its edge.
func (a *Autopilot) wallPush(s sim.State) core.Vec2 {
	p := s.Player.Pos
	half := s.Player.Size / 2
	var push core.Vec2
	switch {
	case p.X-half < a.WallMargin:
		push.X = 1
	case p.X+half > a.width-a.WallMargin:
		push.X = -1
	}
	switch {
	case p.Y-half < a.WallMargin:
		push.Y = 1
	case p.Y+half > a.height-a.WallMargin:
		push.Y = -1
	}
	return push
}

func (a *Autopilot) toIntents(dir core.Vec2) sim.Intents {
	l := dir.Len()
	if l == 0 {
		return 0
	}
	var in sim.Intents
	// Components under a third of the length are ignored so the autopilot
	// does not jitter along an axis it barely needs.
	if dir.X > l/3 {
		in |= sim.IntentRight
	} else if dir.X < -l/3 {
		in |= sim.IntentLeft
	}
	if dir.Y > l/3 {
		in |= sim.IntentDown
	} else if dir.Y < -l/3 {
		in |= sim.IntentUp
	}
	return in
}

func nearestOrb(pickups []sim.Pickup, from core.Vec2) (core.Vec2, bool) {
	best := core.Vec2{}
	found := false
	bestDist := 0.0
	for _, pk := range pickups {
		if pk.Kind != sim.PickupXP {
			continue
		}
		if d := pk.Pos.Dist(from); !found || d < bestDist {
			best, bestDist, found = pk.Pos, d, true
		}
	}
	return best, found
}
