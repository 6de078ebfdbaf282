package survivor

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
)

// Outcome is reported once a run is won or lost.
type Outcome struct {
	Status   sim.Status
	GameTime float64
}

// Won reports whether the boss was defeated.
func (o Outcome) Won() bool {
	return o.Status == sim.StatusVictorious
}

// Controller supplies input to Session.Run.
type Controller interface {
	// Intents returns the movement held for the next frame.
	Intents(s sim.State) sim.Intents
	// Pick chooses one of the offered upgrades. ok=false skips the offer.
	Pick(s sim.State, offered []sim.Upgrade) (id string, ok bool)
}

// Session owns the single live snapshot of a run and drives it one frame
// at a time. It is not safe for concurrent use.
type Session struct {
	engine *sim.Engine
	clock  Clock
	run    config.RunConfig

	seed  int64
	rng   sim.RNG
	state sim.State

	last   time.Time
	primed bool
	paused bool
	frames uint64
}

// NewSession starts a run. A nil clock means the system clock.
func NewSession(engine *sim.Engine, run config.RunConfig, seed int64, clock Clock) *Session {
	if clock == nil {
		clock = SystemClock{}
	}
	s := &Session{engine: engine, clock: clock, run: run}
	s.Reset(seed)
	return s
}

// Reset throws the current run away and starts over with seed.
func (s *Session) Reset(seed int64) {
	s.seed = seed
	s.rng = sim.NewRNG(seed)
	s.state = s.engine.NewState(s.run)
	s.primed = false
	s.paused = false
	s.frames = 0
}

// Engine returns the engine driving this session.
func (s *Session) Engine() *sim.Engine { return s.engine }

// State returns the current snapshot. Callers may keep it; the session
// never modifies a snapshot after handing it out.
func (s *Session) State() sim.State { return s.state }

// Seed returns the seed of the current run.
func (s *Session) Seed() int64 { return s.seed }

// Frames returns the number of ticks applied since the last reset.
func (s *Session) Frames() uint64 { return s.frames }

// Paused reports whether the host paused the run.
func (s *Session) Paused() bool { return s.paused }

// SetPaused stops or resumes ticking. Time spent paused is not simulated.
func (s *Session) SetPaused(paused bool) {
	s.paused = paused
}

// Frame is the host callback. It measures the real time since the previous
// call and advances by that much. The first call only starts the clock.
func (s *Session) Frame(in sim.Intents) sim.State {
	now := s.clock.Now()
	if !s.primed {
		s.primed = true
		s.last = now
		return s.state
	}
	dt := now.Sub(s.last).Seconds()
	s.last = now
	return s.Advance(dt, in)
}

// Advance performs at most one tick of dt seconds followed by the spawn
// director and the end-of-frame checks. Nothing happens while paused,
// choosing an upgrade or after the run ended.
func (s *Session) Advance(dt float64, in sim.Intents) sim.State {
	if s.paused || s.state.Status != sim.StatusRunning {
		return s.state
	}
	e := s.engine
	next := e.Apply(s.state, sim.Tick{Delta: max(dt, 0), Intents: in, GameTime: s.state.GameTime + max(dt, 0)}, s.rng)
	for _, a := range e.Direct(next, s.rng) {
		next = e.Apply(next, a, s.rng)
	}
	next = e.Apply(next, sim.Settle{}, s.rng)

	s.state = next
	s.frames++
	return s.state
}

// Choices returns the upgrades currently on offer.
func (s *Session) Choices() []sim.Upgrade {
	out := make([]sim.Upgrade, 0, len(s.state.Choices))
	for _, id := range s.state.Choices {
		if u, ok := s.engine.Upgrade(id); ok {
			out = append(out, u)
		}
	}
	return out
}

// Choose applies one of the offered upgrades and resumes the run.
func (s *Session) Choose(id string) error {
	if s.state.Status != sim.StatusChoosingUpgrade {
		return fmt.Errorf("survivor: no upgrade on offer")
	}
	if !slices.Contains(s.state.Choices, id) {
		return fmt.Errorf("survivor: upgrade %q was not offered", id)
	}
	s.state = s.engine.Apply(s.state, sim.ApplyUpgrade{UpgradeID: id}, s.rng)
	return nil
}

// Skip discards the offer and resumes the run.
func (s *Session) Skip() error {
	if s.state.Status != sim.StatusChoosingUpgrade {
		return fmt.Errorf("survivor: no upgrade on offer")
	}
	s.state = s.engine.Apply(s.state, sim.SkipUpgrade{}, s.rng)
	return nil
}

// Outcome returns the result once the run is over.
func (s *Session) Outcome() (Outcome, bool) {
	if !s.state.Status.Over() {
		return Outcome{}, false
	}
	return Outcome{Status: s.state.Status, GameTime: s.state.GameTime}, true
}

// Run drives the session from ticks until the run ends, ticks closes or ctx
// is cancelled. Every resulting snapshot is passed to publish.
func (s *Session) Run(ctx context.Context, ticks <-chan time.Time, ctl Controller, publish func(sim.State)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
		}

		if s.state.Status == sim.StatusChoosingUpgrade {
			if id, ok := ctl.Pick(s.state, s.Choices()); ok {
				if err := s.Choose(id); err != nil {
					return err
				}
			} else if err := s.Skip(); err != nil {
				return err
			}
		}

		st := s.Frame(ctl.Intents(s.state))
		if publish != nil {
			publish(st)
		}
		if st.Status.Over() {
			return nil
		}
	}
}
