// Package survivor adapts the survivor simulation to the arcade platform.
// The player moves, weapons fire on their own, and the run ends when the
// player dies or the boss does.
package survivor

import (
	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/core"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/tui-survivor/internal/registry"
)

// Game IDs registered by this package.
const (
	GameID     = "survivor"
	BossRushID = "survivor_boss"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// runOverrides stores the dev overrides set via CLI
var runOverrides config.RunConfig

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = config.DifficultyNormal
	}
	difficultyPreset = p
}

// SetRunConfig sets the overrides used by the normal mode.
func SetRunConfig(run config.RunConfig) {
	runOverrides = run
}

// LoadTuning reads the tuning the way games do: config file, then preset.
// Invalid files fall back to the built-in defaults.
func LoadTuning() config.SurvivorConfig {
	return loadTuning(difficultyPreset)
}

func loadTuning(preset config.DifficultyPreset) config.SurvivorConfig {
	cfg, err := config.LoadSurvivor(configPath)
	if err != nil {
		cfg = config.DefaultSurvivorConfig()
	}
	config.ApplySurvivorPreset(&cfg, preset)
	return cfg
}

// Game implements registry.Game on top of a Session.
type Game struct {
	id      string
	title   string
	run     config.RunConfig
	clock   Clock
	session *Session
	runtime core.RuntimeConfig
	preset  config.DifficultyPreset // empty uses the global preset

	cursor int // highlighted upgrade while choosing
}

// New creates the normal mode.
func New() *Game {
	return &Game{id: GameID, title: "Tralalero Survivor", clock: SystemClock{}}
}

// NewBossRush creates the boss-rush mode.
func NewBossRush() *Game {
	return &Game{id: BossRushID, title: "Tralalero Survivor: Boss Rush", run: config.BossRushRun(), clock: SystemClock{}}
}

// WithClock replaces the clock used by subsequent resets.
func (g *Game) WithClock(c Clock) *Game {
	g.clock = c
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// SetDifficulty picks the preset of this game's next runs, overriding the
// one set with SetDifficultyPreset.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	g.preset = p
}

// Reset loads the tuning and starts a new run.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.cursor = 0

	run := g.run
	if g.id == GameID && !runOverrides.IsZero() {
		run = runOverrides
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	g.session = NewSession(sim.NewEngine(loadTuning(preset)), run, cfg.Seed, g.clock)
}

// Session exposes the running session.
func (g *Game) Session() *Session {
	return g.session
}

// Step handles one host frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session
	if in.Has(core.ActionPause) && !s.State().Status.Over() {
		s.SetPaused(!s.Paused())
	}

	if s.State().Status == sim.StatusChoosingUpgrade {
		g.stepChoice(in)
		// Keep the clock primed so the choice screen is not simulated.
		s.Frame(0)
		return core.StepResult{State: g.State()}
	}

	s.Frame(intentsFrom(in))
	return core.StepResult{State: g.State()}
}

func (g *Game) stepChoice(in core.InputFrame) {
	s := g.session
	choices := s.State().Choices

	for a := core.ActionChoose1; a <= core.ActionChoose5; a++ {
		if !in.Has(a) {
			continue
		}
		if i, _ := a.ChoiceIndex(); i < len(choices) {
			g.choose(choices[i])
			return
		}
	}
	switch {
	case in.Has(core.ActionSkip):
		//nolint:errcheck // status was checked by the caller
		s.Skip()
		g.cursor = 0
	case in.Has(core.ActionConfirm):
		if g.cursor < len(choices) {
			g.choose(choices[g.cursor])
		}
	case in.Has(core.ActionUp):
		g.cursor = core.Clamp(g.cursor-1, 0, len(choices)-1)
	case in.Has(core.ActionDown):
		g.cursor = core.Clamp(g.cursor+1, 0, len(choices)-1)
	}
}

func (g *Game) choose(id string) {
	//nolint:errcheck // id comes from the current offer
	g.session.Choose(id)
	g.cursor = 0
}

func intentsFrom(in core.InputFrame) sim.Intents {
	var out sim.Intents
	if in.Has(core.ActionUp) {
		out |= sim.IntentUp
	}
	if in.Has(core.ActionDown) {
		out |= sim.IntentDown
	}
	if in.Has(core.ActionLeft) {
		out |= sim.IntentLeft
	}
	if in.Has(core.ActionRight) {
		out |= sim.IntentRight
	}
	return out
}

// State returns the coarse state seen by the platform. Score is kills.
func (g *Game) State() core.GameState {
	st := g.session.State()
	return core.GameState{
		Score:    st.Kills,
		GameOver: st.Status.Over(),
		Paused:   g.session.Paused() || st.Status == sim.StatusChoosingUpgrade,
	}
}

// HUD returns the derived display values of the current snapshot.
func (g *Game) HUD() sim.HUD {
	return sim.DeriveHUD(g.session.State())
}

// RunSummary implements core.RunReporter.
func (g *Game) RunSummary() (core.RunSummary, bool) {
	out, ok := g.session.Outcome()
	if !ok {
		return core.RunSummary{}, false
	}
	st := g.session.State()
	return core.RunSummary{
		Outcome:  out.Status.String(),
		GameTime: out.GameTime,
		Level:    st.Player.Level,
		Kills:    st.Kills,
		Seed:     g.session.Seed(),
	}, true
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(BossRushID, func() registry.Game {
		return NewBossRush()
	})
}
