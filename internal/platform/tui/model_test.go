package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/core"
	"github.com/vovakirdan/tui-survivor/internal/storage"
)

// stubGame records the frames it is stepped with and ends after a fixed
// number of steps.
type stubGame struct {
	frames  []core.InputFrame
	resets  int
	endAt   int
	paused  bool
	summary core.RunSummary
	preset  config.DifficultyPreset
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) SetDifficulty(p config.DifficultyPreset) { g.preset = p }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.frames = nil
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) over() bool {
	return g.endAt > 0 && len(g.frames) >= g.endAt
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	return core.StepResult{State: g.State()}
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.summary.Kills, GameOver: g.over(), Paused: g.paused}
}

func (g *stubGame) RunSummary() (core.RunSummary, bool) {
	return g.summary, g.over()
}

func (g *stubGame) last() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

type fakeNow struct{ t time.Time }

func (f *fakeNow) Now() time.Time { return f.t }

func newTestModel(g *stubGame, store *storage.Store) (Model, *fakeNow) {
	now := &fakeNow{t: time.Unix(1000, 0)}
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 7}, Options{
		Store:  store,
		Player: "tester",
		Now:    now.Now,
	})
	m.Init()
	return m, now
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm
}

func TestModelHoldsDirectionBetweenRepeats(t *testing.T) {
	g := &stubGame{}
	m, now := newTestModel(g, nil)

	m = send(t, m, runeKey("d"))
	m = send(t, m, TickMsg{})
	if !g.last().Has(core.ActionRight) {
		t.Fatal("first tick should see the press")
	}

	now.t = now.t.Add(100 * time.Millisecond)
	m = send(t, m, TickMsg{})
	if !g.last().Has(core.ActionRight) {
		t.Error("direction should stay held within the window")
	}

	now.t = now.t.Add(time.Second)
	m = send(t, m, TickMsg{})
	if g.last().Has(core.ActionRight) {
		t.Error("direction should be released after the window")
	}
	_ = m
}

func TestModelDoesNotLatchWhilePaused(t *testing.T) {
	g := &stubGame{paused: true}
	m, _ := newTestModel(g, nil)
	m = send(t, m, TickMsg{})

	m = send(t, m, runeKey("s"))
	m = send(t, m, TickMsg{})
	if !g.last().Has(core.ActionDown) {
		t.Fatal("the press itself should reach the game")
	}
	m = send(t, m, TickMsg{})
	if g.last().Has(core.ActionDown) {
		t.Error("a menu cursor key should act once, not repeat")
	}
}

func TestModelSavesFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{endAt: 2, summary: core.RunSummary{Outcome: "defeated", GameTime: 61, Level: 3, Kills: 25, Seed: 7}}
	m, _ := newTestModel(g, store)
	for i := 0; i < 4; i++ {
		m = send(t, m, TickMsg{})
	}

	if m.LastRunID() == "" {
		t.Fatal("expected the run to be saved")
	}
	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected exactly 1", len(runs))
	}
	if runs[0].Player != "tester" || runs[0].Kills != 25 || runs[0].RunID != m.LastRunID() {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestModelRestartAndBack(t *testing.T) {
	g := &stubGame{endAt: 1}
	m, _ := newTestModel(g, nil)
	m = send(t, m, TickMsg{})
	if !m.gameState.GameOver {
		t.Fatal("expected game over")
	}

	m = send(t, m, runeKey("r"))
	m = send(t, m, TickMsg{})
	if g.resets != 2 {
		t.Errorf("resets = %d, expected 2 after restart", g.resets)
	}
	if m.config.Seed == 7 {
		t.Error("restart should pick a new seed")
	}

	m = send(t, m, TickMsg{})
	next, cmd := m.Update(runeKey("b"))
	if !next.(Model).BackToMenu() || cmd == nil {
		t.Error("b after game over should go back to the menu")
	}
}

func TestModelView(t *testing.T) {
	g := &stubGame{}
	m, _ := newTestModel(g, nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	if m.screen.Height() != 20-footerRows {
		t.Errorf("screen height = %d, expected %d", m.screen.Height(), 20-footerRows)
	}
	out := m.View()
	if !strings.Contains(out, "stub") || !strings.Contains(out, "Score 0") {
		t.Errorf("View() = %q", out)
	}

	m = send(t, m, runeKey("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}
