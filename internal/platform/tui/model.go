package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/core"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/tui-survivor/internal/registry"
	"github.com/vovakirdan/tui-survivor/internal/storage"
)

// footerRows is the space below the game screen for bars and help.
const footerRows = 2

// hudSource is implemented by games that expose survivor HUD values.
type hudSource interface {
	HUD() sim.HUD
}

// Options carries the host-side collaborators of a game model.
type Options struct {
	Store  *storage.Store // nil disables persistence
	Logger *log.Logger    // nil discards
	Player string         // recorded with saved runs
	Now    func() time.Time

	// Renderer styles the game screen. nil uses the default renderer.
	Renderer *lipgloss.Renderer

	// Difficulty is the preset first highlighted on the start screen.
	Difficulty config.DifficultyPreset
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       *KeyMapper
	held       *HeldKeys
	help       help.Model
	palette    *palette
	hpBar      progress.Model
	xpBar      progress.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	runSaved   bool // whether the current run has been recorded
	lastRunID  string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	opts = opts.withDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = opts.Now().UnixNano()
	}

	m := Model{
		game:       game,
		opts:       opts,
		config:     cfg,
		keys:       NewKeyMapper(),
		held:       NewHeldKeys(DefaultHoldWindow),
		help:       help.New(),
		palette:    newPalette(opts.Renderer),
		hpBar:      progress.New(progress.WithSolidFill("#E05050"), progress.WithoutPercentage()),
		xpBar:      progress.New(progress.WithScaledGradient("#3FA7D6", "#59CD90"), progress.WithoutPercentage()),
		inputFrame: core.NewInputFrame(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerRows, 1))
	m.layoutBars()
	return m
}

// Init starts the run and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.opts.Logger.Info("run started", "game", m.game.ID(), "seed", m.config.Seed, "player", m.opts.Player)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	if !m.gameState.Paused {
		m.held.Press(action, m.opts.Now())
	}
	return m, nil
}

// handleResize keeps the run going; world coordinates do not depend on the
// terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerRows, 1))
	m.help.Width = msg.Width
	m.layoutBars()
	return m, nil
}

func (m *Model) layoutBars() {
	w := max((m.config.ScreenW-16)/2, 4)
	m.hpBar.Width = w
	m.xpBar.Width = w
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = m.opts.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.held.Reset()
		m.inputFrame.Clear()
		m.opts.Logger.Info("run restarted", "game", m.game.ID(), "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	if m.gameState.Paused {
		m.held.Reset()
	} else {
		m.held.Apply(&m.inputFrame, m.opts.Now())
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.runSaved {
		m.recordRun()
		m.runSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun logs the outcome and stores it. Persistence is best-effort.
func (m *Model) recordRun() {
	gameID := m.game.ID()
	rep, ok := m.game.(core.RunReporter)
	if !ok {
		if m.opts.Store != nil && m.gameState.Score > 0 {
			if _, err := m.opts.Store.SaveScore(gameID, m.gameState.Score); err != nil {
				m.opts.Logger.Warn("could not save score", "game", gameID, "error", err)
			}
		}
		return
	}

	sum, ok := rep.RunSummary()
	if !ok {
		return
	}
	m.opts.Logger.Info("run finished",
		"game", gameID,
		"outcome", sum.Outcome,
		"time", sim.Clock(sum.GameTime),
		"level", sum.Level,
		"kills", sum.Kills,
	)
	if m.opts.Store == nil {
		return
	}
	runID, err := m.opts.Store.SaveRun(gameID, m.opts.Player, sum)
	if err != nil {
		m.opts.Logger.Warn("could not save run", "game", gameID, "error", err)
		return
	}
	m.lastRunID = runID
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := m.opts.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
	}
}

var footerLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(m.palette.render(m.screen))
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys.Keys()))
	return b.String()
}

// footer draws the HP and XP bars for games that report a HUD.
func (m Model) footer() string {
	src, ok := m.game.(hudSource)
	if !ok {
		return footerLabel.Render(fmt.Sprintf("Score %d", m.gameState.Score))
	}
	h := src.HUD()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		footerLabel.Render(" HP "), m.hpBar.ViewAs(h.HealthPct/100),
		footerLabel.Render(fmt.Sprintf("  LV%-2d ", h.Level)), m.xpBar.ViewAs(h.XPPct/100),
	)
}

// LastRunID is the stored ID of the most recent finished run, if saved.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a single game and returns when the player quits or goes back.
// backToMenu reports which of the two happened.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
