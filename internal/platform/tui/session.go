package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-survivor/internal/core"
	"github.com/vovakirdan/tui-survivor/internal/registry"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow: menu -> game -> menu, with the
// scoreboard one Tab away. It is the top-level model for SSH sessions and
// the local menu command.
type SessionModel struct {
	opts       Options
	config     core.RuntimeConfig
	screen     screenKind
	menu       MenuModel
	game       *Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, opts Options) SessionModel {
	opts = opts.withDefaults()
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(opts.Store, cfg).withDifficulty(opts.Difficulty),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.menu.Selected().GameID)
		if err != nil {
			// The menu only lists registered modes.
			m.menu = NewMenuModel(m.opts.Store, m.config).withDifficulty(m.menu.Difficulty())
			return m, nil
		}
		if ds, ok := game.(difficultySetter); ok {
			ds.SetDifficulty(m.menu.Selected().Difficulty)
		}
		cfg := m.config
		cfg.Seed = 0
		gm := NewModel(game, cfg, m.opts)
		m.game = &gm
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

// toMenu rebuilds the menu so its records include the run just played.
// The child's tea.Quit is dropped here.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.game = nil
	m.screen = screenMenu
	m.menu = NewMenuModel(m.opts.Store, m.config).withDifficulty(m.menu.Difficulty())
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the menu-driven session until the player quits.
func RunSession(cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
