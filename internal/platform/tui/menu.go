package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/core"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/tui-survivor/internal/registry"
	"github.com/vovakirdan/tui-survivor/internal/storage"
)

// MenuItem represents a selectable mode in the menu.
type MenuItem struct {
	GameID     string
	Title      string
	Stats      string // one-line record summary, empty without storage
	Difficulty config.DifficultyPreset
}

// menuDifficulties are the presets offered on the start screen.
var menuDifficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// difficultySetter is implemented by games with per-instance presets.
type difficultySetter interface {
	SetDifficulty(config.DifficultyPreset)
}

// MenuModel is the Bubble Tea model for the start screen.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	difficulty     int // index into menuDifficulties
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a mode
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{
			GameID: g.ID,
			Title:  g.Title,
			Stats:  statsLine(store, g.ID),
		})
	}

	return MenuModel{
		items:      items,
		difficulty: 1,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

// statsLine summarises the stored record of a mode.
func statsLine(store *storage.Store, gameID string) string {
	if store == nil {
		return ""
	}
	stats, err := store.GetGameStats(gameID)
	if err != nil || stats.Runs == 0 {
		return ""
	}
	if stats.Wins > 0 {
		return fmt.Sprintf("best clear %s  |  %d/%d cleared", sim.Clock(stats.BestClear), stats.Wins, stats.Runs)
	}
	return fmt.Sprintf("longest %s  |  %d runs", sim.Clock(stats.LongestRun), stats.Runs)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.difficulty = max(m.difficulty-1, 0)

	case MenuActionRight:
		m.difficulty = min(m.difficulty+1, len(menuDifficulties)-1)

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			selected.Difficulty = m.Difficulty()
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	menuItemStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	menuActive     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDim        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("T R A L A L E R O   S U R V I V O R", m.width)))
	b.WriteString("\n\n")
	b.WriteString(menuDim.Render(centerText("Survive the waves. Kill the boss.", m.width)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		style := menuItemStyle
		if i == m.cursor {
			line = "> " + item.Title
			style = menuActive
		}
		b.WriteString(style.Render(centerText(line, m.width)))
		b.WriteString("\n")
		if item.Stats != "" {
			b.WriteString(menuDim.Render(centerText(item.Stats, m.width)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(menuItemStyle.Render(centerText(m.difficultyLine(), m.width)))
	b.WriteString("\n\n")
	controls := "Up/Down: Mode  |  Left/Right: Difficulty  |  Enter: Start  |  Tab: Scores  |  Q: Quit"
	b.WriteString(menuDim.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) difficultyLine() string {
	parts := make([]string, len(menuDifficulties))
	for i, d := range menuDifficulties {
		if i == m.difficulty {
			parts[i] = "[" + strings.ToUpper(string(d)) + "]"
		} else {
			parts[i] = " " + string(d) + " "
		}
	}
	return "Difficulty  < " + strings.Join(parts, " ") + " >"
}

// Difficulty returns the highlighted preset.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return menuDifficulties[m.difficulty]
}

// withDifficulty highlights preset d, if offered.
func (m MenuModel) withDifficulty(d config.DifficultyPreset) MenuModel {
	for i, p := range menuDifficulties {
		if p == d {
			m.difficulty = i
		}
	}
	return m
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
