package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/tui-survivor/internal/registry"
	"github.com/vovakirdan/tui-survivor/internal/storage"
)

const maxRuns = 100

// boardView selects which runs the table lists.
type boardView int

const (
	viewBest boardView = iota
	viewRecent
)

func (v boardView) String() string {
	if v == viewRecent {
		return "RECENT RUNS"
	}
	return "BEST RUNS"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Detail key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Toggle, k.Detail, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Toggle, k.Detail, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Toggle: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "best/recent")),
		Detail: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardTab   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardTabOn = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boardFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardEmpty = boardMuted.Italic(true).Padding(2, 4)
)

// ScoreboardModel lists stored runs per mode.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	cursor    int
	view      boardView
	store     *storage.Store
	runs      []storage.RunRecord
	stats     *storage.GameStats
	detail    *storage.RunRecord // run shown in the detail pane
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the best runs of the
// first registered mode. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Result", Width: 7},
		{Title: "Time", Width: 6},
		{Title: "Lv", Width: 3},
		{Title: "Kills", Width: 6},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 12},
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := m.width - 8 - used; extra > 0 {
		columns[5].Width += min(extra, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// reload fetches the runs of the selected mode and view.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats, m.detail = nil, nil, nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.cursor].ID
		var err error
		if m.view == viewRecent {
			m.runs, err = m.store.RecentRuns(id, maxRuns)
		} else {
			m.runs, err = m.store.BestRuns(id, maxRuns)
		}
		if err != nil {
			m.runs = nil
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.table.SetRows(runRows(m.runs))
	m.table.GotoTop()
}

func runRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		result := "died"
		if r.Won() {
			result = "CLEAR"
		}
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			result,
			sim.Clock(r.GameTime),
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%d", r.Kills),
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.detail != nil && !key.Matches(msg, m.keys.Quit) {
			// any key closes the detail pane
			m.detail = nil
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.selectMode(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Detail):
			if i := m.table.Cursor(); i >= 0 && i < len(m.runs) {
				r := m.runs[i]
				m.detail = &r
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = m.newTable()
		m.table.SetRows(runRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) selectMode(step int) {
	if len(m.modes) == 0 {
		return
	}
	m.cursor = (m.cursor + step + len(m.modes)) % len(m.modes)
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitle.Render(m.view.String()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	var body string
	switch {
	case m.detail != nil:
		body = detailView(*m.detail)
	case len(m.runs) == 0:
		body = boardEmpty.Render("No runs recorded yet.\nSurvive a while to get on the board!")
	default:
		body = m.statsLine() + "\n\n" + m.table.View()
	}
	b.WriteString(centerText(boardFrame.Render(body), m.width))

	b.WriteString("\n")
	b.WriteString(boardMuted.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.cursor {
			tabs[i] = boardTabOn.Render(g.Title)
		} else {
			tabs[i] = boardTab.Render(g.Title)
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 && len(m.modes) > 0 {
		return fmt.Sprintf("< %s >", m.modes[m.cursor].Title)
	}
	return line
}

// statsLine summarises the selected mode.
func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st == nil {
		return ""
	}
	best := "-"
	if st.Wins > 0 {
		best = sim.Clock(st.BestClear)
	}
	return fmt.Sprintf("Runs %d  Cleared %d  Best clear %s  Longest %s  Avg kills %.0f",
		st.Runs, st.Wins, best, sim.Clock(st.LongestRun), st.AvgKills)
}

func detailView(r storage.RunRecord) string {
	result := "Defeated"
	if r.Won() {
		result = "Boss defeated"
	}
	player := r.Player
	if player == "" {
		player = "local"
	}
	rows := [][2]string{
		{"Run", r.RunID},
		{"Player", player},
		{"Result", result},
		{"Time", sim.Clock(r.GameTime)},
		{"Level", fmt.Sprintf("%d", r.Level)},
		{"Kills", fmt.Sprintf("%d", r.Kills)},
		{"Seed", fmt.Sprintf("%d", r.Seed)},
		{"Played", r.CreatedAt.Format("2006-01-02 15:04:05")},
	}
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%s %s\n", boardMuted.Render(fmt.Sprintf("%-7s", row[0])), row[1])
	}
	b.WriteString("\n")
	b.WriteString(boardMuted.Render(fmt.Sprintf("same seed: survivor play %s --seed %d", r.GameID, r.Seed)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
