// Package tui hosts registered games in a terminal, locally or over SSH.
// It owns the frame ticker, key mapping, persistence of finished runs and
// the menu and scoreboard screens.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultTickRate = 30

// TickMsg asks the model to step the game once.
type TickMsg time.Time

// frameInterval is the wall time between ticks. Rates below one fall back
// to the default.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next frame. The game measures real elapsed time
// itself, so a late tick only makes the next step longer.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
