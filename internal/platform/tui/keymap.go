package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-survivor/internal/core"
)

// DefaultHoldWindow is how long a direction stays held after its last key
// press. It has to bridge the terminal's auto-repeat delay.
const DefaultHoldWindow = 250 * time.Millisecond

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Choose     key.Binding
	Confirm    key.Binding
	Skip       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Choose, k.Skip, k.Pause, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Choose, k.Confirm, k.Skip},
		{k.Pause, k.Restart, k.Back, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/down", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/left", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/right", "right"),
		),
		Choose: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "upgrade"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Skip: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "skip"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, false
	case key.Matches(msg, k.Down):
		return core.ActionDown, false
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Choose):
		return core.ActionChoose1 + core.Action(msg.String()[0]-'1'), false
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, false
	case key.Matches(msg, k.Skip):
		return core.ActionSkip, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// HeldKeys turns key presses into held directions. Terminals report only
// presses, and auto-repeat keeps refreshing them, so a direction counts as
// held until the window after its last press runs out.
type HeldKeys struct {
	window time.Duration
	until  map[core.Action]time.Time
}

// NewHeldKeys creates a latch with the given hold window.
func NewHeldKeys(window time.Duration) *HeldKeys {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HeldKeys{window: window, until: make(map[core.Action]time.Time)}
}

// Press records a press. Non-directional actions are ignored. Pressing a
// direction releases the opposite one immediately.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	opp, ok := opposite(a)
	if !ok {
		return
	}
	delete(h.until, opp)
	h.until[a] = now.Add(h.window)
}

// Apply sets every still-held direction on frame and forgets expired ones.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, until := range h.until {
		if now.After(until) {
			delete(h.until, a)
			continue
		}
		frame.Set(a)
	}
}

// Held reports whether a is currently held.
func (h *HeldKeys) Held(a core.Action, now time.Time) bool {
	until, ok := h.until[a]
	return ok && !now.After(until)
}

// Reset releases everything.
func (h *HeldKeys) Reset() {
	clear(h.until)
}

func opposite(a core.Action) (core.Action, bool) {
	switch a {
	case core.ActionUp:
		return core.ActionDown, true
	case core.ActionDown:
		return core.ActionUp, true
	case core.ActionLeft:
		return core.ActionRight, true
	case core.ActionRight:
		return core.ActionLeft, true
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
