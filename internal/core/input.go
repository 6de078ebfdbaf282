package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter
	ActionBack           // B, Escape - back to menu
	ActionRestart        // R - restart after the run ended
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
	ActionChoose1        // 1..5 pick an offered upgrade
	ActionChoose2
	ActionChoose3
	ActionChoose4
	ActionChoose5
	ActionSkip // X - discard the upgrade offer
)

// ChoiceIndex returns the zero-based upgrade slot for the choose actions.
func (a Action) ChoiceIndex() (int, bool) {
	if a >= ActionChoose1 && a <= ActionChoose5 {
		return int(a - ActionChoose1), true
	}
	return 0, false
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionSkip:
		return "Skip"
	}
	if i, ok := a.ChoiceIndex(); ok {
		return "Choose" + string(rune('1'+i))
	}
	return "Unknown"
}

// InputFrame holds every action triggered or held during one frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
