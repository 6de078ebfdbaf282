// Package registry maps mode IDs to game factories.
// Modes register themselves in init(), so the CLI, the TUI menu and the
// spectator server can all list and start them by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-survivor/internal/core"
)

// Game is what the platform drives. Implementations keep their simulation
// free of terminal and network code; the platform owns timing, input
// mapping and presentation.
type Game interface {
	// ID is the mode identifier used on the command line and as the
	// storage key for runs ("survivor", "survivor_boss").
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh run from the screen size and seed in cfg.
	Reset(cfg core.RuntimeConfig)

	// Step advances one platform frame with the actions held this frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state. dst is not cleared by the caller.
	Render(dst *core.Screen)

	// State reports score, game over and pause.
	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns every registered mode sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Title returns the display name of a mode, or the ID itself when unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}

// Create instantiates a mode by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether a mode is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
