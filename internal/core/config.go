package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the host
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0,
	}
}

// GameState is the coarse status a game reports to the platform.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
}

// RunSummary describes a finished run for persistence and logging.
type RunSummary struct {
	Outcome  string  // "victorious" or "defeated"
	GameTime float64 // seconds of game time at the transition
	Level    int
	Kills    int
	Seed     int64
}

// RunReporter is implemented by games that can describe a finished run.
// ok is false while the run is still in progress.
type RunReporter interface {
	RunSummary() (summary RunSummary, ok bool)
}
