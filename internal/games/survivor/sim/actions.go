package sim

import "github.com/vovakirdan/tui-survivor/internal/config"

// Action is an input to Engine.Apply.
type Action interface {
	action()
}

// Tick advances the world by Delta seconds. GameTime is the elapsed game
// time after this frame.
type Tick struct {
	Delta    float64
	Intents  Intents
	GameTime float64
}

// ResolveLevelUps converts banked XP into levels.
type ResolveLevelUps struct{}

// ApplyUpgrade applies a catalog upgrade and leaves the choosing status.
type ApplyUpgrade struct {
	UpgradeID string
}

// SkipUpgrade discards the current offer.
type SkipUpgrade struct{}

// RaiseBossWarning flags the approaching boss.
type RaiseBossWarning struct{}

// SpawnBoss places the boss above the viewport and marks it active.
type SpawnBoss struct{}

// SpawnOrigin records which director rule produced a batch.
type SpawnOrigin int

const (
	OriginExternal SpawnOrigin = iota
	OriginWave                 // resets the spawn timer
	OriginMiniBoss             // stamps the last mini-boss spawn time
)

// AddEnemies appends a batch, truncated to the remaining capacity.
type AddEnemies struct {
	Enemies []Enemy
	Origin  SpawnOrigin
}

// Settle runs the end-of-frame checks: defeat, victory, then level-ups and
// the upgrade offer.
type Settle struct{}

// Reset builds a fresh run.
type Reset struct {
	Run config.RunConfig
}

func (Tick) action()             {}
func (ResolveLevelUps) action()  {}
func (ApplyUpgrade) action()     {}
func (SkipUpgrade) action()      {}
func (RaiseBossWarning) action() {}
func (SpawnBoss) action()        {}
func (AddEnemies) action()       {}
func (Settle) action()           {}
func (Reset) action()            {}
