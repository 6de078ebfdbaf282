// Package sim is the survivor combat simulation: entity types, the upgrade
// catalog and a pure transition engine driven once per frame.
//
// Nothing in this package reads the clock or a global random source. Every
// operation takes a State and returns a new one; the input is never mutated.
package sim

import "github.com/vovakirdan/tui-survivor/internal/core"

// Status is the run status seen by the loop driver.
type Status int

const (
	StatusRunning Status = iota
	StatusChoosingUpgrade
	StatusDefeated
	StatusVictorious
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusChoosingUpgrade:
		return "choosing-upgrade"
	case StatusDefeated:
		return "defeated"
	case StatusVictorious:
		return "victorious"
	default:
		return "unknown"
	}
}

// Over reports whether the run has ended.
func (s Status) Over() bool {
	return s == StatusDefeated || s == StatusVictorious
}

// Intents is the set of movement directions held this frame.
type Intents uint8

const (
	IntentUp Intents = 1 << iota
	IntentDown
	IntentLeft
	IntentRight
)

// Has reports whether every direction in i is held.
func (in Intents) Has(i Intents) bool {
	return in&i == i
}

// WeaponKind is the stable archetype tag of a weapon.
type WeaponKind int

const (
	WeaponNone WeaponKind = iota
	WeaponFork
	WeaponGarlic
)

func (k WeaponKind) String() string {
	switch k {
	case WeaponFork:
		return "fork"
	case WeaponGarlic:
		return "garlic"
	default:
		return "none"
	}
}

// WeaponSpec is the archetype-specific half of a weapon. It is either a
// LauncherSpec or an AuraSpec.
type WeaponSpec interface {
	weaponSpec()
}

// LauncherSpec fires fans of projectiles at the nearest enemy.
type LauncherSpec struct {
	ProjectileSpeed    float64 `json:"projectileSpeed" msgpack:"projectileSpeed"`
	ProjectileLifespan float64 `json:"projectileLifespan" msgpack:"projectileLifespan"`
	Damage             float64 `json:"damage" msgpack:"damage"`
	Count              int     `json:"count" msgpack:"count"`
	FirePoint          int     `json:"firePoint" msgpack:"firePoint"`
}

// AuraSpec damages every enemy within a radius of the player.
type AuraSpec struct {
	Damage float64 `json:"damage" msgpack:"damage"`
	Radius float64 `json:"radius" msgpack:"radius"`
	Active bool    `json:"active" msgpack:"active"`
}

func (LauncherSpec) weaponSpec() {}
func (AuraSpec) weaponSpec()     {}

// Weapon is the shared base of every weapon. Spec holds a value, so copying
// a Weapon copies its variant too.
type Weapon struct {
	ID        string     `json:"id" msgpack:"id"`
	Name      string     `json:"name" msgpack:"name"`
	Kind      WeaponKind `json:"kind" msgpack:"kind"`
	Level     int        `json:"level" msgpack:"level"`
	Cooldown  float64    `json:"cooldown" msgpack:"cooldown"`
	LastFired float64    `json:"lastFired" msgpack:"lastFired"`
	Spec      WeaponSpec `json:"spec" msgpack:"spec"`
}

// Launcher returns the launcher variant, if the weapon has one.
func (w Weapon) Launcher() (LauncherSpec, bool) {
	l, ok := w.Spec.(LauncherSpec)
	return l, ok
}

// Aura returns the aura variant, if the weapon has one.
func (w Weapon) Aura() (AuraSpec, bool) {
	a, ok := w.Spec.(AuraSpec)
	return a, ok
}

// Player is the single player-controlled entity.
type Player struct {
	ID            string    `json:"id" msgpack:"id"`
	Pos           core.Vec2 `json:"pos" msgpack:"pos"`
	Size          float64   `json:"size" msgpack:"size"`
	Health        float64   `json:"health" msgpack:"health"`
	MaxHealth     float64   `json:"maxHealth" msgpack:"maxHealth"`
	Speed         float64   `json:"speed" msgpack:"speed"`
	XP            int       `json:"xp" msgpack:"xp"`
	Level         int       `json:"level" msgpack:"level"`
	XPToNextLevel int       `json:"xpToNextLevel" msgpack:"xpToNextLevel"`
	IFrames       float64   `json:"iFrames" msgpack:"iFrames"`
	PickupRadius  float64   `json:"pickupRadius" msgpack:"pickupRadius"`
	RegenRate     float64   `json:"regenRate" msgpack:"regenRate"` // fraction of max health per second
	Invincible    bool      `json:"invincible" msgpack:"invincible"`
	Weapons       []Weapon  `json:"weapons" msgpack:"weapons"`
}

// Weapon returns the index of the first weapon of the given kind, or -1.
func (p Player) Weapon(kind WeaponKind) int {
	for i, w := range p.Weapons {
		if w.Kind == kind {
			return i
		}
	}
	return -1
}

// HasWeapon reports whether the player owns a weapon of the given kind.
func (p Player) HasWeapon(kind WeaponKind) bool {
	return p.Weapon(kind) >= 0
}

// EnemyKind identifies an enemy archetype.
type EnemyKind int

const (
	EnemyPufferfish EnemyKind = iota
	EnemyOctopus
	EnemyMiniBoss
	EnemyBoss
)

func (k EnemyKind) String() string {
	switch k {
	case EnemyPufferfish:
		return "pufferfish"
	case EnemyOctopus:
		return "octopus"
	case EnemyMiniBoss:
		return "mini-boss"
	case EnemyBoss:
		return "boss"
	default:
		return "unknown"
	}
}

// Enemy is a hostile entity.
type Enemy struct {
	ID         string    `json:"id" msgpack:"id"`
	Kind       EnemyKind `json:"kind" msgpack:"kind"`
	Pos        core.Vec2 `json:"pos" msgpack:"pos"`
	Size       float64   `json:"size" msgpack:"size"`
	Health     float64   `json:"health" msgpack:"health"`
	MaxHealth  float64   `json:"maxHealth" msgpack:"maxHealth"`
	Speed      float64   `json:"speed" msgpack:"speed"`
	Damage     float64   `json:"damage" msgpack:"damage"`
	XPValue    int       `json:"xpValue" msgpack:"xpValue"`
	Velocity   core.Vec2 `json:"velocity" msgpack:"velocity"`
	LastAttack float64   `json:"lastAttack" msgpack:"lastAttack"` // mini-boss only
}

// ProjectileKind identifies who fired a projectile.
type ProjectileKind int

const (
	ProjectilePlayer ProjectileKind = iota
	ProjectileBoss
	ProjectileMiniBoss
)

// Projectile is a moving damage carrier.
type Projectile struct {
	ID       string         `json:"id" msgpack:"id"`
	Kind     ProjectileKind `json:"kind" msgpack:"kind"`
	WeaponID string         `json:"weaponId,omitempty" msgpack:"weaponId,omitempty"`
	Pos      core.Vec2      `json:"pos" msgpack:"pos"`
	Size     float64        `json:"size" msgpack:"size"`
	Velocity core.Vec2      `json:"velocity" msgpack:"velocity"`
	Damage   float64        `json:"damage" msgpack:"damage"`
	Lifespan float64        `json:"lifespan" msgpack:"lifespan"`
	Angle    float64        `json:"angle" msgpack:"angle"` // facing, degrees
}

// PickupKind identifies a collectible.
type PickupKind int

const (
	PickupXP PickupKind = iota
	PickupMagnet
	PickupFreezeBomb
)

// Pickup is a collectible dropped by a dead enemy.
type Pickup struct {
	ID         string     `json:"id" msgpack:"id"`
	Kind       PickupKind `json:"kind" msgpack:"kind"`
	Pos        core.Vec2  `json:"pos" msgpack:"pos"`
	Size       float64    `json:"size" msgpack:"size"`
	Value      int        `json:"value" msgpack:"value"`
	Magnetized bool       `json:"magnetized" msgpack:"magnetized"`
}

// Explosion is a visual-only effect that counts down and disappears.
type Explosion struct {
	ID       string    `json:"id" msgpack:"id"`
	Pos      core.Vec2 `json:"pos" msgpack:"pos"`
	Size     float64   `json:"size" msgpack:"size"`
	Duration float64   `json:"duration" msgpack:"duration"`
}

// State is one immutable snapshot of the simulation.
type State struct {
	Player      Player       `json:"player" msgpack:"player"`
	Enemies     []Enemy      `json:"enemies" msgpack:"enemies"`
	Projectiles []Projectile `json:"projectiles" msgpack:"projectiles"`
	Pickups     []Pickup     `json:"pickups" msgpack:"pickups"`
	Explosions  []Explosion  `json:"explosions" msgpack:"explosions"`

	FreezeTimer     float64 `json:"freezeTimer" msgpack:"freezeTimer"`
	BossAttackTimer float64 `json:"bossAttackTimer" msgpack:"bossAttackTimer"`
	CameraX         float64 `json:"cameraX" msgpack:"cameraX"`

	GameTime          float64  `json:"gameTime" msgpack:"gameTime"`
	SpawnTimer        float64  `json:"spawnTimer" msgpack:"spawnTimer"`
	LastMiniBossSpawn float64  `json:"lastMiniBossSpawn" msgpack:"lastMiniBossSpawn"`
	BossActive        bool     `json:"bossActive" msgpack:"bossActive"`
	BossWarning       bool     `json:"bossWarning" msgpack:"bossWarning"`
	Status            Status   `json:"status" msgpack:"status"`
	Choices           []string `json:"choices,omitempty" msgpack:"choices,omitempty"`
	Kills             int      `json:"kills" msgpack:"kills"`
	NextID            uint64   `json:"nextId" msgpack:"nextId"`
}

// Boss returns the live boss, if any.
func (s State) Boss() (Enemy, bool) {
	for _, e := range s.Enemies {
		if e.Kind == EnemyBoss {
			return e, true
		}
	}
	return Enemy{}, false
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	c.Player.Weapons = cloneSlice(s.Player.Weapons)
	c.Enemies = cloneSlice(s.Enemies)
	c.Projectiles = cloneSlice(s.Projectiles)
	c.Pickups = cloneSlice(s.Pickups)
	c.Explosions = cloneSlice(s.Explosions)
	c.Choices = cloneSlice(s.Choices)
	return c
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
