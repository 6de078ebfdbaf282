package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/core"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestTickMovement(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name     string
		start    core.Vec2
		intents  Intents
		expected core.Vec2
	}{
		{"right", core.V(500, 500), IntentRight, core.V(510, 500)},
		{"up", core.V(500, 500), IntentUp, core.V(500, 490)},
		{"diagonal is not normalised", core.V(500, 500), IntentUp | IntentRight, core.V(510, 490)},
		{"opposites cancel", core.V(500, 500), IntentLeft | IntentRight, core.V(500, 500)},
		{"clamped at left edge", core.V(48, 500), IntentLeft, core.V(48, 500)},
		{"clamped at bottom", core.V(500, 1030), IntentDown, core.V(500, 1032)},
		{"clamped at world end", core.V(5710, 500), IntentRight, core.V(5712, 500)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := unarmed(e)
			s.Player.Speed = 100
			s.Player.Pos = tc.start

			got := step(e, s, 0.1, tc.intents).Player.Pos
			if !near(got.X, tc.expected.X) || !near(got.Y, tc.expected.Y) {
				t.Errorf("Pos = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestTickRegenCapsAtMax(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.Player.Health = 99
	s.Player.RegenRate = 0.1

	got := step(e, s, 1, 0)
	if got.Player.Health != got.Player.MaxHealth {
		t.Errorf("Health = %v, expected capped at %v", got.Player.Health, got.Player.MaxHealth)
	}

	s.Player.Health = 50
	s.Player.RegenRate = 0.025
	got = step(e, s, 1, 0)
	if !near(got.Player.Health, 52.5) {
		t.Errorf("Health = %v, expected 52.5", got.Player.Health)
	}
}

func TestTickTimersDecay(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.FreezeTimer = 0.05
	s.Player.IFrames = 0.5
	s.BossAttackTimer = 0.2

	got := step(e, s, 0.1, 0)
	if got.FreezeTimer != 0 {
		t.Errorf("FreezeTimer = %v, expected 0", got.FreezeTimer)
	}
	if !near(got.Player.IFrames, 0.4) {
		t.Errorf("IFrames = %v, expected 0.4", got.Player.IFrames)
	}
	if got.BossAttackTimer != 0.2 {
		t.Errorf("BossAttackTimer = %v, should only decay while a boss exists", got.BossAttackTimer)
	}
	if !near(got.SpawnTimer, 0.1) || !near(got.GameTime, 0.1) {
		t.Errorf("SpawnTimer = %v, GameTime = %v, expected both 0.1", got.SpawnTimer, got.GameTime)
	}
}

func TestTickContactDamage(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name       string
		iframes    float64
		invincible bool
		health     float64
		iframesOut float64
	}{
		{"hit", 0, false, 88, 1},
		{"protected by iframes", 0.5, false, 100, 0.4},
		{"invincible", 0, true, 100, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := unarmed(e)
			s.Player.IFrames = tc.iframes
			s.Player.Invincible = tc.invincible
			s.Enemies = []Enemy{pufferfishAt(e, "a", s.Player.Pos)}

			got := step(e, s, 0.1, 0)
			if !near(got.Player.Health, tc.health) {
				t.Errorf("Health = %v, expected %v", got.Player.Health, tc.health)
			}
			if !near(got.Player.IFrames, tc.iframesOut) {
				t.Errorf("IFrames = %v, expected %v", got.Player.IFrames, tc.iframesOut)
			}
		})
	}
}

func TestTickOnlyFirstContactDamages(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.Enemies = []Enemy{
		pufferfishAt(e, "a", s.Player.Pos),
		pufferfishAt(e, "b", s.Player.Pos),
	}
	s.Projectiles = []Projectile{{ID: "m", Kind: ProjectileMiniBoss, Pos: s.Player.Pos, Size: 60, Damage: 40, Lifespan: 2}}

	got := step(e, s, 0.01, 0)
	if got.Player.Health != 88 {
		t.Errorf("Health = %v, expected a single contact hit (88)", got.Player.Health)
	}
	if len(got.Projectiles) != 1 {
		t.Error("the hostile projectile should survive when contact damage was taken")
	}
}

func TestTickHostileProjectileHit(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.Projectiles = []Projectile{
		{ID: "m", Kind: ProjectileMiniBoss, Pos: s.Player.Pos, Size: 60, Damage: 40, Lifespan: 2},
		{ID: "n", Kind: ProjectileMiniBoss, Pos: s.Player.Pos, Size: 60, Damage: 40, Lifespan: 2},
	}

	got := step(e, s, 0.01, 0)
	if got.Player.Health != 60 {
		t.Errorf("Health = %v, expected 60", got.Player.Health)
	}
	if len(got.Projectiles) != 1 || got.Projectiles[0].ID != "n" {
		t.Errorf("Projectiles = %+v, expected only the second one left", got.Projectiles)
	}
}

func TestTickKillDropsXPOrb(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	at := core.V(1000, 540)
	victim := pufferfishAt(e, "victim", at)
	victim.Health = 5
	s.Enemies = []Enemy{victim}
	s.Projectiles = []Projectile{{ID: "p", Kind: ProjectilePlayer, Pos: at, Size: 30, Damage: 10, Lifespan: 1}}

	got := step(e, s, 0.1, 0)

	if len(got.Enemies) != 0 {
		t.Fatalf("Enemies = %+v, expected the victim removed", got.Enemies)
	}
	if got.Kills != 1 {
		t.Errorf("Kills = %d, expected 1", got.Kills)
	}
	if len(got.Projectiles) != 0 {
		t.Error("the projectile should be consumed by the hit")
	}
	if len(got.Pickups) != 1 {
		t.Fatalf("Pickups = %+v, expected one drop", got.Pickups)
	}
	orb := got.Pickups[0]
	if orb.Kind != PickupXP || orb.Value != 2 || orb.Pos != at {
		t.Errorf("drop = %+v, expected an XP orb worth 2 at %v", orb, at)
	}
}

func TestTickLootRolls(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name     string
		roll     float64
		gameTime float64
		expected PickupKind
	}{
		{"freeze early", 0.003, 10, PickupFreezeBomb},
		{"magnet early", 0.006, 10, PickupMagnet},
		{"xp early", 0.01, 10, PickupXP},
		{"freeze late", 0.001, 250, PickupFreezeBomb},
		{"magnet late", 0.003, 250, PickupMagnet},
		{"xp late", 0.0045, 250, PickupXP},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := unarmed(e)
			s.GameTime = tc.gameTime
			victim := pufferfishAt(e, "v", core.V(100, 100))
			victim.Health = 1
			s.Enemies = []Enemy{victim}
			s.Projectiles = []Projectile{{ID: "p", Kind: ProjectilePlayer, Pos: victim.Pos, Size: 30, Damage: 10, Lifespan: 1}}

			got := e.Apply(s, Tick{Delta: 0.01, GameTime: tc.gameTime + 0.01}, stubRNG{f: tc.roll})
			if len(got.Pickups) != 1 || got.Pickups[0].Kind != tc.expected {
				t.Errorf("Pickups = %+v, expected one of kind %v", got.Pickups, tc.expected)
			}
		})
	}
}

func TestTickBossDiesWithoutLoot(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	boss := e.bossAt(s.Player)
	boss.Health = 1
	s.Enemies = []Enemy{boss}
	s.BossActive = true
	s.BossAttackTimer = 10
	s.Projectiles = []Projectile{{ID: "p", Kind: ProjectilePlayer, Pos: boss.Pos, Size: 30, Damage: 10, Lifespan: 1}}

	got := step(e, s, 0.01, 0)
	if len(got.Enemies) != 0 || len(got.Pickups) != 0 {
		t.Errorf("boss death left enemies=%d pickups=%d, expected none", len(got.Enemies), len(got.Pickups))
	}
	if got = e.Apply(got, Settle{}, stubRNG{}); got.Status != StatusVictorious {
		t.Errorf("Status = %v, expected victorious", got.Status)
	}
}

func TestTickProjectileHitsEveryOverlappedEnemy(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	at := core.V(1000, 500)
	a := pufferfishAt(e, "a", at)
	b := pufferfishAt(e, "b", at.Add(core.V(10, 0)))
	a.Health, a.MaxHealth = 50, 50
	b.Health, b.MaxHealth = 50, 50
	s.Enemies = []Enemy{a, b}
	s.Projectiles = []Projectile{{ID: "p", Kind: ProjectilePlayer, Pos: at, Size: 30, Damage: 10, Lifespan: 1}}

	got := step(e, s, 0.01, 0)
	for _, en := range got.Enemies {
		if en.Health != 40 {
			t.Errorf("enemy %s Health = %v, expected 40", en.ID, en.Health)
		}
	}
	if len(got.Projectiles) != 0 {
		t.Error("projectile should be consumed once")
	}
}

func TestTickPickupCollection(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	pp := s.Player.Pos
	far := pp.Add(core.V(1000, 0))
	s.Pickups = []Pickup{
		{ID: "xp", Kind: PickupXP, Pos: pp, Size: 24, Value: 3},
		{ID: "mag", Kind: PickupMagnet, Pos: pp, Size: 32},
		{ID: "ice", Kind: PickupFreezeBomb, Pos: pp, Size: 32},
		{ID: "far", Kind: PickupXP, Pos: far, Size: 24, Value: 2},
	}

	got := step(e, s, 0.1, 0)
	if got.Player.XP != 3 {
		t.Errorf("XP = %d, expected 3", got.Player.XP)
	}
	if got.FreezeTimer != e.cfg.Loot.FreezeDuration {
		t.Errorf("FreezeTimer = %v, expected %v", got.FreezeTimer, e.cfg.Loot.FreezeDuration)
	}
	if len(got.Pickups) != 1 || !got.Pickups[0].Magnetized {
		t.Fatalf("Pickups = %+v, expected the far orb magnetised", got.Pickups)
	}
	if want := far.X - 80; !near(got.Pickups[0].Pos.X, want) {
		t.Errorf("far orb X = %v, expected pulled to %v", got.Pickups[0].Pos.X, want)
	}
}

func TestTickOrbPullRadius(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	pp := s.Player.Pos
	s.Pickups = []Pickup{
		{ID: "in", Kind: PickupXP, Pos: pp.Add(core.V(100, 0)), Size: 24, Value: 1},
		{ID: "out", Kind: PickupXP, Pos: pp.Add(core.V(400, 0)), Size: 24, Value: 1},
		{ID: "item", Kind: PickupMagnet, Pos: pp.Add(core.V(100, 0)), Size: 32},
	}

	got := step(e, s, 0.01, 0)
	if !near(got.Pickups[0].Pos.X, pp.X+92) {
		t.Errorf("in-radius orb X = %v, expected %v", got.Pickups[0].Pos.X, pp.X+92)
	}
	if got.Pickups[1].Pos.X != pp.X+400 {
		t.Error("orb outside the pickup radius should not move")
	}
	if got.Pickups[2].Pos.X != pp.X+100 {
		t.Error("items other than XP orbs should not be pulled")
	}
}

func TestTickForkVolley(t *testing.T) {
	e := testEngine()
	count := 3
	s := e.NewState(config.RunConfig{ForkCount: &count})
	s.GameTime = 1
	target := pufferfishAt(e, "t", s.Player.Pos.Add(core.V(800, 0)))
	s.Enemies = []Enemy{target}

	got := e.Apply(s, Tick{Delta: 0.001, GameTime: 1.001}, stubRNG{})
	if len(got.Projectiles) != 3 {
		t.Fatalf("len(Projectiles) = %d, expected 3", len(got.Projectiles))
	}
	spread := e.cfg.Weapons.Fork.Spread
	for i, pr := range got.Projectiles {
		wantDir := float64(i-1) * spread
		if dir := math.Atan2(pr.Velocity.Y, pr.Velocity.X); !near(dir, wantDir) {
			t.Errorf("projectile %d heading = %v, expected %v", i, dir, wantDir)
		}
		if pr.WeaponID != forkID || pr.Kind != ProjectilePlayer {
			t.Errorf("projectile %d = %+v, expected a fork projectile", i, pr)
		}
	}
	fork := got.Player.Weapons[0]
	if fork.LastFired != 1.001 {
		t.Errorf("LastFired = %v, expected 1.001", fork.LastFired)
	}
	if l, _ := fork.Launcher(); l.FirePoint != 1 {
		t.Errorf("FirePoint = %d, expected 1", l.FirePoint)
	}

	again := e.Apply(got, Tick{Delta: 0.001, GameTime: 1.002}, stubRNG{})
	if len(again.Projectiles) != 3 {
		t.Error("fork should not fire again before its cooldown")
	}
}

func TestTickGarlicAura(t *testing.T) {
	e := testEngine()
	radius := 120.0
	s := e.NewState(config.RunConfig{DisableFork: true, GarlicRadius: &radius})
	s.GameTime = 1
	inside := pufferfishAt(e, "in", s.Player.Pos.Add(core.V(100, 0)))
	outside := pufferfishAt(e, "out", s.Player.Pos.Add(core.V(130, 0)))
	inside.Health, inside.MaxHealth = 100, 100
	outside.Health, outside.MaxHealth = 100, 100
	s.Enemies = []Enemy{inside, outside}

	got := e.Apply(s, Tick{Delta: 0.001, GameTime: 1.001}, stubRNG{})
	if got.Enemies[0].Health != 65 {
		t.Errorf("inside Health = %v, expected 65", got.Enemies[0].Health)
	}
	if got.Enemies[1].Health != 100 {
		t.Errorf("outside Health = %v, expected 100", got.Enemies[1].Health)
	}
}

func TestTickEnragedMissileDetonates(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	boss := e.bossAt(s.Player)
	boss.Health = 1000
	s.Enemies = []Enemy{boss}
	s.BossActive = true
	s.BossAttackTimer = 10
	s.Projectiles = []Projectile{{
		ID: "missile", Kind: ProjectileBoss, Pos: s.Player.Pos.Add(core.V(50, 0)),
		Size: 40, Damage: 65, Lifespan: 3,
	}}

	got := step(e, s, 0.1, 0)
	if len(got.Projectiles) != 0 {
		t.Errorf("Projectiles = %+v, expected the missile removed", got.Projectiles)
	}
	if len(got.Explosions) != 1 || got.Explosions[0].Duration != e.cfg.Boss.ExplosionDuration {
		t.Fatalf("Explosions = %+v, expected one at full duration", got.Explosions)
	}
	if want := 100 - 65*0.6; !near(got.Player.Health, want) {
		t.Errorf("Health = %v, expected %v", got.Player.Health, want)
	}
	if got.Player.IFrames != e.cfg.Player.IFrameDuration {
		t.Errorf("IFrames = %v, expected %v", got.Player.IFrames, e.cfg.Player.IFrameDuration)
	}

	later := step(e, got, 0.3, 0)
	if len(later.Explosions) != 1 || !near(later.Explosions[0].Duration, 0.2) {
		t.Errorf("Explosions = %+v, expected one aged to 0.2", later.Explosions)
	}
	gone := step(e, later, 0.3, 0)
	if len(gone.Explosions) != 0 {
		t.Error("explosion should expire")
	}
}

func TestTickCalmBossMissileHitsDirectly(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.Enemies = []Enemy{e.bossAt(s.Player)}
	s.BossActive = true
	s.BossAttackTimer = 10
	s.Projectiles = []Projectile{{ID: "missile", Kind: ProjectileBoss, Pos: s.Player.Pos, Size: 40, Damage: 65, Lifespan: 3}}

	got := step(e, s, 0.01, 0)
	if got.Player.Health != 35 {
		t.Errorf("Health = %v, expected 35", got.Player.Health)
	}
	if len(got.Explosions) != 0 {
		t.Error("a calm boss missile should not explode")
	}
}

func TestTickBossFiresOnCooldown(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.Enemies = []Enemy{e.bossAt(s.Player)}
	s.BossActive = true

	got := step(e, s, 0.01, 0)
	if len(got.Projectiles) != 1 || got.Projectiles[0].Kind != ProjectileBoss {
		t.Fatalf("Projectiles = %+v, expected one boss missile", got.Projectiles)
	}
	if got.BossAttackTimer != e.cfg.Boss.AttackCooldown {
		t.Errorf("BossAttackTimer = %v, expected reset to %v", got.BossAttackTimer, e.cfg.Boss.AttackCooldown)
	}
}

func TestTickMiniBossFires(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.GameTime = 130
	mb := newEnemy(e.cfg, EnemyMiniBoss, s.Player.Pos.Add(core.V(600, 0)), 300)
	mb.ID = "mb"
	s.Enemies = []Enemy{mb}

	got := step(e, s, 0.1, 0)
	if len(got.Projectiles) != 1 || got.Projectiles[0].Kind != ProjectileMiniBoss {
		t.Fatalf("Projectiles = %+v, expected one mini-boss shot", got.Projectiles)
	}
	if !near(got.Enemies[0].LastAttack, 130.1) {
		t.Errorf("LastAttack = %v, expected 130.1", got.Enemies[0].LastAttack)
	}
	// Facing is the travel direction rotated a quarter turn.
	if angle := got.Projectiles[0].Angle; !near(angle, 180+90) {
		t.Errorf("Angle = %v, expected 270", angle)
	}
}

func TestTickFreeze(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.GameTime = 10
	s.FreezeTimer = 2
	fish := pufferfishAt(e, "fish", s.Player.Pos.Add(core.V(500, 0)))
	mb := newEnemy(e.cfg, EnemyMiniBoss, s.Player.Pos.Add(core.V(-500, 0)), 300)
	mb.ID = "mb"
	mb.LastAttack = 10
	s.Enemies = []Enemy{fish, mb}

	got := step(e, s, 0.1, 0)
	if got.Enemies[0].Pos != fish.Pos {
		t.Error("frozen ordinary enemy should not move")
	}
	if want := mb.Pos.X + 10; !near(got.Enemies[1].Pos.X, want) {
		t.Errorf("mini-boss X = %v, expected %v", got.Enemies[1].Pos.X, want)
	}

	s.FreezeTimer = 0
	got = step(e, s, 0.1, 0)
	if want := fish.Pos.X - 15; !near(got.Enemies[0].Pos.X, want) {
		t.Errorf("thawed enemy X = %v, expected %v", got.Enemies[0].Pos.X, want)
	}
	if v := got.Enemies[0].Velocity; !near(v.X, -150) {
		t.Errorf("Velocity = %v, expected (-150, 0)", v)
	}
}

func TestTickBossHovers(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.Player.Pos = core.V(2880, 600)
	boss := e.bossAt(s.Player)
	s.Enemies = []Enemy{boss}
	s.BossActive = true
	s.BossAttackTimer = 10
	s.FreezeTimer = 3

	got := step(e, s, 0.1, 0)
	// Hover point is (camera centre, player y / 2) = (2880, 300).
	if want := boss.Pos.Y + 15; !near(got.Enemies[0].Pos.Y, want) {
		t.Errorf("boss Y = %v, expected %v (freeze does not stop the boss)", got.Enemies[0].Pos.Y, want)
	}
}
