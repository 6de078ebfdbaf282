package sim

import (
	"testing"

	"github.com/vovakirdan/tui-survivor/internal/core"
)

func TestWaveSize(t *testing.T) {
	e := testEngine()

	tests := []struct {
		t        float64
		expected int
	}{
		{0, 1},
		{12.4, 1},
		{12.5, 2},
		{25, 3},
		{260, 21},
	}

	for _, tc := range tests {
		if got := e.WaveSize(tc.t); got != tc.expected {
			t.Errorf("WaveSize(%v) = %d, expected %d", tc.t, got, tc.expected)
		}
	}
}

func TestWaveHealthBonus(t *testing.T) {
	e := testEngine()

	tests := []struct {
		t        float64
		expected float64
	}{
		{0, 0},
		{19.9, 0},
		{20, 8},
		{40, 16},
		{59, 16},
	}

	for _, tc := range tests {
		if got := e.WaveHealthBonus(tc.t); got != tc.expected {
			t.Errorf("WaveHealthBonus(%v) = %v, expected %v", tc.t, got, tc.expected)
		}
	}
}

func TestMiniBossHealth(t *testing.T) {
	e := testEngine()

	tests := []struct {
		t        float64
		expected float64
	}{
		{60, 300},
		{120, 300},
		{195, 650},
		{270, 1000},
	}

	for _, tc := range tests {
		if got := e.MiniBossHealth(tc.t); !near(got, tc.expected) {
			t.Errorf("MiniBossHealth(%v) = %v, expected %v", tc.t, got, tc.expected)
		}
	}
}

func TestDirectWave(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.GameTime = 30

	s.SpawnTimer = e.cfg.Spawning.Interval
	if got := e.Direct(s, stubRNG{f: 0.5}); len(got) != 0 {
		t.Errorf("Direct() = %v, expected nothing at exactly the interval", got)
	}

	s.SpawnTimer = e.cfg.Spawning.Interval + 0.01
	actions := e.Direct(s, stubRNG{f: 0.5})
	if len(actions) != 1 {
		t.Fatalf("Direct() returned %d actions, expected 1", len(actions))
	}
	add, ok := actions[0].(AddEnemies)
	if !ok || add.Origin != OriginWave {
		t.Fatalf("action = %#v, expected a wave", actions[0])
	}
	if len(add.Enemies) != e.WaveSize(30) {
		t.Errorf("wave size = %d, expected %d", len(add.Enemies), e.WaveSize(30))
	}
	for _, en := range add.Enemies {
		// stubRNG picks the top edge and rolls 0.5, which is not tough.
		if en.Kind != EnemyPufferfish {
			t.Errorf("Kind = %v, expected pufferfish", en.Kind)
		}
		if en.Health != 10+8 || en.MaxHealth != en.Health {
			t.Errorf("Health = %v/%v, expected 18/18", en.Health, en.MaxHealth)
		}
		want := core.V(s.CameraX+0.5*1920, -50)
		if en.Pos != want {
			t.Errorf("Pos = %v, expected %v", en.Pos, want)
		}
	}

	next := e.Apply(s, add, nil)
	if next.SpawnTimer != 0 {
		t.Errorf("SpawnTimer = %v, expected reset to 0", next.SpawnTimer)
	}
	if len(next.Enemies) != len(add.Enemies) {
		t.Errorf("len(Enemies) = %d, expected %d", len(next.Enemies), len(add.Enemies))
	}
}

func TestDirectToughRoll(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.SpawnTimer = 3

	actions := e.Direct(s, stubRNG{f: 0.1})
	add := actions[0].(AddEnemies)
	if add.Enemies[0].Kind != EnemyOctopus || add.Enemies[0].Health != 30 {
		t.Errorf("enemy = %+v, expected a 30 hp octopus", add.Enemies[0])
	}
}

func TestDirectMiniBoss(t *testing.T) {
	e := testEngine()
	s := unarmed(e)

	s.GameTime = 119
	if got := e.Direct(s, stubRNG{}); len(got) != 0 {
		t.Errorf("Direct() = %v, expected nothing before the first mini-boss", got)
	}

	s.GameTime = 120
	actions := e.Direct(s, stubRNG{})
	if len(actions) != 1 {
		t.Fatalf("Direct() returned %d actions, expected 1", len(actions))
	}
	add := actions[0].(AddEnemies)
	if add.Origin != OriginMiniBoss || len(add.Enemies) != 1 || add.Enemies[0].Kind != EnemyMiniBoss {
		t.Fatalf("action = %+v, expected one mini-boss", add)
	}
	if add.Enemies[0].Health != 300 {
		t.Errorf("Health = %v, expected 300", add.Enemies[0].Health)
	}

	s = e.Apply(s, add, nil)
	if s.LastMiniBossSpawn != 120 {
		t.Errorf("LastMiniBossSpawn = %v, expected 120", s.LastMiniBossSpawn)
	}

	s.GameTime = 149
	if got := e.Direct(s, stubRNG{}); len(got) != 0 {
		t.Errorf("Direct() = %v, expected nothing within the interval", got)
	}
	s.GameTime = 150
	if got := e.Direct(s, stubRNG{}); len(got) != 1 {
		t.Errorf("Direct() returned %d actions, expected the next mini-boss", len(got))
	}
}

func TestDirectBossSchedule(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.LastMiniBossSpawn = 260

	s.GameTime = 264.9
	if got := e.Direct(s, stubRNG{}); len(got) != 0 {
		t.Errorf("Direct() = %v, expected nothing before the warning", got)
	}

	s.GameTime = 265
	actions := e.Direct(s, stubRNG{})
	if len(actions) != 1 {
		t.Fatalf("Direct() returned %d actions, expected the warning", len(actions))
	}
	if _, ok := actions[0].(RaiseBossWarning); !ok {
		t.Fatalf("action = %#v, expected RaiseBossWarning", actions[0])
	}
	s = e.Apply(s, actions[0], nil)
	if !s.BossWarning {
		t.Error("BossWarning should be set")
	}
	if got := e.Direct(s, stubRNG{}); len(got) != 0 {
		t.Errorf("Direct() = %v, expected the warning only once", got)
	}

	s.GameTime = 270
	s.SpawnTimer = 10
	actions = e.Direct(s, stubRNG{})
	if len(actions) != 1 {
		t.Fatalf("Direct() = %v, expected only SpawnBoss", actions)
	}
	if _, ok := actions[0].(SpawnBoss); !ok {
		t.Fatalf("action = %#v, expected SpawnBoss", actions[0])
	}
	s = e.Apply(s, actions[0], nil)
	if !s.BossActive || s.BossWarning {
		t.Errorf("BossActive = %v, BossWarning = %v, expected true/false", s.BossActive, s.BossWarning)
	}
	if got := e.Direct(s, stubRNG{}); got != nil {
		t.Errorf("Direct() = %v, expected nil once the boss is active", got)
	}
}

func TestDirectIdleWhenNotRunning(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	s.SpawnTimer = 10
	s.GameTime = 300

	for _, st := range []Status{StatusChoosingUpgrade, StatusDefeated, StatusVictorious} {
		s.Status = st
		if got := e.Direct(s, stubRNG{}); got != nil {
			t.Errorf("Direct() with status %v = %v, expected nil", st, got)
		}
	}
}

func TestEdgePoints(t *testing.T) {
	e := testEngine()
	s := unarmed(e)
	camX := e.CameraX(s.Player.Pos.X)

	tests := []struct {
		edge     int
		expected core.Vec2
	}{
		{0, core.V(camX+480, -50)},
		{1, core.V(camX+480, 1130)},
		{2, core.V(camX-50, 270)},
		{3, core.V(camX+1970, 270)},
	}

	for _, tc := range tests {
		got := e.edgePoint(s, edgeRNG{edge: tc.edge, f: 0.25})
		if got != tc.expected {
			t.Errorf("edgePoint(edge %d) = %v, expected %v", tc.edge, got, tc.expected)
		}
	}
}

type edgeRNG struct {
	edge int
	f    float64
}

func (r edgeRNG) Float64() float64 { return r.f }
func (r edgeRNG) Intn(int) int     { return r.edge }
