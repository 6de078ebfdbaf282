package sim

import (
	"testing"

	"github.com/vovakirdan/tui-survivor/internal/config"
)

func TestNextThreshold(t *testing.T) {
	e := testEngine()

	tests := []struct {
		current, level int
		expected       int
	}{
		{2, 2, 3},
		{3, 3, 4},
		{4, 4, 7},
		{7, 5, 11},
		{0, 2, 1},
	}

	for _, tc := range tests {
		if got := e.nextThreshold(tc.current, tc.level); got != tc.expected {
			t.Errorf("nextThreshold(%d, %d) = %d, expected %d", tc.current, tc.level, got, tc.expected)
		}
	}
}

func TestResolveLevelUps(t *testing.T) {
	e := testEngine()
	s := e.NewState(config.RunConfig{})
	s.Player.XP = 10

	s = e.Apply(s, ResolveLevelUps{}, nil)
	p := s.Player
	if p.XP != 1 || p.Level != 4 || p.XPToNextLevel != 7 {
		t.Errorf("XP/Level/Threshold = %d/%d/%d, expected 1/4/7", p.XP, p.Level, p.XPToNextLevel)
	}

	again := e.Apply(s, ResolveLevelUps{}, nil)
	if again.Player.Level != p.Level || again.Player.XP != p.XP || again.Player.XPToNextLevel != p.XPToNextLevel {
		t.Error("resolving twice should change nothing")
	}
}

func TestSettleOffersChoices(t *testing.T) {
	e := testEngine()
	s := e.NewState(config.RunConfig{})
	s.Player.XP = 2

	s = e.Apply(s, Settle{}, NewRNG(7))
	if s.Status != StatusChoosingUpgrade {
		t.Fatalf("Status = %v, expected choosing", s.Status)
	}
	if s.Player.Level != 2 || s.Player.XP != 0 {
		t.Errorf("Level/XP = %d/%d, expected 2/0", s.Player.Level, s.Player.XP)
	}
	if len(s.Choices) == 0 || len(s.Choices) > 5 {
		t.Errorf("len(Choices) = %d, expected 1..5", len(s.Choices))
	}

	// Ticks are ignored until a choice is made.
	frozen := step(e, s, 0.5, IntentRight)
	if frozen.GameTime != s.GameTime {
		t.Error("Tick should not run while choosing")
	}

	picked := e.Apply(s, ApplyUpgrade{UpgradeID: s.Choices[0]}, nil)
	if picked.Status != StatusRunning || picked.Choices != nil {
		t.Errorf("Status = %v, Choices = %v, expected running with no choices", picked.Status, picked.Choices)
	}

	skipped := e.Apply(s, SkipUpgrade{}, nil)
	if skipped.Status != StatusRunning || skipped.Choices != nil {
		t.Errorf("Status = %v, Choices = %v, expected running with no choices", skipped.Status, skipped.Choices)
	}
	if skipped.Player.Level != 2 {
		t.Error("skipping should keep the level")
	}
}

func TestOffer(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name     string
		player   func() Player
		excluded []string
	}{
		{
			name:     "fork only",
			player:   func() Player { return e.NewState(config.RunConfig{}).Player },
			excluded: []string{"garlic_damage", "garlic_cooldown", "garlic_area"},
		},
		{
			name: "no fork",
			player: func() Player {
				return e.NewState(config.RunConfig{DisableFork: true}).Player
			},
			excluded: []string{"fork_multishot", "fork_damage", "fork_cooldown"},
		},
		{
			name: "maxed",
			player: func() Player {
				radius, count, regen := 120.0, 5, 0.05
				return e.NewState(config.RunConfig{GarlicRadius: &radius, ForkCount: &count, RegenRate: &regen}).Player
			},
			excluded: []string{"add_garlic", "fork_multishot", "player_regen"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.player()
			for seed := int64(0); seed < 20; seed++ {
				ids := e.Offer(p, NewRNG(seed))
				if len(ids) == 0 || len(ids) > e.cfg.Progression.MaxChoices {
					t.Fatalf("len(Offer()) = %d", len(ids))
				}
				seen := make(map[string]bool)
				for _, id := range ids {
					if seen[id] {
						t.Errorf("Offer() repeated %q", id)
					}
					seen[id] = true
					u, ok := e.Upgrade(id)
					if !ok || !u.Eligible(p) {
						t.Errorf("Offer() returned ineligible %q", id)
					}
				}
				for _, id := range tc.excluded {
					if seen[id] {
						t.Errorf("Offer() returned excluded %q", id)
					}
				}
			}
		})
	}
}

func TestApplyUpgradeWeaponLevels(t *testing.T) {
	e := testEngine()
	s := e.NewState(config.RunConfig{})

	s = e.Apply(s, ApplyUpgrade{UpgradeID: "fork_damage"}, nil)
	fork := s.Player.Weapons[s.Player.Weapon(WeaponFork)]
	if l, _ := fork.Launcher(); fork.Level != 2 || l.Damage != 15 {
		t.Errorf("fork level/damage = %d/%v, expected 2/15", fork.Level, l.Damage)
	}

	s = e.Apply(s, ApplyUpgrade{UpgradeID: "add_garlic"}, nil)
	s = e.Apply(s, ApplyUpgrade{UpgradeID: "add_garlic"}, nil)
	garlics := 0
	for _, w := range s.Player.Weapons {
		if w.Kind == WeaponGarlic {
			garlics++
			if w.Level != 1 {
				t.Errorf("garlic Level = %d, expected 1", w.Level)
			}
		}
	}
	if garlics != 1 {
		t.Errorf("garlic count = %d, expected 1", garlics)
	}

	s = e.Apply(s, ApplyUpgrade{UpgradeID: "garlic_area"}, nil)
	garlic := s.Player.Weapons[s.Player.Weapon(WeaponGarlic)]
	if a, _ := garlic.Aura(); garlic.Level != 2 || a.Radius != 160 {
		t.Errorf("garlic level/radius = %d/%v, expected 2/160", garlic.Level, a.Radius)
	}

	s = e.Apply(s, ApplyUpgrade{UpgradeID: "player_speed"}, nil)
	if s.Player.Weapons[s.Player.Weapon(WeaponFork)].Level != 2 {
		t.Error("player upgrades should not touch weapon levels")
	}
}

func TestApplyUpgradeLeavesInputAlone(t *testing.T) {
	e := testEngine()
	s := e.NewState(config.RunConfig{})

	for _, u := range e.Upgrades() {
		before := s.Player.Weapons[0]
		e.Apply(s, ApplyUpgrade{UpgradeID: u.ID}, nil)
		if after := s.Player.Weapons[0]; after != before {
			t.Errorf("%s modified the input weapon: %+v -> %+v", u.ID, before, after)
		}
	}
}

func TestApplyUpgradeUnknown(t *testing.T) {
	e := testEngine()
	s := e.NewState(config.RunConfig{})
	s.Status = StatusChoosingUpgrade
	s.Choices = []string{"fork_damage"}

	got := e.Apply(s, ApplyUpgrade{UpgradeID: "does_not_exist"}, nil)
	if got.Status != StatusChoosingUpgrade || len(got.Choices) != 1 {
		t.Errorf("Status = %v, Choices = %v, expected unchanged", got.Status, got.Choices)
	}
}

func TestPlayerUpgrades(t *testing.T) {
	e := testEngine()

	tests := []struct {
		id    string
		check func(Player) bool
	}{
		{"player_speed", func(p Player) bool { return near(p.Speed, 450*1.15) }},
		{"player_health", func(p Player) bool { return p.MaxHealth == 120 && p.Health == 110 }},
		{"player_pickup", func(p Player) bool { return p.PickupRadius == 200 }},
		{"player_regen", func(p Player) bool { return p.RegenRate == 0.025 }},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			s := e.NewState(config.RunConfig{})
			s.Player.Health = 90
			got := e.Apply(s, ApplyUpgrade{UpgradeID: tc.id}, nil)
			if !tc.check(got.Player) {
				t.Errorf("%s produced %+v", tc.id, got.Player)
			}
		})
	}
}
