package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivor/internal/config"
	"github.com/vovakirdan/tui-survivor/internal/core"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/tui-survivor/internal/registry"
	"github.com/vovakirdan/tui-survivor/internal/storage"
)

var (
	flagSimRuns    int
	flagSimMode    string
	flagSimMaxTime float64
	flagSimSave    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autopilot runs",
	Long: `Play runs without a terminal as fast as the CPU allows, using the
autopilot for movement and upgrades. Each run advances by exactly 1/fps
seconds per frame, so a seed always produces the same run.

Runs are seeded --seed, --seed+1, ... (a time-based base when --seed is 0).
The final line of each run is the snapshot digest for regression checks.

Examples:
  survivor sim --runs 10 --seed 1
  survivor sim --mode survivor_boss --runs 3
  survivor sim --difficulty hard --max-time 300 --save`,
	Run: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simCmd.Flags().StringVar(&flagSimMode, "mode", survivor.GameID, "Mode to play")
	simCmd.Flags().Float64Var(&flagSimMaxTime, "max-time", 900, "Give up on a run after this many game seconds")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record finished runs in the database")
}

// simResult is one headless run.
type simResult struct {
	Seed    int64
	Summary core.RunSummary
	Over    bool
	Digest  string
	Elapsed time.Duration
}

func runSim(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "survivor-sim"})

	if !registry.Exists(flagSimMode) {
		logger.Error("unknown mode", "mode", flagSimMode)
		os.Exit(1)
	}
	if flagFPS <= 0 || flagSimRuns <= 0 {
		logger.Error("--fps and --runs must be positive")
		os.Exit(1)
	}

	tuning := survivor.LoadTuning()
	run := config.RunConfig{}
	if flagSimMode == survivor.BossRushID {
		run = config.BossRushRun()
	}

	var store *storage.Store
	if flagSimSave {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("runs will not be recorded", "error", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	base := flagSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	wins := 0
	for i := 0; i < flagSimRuns; i++ {
		res, err := simulate(tuning, run, base+int64(i), 1/float64(flagFPS), flagSimMaxTime)
		if err != nil {
			logger.Error("run failed", "seed", base+int64(i), "error", err)
			os.Exit(1)
		}
		if res.Summary.Outcome == sim.StatusVictorious.String() {
			wins++
		}

		outcome := res.Summary.Outcome
		if !res.Over {
			outcome = "timeout"
		}
		fmt.Printf("#%-3d seed=%-20d %-10s time=%s level=%-3d kills=%-5d digest=%s\n",
			i+1, res.Seed, outcome, sim.Clock(res.Summary.GameTime),
			res.Summary.Level, res.Summary.Kills, res.Digest[:12])
		logger.Debug("run simulated", "seed", res.Seed, "elapsed", res.Elapsed)

		if store != nil && res.Over {
			if _, err := store.SaveRun(flagSimMode, "autopilot", res.Summary); err != nil {
				logger.Warn("could not save run", "error", err)
			}
		}
	}

	fmt.Println()
	fmt.Printf("%d/%d runs cleared\n", wins, flagSimRuns)
}

// simulate plays one run with fixed frame steps until it ends or maxTime
// game seconds pass.
func simulate(tuning config.SurvivorConfig, run config.RunConfig, seed int64, dt, maxTime float64) (simResult, error) {
	start := time.Now()
	session := survivor.NewSession(sim.NewEngine(tuning), run, seed, nil)
	pilot := survivor.NewAutopilot(tuning.World)

	st := session.State()
	for !st.Status.Over() && st.GameTime < maxTime {
		if st.Status == sim.StatusChoosingUpgrade {
			var err error
			if id, ok := pilot.Pick(st, session.Choices()); ok {
				err = session.Choose(id)
			} else {
				err = session.Skip()
			}
			if err != nil {
				return simResult{}, err
			}
		}
		st = session.Advance(dt, pilot.Intents(session.State()))
	}

	digest, err := sim.Digest(st)
	if err != nil {
		return simResult{}, err
	}
	return simResult{
		Seed: seed,
		Summary: core.RunSummary{
			Outcome:  st.Status.String(),
			GameTime: st.GameTime,
			Level:    st.Player.Level,
			Kills:    st.Kills,
			Seed:     seed,
		},
		Over:    st.Status.Over(),
		Digest:  digest,
		Elapsed: time.Since(start),
	}, nil
}
