package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-survivor/internal/games/survivor"
	"github.com/vovakirdan/tui-survivor/internal/games/survivor/sim"
	"github.com/vovakirdan/tui-survivor/internal/registry"
	"github.com/vovakirdan/tui-survivor/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresRun   string
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best and recent runs",
	Long: `Display the best runs of a mode, its most recent runs and totals.

Clears rank first by fastest clear, then by longest survival.

Examples:
  survivor scores
  survivor scores survivor_boss --limit 20
  survivor scores --run 2f1c7e0e-5c0a-4a57-9a43-3f6a2b1f8d11
  survivor scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to list")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single run by ID")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every stored run of the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := survivor.GameID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'survivor list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresRun != "":
		err = printRun(store, flagScoresRun)
	case flagScoresClear:
		err = store.ClearScores(gameID)
		if err == nil {
			fmt.Printf("Cleared all runs of %s.\n", registry.Title(gameID))
		}
	default:
		err = printScores(store, gameID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store, gameID string) error {
	best, err := store.BestRuns(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(best) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'survivor play %s' to set the first record!\n", gameID)
		return nil
	}
	printRunTable(best)

	recent, err := store.RecentRuns(gameID, 5)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	fmt.Println()
	fmt.Println("Recent")
	printRunTable(recent)

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Clears: %d  Longest: %s  Most kills: %d  Avg kills: %.1f\n",
		stats.Runs, stats.Wins, sim.Clock(stats.LongestRun), stats.MostKills, stats.AvgKills)
	if stats.Wins > 0 {
		fmt.Printf("Fastest clear: %s\n", sim.Clock(stats.BestClear))
	}
	return nil
}

func printRunTable(runs []storage.RunRecord) {
	fmt.Printf("  %-4s  %-7s  %-5s  %-3s  %-6s  %-12s  %s\n", "Rank", "Result", "Time", "Lv", "Kills", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-5s  %-3s  %-6s  %-12s  %s\n", "----", "------", "----", "--", "-----", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7s  %-5s  %-3d  %-6d  %-12s  %s\n",
			i+1, resultLabel(r), sim.Clock(r.GameTime), r.Level, r.Kills,
			playerLabel(r.Player), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func printRun(store *storage.Store, runID string) error {
	r, err := store.RunByID(runID)
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}
	if r == nil {
		return fmt.Errorf("no run with ID %q", runID)
	}

	fmt.Printf("Run %s\n", r.RunID)
	fmt.Printf("  Mode:    %s\n", registry.Title(r.GameID))
	fmt.Printf("  Player:  %s\n", playerLabel(r.Player))
	fmt.Printf("  Result:  %s\n", resultLabel(*r))
	fmt.Printf("  Time:    %s\n", sim.Clock(r.GameTime))
	fmt.Printf("  Level:   %d\n", r.Level)
	fmt.Printf("  Kills:   %d\n", r.Kills)
	fmt.Printf("  Seed:    %d\n", r.Seed)
	fmt.Printf("  Played:  %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func resultLabel(r storage.RunRecord) string {
	if r.Won() {
		return "CLEAR"
	}
	return "DEAD"
}

func playerLabel(p string) string {
	if p == "" {
		return "local"
	}
	return p
}
