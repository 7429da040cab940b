package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-engine/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs <scene>",
	Short: "Show recorded runs for a scene",
	Long: `Display the most recent runs of the specified scene, newest first,
together with the best average frame rate on record.

Examples:
  engine runs orbit
  engine runs blank --limit 25
  engine runs orbit --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs for the scene")
}

func openStore() (*storage.Store, error) {
	return storage.Open(flagDBPath)
}

func runRuns(cmd *cobra.Command, args []string) {
	sceneID := args[0]
	title := lookupScene(sceneID).Title()

	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(sceneID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared run history for %s.\n", title)
		return
	}

	runs, err := store.RecentRuns(sceneID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Recent Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'engine bench %s' to record the first one.\n", sceneID)
		return
	}

	fmt.Printf("  %-8s  %-10s  %-10s  %-8s  %-8s  %s\n", "Backend", "Frames", "Runtime", "Avg FPS", "Last FPS", "Date")
	fmt.Printf("  %-8s  %-10s  %-10s  %-8s  %-8s  %s\n", "-------", "------", "-------", "-------", "--------", "----")

	for _, r := range runs {
		fmt.Printf("  %-8s  %-10d  %-10s  %-8.1f  %-8d  %s\n",
			r.Backend,
			r.Frames,
			r.Runtime().Round(time.Millisecond).String(),
			r.AverageFPS(),
			r.LastFPS,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	best, err := store.BestFPS(sceneID)
	if err == nil && best > 0 {
		fmt.Println()
		fmt.Printf("Best: %.1f FPS\n", best)
	}
}
