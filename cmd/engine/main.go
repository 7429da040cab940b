// engine runs scenes on the arcade rendering engine.
//
// Usage:
//
//	engine list               - List available scenes
//	engine run <scene>        - Open a window and run a scene
//	engine bench <scene>      - Run a scene headless and report frame timing
//	engine runs <scene>       - Show recorded runs for a scene
//
// Global flags:
//
//	--settings <path>   - Settings document (default: search standard locations)
//	--db <path>         - Set database path (default: ~/.arcade-engine/runs.db)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-engine/internal/config"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
	"github.com/vovakirdan/arcade-engine/internal/timing"

	// Import scenes to register them
	_ "github.com/vovakirdan/arcade-engine/internal/scenes/blank"
	_ "github.com/vovakirdan/arcade-engine/internal/scenes/orbit"
)

var (
	// Global flags
	flagSettings string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "engine",
	Short: "Arcade Engine - run and benchmark rendering scenes",
	Long: `Arcade Engine owns a window and graphics context, drives the render
loop and measures frame timing for the scenes compiled into it.

Available commands:
  list     - Show all available scenes
  run      - Open a window and run a scene
  bench    - Run a scene without a display and report frame timing
  runs     - View recorded runs

Examples:
  engine list
  engine run orbit
  engine run orbit --settings ./configs/settings.json
  engine bench blank --frames 10000
  engine runs orbit`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Path to settings document (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade-engine/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "engine",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// lookupScene creates the scene or exits with a hint.
func lookupScene(id string) registry.Scene {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'engine list' to see available scenes.")
		os.Exit(1)
	}

	scene, err := registry.Create(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}
	return scene
}

// createWindow opens the window from the first settings document found,
// or from the embedded defaults.
func createWindow(e *engine.Engine) error {
	if path := config.FindSettings(flagSettings); path != "" {
		return e.CreateWindowFromSettings(path)
	}
	e.Logger().Debug("no settings file found, using defaults")
	return e.CreateWindowWithSettings(config.DefaultSettings())
}

// execute runs the full lifecycle of one engine and returns its frame
// summary. The engine is always closed, even when the window fails.
func execute(e *engine.Engine, hooks engine.Hooks) (timing.Sample, error) {
	if err := createWindow(e); err != nil {
		return timing.Sample{}, errors.Join(err, e.Close())
	}

	runErr := e.Run(hooks)
	summary := e.Summary()
	return summary, errors.Join(runErr, e.Close())
}

// saveRun records a finished run. Failures are reported but not fatal.
func saveRun(logger *log.Logger, sceneID, backend string, summary timing.Sample) {
	if summary.Frames == 0 {
		return
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("could not open run history", "err", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveRun(sceneID, backend, summary); err != nil {
		logger.Warn("could not save run", "err", err)
	}
}
