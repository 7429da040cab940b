package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/platform/desktop"
	"github.com/vovakirdan/arcade-engine/internal/registry"
	"github.com/vovakirdan/arcade-engine/internal/timing"
)

var runCmd = &cobra.Command{
	Use:   "run <scene>",
	Short: "Open a window and run a scene",
	Long: `Open an OpenGL window configured from the settings document and run
the specified scene until the window is closed.

Settings are read from --settings, then ~/.arcade-engine/settings.{json,yaml},
then ./configs/settings.{json,yaml}. Without any of them the built-in
defaults are used (800x600, centered, vsync on).

Controls:
  Esc   - Close the window

Examples:
  engine run orbit
  engine run blank --settings ./configs/settings.json
  engine run orbit --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

// withVersion logs the OpenGL version once the context exists.
type withVersion struct {
	registry.Scene
	backend *desktop.Backend
}

func (s withVersion) Load(e *engine.Engine) error {
	e.Logger().Info("opengl context ready", "version", s.backend.Version())
	return s.Scene.Load(e)
}

func runRun(cmd *cobra.Command, args []string) {
	sceneID := args[0]
	scene := lookupScene(sceneID)

	logger := newLogger(os.Stderr)
	backend := desktop.New()
	e := engine.New(backend, engine.WithLogger(logger))

	logger.Info("starting scene", "scene", sceneID, "os", e.Platform().OS)
	summary, err := execute(e, withVersion{Scene: scene, backend: backend})
	if err != nil {
		logger.Error("engine stopped", "err", err)
		os.Exit(1)
	}

	logger.Info("scene finished",
		"frames", summary.Frames,
		"runtime", e.ProgramRuntime(timing.Seconds),
		"fps", summary.FPS,
	)
	saveRun(logger, sceneID, "desktop", summary)
}
