package main

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/platform/headless"
	"github.com/vovakirdan/arcade-engine/internal/platform/tui"
	"github.com/vovakirdan/arcade-engine/internal/registry"
	"github.com/vovakirdan/arcade-engine/internal/timing"
)

var (
	flagFrames  int
	flagRefresh int
	flagPlain   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <scene>",
	Short: "Run a scene without a display and report frame timing",
	Long: `Run the specified scene on the headless backend for a fixed number of
frames. No window or GPU is needed.

When stdout is a terminal a live dashboard shows the frame rate and
progress; otherwise one log line is written per second of runtime.

With --refresh and vsync enabled in the settings, buffer swaps are paced
to the given refresh rate like a real display.

Controls:
  Q/Esc/Ctrl+C  - Stop early

Examples:
  engine bench blank
  engine bench orbit --frames 100000
  engine bench orbit --refresh 60
  engine bench orbit --plain > bench.log`,
	Args: cobra.ExactArgs(1),
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagFrames, "frames", 600, "Number of frames to run (0 = until stopped)")
	benchCmd.Flags().IntVar(&flagRefresh, "refresh", 0, "Emulated display refresh rate in Hz (0 = unpaced)")
	benchCmd.Flags().BoolVar(&flagPlain, "plain", false, "Disable the live dashboard")
}

// stoppable closes the program from the render goroutine once stop is set.
type stoppable struct {
	registry.Scene
	stop *atomic.Bool
}

func (s stoppable) Update(e *engine.Engine) {
	if s.stop.Load() {
		e.CloseProgram()
	}
	s.Scene.Update(e)
}

func runBench(cmd *cobra.Command, args []string) {
	sceneID := args[0]
	scene := lookupScene(sceneID)

	if flagFrames < 0 {
		fmt.Fprintln(os.Stderr, "Error: --frames must not be negative")
		os.Exit(1)
	}

	var stop atomic.Bool
	hooks := stoppable{Scene: scene, stop: &stop}
	backend := headless.New(headless.Options{
		MaxFrames:   flagFrames,
		RefreshRate: flagRefresh,
	})

	var (
		summary timing.Sample
		err     error
		logger  = newLogger(os.Stderr)
	)

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		summary, err = benchDashboard(scene.Title(), backend, hooks, &stop)
	} else {
		summary, err = benchPlain(logger, backend, hooks)
	}
	if err != nil {
		logger.Error("bench failed", "scene", sceneID, "err", err)
		os.Exit(1)
	}

	fmt.Printf("Bench - %s\n", scene.Title())
	fmt.Println()
	fmt.Printf("  Frames:   %d\n", summary.Frames)
	fmt.Printf("  Runtime:  %s\n", time.Duration(summary.TotalNanos).Round(time.Millisecond))
	if summary.TotalNanos > 0 {
		avg := float64(summary.Frames) / (float64(summary.TotalNanos) / float64(timing.NanosPerSecond))
		fmt.Printf("  Avg FPS:  %.1f\n", avg)
	}

	saveRun(logger, sceneID, "headless", summary)
}

func benchPlain(logger *log.Logger, backend engine.Backend, hooks engine.Hooks) (timing.Sample, error) {
	e := engine.New(backend,
		engine.WithLogger(logger),
		engine.WithFrameObserver(func(s timing.Sample) {
			logger.Info("frame sample", "fps", s.FPS, "frames", s.Frames, "delta", s.Delta)
		}),
	)
	return execute(e, hooks)
}

func benchDashboard(title string, backend engine.Backend, hooks engine.Hooks, stop *atomic.Bool) (timing.Sample, error) {
	model := tui.NewBenchModel(title, uint64(flagFrames), func() { stop.Store(true) })

	// The dashboard owns the terminal, so engine logs are dropped
	quiet := newLogger(io.Discard)

	final, err := tui.RunBench(model, func(send func(tea.Msg)) {
		e := engine.New(backend,
			engine.WithLogger(quiet),
			engine.WithFrameObserver(func(s timing.Sample) {
				send(tui.SampleMsg(s))
			}),
		)
		go func() {
			summary, err := execute(e, hooks)
			send(tui.DoneMsg{Summary: summary, Err: err})
		}()
	})
	if err != nil {
		stop.Store(true)
		return timing.Sample{}, fmt.Errorf("bench dashboard: %w", err)
	}

	return final.Result()
}
