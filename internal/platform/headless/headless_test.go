package headless

import (
	"testing"
	"time"

	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
)

func TestEngineRunsForMaxFrames(t *testing.T) {
	b := New(Options{MaxFrames: 30})
	e := engine.New(b)
	if err := e.CreateWindow(core.DefaultWindowConfig()); err != nil {
		t.Fatalf("CreateWindow() failed: %v", err)
	}

	renders := 0
	if err := e.Run(engine.HookFuncs{OnRender: func(*engine.Engine) { renders++ }}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if renders != 30 {
		t.Errorf("Expected 30 renders, got %d", renders)
	}
	w := e.Window().(*Window)
	if w.Frames() != 30 {
		t.Errorf("Expected 30 presented frames, got %d", w.Frames())
	}

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if !w.Destroyed() {
		t.Error("Expected window to be destroyed on Close")
	}
}

func TestSingleWindow(t *testing.T) {
	b := New(Options{})
	if _, err := b.CreateWindow(core.DefaultWindowConfig(), 0); err != nil {
		t.Fatal(err)
	}
	if _, err := b.CreateWindow(core.DefaultWindowConfig(), 0); err != ErrAlreadyCreated {
		t.Errorf("Expected ErrAlreadyCreated, got %v", err)
	}
}

func TestPacing(t *testing.T) {
	b := New(Options{MaxFrames: 6, RefreshRate: 100})
	w, err := b.CreateWindow(core.DefaultWindowConfig(), 0)
	if err != nil {
		t.Fatal(err)
	}
	w.SwapInterval(1)

	start := time.Now()
	for !w.ShouldClose() {
		w.SwapBuffers()
		w.PollEvents()
	}
	// Five waits of 10ms between six swaps
	if elapsed := time.Since(start); elapsed < 45*time.Millisecond {
		t.Errorf("Expected paced frames to take at least 45ms, took %v", elapsed)
	}
}

func TestFullscreenFlagAndSize(t *testing.T) {
	b := New(Options{})
	cfg := core.NewWindowConfig(320, 200)
	win, err := b.CreateWindow(cfg, core.WindowFullScreen)
	if err != nil {
		t.Fatal(err)
	}
	w := win.(*Window)
	if !w.fullscreen {
		t.Error("Expected fullscreen")
	}
	if width, height := w.FramebufferSize(); width != 320 || height != 200 {
		t.Errorf("Expected 320x200, got %dx%d", width, height)
	}
}
