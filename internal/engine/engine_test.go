package engine

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/timing"
)

// recorder collects calls from the fakes in order. Background workers
// write to it too, so it is locked.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.list() {
		if c == call {
			n++
		}
	}
	return n
}

func (r *recorder) index(call string) int {
	for i, c := range r.list() {
		if c == call {
			return i
		}
	}
	return -1
}

type fakeBackend struct {
	rec         *recorder
	initErr     error
	createErr   error
	bindingsErr error
	closeAfter  int
	onPoll      func()

	created core.WindowConfig
	flags   core.WindowFlags
	window  *fakeWindow
}

func (b *fakeBackend) Init() error {
	b.rec.add("init")
	return b.initErr
}

func (b *fakeBackend) CreateWindow(cfg core.WindowConfig, flags core.WindowFlags) (Window, error) {
	b.rec.add("create")
	if b.createErr != nil {
		return nil, b.createErr
	}
	b.created = cfg
	b.flags = flags
	b.window = &fakeWindow{rec: b.rec, closeAfter: b.closeAfter, onPoll: b.onPoll, interval: -1}
	return b.window, nil
}

func (b *fakeBackend) LoadBindings() error {
	b.rec.add("bindings")
	return b.bindingsErr
}

func (b *fakeBackend) Terminate() {
	b.rec.add("terminate")
}

// fakeWindow reports a close request once closeAfter polls have happened.
type fakeWindow struct {
	rec        *recorder
	closeAfter int
	onPoll     func()

	polls     int
	closing   bool
	interval  int
	depthTest bool
}

func (w *fakeWindow) SwapInterval(n int)               { w.interval = n }
func (w *fakeWindow) EnableDepthTest()                 { w.depthTest = true }
func (w *fakeWindow) SetClearColor(r, g, b, a float32) {}
func (w *fakeWindow) Clear()                           { w.rec.add("clear") }
func (w *fakeWindow) SwapBuffers()                     { w.rec.add("swap") }
func (w *fakeWindow) SetShouldClose(close bool)        { w.closing = close }
func (w *fakeWindow) FramebufferSize() (int, int)      { return 800, 600 }
func (w *fakeWindow) Destroy()                         { w.rec.add("destroy") }

func (w *fakeWindow) PollEvents() {
	w.rec.add("poll")
	w.polls++
	if w.onPoll != nil {
		w.onPoll()
	}
}

func (w *fakeWindow) ShouldClose() bool {
	return w.closing || w.polls >= w.closeAfter
}

type manualClock struct {
	now time.Duration
}

func (c *manualClock) Now() time.Duration { return c.now }

func recordingHooks(rec *recorder) HookFuncs {
	return HookFuncs{
		OnLoad:   func(*Engine) error { rec.add("load"); return nil },
		OnInit:   func(*Engine) { rec.add("hook-init") },
		OnUpdate: func(*Engine) { rec.add("update") },
		OnRender: func(*Engine) { rec.add("render") },
	}
}

func TestNewIsPlatformReady(t *testing.T) {
	e := New(&fakeBackend{rec: &recorder{}})

	if e.State() != StatePlatformReady {
		t.Errorf("Expected %v, got %v", StatePlatformReady, e.State())
	}
	if e.Platform() != core.DetectPlatform() {
		t.Errorf("Unexpected platform %+v", e.Platform())
	}
	if e.Window() != nil {
		t.Error("Expected no window before CreateWindow")
	}
}

func TestCreateWindow(t *testing.T) {
	rec := &recorder{}
	b := &fakeBackend{rec: rec}
	e := New(b)

	cfg := core.NewWindowConfig(1024, 768)
	cfg.Fullscreen = true
	if err := e.CreateWindow(cfg); err != nil {
		t.Fatalf("CreateWindow() failed: %v", err)
	}

	if got := strings.Join(rec.list(), ","); got != "init,create,bindings" {
		t.Errorf("Unexpected call order %s", got)
	}
	if b.created != cfg {
		t.Errorf("Expected %+v, got %+v", cfg, b.created)
	}
	if !b.flags.Has(core.WindowFullScreen) {
		t.Error("Expected fullscreen flag")
	}
	if e.State() != StateWindowReady {
		t.Errorf("Expected %v, got %v", StateWindowReady, e.State())
	}

	// A second window is not allowed
	if err := e.CreateWindow(cfg); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState, got %v", err)
	}
}

func TestCreateWindowFailures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		backend *fakeBackend
		want    error
	}{
		{"init fails", &fakeBackend{initErr: boom}, ErrWindowInit},
		{"create fails", &fakeBackend{createErr: boom}, ErrWindowInit},
		{"bindings fail", &fakeBackend{bindingsErr: boom}, ErrBindings},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.backend.rec = &recorder{}
			e := New(tc.backend, WithLogger(log.New(&buf)))

			err := e.CreateWindow(core.DefaultWindowConfig())
			if !errors.Is(err, tc.want) {
				t.Fatalf("Expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, boom) {
				t.Errorf("Expected cause to be wrapped, got %v", err)
			}
			if !strings.Contains(buf.String(), "ERRO") {
				t.Errorf("Expected error log, got:\n%s", buf.String())
			}
			if e.State() == StateWindowReady {
				t.Error("Engine must not be window-ready after a failure")
			}
			if err := e.Run(HookFuncs{}); !errors.Is(err, ErrInvalidState) {
				t.Errorf("Expected Run to refuse, got %v", err)
			}
		})
	}
}

func TestCreateWindowFromSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	doc := `{"window":{"height":"tall","width":1280,"title":"From File","vsync":false},"respath":"assets"}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	b := &fakeBackend{rec: &recorder{}}
	e := New(b)
	if err := e.CreateWindowFromSettings(path); err != nil {
		t.Fatalf("CreateWindowFromSettings() failed: %v", err)
	}

	want := core.DefaultWindowConfig()
	want.Width = 1280
	want.Title = "From File"
	want.VSync = false
	if b.created != want {
		t.Errorf("Expected %+v, got %+v", want, b.created)
	}
	if e.ResPath() != "assets" {
		t.Errorf("Expected resource path assets, got %q", e.ResPath())
	}
}

func TestCreateWindowFromMissingSettings(t *testing.T) {
	var buf bytes.Buffer
	b := &fakeBackend{rec: &recorder{}}
	e := New(b, WithLogger(log.New(&buf)))

	if err := e.CreateWindowFromSettings(filepath.Join(t.TempDir(), "nope.json")); err != nil {
		t.Fatalf("Expected fallback to defaults, got %v", err)
	}
	if b.created != core.DefaultWindowConfig() {
		t.Errorf("Expected default config, got %+v", b.created)
	}
	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("Expected warning, got:\n%s", buf.String())
	}
	if e.ResPath() != "" {
		t.Errorf("Expected empty resource path, got %q", e.ResPath())
	}
}

func TestRunIterationsUntilClose(t *testing.T) {
	for _, k := range []int{0, 1, 5, 120} {
		rec := &recorder{}
		b := &fakeBackend{rec: rec, closeAfter: k}
		e := New(b)
		if err := e.CreateWindow(core.DefaultWindowConfig()); err != nil {
			t.Fatal(err)
		}

		if err := e.Run(recordingHooks(rec)); err != nil {
			t.Fatalf("Run() failed: %v", err)
		}

		for _, call := range []string{"update", "render", "swap", "poll", "clear"} {
			if n := rec.count(call); n != k {
				t.Errorf("k=%d: expected %d %s calls, got %d", k, k, call, n)
			}
		}
		if rec.count("load") != 1 || rec.count("hook-init") != 1 {
			t.Errorf("k=%d: load and init must run exactly once", k)
		}
		if e.State() != StateClosing {
			t.Errorf("k=%d: expected %v, got %v", k, StateClosing, e.State())
		}
		if got := e.Summary().Frames; got != uint64(k) {
			t.Errorf("k=%d: expected %d frames recorded, got %d", k, k, got)
		}
	}
}

func TestRunOrder(t *testing.T) {
	rec := &recorder{}
	b := &fakeBackend{rec: rec, closeAfter: 2}
	e := New(b)
	if err := e.CreateWindow(core.DefaultWindowConfig()); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(recordingHooks(rec)); err != nil {
		t.Fatal(err)
	}

	want := "init,create,bindings,load,hook-init," +
		"update,render,swap,poll,clear," +
		"update,render,swap,poll,clear"
	if got := strings.Join(rec.list(), ","); got != want {
		t.Errorf("Unexpected order:\n got %s\nwant %s", got, want)
	}
	if b.window.interval != 1 || !b.window.depthTest {
		t.Errorf("Expected vsync interval 1 and depth test, got %d %v", b.window.interval, b.window.depthTest)
	}
}

func TestRunWithoutVSync(t *testing.T) {
	b := &fakeBackend{rec: &recorder{}}
	e := New(b)
	cfg := core.DefaultWindowConfig()
	cfg.VSync = false
	if err := e.CreateWindow(cfg); err != nil {
		t.Fatal(err)
	}
	if err := e.Run(HookFuncs{}); err != nil {
		t.Fatal(err)
	}
	if b.window.interval != 0 {
		t.Errorf("Expected swap interval 0, got %d", b.window.interval)
	}
}

func TestRunLoadErrorStopsBeforeLoop(t *testing.T) {
	rec := &recorder{}
	b := &fakeBackend{rec: rec, closeAfter: 10}
	e := New(b)
	if err := e.CreateWindow(core.DefaultWindowConfig()); err != nil {
		t.Fatal(err)
	}

	hooks := recordingHooks(rec)
	boom := errors.New("missing asset")
	hooks.OnLoad = func(*Engine) error { return boom }
	if err := e.Run(hooks); !errors.Is(err, boom) {
		t.Fatalf("Expected load error, got %v", err)
	}
	if rec.count("render") != 0 || rec.count("hook-init") != 0 {
		t.Error("No frames or init expected after a load failure")
	}
}

func TestCloseProgramFromRender(t *testing.T) {
	rec := &recorder{}
	b := &fakeBackend{rec: rec, closeAfter: 1000}
	e := New(b)
	if err := e.CreateWindow(core.DefaultWindowConfig()); err != nil {
		t.Fatal(err)
	}

	frames := 0
	err := e.Run(HookFuncs{OnRender: func(e *Engine) {
		frames++
		if frames == 3 {
			e.CloseProgram()
		}
	}})
	if err != nil {
		t.Fatal(err)
	}
	if frames != 3 {
		t.Errorf("Expected 3 frames, got %d", frames)
	}
	// CloseProgram does not tear anything down
	if rec.count("destroy") != 0 {
		t.Error("CloseProgram must not destroy the window")
	}
}

func TestFrameTiming(t *testing.T) {
	clock := &manualClock{}
	rec := &recorder{}
	b := &fakeBackend{
		rec:        rec,
		closeAfter: 25,
		onPoll:     func() { clock.now += 100 * time.Millisecond },
	}

	var samples []timing.Sample
	var logBuf bytes.Buffer
	logger := log.New(&logBuf)
	logger.SetLevel(log.DebugLevel)
	e := New(b,
		WithClock(clock),
		WithLogger(logger),
		WithFrameObserver(func(s timing.Sample) { samples = append(samples, s) }),
	)
	if err := e.CreateWindow(core.DefaultWindowConfig()); err != nil {
		t.Fatal(err)
	}

	// Time spent before the loop must not count
	clock.now += time.Hour
	if err := e.Run(HookFuncs{}); err != nil {
		t.Fatal(err)
	}

	if len(samples) != 2 {
		t.Fatalf("Expected 2 rollovers in 25 frames of 100ms, got %d", len(samples))
	}
	for i, s := range samples {
		if s.FPS != 10 {
			t.Errorf("Sample %d: expected FPS 10, got %d", i, s.FPS)
		}
	}
	if samples[1].Frames != 20 {
		t.Errorf("Expected second rollover at frame 20, got %d", samples[1].Frames)
	}
	if e.FPS() != 10 {
		t.Errorf("Expected FPS 10, got %d", e.FPS())
	}
	if got := e.ProgramRuntime(timing.Seconds); got < 2.49 || got > 2.51 {
		t.Errorf("Expected runtime 2.5s, got %f", got)
	}
	if got := e.ProgramRuntime(timing.Milliseconds); got < 2499 || got > 2501 {
		t.Errorf("Expected runtime 2500ms, got %f", got)
	}
	if got := e.DeltaTime(); got < 0.099 || got > 0.101 {
		t.Errorf("Expected delta 0.1s, got %f", got)
	}
	if !strings.Contains(logBuf.String(), "frames per second") {
		t.Errorf("Expected FPS log line, got:\n%s", logBuf.String())
	}
}

func TestTeardownJoinsBeforeRelease(t *testing.T) {
	rec := &recorder{}
	b := &fakeBackend{rec: rec, closeAfter: 3}
	e := New(b)
	if err := e.CreateWindow(core.DefaultWindowConfig()); err != nil {
		t.Fatal(err)
	}

	if err := e.Go(func() error {
		time.Sleep(20 * time.Millisecond)
		rec.add("worker-done")
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	if err := e.Run(HookFuncs{}); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	done, destroy, terminate := rec.index("worker-done"), rec.index("destroy"), rec.index("terminate")
	if done < 0 || destroy < 0 || terminate < 0 {
		t.Fatalf("Missing teardown calls: %v", rec.list())
	}
	if !(done < destroy && destroy < terminate) {
		t.Errorf("Expected join -> destroy -> terminate, got %v", rec.list())
	}
	if e.State() != StateTerminated {
		t.Errorf("Expected %v, got %v", StateTerminated, e.State())
	}
	if e.Window() != nil {
		t.Error("Expected window to be released")
	}

	// Second Close is a no-op
	if err := e.Close(); err != nil {
		t.Errorf("Second Close() failed: %v", err)
	}
	if rec.count("destroy") != 1 || rec.count("terminate") != 1 {
		t.Errorf("Expected a single release, got %v", rec.list())
	}
}

func TestCloseReportsWorkerError(t *testing.T) {
	e := New(&fakeBackend{rec: &recorder{}})
	boom := errors.New("worker failed")
	if err := e.Go(func() error { return boom }); err != nil {
		t.Fatal(err)
	}

	if err := e.Close(); !errors.Is(err, boom) {
		t.Errorf("Expected worker error, got %v", err)
	}
}

func TestGoAfterCloseRefused(t *testing.T) {
	e := New(&fakeBackend{rec: &recorder{}})
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}

	var started atomic.Bool
	err := e.Go(func() error {
		started.Store(true)
		return nil
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("Expected ErrInvalidState, got %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if started.Load() {
		t.Error("Worker must not start after Close")
	}
}

func TestBindingsFailureReleasesWindow(t *testing.T) {
	rec := &recorder{}
	b := &fakeBackend{rec: rec, bindingsErr: errors.New("no GL")}
	e := New(b)

	if err := e.CreateWindow(core.DefaultWindowConfig()); !errors.Is(err, ErrBindings) {
		t.Fatalf("Expected ErrBindings, got %v", err)
	}
	if e.Window() != nil {
		t.Error("Expected window to be released after bindings failure")
	}
	if rec.count("destroy") != 1 {
		t.Errorf("Expected the window to be destroyed once, got %v", rec.list())
	}

	// A retry creates exactly one new window and nothing leaks
	b.bindingsErr = nil
	if err := e.CreateWindow(core.DefaultWindowConfig()); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if rec.count("create") != 2 {
		t.Errorf("Expected two window creations, got %v", rec.list())
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.count("destroy") != 2 {
		t.Errorf("Expected every window destroyed, got %v", rec.list())
	}
}

func TestCloseWithoutWindow(t *testing.T) {
	rec := &recorder{}
	b := &fakeBackend{rec: rec, initErr: errors.New("no display")}
	e := New(b)
	_ = e.CreateWindow(core.DefaultWindowConfig())

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.count("destroy") != 0 || rec.count("terminate") != 0 {
		t.Errorf("Nothing to release after failed init, got %v", rec.list())
	}
}

func TestResPath(t *testing.T) {
	e := New(&fakeBackend{rec: &recorder{}})
	if e.ResPath() != "" {
		t.Errorf("Expected empty resource path, got %q", e.ResPath())
	}
	e.SetResPath("/srv/res")
	if e.ResPath() != "/srv/res" {
		t.Errorf("Expected /srv/res, got %q", e.ResPath())
	}
}
