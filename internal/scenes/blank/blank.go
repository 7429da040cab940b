// Package blank registers a scene that only sets a clear color. It
// exercises the bare loop: present, poll, clear and frame timing.
package blank

import (
	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
	"github.com/vovakirdan/arcade-engine/internal/registry"
)

func init() {
	registry.Register("blank", func() registry.Scene { return New() })
}

// Scene has no per-frame behavior.
type Scene struct {
	engine.HookFuncs
}

// New creates a blank scene.
func New() *Scene {
	return &Scene{
		HookFuncs: engine.HookFuncs{
			OnInit: func(e *engine.Engine) {
				e.Window().SetClearColor(core.ColorSlate.RGBA())
			},
		},
	}
}

// ID implements registry.Scene.
func (s *Scene) ID() string { return "blank" }

// Title implements registry.Scene.
func (s *Scene) Title() string { return "Blank" }
