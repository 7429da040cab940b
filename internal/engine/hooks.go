package engine

// Hooks are the extension points a scene fills in. The engine only
// guarantees their ordering: Load and Init once before the loop, then
// Update and Render once per frame on the render goroutine.
type Hooks interface {
	Load(e *Engine) error
	Init(e *Engine)
	Update(e *Engine)
	Render(e *Engine)
}

// HookFuncs adapts plain functions to Hooks. Nil fields are no-ops.
type HookFuncs struct {
	OnLoad   func(e *Engine) error
	OnInit   func(e *Engine)
	OnUpdate func(e *Engine)
	OnRender func(e *Engine)
}

// Load calls OnLoad if set.
func (h HookFuncs) Load(e *Engine) error {
	if h.OnLoad == nil {
		return nil
	}
	return h.OnLoad(e)
}

// Init calls OnInit if set.
func (h HookFuncs) Init(e *Engine) {
	if h.OnInit != nil {
		h.OnInit(e)
	}
}

// Update calls OnUpdate if set.
func (h HookFuncs) Update(e *Engine) {
	if h.OnUpdate != nil {
		h.OnUpdate(e)
	}
}

// Render calls OnRender if set.
func (h HookFuncs) Render(e *Engine) {
	if h.OnRender != nil {
		h.OnRender(e)
	}
}
