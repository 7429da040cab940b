package engine

// State is a step in the engine lifecycle.
type State int

const (
	StateUninitialized State = iota
	StatePlatformReady
	StateWindowReady
	StateRunning
	StateClosing
	StateTerminated
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StatePlatformReady:
		return "platform-ready"
	case StateWindowReady:
		return "window-ready"
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
