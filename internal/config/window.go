package config

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-engine/internal/core"
)

// Startup is what the engine reads from a settings document.
type Startup struct {
	Window     core.WindowConfig
	ResPath    string
	HasResPath bool
}

// StartupFromSettings extracts the window configuration and resource path.
//
// Every field degrades independently: a missing or mistyped field logs a
// warning and keeps its default. Nothing here aborts window creation, even
// when width and height are both absent.
func StartupFromSettings(s *Settings, logger *log.Logger) Startup {
	out := Startup{Window: core.DefaultWindowConfig()}

	window := s.Lookup("window")
	resPath := s.Lookup("respath")

	if window.Type() != TypeObject {
		logger.Warn("settings file does not contain valid window data")
	} else {
		applyWindow(&out.Window, window, logger)
	}

	if resPath.Exists() {
		if p, ok := resPath.Text(); ok {
			out.ResPath = p
			out.HasResPath = true
		} else {
			logger.Warn("respath attribute provided, but is not of type string", "type", resPath.Type())
		}
	}

	return out
}

// applyWindow overwrites the fields of cfg that are present and well typed.
func applyWindow(cfg *core.WindowConfig, window Value, logger *log.Logger) {
	// height, width and title are required
	requiredSize(window, "height", &cfg.Height, logger)
	requiredSize(window, "width", &cfg.Width, logger)

	if v, ok := window.Lookup("title").Text(); ok {
		cfg.Title = v
	} else {
		logger.Warn("title attribute must be of type string", "type", window.Lookup("title").Type())
	}

	optionalNumber(window, "posx", &cfg.XPos, logger)
	optionalNumber(window, "posy", &cfg.YPos, logger)
	optionalBool(window, "fullscreen", &cfg.Fullscreen, logger)
	optionalBool(window, "center", &cfg.Centered, logger)
	optionalBool(window, "vsync", &cfg.VSync, logger)
}

// requiredSize reads a window dimension. Anything but a positive number that
// fits in an int32 keeps the default.
func requiredSize(window Value, key string, dst *int, logger *log.Logger) {
	field := window.Lookup(key)
	v, ok := field.Number()
	if !ok {
		logger.Warn(key+" attribute must be of type number", "type", field.Type())
		return
	}
	n, ok := toInt32(v)
	if !ok || n <= 0 {
		logger.Warn(key+" attribute must be a positive integer", "value", v)
		return
	}
	*dst = n
}

func optionalNumber(window Value, key string, dst *int, logger *log.Logger) {
	field := window.Lookup(key)
	if !field.Exists() {
		return
	}
	v, ok := field.Number()
	if !ok {
		logger.Warn(key+" attribute provided, but is not of type number", "type", field.Type())
		return
	}
	n, ok := toInt32(v)
	if !ok {
		logger.Warn(key+" attribute provided, but is out of range", "value", v)
		return
	}
	*dst = n
}

// toInt32 truncates v and reports whether it is finite and within int32.
func toInt32(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

func optionalBool(window Value, key string, dst *bool, logger *log.Logger) {
	field := window.Lookup(key)
	if !field.Exists() {
		return
	}
	if v, ok := field.Bool(); ok {
		*dst = v
		return
	}
	logger.Warn(key+" attribute provided, but is not of type boolean", "type", field.Type())
}
