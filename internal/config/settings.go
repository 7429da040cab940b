package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// ErrNotObject is returned when a settings document's top level is not a mapping.
var ErrNotObject = errors.New("config: settings root is not an object")

// Settings is a parsed key/value settings document.
// JSON documents are accepted as YAML flow syntax.
type Settings struct {
	path string
	root *yaml.Node // mapping node
}

// LoadSettings reads and parses the settings document at path.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read settings %s: %w", path, err)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("config: failed to parse settings %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// ParseSettings parses a settings document from memory.
func ParseSettings(data []byte) (*Settings, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, ErrNotObject
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotObject
	}
	return &Settings{root: root}, nil
}

// DefaultSettings returns the embedded default settings document.
func DefaultSettings() *Settings {
	s, err := ParseSettings(defaultSettingsYAML)
	if err != nil {
		// Embedded data is fixed at build time
		panic(fmt.Sprintf("config: embedded settings are invalid: %v", err))
	}
	s.path = "<embedded>"
	return s
}

// Path returns the file the settings were loaded from, if any.
func (s *Settings) Path() string {
	return s.path
}

// Lookup returns the top-level value for key, or a missing Value.
func (s *Settings) Lookup(key string) Value {
	return lookup(s.root, key)
}

// FindSettings returns the settings file to use.
// Search order: customPath -> ~/.arcade-engine/settings.{json,yaml} ->
// ./configs/settings.{json,yaml}. Returns "" when nothing is found, in which
// case callers fall back to DefaultSettings.
func FindSettings(customPath string) string {
	if customPath != "" {
		return customPath
	}

	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".arcade-engine", "settings.json"),
			filepath.Join(home, ".arcade-engine", "settings.yaml"),
		)
	}
	candidates = append(candidates,
		filepath.Join("configs", "settings.json"),
		filepath.Join("configs", "settings.yaml"),
	)

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
