// Package config persists named setups (target window, key sequence, timing,
// hotkey) as YAML files under the user's config directory, and owns the
// user-facing interval grammar.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"specinput/internal/model"
)

// setupFile is the on-disk shape of a setup. Durations are stored in the
// user-facing interval grammar so the files stay hand-editable.
type setupFile struct {
	WindowID    string         `yaml:"window_id,omitempty"`
	WindowTitle string         `yaml:"window_title,omitempty"`
	Interval    string         `yaml:"interval"`
	Keybind     string         `yaml:"keybind,omitempty"`
	Keys        []setupFileKey `yaml:"keys"`
}

type setupFileKey struct {
	Key    string  `yaml:"key"`
	Hold   float64 `yaml:"hold,omitempty"`   // seconds
	Repeat int     `yaml:"repeat,omitempty"` // default 1
	Wait   float64 `yaml:"wait,omitempty"`   // seconds
}

// Manager saves and loads setups in a directory, one <name>.yaml per setup.
type Manager struct {
	dir string
}

// NewManager returns a Manager rooted at dir, creating it if needed.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create setup dir: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// DefaultDir returns the standard setups location under the user config dir.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "specinput", "setups"), nil
}

// List returns the available setup names, sorted.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read setup dir: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a setup with the given name is saved.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.path(name))
	return err == nil
}

// Save writes the setup under its name, overwriting any existing file.
func (m *Manager) Save(setup model.Setup) error {
	if err := validateName(setup.Name); err != nil {
		return err
	}
	sf := setupFile{
		WindowID:    setup.WindowID,
		WindowTitle: setup.WindowTitle,
		Interval:    FormatInterval(setup.Interval),
		Keybind:     setup.Keybind,
	}
	for _, k := range setup.Keys {
		sf.Keys = append(sf.Keys, setupFileKey{
			Key:    k.Key,
			Hold:   k.Hold.Seconds(),
			Repeat: k.Repeat,
			Wait:   k.Wait.Seconds(),
		})
	}
	data, err := yaml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("encode setup %q: %w", setup.Name, err)
	}
	if err := os.WriteFile(m.path(setup.Name), data, 0o644); err != nil {
		return fmt.Errorf("write setup %q: %w", setup.Name, err)
	}
	return nil
}

// Load reads a setup by name.
func (m *Manager) Load(name string) (model.Setup, error) {
	if err := validateName(name); err != nil {
		return model.Setup{}, err
	}
	data, err := os.ReadFile(m.path(name))
	if err != nil {
		return model.Setup{}, fmt.Errorf("read setup %q: %w", name, err)
	}
	var sf setupFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return model.Setup{}, fmt.Errorf("parse setup %q: %w", name, err)
	}

	setup := model.Setup{
		Name:        name,
		WindowID:    sf.WindowID,
		WindowTitle: sf.WindowTitle,
		Keybind:     sf.Keybind,
	}
	if sf.Interval != "" {
		setup.Interval, err = ParseInterval(sf.Interval)
		if err != nil {
			return model.Setup{}, fmt.Errorf("setup %q: %w", name, err)
		}
	}
	for _, k := range sf.Keys {
		cfg := model.KeyConfig{
			Hold:   secondsToDuration(k.Hold),
			Repeat: k.Repeat,
			Wait:   secondsToDuration(k.Wait),
		}
		if cfg.Repeat < 1 {
			cfg.Repeat = 1
		}
		setup.Keys = append(setup.Keys, model.KeyEntry{Key: strings.ToLower(k.Key), KeyConfig: cfg})
	}
	return setup, nil
}

// Delete removes a saved setup.
func (m *Manager) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(m.path(name)); err != nil {
		return fmt.Errorf("delete setup %q: %w", name, err)
	}
	return nil
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name+".yaml")
}

// validateName keeps setup names usable as file names and inside the dir.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("setup name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("invalid setup name %q", name)
	}
	return nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
