package model

import (
	"fmt"
	"strings"
	"time"
)

// DefaultHold is how long a key is held down when no explicit hold time is set.
const DefaultHold = 100 * time.Millisecond

// KeyConfig controls the timing of a single key within a sequence.
type KeyConfig struct {
	// Hold is how long the key stays pressed before release.
	Hold time.Duration `yaml:"hold"`
	// Repeat is how many times the key is pressed per cycle (min 1).
	Repeat int `yaml:"repeat"`
	// Wait is the pause after the key (and between repeats).
	Wait time.Duration `yaml:"wait"`
}

// DefaultKeyConfig returns the timing applied to keys the user has not tuned.
func DefaultKeyConfig() KeyConfig {
	return KeyConfig{Hold: DefaultHold, Repeat: 1}
}

// KeyEntry pairs a key-symbol token with its timing configuration. Entries
// are kept in the order the user wrote them; delivery order matters.
type KeyEntry struct {
	Key string `yaml:"key"`
	KeyConfig `yaml:",inline"`
}

// Setup is the full automation configuration: which window to target, what
// keys to send, how often, and which global hotkey toggles the loop.
type Setup struct {
	Name        string        `yaml:"-"`
	WindowID    string        `yaml:"window_id"`
	WindowTitle string        `yaml:"window_title"`
	Interval    time.Duration `yaml:"interval"`
	Keybind     string        `yaml:"keybind"`
	Keys        []KeyEntry    `yaml:"keys"`
}

// ParseKeys splits a space-separated key sequence ("w a s d") into ordered
// entries with default timing. It rejects an empty sequence and duplicate
// tokens.
func ParseKeys(s string) ([]KeyEntry, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("key sequence is empty")
	}
	seen := make(map[string]bool, len(fields))
	entries := make([]KeyEntry, 0, len(fields))
	for _, f := range fields {
		token := strings.ToLower(f)
		if seen[token] {
			return nil, fmt.Errorf("duplicate key %q in sequence", token)
		}
		seen[token] = true
		entries = append(entries, KeyEntry{Key: token, KeyConfig: DefaultKeyConfig()})
	}
	return entries, nil
}

// KeyNames returns just the ordered key tokens of a sequence.
func KeyNames(entries []KeyEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Key
	}
	return names
}
