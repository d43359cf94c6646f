//go:build !linux

package hotkey

import "fmt"

// Listener is a stub on platforms without a hotkey backend.
type Listener struct{}

// Listen fails on unsupported platforms; callers degrade to panel-only
// toggling.
func Listen(binding string, onPress func()) (*Listener, error) {
	if _, _, err := ParseBinding(binding); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("global hotkeys are only supported on linux")
}

func (l *Listener) Close() error { return nil }
