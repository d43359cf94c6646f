package model

import "fmt"

// Window represents an on-screen window as reported by the window manager.
// The ID is an opaque handle (e.g. "0x04a00007") that is only meaningful to
// the external tools; it is produced fresh on each listing and never persisted.
type Window struct {
	ID      string `yaml:"id"                json:"id"`
	Title   string `yaml:"title"             json:"title"`
	Class   string `yaml:"class,omitempty"   json:"class,omitempty"`
	Desktop int    `yaml:"desktop,omitempty" json:"desktop,omitempty"`
}

// Label returns the display string used in window pickers.
func (w Window) Label() string {
	if w.Class == "" {
		return w.Title
	}
	return fmt.Sprintf("%s (%s)", w.Title, w.Class)
}
