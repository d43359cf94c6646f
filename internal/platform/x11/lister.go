package x11

import (
	"context"
	"strconv"
	"strings"

	"specinput/internal/model"
	"specinput/internal/platform"
)

// Lister enumerates windows by shelling out to wmctrl, falling back to
// xdotool when wmctrl is absent. A machine with neither tool lists zero
// windows; that is a user-visible "No windows found" state, not a failure.
type Lister struct {
	backend Backend
}

// NewLister probes the available tools and returns a Lister.
func NewLister() *Lister {
	return &Lister{backend: detectListerBackend()}
}

func (l *Lister) ListWindows(ctx context.Context, opts platform.ListOptions) ([]model.Window, error) {
	var windows []model.Window
	switch l.backend {
	case BackendWmctrl:
		windows = l.listWmctrl(ctx)
	case BackendXdotool:
		windows = l.listXdotool(ctx)
	default:
		return []model.Window{}, nil
	}
	if opts.Title == "" {
		return windows, nil
	}
	needle := strings.ToLower(opts.Title)
	filtered := make([]model.Window, 0, len(windows))
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), needle) {
			filtered = append(filtered, w)
		}
	}
	return filtered, nil
}

func (l *Lister) listWmctrl(ctx context.Context) []model.Window {
	out, err := runTool(ctx, "wmctrl", "-lx")
	if err != nil {
		return []model.Window{}
	}
	return parseWmctrlOutput(string(out))
}

// parseWmctrlOutput parses `wmctrl -lx` lines of the form
//
//	0x04a00007  0 gnome-terminal.Gnome-terminal host Window Title
//
// into windows. Desktop-shell surfaces (titles starting with "Desktop") are
// skipped.
func parseWmctrlOutput(out string) []model.Window {
	windows := []model.Window{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if w, ok := parseWmctrlLine(line); ok {
			windows = append(windows, w)
		}
	}
	return windows
}

func parseWmctrlLine(line string) (model.Window, bool) {
	parts := strings.Fields(line)
	if len(parts) < 5 {
		return model.Window{}, false
	}
	title := strings.Join(parts[4:], " ")
	if title == "" || strings.HasPrefix(title, "Desktop") {
		return model.Window{}, false
	}
	desktop, err := strconv.Atoi(parts[1])
	if err != nil {
		desktop = 0
	}
	return model.Window{
		ID:      parts[0],
		Desktop: desktop,
		Class:   parts[2],
		Title:   title,
	}, true
}

func (l *Lister) listXdotool(ctx context.Context) []model.Window {
	out, err := runTool(ctx, "xdotool", "search", "--name", ".*")
	if err != nil {
		return []model.Window{}
	}
	windows := []model.Window{}
	for _, id := range strings.Fields(string(out)) {
		title, err := runTool(ctx, "xdotool", "getwindowname", id)
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(title))
		if name == "" || strings.HasPrefix(name, "Desktop") {
			continue
		}
		w := model.Window{ID: id, Title: name}
		if class, err := runTool(ctx, "xdotool", "getwindowclassname", id); err == nil {
			w.Class = strings.TrimSpace(string(class))
		}
		windows = append(windows, w)
	}
	return windows
}
