package x11

import "testing"

const wmctrlSample = `0x03800003  0 gnome-terminal-server.Gnome-terminal hostname Terminal
0x04a00007  1 firefox.Firefox hostname Issue tracker — Mozilla Firefox
0x02c00002 -1 xfdesktop.Xfdesktop hostname Desktop
0x05200001  0 roblox.Roblox hostname Roblox`

func TestParseWmctrlOutput(t *testing.T) {
	windows := parseWmctrlOutput(wmctrlSample)
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows (Desktop filtered), got %d", len(windows))
	}

	first := windows[0]
	if first.ID != "0x03800003" {
		t.Errorf("unexpected id: %q", first.ID)
	}
	if first.Class != "gnome-terminal-server.Gnome-terminal" {
		t.Errorf("unexpected class: %q", first.Class)
	}
	if first.Title != "Terminal" {
		t.Errorf("unexpected title: %q", first.Title)
	}

	// Multi-word titles keep their spaces
	if windows[1].Title != "Issue tracker — Mozilla Firefox" {
		t.Errorf("unexpected multi-word title: %q", windows[1].Title)
	}
	if windows[1].Desktop != 1 {
		t.Errorf("unexpected desktop: %d", windows[1].Desktop)
	}
}

func TestParseWmctrlOutput_Empty(t *testing.T) {
	windows := parseWmctrlOutput("")
	if windows == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(windows) != 0 {
		t.Fatalf("expected 0 windows, got %d", len(windows))
	}
}

func TestParseWmctrlLine_Short(t *testing.T) {
	if _, ok := parseWmctrlLine("0x123 0 class"); ok {
		t.Fatal("expected short line to be rejected")
	}
}

func TestParseWmctrlLine_StickyDesktop(t *testing.T) {
	// Sticky windows report desktop -1; the id still parses.
	w, ok := parseWmctrlLine("0x01e00004 -1 panel.Panel host Top Bar")
	if !ok {
		t.Fatal("expected sticky window to parse")
	}
	if w.Desktop != -1 {
		t.Errorf("unexpected desktop: %d", w.Desktop)
	}
	if w.Title != "Top Bar" {
		t.Errorf("unexpected title: %q", w.Title)
	}
}

func TestIsAlnum(t *testing.T) {
	for _, c := range []byte{'a', 'z', 'A', 'Z', '0', '9'} {
		if !isAlnum(c) {
			t.Errorf("expected %q to be alnum", c)
		}
	}
	for _, c := range []byte{' ', '-', '+', '_'} {
		if isAlnum(c) {
			t.Errorf("expected %q to not be alnum", c)
		}
	}
}
