package hotkey

import "testing"

func TestParseBinding(t *testing.T) {
	tests := []struct {
		binding  string
		wantMods []string
		wantKey  string
	}{
		{"ctrl+f9", []string{"ctrl"}, "f9"},
		{"f9", nil, "f9"},
		{"Ctrl+Shift+X", []string{"ctrl", "shift"}, "x"},
		{"Shift + Control + x", []string{"ctrl", "shift"}, "x"},
		{"win+space", []string{"super"}, "space"},
		{"cmd+alt+Return", []string{"alt", "super"}, "return"},
	}
	for _, tt := range tests {
		mods, key, err := ParseBinding(tt.binding)
		if err != nil {
			t.Fatalf("ParseBinding(%q): %v", tt.binding, err)
		}
		if key != tt.wantKey {
			t.Errorf("ParseBinding(%q) key = %q, want %q", tt.binding, key, tt.wantKey)
		}
		if len(mods) != len(tt.wantMods) {
			t.Fatalf("ParseBinding(%q) mods = %v, want %v", tt.binding, mods, tt.wantMods)
		}
		for i := range mods {
			if mods[i] != tt.wantMods[i] {
				t.Errorf("ParseBinding(%q) mods = %v, want %v", tt.binding, mods, tt.wantMods)
			}
		}
	}
}

func TestParseBindingInvalid(t *testing.T) {
	for _, binding := range []string{
		"",
		"+",
		"ctrl+",
		"+f9",
		"ctrl++f9",
		"ctrl+shift",
		"hyper+f9",
	} {
		if _, _, err := ParseBinding(binding); err == nil {
			t.Errorf("ParseBinding(%q): expected error", binding)
		}
	}
}

func TestNormalizeBinding(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ctrl+f9", "ctrl+f9"},
		{"Shift + Control + X", "ctrl+shift+x"},
		{"win+alt+a", "alt+super+a"},
		{"F5", "f5"},
	}
	for _, tt := range tests {
		got, err := NormalizeBinding(tt.in)
		if err != nil {
			t.Fatalf("NormalizeBinding(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeBinding(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
