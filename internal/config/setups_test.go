package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"specinput/internal/model"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func sampleSetup() model.Setup {
	return model.Setup{
		Name:        "farming",
		WindowID:    "0x04a00007",
		WindowTitle: "Roblox",
		Interval:    2*time.Minute + 30*time.Second,
		Keybind:     "ctrl+f9",
		Keys: []model.KeyEntry{
			{Key: "w", KeyConfig: model.KeyConfig{Hold: 200 * time.Millisecond, Repeat: 2, Wait: 50 * time.Millisecond}},
			{Key: "space", KeyConfig: model.DefaultKeyConfig()},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := testManager(t)
	want := sampleSetup()

	if err := m.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := m.Load("farming")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.WindowID != want.WindowID || got.WindowTitle != want.WindowTitle {
		t.Errorf("window mismatch: got %+v", got)
	}
	if got.Interval != want.Interval {
		t.Errorf("interval: got %v, want %v", got.Interval, want.Interval)
	}
	if got.Keybind != want.Keybind {
		t.Errorf("keybind: got %q, want %q", got.Keybind, want.Keybind)
	}
	if len(got.Keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(got.Keys))
	}
	if got.Keys[0].Key != "w" || got.Keys[1].Key != "space" {
		t.Errorf("key order lost: %v", model.KeyNames(got.Keys))
	}
	if got.Keys[0].Hold != 200*time.Millisecond || got.Keys[0].Repeat != 2 || got.Keys[0].Wait != 50*time.Millisecond {
		t.Errorf("key config mismatch: %+v", got.Keys[0].KeyConfig)
	}
}

func TestLoad_DefaultsRepeat(t *testing.T) {
	m := testManager(t)
	raw := []byte("interval: 5s\nkeys:\n  - key: E\n")
	if err := os.WriteFile(filepath.Join(m.dir, "plain.yaml"), raw, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := m.Load("plain")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Keys[0].Key != "e" {
		t.Errorf("expected lowercased key, got %q", got.Keys[0].Key)
	}
	if got.Keys[0].Repeat != 1 {
		t.Errorf("expected repeat to default to 1, got %d", got.Keys[0].Repeat)
	}
}

func TestListSortedAndExists(t *testing.T) {
	m := testManager(t)

	for _, name := range []string{"boss", "afk", "mining"} {
		s := sampleSetup()
		s.Name = name
		if err := m.Save(s); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
	}

	names, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"afk", "boss", "mining"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected sorted %v, got %v", want, names)
		}
	}

	if !m.Exists("afk") {
		t.Error("Exists(afk) = false")
	}
	if m.Exists("nope") {
		t.Error("Exists(nope) = true")
	}
}

func TestList_EmptyDir(t *testing.T) {
	m := testManager(t)
	names, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no setups, got %v", names)
	}
}

func TestDelete(t *testing.T) {
	m := testManager(t)
	s := sampleSetup()
	if err := m.Save(s); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete("farming"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if m.Exists("farming") {
		t.Fatal("setup still exists after delete")
	}
	if err := m.Delete("farming"); err == nil {
		t.Fatal("expected error deleting missing setup")
	}
}

func TestValidateName(t *testing.T) {
	m := testManager(t)
	for _, name := range []string{"", "  ", "../escape", "a/b", `a\b`} {
		s := sampleSetup()
		s.Name = name
		if err := m.Save(s); err == nil {
			t.Errorf("Save(%q): expected error", name)
		}
	}
}
