package cmd

import (
	"testing"
)

func TestListCommand_Flags(t *testing.T) {
	f := listCmd.Flags().Lookup("title")
	if f == nil {
		t.Fatal("expected flag --title")
	}
	if f.Value.Type() != "string" {
		t.Errorf("flag title: expected type string, got %q", f.Value.Type())
	}
}

func TestListCommand_IsRegistered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "list" {
			return
		}
	}
	t.Error("list command not registered on root")
}
