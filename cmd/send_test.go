package cmd

import (
	"testing"
)

func TestSendCommand_Flags(t *testing.T) {
	tests := []struct {
		name     string
		flagType string
	}{
		{"window-id", "string"},
		{"keys", "string"},
		{"hold", "float64"},
		{"repeat", "int"},
		{"wait", "float64"},
	}

	for _, tt := range tests {
		f := sendCmd.Flags().Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestServeCommand_Defaults(t *testing.T) {
	f := serveCmd.Flags().Lookup("transport")
	if f == nil {
		t.Fatal("expected flag --transport")
	}
	if f.DefValue != "stdio" {
		t.Errorf("transport default: got %q, want %q", f.DefValue, "stdio")
	}
}
