package output

import (
	"encoding/json"
	"fmt"
	"os"

	"specinput/internal/model"

	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ListResult is the top-level output of the `list` command.
type ListResult struct {
	Count   int            `yaml:"count"   json:"count"`
	Windows []model.Window `yaml:"windows" json:"windows"`
}

// SendResult is the top-level output of the `send` command.
type SendResult struct {
	WindowID string   `yaml:"window_id" json:"window_id"`
	Keys     []string `yaml:"keys"      json:"keys"`
	Sent     bool     `yaml:"sent"      json:"sent"`
}

// RunResult is the summary printed when a `run` loop exits.
type RunResult struct {
	WindowID string `yaml:"window_id"          json:"window_id"`
	Runs     int    `yaml:"runs"               json:"runs"`
	Interval string `yaml:"interval"           json:"interval"`
	Reason   string `yaml:"reason,omitempty"   json:"reason,omitempty"`
}

// SetupsResult is the top-level output of the `setups` command.
type SetupsResult struct {
	Count  int      `yaml:"count"  json:"count"`
	Setups []string `yaml:"setups" json:"setups"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return PrintPrettyJSON(v)
		}
		return PrintJSON(v)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintPrettyJSON serializes v to stdout as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
