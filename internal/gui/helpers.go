package gui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"specinput/internal/model"
)

// windowOptions builds the picker labels and the label -> window lookup.
// Duplicate labels (two windows with the same title and class) get the ID
// appended so every option stays selectable.
func windowOptions(wins []model.Window) ([]string, map[string]model.Window) {
	counts := map[string]int{}
	for _, w := range wins {
		counts[w.Label()]++
	}

	options := make([]string, 0, len(wins))
	byLabel := make(map[string]model.Window, len(wins))
	for _, w := range wins {
		label := w.Label()
		if counts[label] > 1 {
			label = fmt.Sprintf("%s [%s]", label, w.ID)
		}
		options = append(options, label)
		byLabel[label] = w
	}
	return options, byLabel
}

// statusText renders the status line: "● ACTIVE (12)" or "● INACTIVE".
func statusText(active bool, runs int) string {
	if active {
		return fmt.Sprintf("● ACTIVE (%d)", runs)
	}
	return "● INACTIVE"
}

func joinKeys(entries []model.KeyEntry) string {
	return strings.Join(model.KeyNames(entries), " ")
}

// parseTiming reads the hold/repeat/wait editor fields. Hold and wait are in
// seconds; blanks mean the defaults.
func parseTiming(hold, repeat, wait string) (model.KeyConfig, error) {
	cfg := model.DefaultKeyConfig()

	if s := strings.TrimSpace(hold); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return cfg, fmt.Errorf("invalid hold %q (seconds, e.g. 0.1)", hold)
		}
		cfg.Hold = time.Duration(v * float64(time.Second))
	}
	if s := strings.TrimSpace(repeat); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("invalid repeat %q (whole number, min 1)", repeat)
		}
		cfg.Repeat = n
	}
	if s := strings.TrimSpace(wait); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			return cfg, fmt.Errorf("invalid wait %q (seconds, e.g. 0.5)", wait)
		}
		cfg.Wait = time.Duration(v * float64(time.Second))
	}
	return cfg, nil
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'g', -1, 64)
}
