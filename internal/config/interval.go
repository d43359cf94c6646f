package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseInterval parses the user-facing interval grammar into a duration.
// Accepted forms: "5s", "2m", "1h", compound comma-separated terms like
// "2m,30s" or "1h,15m,30s", and bare numbers which mean seconds. The result
// must be positive.
func ParseInterval(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("interval is empty")
	}

	var total time.Duration
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := parseIntervalTerm(part)
		if err != nil {
			return 0, err
		}
		total += d
	}
	if total <= 0 {
		return 0, fmt.Errorf("interval must be positive, got %q", s)
	}
	return total, nil
}

func parseIntervalTerm(term string) (time.Duration, error) {
	unit := time.Second
	num := term
	switch {
	case strings.HasSuffix(term, "h"):
		unit = time.Hour
		num = term[:len(term)-1]
	case strings.HasSuffix(term, "m"):
		unit = time.Minute
		num = term[:len(term)-1]
	case strings.HasSuffix(term, "s"):
		num = term[:len(term)-1]
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid interval term %q (examples: 5s, 2m,30s, 1h,15m)", term)
	}
	if v < 0 {
		return 0, fmt.Errorf("interval term %q is negative", term)
	}
	return time.Duration(v * float64(unit)), nil
}

// FormatInterval renders a duration in the same grammar ParseInterval reads,
// e.g. 150s → "2m,30s". Sub-second remainders round down to whole seconds,
// except that durations under one second keep a fractional form.
func FormatInterval(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%gs", d.Seconds())
	}

	secs := int64(d / time.Second)
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	return strings.Join(parts, ",")
}
