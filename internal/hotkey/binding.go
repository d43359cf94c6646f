// Package hotkey registers a global toggle hotkey so the automation loop can
// be flipped without the control panel having focus.
package hotkey

import (
	"fmt"
	"sort"
	"strings"
)

// modifier ordering for normalized bindings
var modOrder = map[string]int{"ctrl": 0, "alt": 1, "shift": 2, "super": 3}

// aliases maps the spellings users write to canonical modifier names.
var aliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"alt":     "alt",
	"shift":   "shift",
	"super":   "super",
	"win":     "super",
	"cmd":     "super",
}

// ParseBinding splits a binding like "ctrl+shift+f9" into canonical,
// ordered modifier names and the final key token. A binding without
// modifiers ("f9") is valid.
func ParseBinding(binding string) (mods []string, key string, err error) {
	parts := strings.Split(binding, "+")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
		if parts[i] == "" {
			return nil, "", fmt.Errorf("invalid hotkey binding %q", binding)
		}
	}

	key = parts[len(parts)-1]
	for _, p := range parts[:len(parts)-1] {
		canonical, ok := aliases[p]
		if !ok {
			return nil, "", fmt.Errorf("unknown modifier %q in binding %q", p, binding)
		}
		mods = append(mods, canonical)
	}
	sort.Slice(mods, func(i, j int) bool { return modOrder[mods[i]] < modOrder[mods[j]] })

	if _, ok := aliases[key]; ok {
		return nil, "", fmt.Errorf("binding %q has no key after the modifiers", binding)
	}
	return mods, key, nil
}

// NormalizeBinding canonicalizes a user-typed binding, e.g.
// "Shift + Control + X" → "ctrl+shift+x".
func NormalizeBinding(binding string) (string, error) {
	mods, key, err := ParseBinding(binding)
	if err != nil {
		return "", err
	}
	return strings.Join(append(mods, key), "+"), nil
}
