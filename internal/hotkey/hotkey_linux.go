//go:build linux

package hotkey

import (
	"fmt"

	"golang.design/x/hotkey"
)

// X11 modifier mapping: Alt is Mod1, Super/Win is Mod4.
var modifierMap = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1,
	"super": hotkey.Mod4,
}

var keyMap = map[string]hotkey.Key{
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3,
	"f4": hotkey.KeyF4, "f5": hotkey.KeyF5, "f6": hotkey.KeyF6,
	"f7": hotkey.KeyF7, "f8": hotkey.KeyF8, "f9": hotkey.KeyF9,
	"f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,

	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn, "enter": hotkey.KeyReturn,
	"escape": hotkey.KeyEscape, "esc": hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"delete": hotkey.KeyDelete,
	"up":     hotkey.KeyUp, "down": hotkey.KeyDown,
	"left": hotkey.KeyLeft, "right": hotkey.KeyRight,

	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
}

// Listener owns one registered global hotkey and the goroutine watching it.
type Listener struct {
	hk   *hotkey.Hotkey
	done chan struct{}
}

// Listen registers binding as a global hotkey and invokes onPress on every
// keydown, regardless of which application has focus.
func Listen(binding string, onPress func()) (*Listener, error) {
	modNames, keyName, err := ParseBinding(binding)
	if err != nil {
		return nil, err
	}
	var mods []hotkey.Modifier
	for _, m := range modNames {
		mods = append(mods, modifierMap[m])
	}
	key, ok := keyMap[keyName]
	if !ok {
		return nil, fmt.Errorf("unsupported hotkey %q", keyName)
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("register hotkey %q: %w", binding, err)
	}

	l := &Listener{hk: hk, done: make(chan struct{})}
	go func() {
		for {
			select {
			case <-l.done:
				return
			case <-hk.Keydown():
				onPress()
			}
		}
	}()
	return l, nil
}

// Close unregisters the hotkey and stops the watcher goroutine.
func (l *Listener) Close() error {
	close(l.done)
	return l.hk.Unregister()
}
