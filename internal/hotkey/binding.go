package hotkey

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// keyNames maps the key token of a binding string to an OS key. The key
// constants share names across platforms; the modifier constants do not,
// so those live in the per-platform files.
var keyNames = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"escape": hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"a":      hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
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

// ParseBinding splits a binding like "ctrl+shift+space" into modifiers
// and key. At least one modifier is required: a bare key would shadow
// normal typing system-wide.
func ParseBinding(binding string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(binding)), "+")
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("invalid binding %q: need at least modifier+key", binding)
	}

	keyName := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keyNames[keyName]
	if !ok {
		return nil, 0, fmt.Errorf("invalid binding %q: unknown key %q", binding, keyName)
	}

	mods := make([]hotkey.Modifier, 0, len(parts)-1)
	for _, raw := range parts[:len(parts)-1] {
		name := strings.TrimSpace(raw)
		mod, ok := modifierNames[name]
		if !ok {
			return nil, 0, fmt.Errorf("invalid binding %q: unknown modifier %q", binding, name)
		}
		mods = append(mods, mod)
	}
	return mods, key, nil
}

// ValidateBinding checks a binding string without registering anything.
func ValidateBinding(binding string) error {
	_, _, err := ParseBinding(binding)
	return err
}
