package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be written as a bare character
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keysByName is the reverse of tcell.KeyNames, lower-cased
var keysByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// ParseBindings builds a sparse override table from key name → action name
// pairs, e.g. {"Up": "speed_up", "x": "quit", "space": "pause"}
// Returns error on unknown action or key names
func ParseBindings(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{
		Keys:  make(map[tcell.Key]Action),
		Runes: make(map[rune]Action),
	}

	for keyStr, actionName := range bindings {
		a, ok := ActionByName(actionName)
		if !ok {
			return nil, fmt.Errorf("key %q: unknown action: %q", keyStr, actionName)
		}

		if r, err := resolveRune(keyStr); err == nil {
			kt.Runes[r] = a
			continue
		}
		k, ok := keysByName[strings.ToLower(keyStr)]
		if !ok {
			return nil, fmt.Errorf("unknown key name: %q", keyStr)
		}
		kt.Keys[k] = a
	}

	return kt, nil
}

// resolveRune converts a key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// MergeKeyTable returns a new KeyTable with base values overridden by override
// Override entries bound to "none" delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}

	for k, v := range override.Keys {
		if v == ActionNone {
			delete(result.Keys, k)
		} else {
			result.Keys[k] = v
		}
	}
	for r, v := range override.Runes {
		if v == ActionNone {
			delete(result.Runes, r)
		} else {
			result.Runes[r] = v
		}
	}

	return result
}
