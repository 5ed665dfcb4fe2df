package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps terminal keys to playback actions
type KeyTable struct {
	// Special keys (arrows, Esc, Ctrl+*)
	Keys map[tcell.Key]Action
	// Printable rune bindings
	Runes map[rune]Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Action{
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
			tcell.KeyUp:     ActionSpeedUp,
			tcell.KeyDown:   ActionSpeedDown,
			tcell.KeyRight:  ActionStepForward,
			tcell.KeyLeft:   ActionStepBackward,
		},
		Runes: map[rune]Action{
			'q': ActionQuit,
			' ': ActionPauseToggle,
			'k': ActionSpeedUp,
			'j': ActionSpeedDown,
			'l': ActionStepForward,
			'h': ActionStepBackward,
			'r': ActionResetSpeed,
			'0': ActionResetSpeed,
			'?': ActionToggleHelp,
			't': ActionToggleTrace,
			'm': ActionToggleMute,
			'i': ActionInspect,
			'd': ActionDump,
		},
	}
}

// Lookup resolves a key event to its action
func (kt *KeyTable) Lookup(ev *tcell.EventKey) (Action, bool) {
	if ev.Key() == tcell.KeyRune {
		a, ok := kt.Runes[ev.Rune()]
		return a, ok
	}
	a, ok := kt.Keys[ev.Key()]
	return a, ok
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	c := &KeyTable{
		Keys:  make(map[tcell.Key]Action, len(kt.Keys)),
		Runes: make(map[rune]Action, len(kt.Runes)),
	}
	for k, v := range kt.Keys {
		c.Keys[k] = v
	}
	for k, v := range kt.Runes {
		c.Runes[k] = v
	}
	return c
}

// Help returns one line per bound action in action order, keys joined by '/'
func (kt *KeyTable) Help() []string {
	var keys [actionCount][]string
	for k, a := range kt.Keys {
		keys[a] = append(keys[a], tcell.KeyNames[k])
	}
	for r, a := range kt.Runes {
		name := string(r)
		if r == ' ' {
			name = "Space"
		}
		keys[a] = append(keys[a], name)
	}

	var lines []string
	for a := ActionQuit; a < actionCount; a++ {
		if len(keys[a]) == 0 {
			continue
		}
		sort.Strings(keys[a])
		lines = append(lines, fmt.Sprintf("%-14s %s", strings.Join(keys[a], "/"), a))
	}
	return lines
}
