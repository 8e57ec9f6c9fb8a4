package cli

import (
	"fmt"
	"strings"

	"keypad/internal/key"
	"keypad/internal/keymap"
)

// loadKeymap resolves the keymap for a command: the builtin default
// layout, or a CUE profile when a path is given.
func loadKeymap(path string) (*keymap.Keymap, error) {
	if path == "" {
		return keymap.Default(), nil
	}
	return keymap.LoadProfile(path)
}

// tokenizeLine converts one line of input into engine events.
//
// Whitespace-separated fields that are bound as a whole ("enter",
// "esc", "backspace") become single events; any other field is read
// rune by rune, so "12*3=" works without spaces.
func tokenizeLine(line string, km *keymap.Keymap) ([]key.Event, error) {
	var events []key.Event

	for _, field := range strings.Fields(line) {
		if ev, ok := km.Resolve(field); ok {
			events = append(events, ev)
			continue
		}

		for _, r := range field {
			ev, ok := km.Resolve(string(r))
			if !ok {
				return nil, fmt.Errorf("key %q is not bound in keymap %q", string(r), km.Name())
			}
			events = append(events, ev)
		}
	}

	return events, nil
}
