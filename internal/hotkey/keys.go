package hotkey

import (
	"fmt"
	"strings"

	hook "github.com/robotn/gohook"
)

// aliases maps user-facing token names to entries of the hook key table.
// Modifiers expand to both the left and right physical keys.
var aliases = map[string][]string{
	"super":   {"cmd", "rcmd"},
	"meta":    {"cmd", "rcmd"},
	"win":     {"cmd", "rcmd"},
	"cmd":     {"cmd", "rcmd"},
	"command": {"cmd", "rcmd"},
	"ctrl":    {"ctrl", "rctrl"},
	"control": {"ctrl", "rctrl"},
	"alt":     {"alt", "ralt"},
	"option":  {"alt", "ralt"},
	"menu":    {"alt", "ralt"},
	"shift":   {"shift", "rshift"},
	"esc":     {"esc"},
	"escape":  {"esc"},
	"enter":   {"enter"},
	"return":  {"enter"},
}

// lookup resolves one token against table.
func lookup(table map[string]uint16, token string) ([]Key, error) {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil, fmt.Errorf("empty key")
	}

	names, ok := aliases[token]
	if !ok {
		names = []string{token}
	}
	var keys []Key
	for _, name := range names {
		if code, ok := table[name]; ok {
			keys = append(keys, Key(code))
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("unsupported key token: %s", token)
	}
	return keys, nil
}

// rightHand fills right-side modifiers the hook table leaves out
// (libuiohook VC_* codes).
var rightHand = map[string]uint16{
	"rctrl":  0x0E1D,
	"rshift": 0x0036,
	"ralt":   0x0E38,
	"rcmd":   0x0E5C,
}

func defaultTable() map[string]uint16 {
	table := make(map[string]uint16, len(hook.Keycode)+len(rightHand))
	for name, code := range hook.Keycode {
		table[name] = code
	}
	for name, code := range rightHand {
		if _, ok := table[name]; !ok {
			table[name] = code
		}
	}
	return table
}
