package hotkey

import (
	"fmt"
	"slices"
	"strings"
)

// Combo is a two-key push-to-talk chord: a held modifier (primary) plus a
// trigger key (secondary).
type Combo struct {
	Descriptor string
	Primary    []Key
	Secondary  []Key
}

// ParseCombo parses descriptors like "super+c" or "ctrl+space".
func ParseCombo(s string) (Combo, error) {
	return parseCombo(s, defaultTable())
}

func parseCombo(s string, table map[string]uint16) (Combo, error) {
	if strings.TrimSpace(s) == "" {
		return Combo{}, fmt.Errorf("empty hotkey")
	}
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return Combo{}, fmt.Errorf("hotkey %q: want exactly two keys joined by '+'", s)
	}

	primary, err := lookup(table, parts[0])
	if err != nil {
		return Combo{}, fmt.Errorf("hotkey %q: %w", s, err)
	}
	secondary, err := lookup(table, parts[1])
	if err != nil {
		return Combo{}, fmt.Errorf("hotkey %q: %w", s, err)
	}
	for _, k := range secondary {
		if slices.Contains(primary, k) {
			return Combo{}, fmt.Errorf("hotkey %q: primary and secondary keys overlap", s)
		}
	}

	return Combo{
		Descriptor: strings.ToLower(strings.TrimSpace(s)),
		Primary:    primary,
		Secondary:  secondary,
	}, nil
}

// Role reports which part of the combo k is.
func (c Combo) Role(k Key) Role {
	switch {
	case slices.Contains(c.Primary, k):
		return RolePrimary
	case slices.Contains(c.Secondary, k):
		return RoleSecondary
	default:
		return RoleOther
	}
}

func (c Combo) String() string {
	return c.Descriptor
}
