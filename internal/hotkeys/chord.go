package hotkeys

import (
	"sort"
	"strings"
)

// Chord is an unordered set of keys that must be held together.
// Keys are stored in canonical order: modifiers first, then the rest sorted.
type Chord struct {
	keys []Key
}

// NewChord builds a chord from keys, dropping duplicates.
func NewChord(keys ...Key) Chord {
	seen := make(map[Key]struct{}, len(keys))
	out := make([]Key, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := modifierRank(out[i]), modifierRank(out[j])
		switch {
		case ri >= 0 && rj >= 0:
			return ri < rj
		case ri >= 0:
			return true
		case rj >= 0:
			return false
		}
		return out[i] < out[j]
	})
	return Chord{keys: out}
}

// ParseChord parses strings such as "Super+Shift+Return". Parts are separated
// by "+" and surrounding whitespace is ignored.
func ParseChord(s string) (Chord, error) {
	if strings.TrimSpace(s) == "" {
		return Chord{}, &ParseError{Input: s, Reason: "chord is empty"}
	}
	parts := strings.Split(s, "+")
	keys := make([]Key, 0, len(parts))
	seen := make(map[Key]struct{}, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			return Chord{}, &ParseError{Input: s, Reason: "empty key in chord"}
		}
		k, ok := ParseKey(name)
		if !ok {
			return Chord{}, &ParseError{Input: s, Part: name, Reason: "unknown key"}
		}
		if _, dup := seen[k]; dup {
			return Chord{}, &ParseError{Input: s, Part: name, Reason: "duplicate key"}
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return NewChord(keys...), nil
}

func (c Chord) Len() int { return len(c.keys) }

// Modifiers returns the chord's modifier keys.
func (c Chord) Modifiers() []Key {
	var out []Key
	for _, k := range c.keys {
		if k.IsModifier() {
			out = append(out, k)
		}
	}
	return out
}

// Triggers returns the chord's non-modifier keys.
func (c Chord) Triggers() []Key {
	var out []Key
	for _, k := range c.keys {
		if !k.IsModifier() {
			out = append(out, k)
		}
	}
	return out
}

func (c Chord) String() string {
	names := make([]string, len(c.keys))
	for i, k := range c.keys {
		names[i] = string(k)
	}
	return strings.Join(names, "+")
}

func (c Chord) subsetOf(held map[Key]struct{}) bool {
	if len(c.keys) == 0 || len(c.keys) > len(held) {
		return false
	}
	for _, k := range c.keys {
		if _, ok := held[k]; !ok {
			return false
		}
	}
	return true
}
