package hotkeys

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a symbolic key name. Left and right variants of a modifier collapse
// into one Key.
type Key string

// Modifier keys.
const (
	Shift   Key = "Shift"
	Control Key = "Control"
	Alt     Key = "Alt"
	Meta    Key = "Meta"
	Super   Key = "Super"
	Hyper   Key = "Hyper"
)

// Modifiers lists the modifier keys in canonical chord order.
var Modifiers = []Key{Control, Shift, Alt, Meta, Super, Hyper}

const unrecognizedPrefix = "#"

// Unrecognized returns the key recorded for a raw keycode that no classifier
// claims. Such keys are tracked as held but never match a chord.
func Unrecognized(code uint8) Key {
	return Key(unrecognizedPrefix + strconv.Itoa(int(code)))
}

// Recognized reports whether k came from a classifier.
func (k Key) Recognized() bool {
	return k != "" && !strings.HasPrefix(string(k), unrecognizedPrefix)
}

func (k Key) IsModifier() bool {
	return modifierRank(k) >= 0
}

func modifierRank(k Key) int {
	for i, m := range Modifiers {
		if m == k {
			return i
		}
	}
	return -1
}

// Keysyms returns the X keysym names that produce k.
func (k Key) Keysyms() []string {
	if k.IsModifier() {
		return []string{string(k) + "_L", string(k) + "_R"}
	}
	switch k {
	case "Page_Up":
		return []string{"Page_Up", "Prior"}
	case "Page_Down":
		return []string{"Page_Down", "Next"}
	}
	if !k.Recognized() {
		return nil
	}
	return []string{string(k)}
}

// ParseError reports a chord string that cannot be turned into keys.
type ParseError struct {
	Input  string
	Part   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("invalid chord %q: %s %q", e.Input, e.Reason, e.Part)
	}
	return fmt.Sprintf("invalid chord %q: %s", e.Input, e.Reason)
}

// ParseKey resolves a user-facing key name. Matching is case-insensitive and
// accepts common aliases such as Mod4, Win, Ctrl and Enter.
func ParseKey(name string) (Key, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if k, ok := keyAliases[strings.ToLower(name)]; ok {
		return k, true
	}
	if k, ok := Classify(name); ok {
		return k, true
	}
	if k, ok := namedByLower[strings.ToLower(name)]; ok {
		return k, true
	}
	return "", false
}

var keyAliases = map[string]Key{
	"shift":     Shift,
	"ctrl":      Control,
	"control":   Control,
	"alt":       Alt,
	"mod1":      Alt,
	"meta":      Meta,
	"super":     Super,
	"mod4":      Super,
	"win":       Super,
	"logo":      Super,
	"hyper":     Hyper,
	"enter":     "Return",
	"return":    "Return",
	"esc":       "Escape",
	"escape":    "Escape",
	"space":     "space",
	"tab":       "Tab",
	"backspace": "BackSpace",
	"del":       "Delete",
	"delete":    "Delete",
	"ins":       "Insert",
	"pageup":    "Page_Up",
	"pgup":      "Page_Up",
	"prior":     "Page_Up",
	"pagedown":  "Page_Down",
	"pgdn":      "Page_Down",
	"next":      "Page_Down",
}
