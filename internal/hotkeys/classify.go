package hotkeys

import (
	"strconv"
	"strings"
)

// A classifier claims keysym names of one category and maps them to keys.
type classifier struct {
	name  string
	claim func(sym string) (Key, bool)
}

// chain is consulted in order; the first classifier to claim a keysym owns it.
var chain = []classifier{
	{name: "letter", claim: classifyLetter},
	{name: "keypad", claim: classifyKeypad},
	{name: "modifier", claim: classifyModifier},
	{name: "media", claim: classifyMedia},
	{name: "named", claim: classifyNamed},
}

// Classify maps an X keysym name to a symbolic key.
func Classify(sym string) (Key, bool) {
	if sym == "" {
		return "", false
	}
	for _, c := range chain {
		if k, ok := c.claim(sym); ok {
			return k, true
		}
	}
	return "", false
}

// ClassifyCode classifies the keysym a raw keycode produces, recording the
// code itself when nothing claims it.
func ClassifyCode(code uint8, sym string) Key {
	if k, ok := Classify(sym); ok {
		return k
	}
	return Unrecognized(code)
}

func classifyLetter(sym string) (Key, bool) {
	if len(sym) != 1 {
		return "", false
	}
	c := sym[0]
	switch {
	case c >= 'a' && c <= 'z':
		return Key(sym), true
	case c >= 'A' && c <= 'Z':
		return Key(strings.ToLower(sym)), true
	}
	return "", false
}

func classifyKeypad(sym string) (Key, bool) {
	rest, ok := strings.CutPrefix(sym, "KP_")
	if !ok || rest == "" {
		return "", false
	}
	for _, r := range rest {
		if !isWordRune(r) {
			return "", false
		}
	}
	return Key(sym), true
}

var modifierSyms = map[string]Key{
	"Shift_L":   Shift,
	"Shift_R":   Shift,
	"Control_L": Control,
	"Control_R": Control,
	"Alt_L":     Alt,
	"Alt_R":     Alt,
	"Meta_L":    Meta,
	"Meta_R":    Meta,
	"Super_L":   Super,
	"Super_R":   Super,
	"Hyper_L":   Hyper,
	"Hyper_R":   Hyper,
}

func classifyModifier(sym string) (Key, bool) {
	k, ok := modifierSyms[sym]
	return k, ok
}

func classifyMedia(sym string) (Key, bool) {
	rest, ok := strings.CutPrefix(sym, "XF86")
	if !ok || rest == "" {
		return "", false
	}
	for _, r := range rest {
		if !isWordRune(r) {
			return "", false
		}
	}
	return Key(sym), true
}

var namedKeys = map[string]Key{
	"Return":       "Return",
	"KP_Enter":     "KP_Enter",
	"Escape":       "Escape",
	"Tab":          "Tab",
	"ISO_Left_Tab": "Tab",
	"BackSpace":    "BackSpace",
	"space":        "space",
	"Delete":       "Delete",
	"Insert":       "Insert",
	"Home":         "Home",
	"End":          "End",
	"Prior":        "Page_Up",
	"Page_Up":      "Page_Up",
	"Next":         "Page_Down",
	"Page_Down":    "Page_Down",
	"Left":         "Left",
	"Right":        "Right",
	"Up":           "Up",
	"Down":         "Down",
	"Print":        "Print",
	"Pause":        "Pause",
	"Menu":         "Menu",
	"Caps_Lock":    "Caps_Lock",
	"Num_Lock":     "Num_Lock",
	"Scroll_Lock":  "Scroll_Lock",
	"minus":        "minus",
	"equal":        "equal",
	"comma":        "comma",
	"period":       "period",
	"slash":        "slash",
	"backslash":    "backslash",
	"semicolon":    "semicolon",
	"apostrophe":   "apostrophe",
	"grave":        "grave",
	"bracketleft":  "bracketleft",
	"bracketright": "bracketright",
}

// namedByLower supports case-insensitive lookups when parsing chords.
var namedByLower = func() map[string]Key {
	out := make(map[string]Key, len(namedKeys)+45)
	for sym, k := range namedKeys {
		out[strings.ToLower(sym)] = k
	}
	for i := 0; i <= 9; i++ {
		out[strconv.Itoa(i)] = Key(strconv.Itoa(i))
	}
	for i := 1; i <= 35; i++ {
		out["f"+strconv.Itoa(i)] = Key("F" + strconv.Itoa(i))
	}
	return out
}()

func classifyNamed(sym string) (Key, bool) {
	if k, ok := namedKeys[sym]; ok {
		return k, true
	}
	if len(sym) == 1 && sym[0] >= '0' && sym[0] <= '9' {
		return Key(sym), true
	}
	if n, ok := strings.CutPrefix(sym, "F"); ok {
		if i, err := strconv.Atoi(n); err == nil && i >= 1 && i <= 35 && n == strconv.Itoa(i) {
			return Key(sym), true
		}
	}
	return "", false
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
