package hotkeys

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := map[string]Key{
		"a":             "a",
		"Q":             "q",
		"KP_Add":        "KP_Add",
		"KP_Enter":      "KP_Enter",
		"Super_L":       Super,
		"Super_R":       Super,
		"Alt_L":         Alt,
		"Meta_R":        Meta,
		"Control_R":     Control,
		"XF86AudioPlay": "XF86AudioPlay",
		"Return":        "Return",
		"Next":          "Page_Down",
		"Page_Down":     "Page_Down",
		"Prior":         "Page_Up",
		"F12":           "F12",
		"7":             "7",
		"ISO_Left_Tab":  "Tab",
	}
	for sym, want := range cases {
		got, ok := Classify(sym)
		if !ok {
			t.Fatalf("expected %q to be classified", sym)
		}
		if got != want {
			t.Fatalf("expected %q -> %q, got %q", sym, want, got)
		}
	}

	for _, sym := range []string{"", "F0", "F01", "dead_grave", "KP_", "XF86"} {
		if k, ok := Classify(sym); ok {
			t.Fatalf("expected %q to be unclassified, got %q", sym, k)
		}
	}
}

func TestClassifyCode_Unrecognized(t *testing.T) {
	k := ClassifyCode(203, "ISO_Level5_Shift")
	if k.Recognized() {
		t.Fatalf("expected unrecognized key, got %q", k)
	}
	if k != Unrecognized(203) {
		t.Fatalf("expected %q, got %q", Unrecognized(203), k)
	}
	if ClassifyCode(36, "Return") != "Return" {
		t.Fatalf("expected Return to classify")
	}
}

func TestParseChord(t *testing.T) {
	c, err := ParseChord("Mod4 + shift + enter")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.String() != "Shift+Super+Return" {
		t.Fatalf("expected canonical Shift+Super+Return, got %q", c.String())
	}
	if len(c.Modifiers()) != 2 || len(c.Triggers()) != 1 {
		t.Fatalf("expected 2 modifiers and 1 trigger, got %v / %v", c.Modifiers(), c.Triggers())
	}

	other, err := ParseChord("Super+Shift+Return")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if other.String() != c.String() {
		t.Fatalf("expected order-independent chords, got %q vs %q", other, c)
	}

	for _, in := range []string{"", "Super+", "Super+Nope", "Super+super+a"} {
		_, err := ParseChord(in)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected ParseError for %q, got %v", in, err)
		}
	}
}

func TestKeyKeysyms(t *testing.T) {
	if got := Super.Keysyms(); len(got) != 2 || got[0] != "Super_L" {
		t.Fatalf("unexpected Super keysyms %v", got)
	}
	if got := Key("Page_Down").Keysyms(); len(got) != 2 || got[1] != "Next" {
		t.Fatalf("unexpected Page_Down keysyms %v", got)
	}
	if got := Unrecognized(9).Keysyms(); got != nil {
		t.Fatalf("expected no keysyms for unrecognized key, got %v", got)
	}
}
