package hotkeys

import "sort"

// Binding maps a chord to the command it fires.
type Binding struct {
	Chord   Chord
	Command string
}

// Keyboard tracks held keys and resolves them against the configured
// bindings.
//
// The binding that matches is the one with the largest chord contained in the
// held set, ties going to the binding declared first. A press fires that
// binding's command only when it changes which binding is matched, so
// auto-repeat and presses of unrelated keys do not fire twice. Releasing a key
// of the matched chord disarms it.
//
// Keyboard is not safe for concurrent use.
type Keyboard struct {
	bindings []Binding
	held     map[Key]struct{}
	matched  int
}

func NewKeyboard(bindings []Binding) *Keyboard {
	return &Keyboard{
		bindings: append([]Binding(nil), bindings...),
		held:     make(map[Key]struct{}),
		matched:  -1,
	}
}

// Press records k as held. It returns the command to run when the press
// completes a new match.
func (kb *Keyboard) Press(k Key) (string, bool) {
	before := kb.matched
	kb.held[k] = struct{}{}
	kb.matched = kb.match()
	if kb.matched < 0 || kb.matched == before {
		return "", false
	}
	return kb.bindings[kb.matched].Command, true
}

// Release forgets k. Releasing a key that is not held is a no-op.
func (kb *Keyboard) Release(k Key) {
	if _, ok := kb.held[k]; !ok {
		return
	}
	delete(kb.held, k)
	kb.matched = kb.match()
}

// SyncModifiers makes the held modifiers equal to mods, as reported by the
// server with each key event. It never fires a command.
//
// When the last held modifier goes away, other held keys are dropped too:
// their releases may have gone to a client once the grab that delivered
// their presses ended.
func (kb *Keyboard) SyncModifiers(mods []Key) {
	want := make(map[Key]struct{}, len(mods))
	for _, m := range mods {
		if m.IsModifier() {
			want[m] = struct{}{}
		}
	}
	changed := false
	released := false
	for _, m := range Modifiers {
		_, held := kb.held[m]
		_, wanted := want[m]
		switch {
		case wanted && !held:
			kb.held[m] = struct{}{}
			changed = true
		case held && !wanted:
			delete(kb.held, m)
			changed = true
			released = true
		}
	}
	if released && len(want) == 0 {
		for k := range kb.held {
			delete(kb.held, k)
		}
	}
	if changed {
		kb.matched = kb.match()
	}
}

// Reset releases every key.
func (kb *Keyboard) Reset() {
	kb.held = make(map[Key]struct{})
	kb.matched = -1
}

// Held returns the held keys in sorted order.
func (kb *Keyboard) Held() []Key {
	out := make([]Key, 0, len(kb.held))
	for k := range kb.held {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (kb *Keyboard) Bindings() []Binding {
	return append([]Binding(nil), kb.bindings...)
}

func (kb *Keyboard) match() int {
	best := -1
	for i, b := range kb.bindings {
		if !b.Chord.subsetOf(kb.held) {
			continue
		}
		if best < 0 || b.Chord.Len() > kb.bindings[best].Chord.Len() {
			best = i
		}
	}
	return best
}
