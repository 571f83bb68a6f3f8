package daemon

import (
	"github.com/1broseidon/xrwm/internal/hotkeys"
	"github.com/1broseidon/xrwm/internal/platform"
)

// heldModifiers classifies the modifier keys the server reports as held.
func (d *Dispatcher) heldModifiers(state uint16) []hotkeys.Key {
	var mods []hotkeys.Key
	for _, sym := range d.backend.ModifierNames(state) {
		if k, ok := hotkeys.Classify(sym); ok && k.IsModifier() {
			mods = append(mods, k)
		}
	}
	return mods
}

func (d *Dispatcher) classifyKey(code uint8) hotkeys.Key {
	return hotkeys.ClassifyCode(code, d.backend.KeyName(code))
}

func (d *Dispatcher) keyPress(ev platform.KeyPress) {
	d.keyboard.SyncModifiers(d.heldModifiers(ev.State))
	key := d.classifyKey(ev.Code)
	if !key.Recognized() {
		d.logger.Debug("unrecognized keycode", "code", ev.Code)
	}
	if command, fired := d.keyboard.Press(key); fired {
		d.runCommand(command)
	}
}

func (d *Dispatcher) keyRelease(ev platform.KeyRelease) {
	d.keyboard.SyncModifiers(d.heldModifiers(ev.State))
	d.keyboard.Release(d.classifyKey(ev.Code))
}

// grabKeys installs a passive grab for every binding. The non-modifier keys
// of a chord are grabbed with the chord's modifiers held.
func (d *Dispatcher) grabKeys() {
	if err := d.backend.UngrabKeys(); err != nil {
		d.logger.Warn("failed to release key grabs", "error", err)
	}
	for _, b := range d.keyboard.Bindings() {
		triggers := b.Chord.Triggers()
		if len(triggers) == 0 {
			d.logger.Warn("chord has only modifiers and cannot be grabbed", "keys", b.Chord.String())
			continue
		}
		var mods [][]string
		for _, m := range b.Chord.Modifiers() {
			mods = append(mods, m.Keysyms())
		}
		for _, t := range triggers {
			n, err := d.backend.GrabKey(mods, t.Keysyms())
			if err != nil {
				d.logger.Warn("key grab failed", "keys", b.Chord.String(), "error", err)
				continue
			}
			if n == 0 {
				d.logger.Warn("key is not on the keyboard", "keys", b.Chord.String(), "key", string(t))
			}
		}
	}
}

// remapKeyboard reloads the keymap after a MappingNotify. Held keys are
// forgotten since their keycodes may mean something else now.
func (d *Dispatcher) remapKeyboard() {
	d.backend.RefreshKeyboard()
	d.keyboard.Reset()
	d.grabKeys()
	d.logger.Info("keyboard mapping changed, keys re-grabbed")
}
