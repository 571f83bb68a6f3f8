package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// KeysymName returns the name of the unshifted keysym bound to keycode, or ""
// when the keycode produces nothing.
func (c *Connection) KeysymName(code xproto.Keycode) string {
	sym := keybind.KeysymGet(c.XUtil, code, 0)
	if sym == 0 {
		return ""
	}
	return keybind.KeysymToStr(sym)
}

// ModifierKeysyms returns the keysym names of every key bound to a modifier
// active in state. A modifier bit shared by several keys (Alt_L and Meta_L on
// Mod1, for instance) yields all of them.
func (c *Connection) ModifierKeysyms(state uint16) []string {
	modMap := keybind.ModMapGet(c.XUtil)
	if modMap == nil || modMap.GetModifierMappingReply == nil {
		return nil
	}
	per := int(modMap.KeycodesPerModifier)
	seen := make(map[string]struct{})
	var out []string
	for i, mask := range keybind.Modifiers {
		if state&mask == 0 {
			continue
		}
		for j := i * per; j < (i+1)*per && j < len(modMap.Keycodes); j++ {
			code := modMap.Keycodes[j]
			if code == 0 {
				continue
			}
			name := c.KeysymName(code)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// ModifierMask returns the modifier mask produced by the first of keysyms
// that is bound to a modifier.
func (c *Connection) ModifierMask(keysyms []string) uint16 {
	for _, sym := range keysyms {
		if mask := modMaskForKeysym(c.XUtil, sym); mask != 0 {
			return mask
		}
	}
	return 0
}

// GrabKey passively grabs every keycode producing one of keysyms on the root
// window with mods, plus the lock-key combinations in xevent.IgnoreMods.
// It returns how many keycodes were grabbed.
func (c *Connection) GrabKey(mods uint16, keysyms []string) (int, error) {
	grabbed := 0
	for _, sym := range keysyms {
		for _, code := range keybind.StrToKeycodes(c.XUtil, sym) {
			if err := keybind.GrabChecked(c.XUtil, c.Root, mods, code); err != nil {
				return grabbed, fmt.Errorf("grab %s: %w", sym, err)
			}
			grabbed++
		}
	}
	return grabbed, nil
}

// UngrabAllKeys releases every passive key grab on the root window.
func (c *Connection) UngrabAllKeys() error {
	return xproto.UngrabKeyChecked(c.XUtil.Conn(), xproto.GrabAny, c.Root, xproto.ModMaskAny).Check()
}

// RefreshKeyboard reloads the keyboard and modifier maps after a
// MappingNotify.
func (c *Connection) RefreshKeyboard() {
	keyMap, modMap := keybind.MapsGet(c.XUtil)
	keybind.KeyMapSet(c.XUtil, keyMap)
	keybind.ModMapSet(c.XUtil, modMap)
	configureIgnoreMods(c.XUtil)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	ignore := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
