package config

import "fmt"

// BuiltinKeybindings returns the keybindings used when the config file does
// not declare any.
//
// Super+1..9 switch the view, Super+Shift+1..9 send the window under the
// pointer to a tag.
func BuiltinKeybindings() []Keybinding {
	out := []Keybinding{
		{Keys: "Super+Return", Command: "xterm"},
		{Keys: "Super+d", Command: "dmenu_run"},
		{Keys: "Super+Shift+q", Command: "@close"},
		{Keys: "Super+r", Command: "@relayout"},
		{Keys: "Super+Shift+e", Command: "@quit"},
	}
	for i := 1; i <= DefaultTags; i++ {
		out = append(out, Keybinding{Keys: fmt.Sprintf("Super+%d", i), Command: fmt.Sprintf("@view %d", i)})
	}
	for i := 1; i <= DefaultTags; i++ {
		out = append(out, Keybinding{Keys: fmt.Sprintf("Super+Shift+%d", i), Command: fmt.Sprintf("@send %d", i)})
	}
	return out
}
