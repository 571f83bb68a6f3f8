package platform

// Event is a display server event relevant to the window manager.
type Event interface {
	isEvent()
}

type KeyPress struct {
	Code  uint8
	State uint16
}

type KeyRelease struct {
	Code  uint8
	State uint16
}

// MapRequest asks the window manager to map a window.
type MapRequest struct {
	Window WindowID
}

// MapNotify reports a window became mapped.
type MapNotify struct {
	Window           WindowID
	OverrideRedirect bool
}

type UnmapNotify struct {
	Window WindowID
}

type DestroyNotify struct {
	Window WindowID
}

// ConfigureRequest is a client's request to change its own geometry or
// stacking.
type ConfigureRequest struct {
	Window  WindowID
	Changes Changes
}

// DesktopRequest asks to move a window to a 0-based desktop.
type DesktopRequest struct {
	Window  WindowID
	Desktop int
}

// ViewRequest asks to switch to a 0-based desktop.
type ViewRequest struct {
	Desktop int
}

// MappingNotify reports the keyboard or modifier mapping changed.
type MappingNotify struct{}

// Other is any event the window manager does not act on.
type Other struct {
	Name string
}

func (KeyPress) isEvent()         {}
func (KeyRelease) isEvent()       {}
func (MapRequest) isEvent()       {}
func (MapNotify) isEvent()        {}
func (UnmapNotify) isEvent()      {}
func (DestroyNotify) isEvent()    {}
func (ConfigureRequest) isEvent() {}
func (DesktopRequest) isEvent()   {}
func (ViewRequest) isEvent()      {}
func (MappingNotify) isEvent()    {}
func (Other) isEvent()            {}
