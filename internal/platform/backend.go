package platform

import (
	"errors"
	"fmt"
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Inset shrinks r by the given edges. Width and height never drop below 1.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return Rect{
		X:      r.X + left,
		Y:      r.Y + top,
		Width:  max(1, r.Width-left-right),
		Height: max(1, r.Height-top-bottom),
	}
}

// Geometry is a window's position, inner size and border width. The outer box
// is Width+2*Border by Height+2*Border.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
	Border int
}

// Outer returns the box the window occupies including its border.
func (g Geometry) Outer() Rect {
	return Rect{X: g.X, Y: g.Y, Width: g.Width + 2*g.Border, Height: g.Height + 2*g.Border}
}

// ChangeMask selects the fields of Changes that carry a value. The bits match
// the X11 ConfigureWindow value mask.
type ChangeMask uint16

const (
	ChangeX ChangeMask = 1 << iota
	ChangeY
	ChangeWidth
	ChangeHeight
	ChangeBorder
	ChangeSibling
	ChangeStackMode
)

// Stack modes for Changes.StackMode.
const (
	StackAbove uint8 = 0
	StackBelow uint8 = 1
)

// Changes is a partial geometry/stacking update, as sent by a client in a
// configure request or by the layout writer.
type Changes struct {
	Mask      ChangeMask
	X         int
	Y         int
	Width     int
	Height    int
	Border    int
	Sibling   WindowID
	StackMode uint8
}

// Has reports whether every bit of m is set.
func (c Changes) Has(m ChangeMask) bool {
	return c.Mask&m == m
}

// Apply returns g with the geometry fields of c applied.
func (c Changes) Apply(g Geometry) Geometry {
	if c.Has(ChangeX) {
		g.X = c.X
	}
	if c.Has(ChangeY) {
		g.Y = c.Y
	}
	if c.Has(ChangeWidth) {
		g.Width = c.Width
	}
	if c.Has(ChangeHeight) {
		g.Height = c.Height
	}
	if c.Has(ChangeBorder) {
		g.Border = c.Border
	}
	return g
}

// ChangesFor builds the update that moves a window to g.
func ChangesFor(g Geometry) Changes {
	return Changes{
		Mask:   ChangeX | ChangeY | ChangeWidth | ChangeHeight | ChangeBorder,
		X:      g.X,
		Y:      g.Y,
		Width:  g.Width,
		Height: g.Height,
		Border: g.Border,
	}
}

// WindowInfo is what the window manager needs to know about a window before
// deciding whether and where to manage it.
type WindowInfo struct {
	Class            string
	Instance         string
	Title            string
	OverrideRedirect bool
	// Manageable is false for docks, desktops, splash screens and
	// notifications.
	Manageable bool
	// Dock is set for panels that reserve screen edges.
	Dock bool
	// Desktop is the 0-based desktop the client asked for, or -1.
	Desktop int
	// Positioned is set when the client supplied its own position.
	Positioned bool
}

var (
	// ErrConnectionClosed means the display server connection is gone and no
	// further events will arrive.
	ErrConnectionClosed = errors.New("display connection closed")
	// ErrWindowGone means the window was destroyed before a request reached it.
	ErrWindowGone = errors.New("window no longer exists")
)

// RequestError wraps a failed request against a single window.
type RequestError struct {
	Op     string
	Window WindowID
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s window 0x%x: %v", e.Op, uint32(e.Window), e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DisplayServer is the window-level part of the display server interface.
type DisplayServer interface {
	// NextEvent blocks until an event arrives. It returns ErrConnectionClosed
	// once the connection is gone; other errors are asynchronous request
	// failures and the connection stays usable.
	NextEvent() (Event, error)
	QueryGeometry(id WindowID) (Geometry, error)
	Configure(id WindowID, changes Changes) error
	SendConfigureNotify(id WindowID, g Geometry) error
	MapWindow(id WindowID) error
	CloseWindow(id WindowID) error
	Describe(id WindowID) (WindowInfo, error)
	ExistingWindows() ([]WindowID, error)
	// PointerWindow returns the top-level window under the pointer, or 0.
	PointerWindow() (WindowID, error)
	ScreenArea() (Rect, error)
}

// Keymap translates raw key events and manages passive key grabs.
type Keymap interface {
	KeyName(code uint8) string
	// ModifierNames returns the keysym names of the keys bound to the modifier
	// bits set in state.
	ModifierNames(state uint16) []string
	// GrabKey grabs every keycode producing one of keysyms while the modifiers
	// are held. Each entry of modifiers lists the keysyms of one modifier key
	// (left and right variants). It returns the number of keycodes grabbed.
	GrabKey(modifiers [][]string, keysyms []string) (int, error)
	UngrabKeys() error
	RefreshKeyboard()
}

// Desktops publishes tag state for pagers and panels.
type Desktops interface {
	PublishDesktops(count int) error
	SetCurrentDesktop(index int) error
	SetWindowDesktop(id WindowID, index int) error
	SetClientList(ids []WindowID) error
}

// Backend abstracts the display server behind the window manager.
type Backend interface {
	DisplayServer
	Keymap
	Desktops
	Close() error
}
