package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// IsBadWindow reports whether err says the window no longer exists.
func IsBadWindow(err error) bool {
	switch err.(type) {
	case xproto.WindowError, xproto.DrawableError:
		return true
	}
	return false
}

// Geometry returns the window's position, size and border width relative to
// its parent.
func (c *Connection) Geometry(windowID xproto.Window) (*xproto.GetGeometryReply, error) {
	return xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
}

// ConfigureWindow issues a checked ConfigureWindow request. values must be in
// increasing mask bit order, as the protocol requires.
func (c *Connection) ConfigureWindow(windowID xproto.Window, mask uint16, values []uint32) error {
	return xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID, mask, values).Check()
}

// SendConfigureNotify tells a client its geometry without changing it, used
// to refuse a ConfigureRequest (ICCCM 4.1.5).
func (c *Connection) SendConfigureNotify(windowID xproto.Window, x, y int16, width, height, border uint16) error {
	ev := xproto.ConfigureNotifyEvent{
		Event:        windowID,
		Window:       windowID,
		AboveSibling: xproto.WindowNone,
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		BorderWidth:  border,
	}
	return xproto.SendEventChecked(c.XUtil.Conn(), false, windowID,
		xproto.EventMaskStructureNotify, string(ev.Bytes())).Check()
}

func (c *Connection) MapWindow(windowID xproto.Window) error {
	return xproto.MapWindowChecked(c.XUtil.Conn(), windowID).Check()
}

// Attributes returns the window attributes (map state, override-redirect).
func (c *Connection) Attributes(windowID xproto.Window) (*xproto.GetWindowAttributesReply, error) {
	return xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
}

// ViewableChildren returns the root's mapped children in stacking order.
func (c *Connection) ViewableChildren() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("query tree: %w", err)
	}
	out := make([]xproto.Window, 0, len(tree.Children))
	for _, child := range tree.Children {
		attrs, err := c.Attributes(child)
		if err != nil {
			continue
		}
		if attrs.MapState != xproto.MapStateViewable {
			continue
		}
		out = append(out, child)
	}
	return out, nil
}

// PointerChild returns the top-level window under the pointer, or 0.
func (c *Connection) PointerChild() (xproto.Window, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Child, nil
}

// WindowClass returns the WM_CLASS class and instance, empty when unset.
func (c *Connection) WindowClass(windowID xproto.Window) (class, instance string) {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil || wmClass == nil {
		return "", ""
	}
	return strings.TrimSpace(wmClass.Class), strings.TrimSpace(wmClass.Instance)
}

func (c *Connection) WindowTitle(windowID xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	if title, err := icccm.WmNameGet(c.XUtil, windowID); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// IsManageable reports whether a window should be managed: anything except
// desktop, dock, splash and notification windows.
func (c *Connection) IsManageable(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return true
	}
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG", "_NET_WM_WINDOW_TYPE_UTILITY":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}
	return true
}

// IsDock reports whether the window declares _NET_WM_WINDOW_TYPE_DOCK.
func (c *Connection) IsDock(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// UserPositioned reports whether WM_NORMAL_HINTS carries a user or program
// specified position.
func (c *Connection) UserPositioned(windowID xproto.Window) bool {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil || hints == nil {
		return false
	}
	return hints.Flags&(icccm.SizeHintUSPosition|icccm.SizeHintPPosition) != 0
}

// CloseWindow asks a client to close via WM_DELETE_WINDOW, killing the
// client when it does not support the protocol.
func (c *Connection) CloseWindow(windowID xproto.Window) error {
	protocols, err := icccm.WmProtocolsGet(c.XUtil, windowID)
	supportsDelete := false
	if err == nil {
		for _, p := range protocols {
			if p == "WM_DELETE_WINDOW" {
				supportsDelete = true
				break
			}
		}
	}
	if !supportsDelete {
		return xproto.KillClientChecked(c.XUtil.Conn(), uint32(windowID)).Check()
	}

	deleteAtom, err := c.atom("WM_DELETE_WINDOW")
	if err != nil {
		return err
	}
	protocolsAtom, err := c.atom("WM_PROTOCOLS")
	if err != nil {
		return err
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   protocolsAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteAtom), uint32(xproto.TimeCurrentTime), 0, 0, 0}),
	}
	return xproto.SendEventChecked(c.XUtil.Conn(), false, windowID,
		xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

func (c *Connection) atom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

// AtomName resolves an atom for event decoding.
func (c *Connection) AtomName(atom xproto.Atom) string {
	reply, err := xproto.GetAtomName(c.XUtil.Conn(), atom).Reply()
	if err != nil {
		return ""
	}
	return reply.Name
}

// createCheckWindow creates the unmapped child advertised through
// _NET_SUPPORTING_WM_CHECK.
func (c *Connection) createCheckWindow() (*xwindow.Window, error) {
	if c.check != nil {
		return c.check, nil
	}
	win, err := xwindow.Create(c.XUtil, c.Root)
	if err != nil {
		return nil, err
	}
	c.check = win
	return win, nil
}
