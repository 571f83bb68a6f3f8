//go:build linux

package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/xrwm/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// Connect opens display (or $DISPLAY) and takes over window management on
// its root window.
func Connect(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	if err := conn.BecomeWM(); err != nil {
		conn.Close()
		return nil, err
	}
	return &LinuxBackend{conn: conn}, nil
}

func (b *LinuxBackend) Close() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
	return nil
}

func (b *LinuxBackend) NextEvent() (Event, error) {
	ev, err := b.conn.WaitForEvent()
	if err != nil {
		if errors.Is(err, x11.ErrClosed) {
			return nil, ErrConnectionClosed
		}
		return nil, asyncError(err)
	}
	return translateEvent(ev, b.conn.AtomName), nil
}

// translateEvent maps an X event onto the platform event set. atomName
// resolves client message types.
func translateEvent(ev xgb.Event, atomName func(xproto.Atom) string) Event {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return KeyPress{Code: uint8(e.Detail), State: e.State}
	case xproto.KeyReleaseEvent:
		return KeyRelease{Code: uint8(e.Detail), State: e.State}
	case xproto.MapRequestEvent:
		return MapRequest{Window: WindowID(e.Window)}
	case xproto.MapNotifyEvent:
		return MapNotify{Window: WindowID(e.Window), OverrideRedirect: e.OverrideRedirect}
	case xproto.UnmapNotifyEvent:
		return UnmapNotify{Window: WindowID(e.Window)}
	case xproto.DestroyNotifyEvent:
		return DestroyNotify{Window: WindowID(e.Window)}
	case xproto.ConfigureRequestEvent:
		return ConfigureRequest{
			Window: WindowID(e.Window),
			Changes: Changes{
				Mask:      ChangeMask(e.ValueMask),
				X:         int(e.X),
				Y:         int(e.Y),
				Width:     int(e.Width),
				Height:    int(e.Height),
				Border:    int(e.BorderWidth),
				Sibling:   WindowID(e.Sibling),
				StackMode: e.StackMode,
			},
		}
	case xproto.MappingNotifyEvent:
		if e.Request == xproto.MappingPointer {
			return Other{Name: "MappingNotify(pointer)"}
		}
		return MappingNotify{}
	case xproto.ClientMessageEvent:
		if e.Format != 32 {
			break
		}
		data := e.Data.Data32
		if len(data) == 0 {
			break
		}
		switch atomName(e.Type) {
		case "_NET_CURRENT_DESKTOP":
			return ViewRequest{Desktop: int(data[0])}
		case "_NET_WM_DESKTOP":
			return DesktopRequest{Window: WindowID(e.Window), Desktop: int(int32(data[0]))}
		}
		return Other{Name: "ClientMessage(" + atomName(e.Type) + ")"}
	}
	return Other{Name: strings.TrimPrefix(fmt.Sprintf("%T", ev), "xproto.")}
}

func asyncError(err error) error {
	var id WindowID
	switch e := err.(type) {
	case xproto.WindowError:
		id = WindowID(e.BadValue)
	case xproto.DrawableError:
		id = WindowID(e.BadValue)
	case xproto.MatchError:
		id = WindowID(e.BadValue)
	default:
		return fmt.Errorf("x11: %w", err)
	}
	return requestError("async", id, err)
}

func requestError(op string, id WindowID, err error) error {
	if x11.IsBadWindow(err) {
		err = fmt.Errorf("%w (%v)", ErrWindowGone, err)
	}
	return &RequestError{Op: op, Window: id, Err: err}
}

func (b *LinuxBackend) QueryGeometry(id WindowID) (Geometry, error) {
	geom, err := b.conn.Geometry(xproto.Window(id))
	if err != nil {
		return Geometry{}, requestError("query geometry", id, err)
	}
	return Geometry{
		X:      int(geom.X),
		Y:      int(geom.Y),
		Width:  int(geom.Width),
		Height: int(geom.Height),
		Border: int(geom.BorderWidth),
	}, nil
}

// configureValues encodes c as a ConfigureWindow value mask and value list,
// in increasing bit order.
func configureValues(c Changes) (uint16, []uint32) {
	var values []uint32
	if c.Has(ChangeX) {
		values = append(values, uint32(int32(c.X)))
	}
	if c.Has(ChangeY) {
		values = append(values, uint32(int32(c.Y)))
	}
	if c.Has(ChangeWidth) {
		values = append(values, uint32(max(1, c.Width)))
	}
	if c.Has(ChangeHeight) {
		values = append(values, uint32(max(1, c.Height)))
	}
	if c.Has(ChangeBorder) {
		values = append(values, uint32(max(0, c.Border)))
	}
	if c.Has(ChangeSibling) {
		values = append(values, uint32(c.Sibling))
	}
	if c.Has(ChangeStackMode) {
		values = append(values, uint32(c.StackMode))
	}
	return uint16(c.Mask & (ChangeStackMode<<1 - 1)), values
}

func (b *LinuxBackend) Configure(id WindowID, changes Changes) error {
	mask, values := configureValues(changes)
	if mask == 0 {
		return nil
	}
	if err := b.conn.ConfigureWindow(xproto.Window(id), mask, values); err != nil {
		return requestError("configure", id, err)
	}
	return nil
}

func (b *LinuxBackend) SendConfigureNotify(id WindowID, g Geometry) error {
	err := b.conn.SendConfigureNotify(xproto.Window(id),
		int16(g.X), int16(g.Y), uint16(g.Width), uint16(g.Height), uint16(g.Border))
	if err != nil {
		return requestError("configure notify", id, err)
	}
	return nil
}

func (b *LinuxBackend) MapWindow(id WindowID) error {
	if err := b.conn.MapWindow(xproto.Window(id)); err != nil {
		return requestError("map", id, err)
	}
	return nil
}

func (b *LinuxBackend) CloseWindow(id WindowID) error {
	if err := b.conn.CloseWindow(xproto.Window(id)); err != nil {
		return requestError("close", id, err)
	}
	return nil
}

func (b *LinuxBackend) Describe(id WindowID) (WindowInfo, error) {
	win := xproto.Window(id)
	attrs, err := b.conn.Attributes(win)
	if err != nil {
		return WindowInfo{}, requestError("describe", id, err)
	}
	class, instance := b.conn.WindowClass(win)
	desktop, err := b.conn.GetWindowDesktop(win)
	if err != nil {
		desktop = -1
	}
	return WindowInfo{
		Class:            class,
		Instance:         instance,
		Title:            b.conn.WindowTitle(win),
		OverrideRedirect: attrs.OverrideRedirect,
		Manageable:       b.conn.IsManageable(win),
		Dock:             b.conn.IsDock(win),
		Desktop:          desktop,
		Positioned:       b.conn.UserPositioned(win),
	}, nil
}

func (b *LinuxBackend) ExistingWindows() ([]WindowID, error) {
	children, err := b.conn.ViewableChildren()
	if err != nil {
		return nil, err
	}
	ids := make([]WindowID, 0, len(children))
	for _, w := range children {
		ids = append(ids, WindowID(w))
	}
	return ids, nil
}

func (b *LinuxBackend) PointerWindow() (WindowID, error) {
	win, err := b.conn.PointerChild()
	if err != nil {
		return 0, fmt.Errorf("query pointer: %w", err)
	}
	return WindowID(win), nil
}

func (b *LinuxBackend) ScreenArea() (Rect, error) {
	mon, err := b.conn.ScreenArea()
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: mon.X, Y: mon.Y, Width: mon.Width, Height: mon.Height}, nil
}

func (b *LinuxBackend) KeyName(code uint8) string {
	return b.conn.KeysymName(xproto.Keycode(code))
}

func (b *LinuxBackend) ModifierNames(state uint16) []string {
	return b.conn.ModifierKeysyms(state)
}

func (b *LinuxBackend) GrabKey(modifiers [][]string, keysyms []string) (int, error) {
	var mask uint16
	for _, syms := range modifiers {
		m := b.conn.ModifierMask(syms)
		if m == 0 {
			return 0, fmt.Errorf("no modifier bit is bound to %s", strings.Join(syms, "/"))
		}
		mask |= m
	}
	return b.conn.GrabKey(mask, keysyms)
}

func (b *LinuxBackend) UngrabKeys() error {
	return b.conn.UngrabAllKeys()
}

func (b *LinuxBackend) RefreshKeyboard() {
	b.conn.RefreshKeyboard()
}

func (b *LinuxBackend) PublishDesktops(count int) error {
	return b.conn.AnnounceWM("xrwm", count)
}

func (b *LinuxBackend) SetCurrentDesktop(index int) error {
	return b.conn.SetCurrentDesktop(index)
}

func (b *LinuxBackend) SetWindowDesktop(id WindowID, index int) error {
	if err := b.conn.SetWindowDesktop(xproto.Window(id), index); err != nil {
		return requestError("set desktop", id, err)
	}
	return nil
}

func (b *LinuxBackend) SetClientList(ids []WindowID) error {
	wins := make([]xproto.Window, len(ids))
	for i, id := range ids {
		wins[i] = xproto.Window(id)
	}
	return b.conn.SetClientList(wins)
}
