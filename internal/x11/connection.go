package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xwindow"
)

var (
	// ErrClosed is returned by WaitForEvent once the server connection is gone.
	ErrClosed = errors.New("x11 connection closed")
	// ErrOtherWM means another client already selected SubstructureRedirect on the root.
	ErrOtherWM = errors.New("another window manager is already running")
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	check *xwindow.Window
}

// NewConnection connects to display, or $DISPLAY when display is empty.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, err
	}

	// Loads the initial keyboard and modifier maps.
	keybind.Initialize(xu)
	configureIgnoreMods(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// BecomeWM selects substructure redirection on the root window. Only one
// client may hold it, so failure means another window manager is running.
func (c *Connection) BecomeWM() error {
	mask := uint32(xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskStructureNotify)
	err := xproto.ChangeWindowAttributesChecked(c.XUtil.Conn(), c.Root,
		xproto.CwEventMask, []uint32{mask}).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return ErrOtherWM
		}
		return fmt.Errorf("select root events: %w", err)
	}
	return nil
}

// WaitForEvent blocks for the next event. Asynchronous request errors are
// returned as errors; the connection stays usable after them.
func (c *Connection) WaitForEvent() (xgb.Event, error) {
	ev, xerr := c.XUtil.Conn().WaitForEvent()
	if ev == nil && xerr == nil {
		return nil, ErrClosed
	}
	if xerr != nil {
		return nil, xerr
	}
	return ev, nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	if c.check != nil {
		c.check.Destroy()
	}
	c.XUtil.Conn().Close()
}
