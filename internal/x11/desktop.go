package x11

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// supportedAtoms are advertised through _NET_SUPPORTED.
var supportedAtoms = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
	"_NET_WM_DESKTOP",
	"_NET_CLIENT_LIST",
	"_NET_WM_NAME",
}

// AnnounceWM publishes the EWMH root properties pagers use to recognize a
// compliant window manager.
func (c *Connection) AnnounceWM(name string, desktops int) error {
	check, err := c.createCheckWindow()
	if err != nil {
		return fmt.Errorf("failed to create check window: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, c.Root, check.Id); err != nil {
		return fmt.Errorf("failed to set _NET_SUPPORTING_WM_CHECK: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(c.XUtil, check.Id, check.Id); err != nil {
		return fmt.Errorf("failed to set _NET_SUPPORTING_WM_CHECK: %w", err)
	}
	if err := ewmh.WmNameSet(c.XUtil, check.Id, name); err != nil {
		return fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
	}
	if err := ewmh.SupportedSet(c.XUtil, supportedAtoms); err != nil {
		return fmt.Errorf("failed to set _NET_SUPPORTED: %w", err)
	}
	if err := ewmh.NumberOfDesktopsSet(c.XUtil, uint(desktops)); err != nil {
		return fmt.Errorf("failed to set _NET_NUMBER_OF_DESKTOPS: %w", err)
	}
	names := make([]string, desktops)
	for i := range names {
		names[i] = strconv.Itoa(i + 1)
	}
	if err := ewmh.DesktopNamesSet(c.XUtil, names); err != nil {
		return fmt.Errorf("failed to set _NET_DESKTOP_NAMES: %w", err)
	}
	return nil
}

// SetCurrentDesktop publishes _NET_CURRENT_DESKTOP (0-indexed).
func (c *Connection) SetCurrentDesktop(desktop int) error {
	if err := ewmh.CurrentDesktopSet(c.XUtil, uint(desktop)); err != nil {
		return fmt.Errorf("failed to set current desktop: %w", err)
	}
	return nil
}

// GetWindowDesktop returns the desktop number a window asked for through
// _NET_WM_DESKTOP, or -1 for "sticky" windows (visible on all desktops).
func (c *Connection) GetWindowDesktop(windowID xproto.Window) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID)
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	if desktop == 0xFFFFFFFF {
		return -1, nil
	}
	return int(desktop), nil
}

// SetWindowDesktop records the window's desktop in _NET_WM_DESKTOP.
func (c *Connection) SetWindowDesktop(windowID xproto.Window, desktop int) error {
	if err := ewmh.WmDesktopSet(c.XUtil, windowID, uint(desktop)); err != nil {
		return fmt.Errorf("failed to set window desktop: %w", err)
	}
	return nil
}

// SetClientList publishes _NET_CLIENT_LIST in mapping order.
func (c *Connection) SetClientList(windows []xproto.Window) error {
	return ewmh.ClientListSet(c.XUtil, windows)
}
