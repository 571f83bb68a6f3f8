package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor is the rectangle of one active CRTC in root coordinates.
type Monitor struct {
	Name    string
	X       int
	Y       int
	Width   int
	Height  int
	Primary bool
}

// Monitors returns the active CRTCs reported by RandR.
func (c *Connection) Monitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		mon := Monitor{
			Name:   fmt.Sprintf("crtc%d", i),
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		}
		for _, out := range info.Outputs {
			if primary != 0 && out == primary {
				mon.Primary = true
			}
		}
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			mon.Name = string(out.Name)
		}
		monitors = append(monitors, mon)
	}
	return monitors, nil
}

// ScreenArea returns the rectangle windows are laid out in: the primary
// monitor (or the one under the pointer, or the first, or the whole root when
// RandR is unavailable) minus the space reserved by dock struts.
func (c *Connection) ScreenArea() (Monitor, error) {
	root, err := c.Geometry(c.Root)
	if err != nil {
		return Monitor{}, fmt.Errorf("root geometry: %w", err)
	}
	mon := Monitor{Name: "root", Width: int(root.Width), Height: int(root.Height)}

	if monitors, err := c.Monitors(); err == nil && len(monitors) > 0 {
		mon = pickMonitor(c, monitors)
	}

	applyDockStruts(c, &mon, int(root.Width), int(root.Height))
	return mon, nil
}

func pickMonitor(c *Connection, monitors []Monitor) Monitor {
	for _, m := range monitors {
		if m.Primary {
			return m
		}
	}
	if m := findMonitorForPointer(c, monitors); m != nil {
		return *m
	}
	return monitors[0]
}

type dockStruts struct {
	left   int
	right  int
	top    int
	bottom int
}

func applyDockStruts(c *Connection, monitor *Monitor, rootWidth, rootHeight int) {
	children, err := c.ViewableChildren()
	if err != nil {
		return
	}

	var struts dockStruts
	for _, windowID := range children {
		if !c.IsDock(windowID) {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, windowID); err == nil {
			updateStrutsForMonitor(monitor, rootWidth, rootHeight, sp, &struts)
			continue
		}
		// Older docks only set _NET_WM_STRUT, which spans the full edge.
		if s, err := ewmh.WmStrutGet(c.XUtil, windowID); err == nil {
			sp := &ewmh.WmStrutPartial{
				Left:       s.Left,
				Right:      s.Right,
				Top:        s.Top,
				Bottom:     s.Bottom,
				LeftEndY:   uint(rootHeight - 1),
				RightEndY:  uint(rootHeight - 1),
				TopEndX:    uint(rootWidth - 1),
				BottomEndX: uint(rootWidth - 1),
			}
			updateStrutsForMonitor(monitor, rootWidth, rootHeight, sp, &struts)
		}
	}

	monitor.X += struts.left
	monitor.Y += struts.top
	monitor.Width = max(1, monitor.Width-struts.left-struts.right)
	monitor.Height = max(1, monitor.Height-struts.top-struts.bottom)
}

func updateStrutsForMonitor(monitor *Monitor, rootWidth, rootHeight int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	mon := rect{monitor.X, monitor.Y, monitor.X + monitor.Width, monitor.Y + monitor.Height}

	if sp.Top > 0 {
		r := rect{int(sp.TopStartX), 0, int(sp.TopEndX) + 1, int(sp.Top)}
		acc.top = max(acc.top, mon.intersect(r).height())
	}
	if sp.Bottom > 0 {
		r := rect{int(sp.BottomStartX), rootHeight - int(sp.Bottom), int(sp.BottomEndX) + 1, rootHeight}
		acc.bottom = max(acc.bottom, mon.intersect(r).height())
	}
	if sp.Left > 0 {
		r := rect{0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY) + 1}
		acc.left = max(acc.left, mon.intersect(r).width())
	}
	if sp.Right > 0 {
		r := rect{rootWidth - int(sp.Right), int(sp.RightStartY), rootWidth, int(sp.RightEndY) + 1}
		acc.right = max(acc.right, mon.intersect(r).width())
	}
}

// rect is a half-open box [x1,x2) x [y1,y2).
type rect struct {
	x1, y1, x2, y2 int
}

func (a rect) intersect(b rect) rect {
	r := rect{max(a.x1, b.x1), max(a.y1, b.y1), min(a.x2, b.x2), min(a.y2, b.y2)}
	if r.x2 <= r.x1 || r.y2 <= r.y1 {
		return rect{}
	}
	return r
}

func (a rect) width() int  { return a.x2 - a.x1 }
func (a rect) height() int { return a.y2 - a.y1 }

func findMonitorForPointer(c *Connection, monitors []Monitor) *Monitor {
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil
	}
	x, y := int(pointer.RootX), int(pointer.RootY)
	for i := range monitors {
		mon := &monitors[i]
		if x >= mon.X && x < mon.X+mon.Width && y >= mon.Y && y < mon.Y+mon.Height {
			return mon
		}
	}
	return nil
}
