//go:build linux

package platform

import (
	"errors"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func atomNames(names map[xproto.Atom]string) func(xproto.Atom) string {
	return func(a xproto.Atom) string { return names[a] }
}

func TestTranslateEvent_Lifecycle(t *testing.T) {
	noAtoms := atomNames(nil)

	if ev, ok := translateEvent(xproto.MapRequestEvent{Window: 7}, noAtoms).(MapRequest); !ok || ev.Window != 7 {
		t.Fatalf("expected MapRequest for 7, got %#v", ev)
	}
	ev := translateEvent(xproto.MapNotifyEvent{Window: 8, OverrideRedirect: true}, noAtoms)
	if mn, ok := ev.(MapNotify); !ok || mn.Window != 8 || !mn.OverrideRedirect {
		t.Fatalf("expected override-redirect MapNotify, got %#v", ev)
	}
	if _, ok := translateEvent(xproto.UnmapNotifyEvent{Window: 9}, noAtoms).(UnmapNotify); !ok {
		t.Fatalf("expected UnmapNotify")
	}
	if _, ok := translateEvent(xproto.DestroyNotifyEvent{Window: 9}, noAtoms).(DestroyNotify); !ok {
		t.Fatalf("expected DestroyNotify")
	}
}

func TestTranslateEvent_ConfigureRequest(t *testing.T) {
	ev := translateEvent(xproto.ConfigureRequestEvent{
		Window:    3,
		X:         -20,
		Y:         40,
		Width:     300,
		Height:    200,
		ValueMask: xproto.ConfigWindowX | xproto.ConfigWindowWidth,
	}, atomNames(nil))
	req, ok := ev.(ConfigureRequest)
	if !ok {
		t.Fatalf("expected ConfigureRequest, got %#v", ev)
	}
	if !req.Changes.Has(ChangeX|ChangeWidth) || req.Changes.Has(ChangeY) {
		t.Fatalf("unexpected mask %b", req.Changes.Mask)
	}
	if req.Changes.X != -20 || req.Changes.Width != 300 {
		t.Fatalf("expected x=-20 width=300, got %+v", req.Changes)
	}
}

func TestTranslateEvent_ClientMessages(t *testing.T) {
	names := atomNames(map[xproto.Atom]string{
		100: "_NET_CURRENT_DESKTOP",
		101: "_NET_WM_DESKTOP",
		102: "_NET_ACTIVE_WINDOW",
	})

	view := translateEvent(xproto.ClientMessageEvent{
		Format: 32,
		Type:   100,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{2, 0, 0, 0, 0}),
	}, names)
	if v, ok := view.(ViewRequest); !ok || v.Desktop != 2 {
		t.Fatalf("expected ViewRequest{2}, got %#v", view)
	}

	move := translateEvent(xproto.ClientMessageEvent{
		Format: 32,
		Window: 55,
		Type:   101,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0xFFFFFFFF, 0, 0, 0, 0}),
	}, names)
	if m, ok := move.(DesktopRequest); !ok || m.Window != 55 || m.Desktop != -1 {
		t.Fatalf("expected DesktopRequest{55,-1}, got %#v", move)
	}

	other := translateEvent(xproto.ClientMessageEvent{
		Format: 32,
		Type:   102,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}, names)
	if _, ok := other.(Other); !ok {
		t.Fatalf("expected Other for _NET_ACTIVE_WINDOW, got %#v", other)
	}
}

func TestTranslateEvent_Keyboard(t *testing.T) {
	ev := translateEvent(xproto.KeyPressEvent{Detail: 38, State: xproto.ModMask4}, atomNames(nil))
	kp, ok := ev.(KeyPress)
	if !ok || kp.Code != 38 || kp.State != xproto.ModMask4 {
		t.Fatalf("expected KeyPress{38, Mod4}, got %#v", ev)
	}
	if _, ok := translateEvent(xproto.MappingNotifyEvent{Request: xproto.MappingKeyboard}, atomNames(nil)).(MappingNotify); !ok {
		t.Fatalf("expected MappingNotify for keyboard mapping change")
	}
	if _, ok := translateEvent(xproto.MappingNotifyEvent{Request: xproto.MappingPointer}, atomNames(nil)).(Other); !ok {
		t.Fatalf("expected pointer mapping changes to be ignored")
	}
	if o, ok := translateEvent(xproto.ExposeEvent{}, atomNames(nil)).(Other); !ok || o.Name != "ExposeEvent" {
		t.Fatalf("expected Other{ExposeEvent}, got %#v", o)
	}
}

func TestConfigureValues(t *testing.T) {
	mask, values := configureValues(Changes{
		Mask:      ChangeX | ChangeHeight | ChangeStackMode,
		X:         -5,
		Height:    0,
		StackMode: StackAbove,
	})
	if mask != xproto.ConfigWindowX|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode {
		t.Fatalf("unexpected mask %b", mask)
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %v", values)
	}
	if int32(values[0]) != -5 {
		t.Fatalf("expected x=-5, got %d", int32(values[0]))
	}
	if values[1] != 1 {
		t.Fatalf("expected height clamped to 1, got %d", values[1])
	}
}

func TestRequestErrorMarksGoneWindows(t *testing.T) {
	err := requestError("configure", 12, xproto.WindowError{BadValue: 12})
	if !errors.Is(err, ErrWindowGone) {
		t.Fatalf("expected ErrWindowGone, got %v", err)
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Window != 12 {
		t.Fatalf("expected RequestError for window 12, got %v", err)
	}

	other := requestError("configure", 12, xproto.ValueError{})
	if errors.Is(other, ErrWindowGone) {
		t.Fatalf("expected value errors not to be ErrWindowGone")
	}
}
