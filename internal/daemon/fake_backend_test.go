package daemon

import (
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/1broseidon/xrwm/internal/config"
	"github.com/1broseidon/xrwm/internal/platform"
)

type fakeWindow struct {
	geom platform.Geometry
	info platform.WindowInfo
}

type configureCall struct {
	id      platform.WindowID
	changes platform.Changes
}

type grabCall struct {
	modifiers [][]string
	keysyms   []string
}

// fakeBackend is an in-memory display server.
type fakeBackend struct {
	mu sync.Mutex

	events   chan platform.Event
	screen   platform.Rect
	windows  map[platform.WindowID]*fakeWindow
	existing []platform.WindowID
	pointer  platform.WindowID

	keyNames map[uint8]string
	modNames map[uint16][]string

	configures    []configureCall
	notifies      []platform.WindowID
	mapped        []platform.WindowID
	closed        []platform.WindowID
	grabs         []grabCall
	ungrabs       int
	refreshes     int
	failConfigure map[platform.WindowID]bool

	desktopCount int
	current      int
	desktops     map[platform.WindowID]int
	clientList   []platform.WindowID

	configureDelay time.Duration
	inflight       atomic.Int32
	overlap        atomic.Bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		events:        make(chan platform.Event, 16),
		screen:        platform.Rect{Width: 1000, Height: 800},
		windows:       make(map[platform.WindowID]*fakeWindow),
		keyNames:      make(map[uint8]string),
		modNames:      make(map[uint16][]string),
		failConfigure: make(map[platform.WindowID]bool),
		desktops:      make(map[platform.WindowID]int),
	}
}

func (f *fakeBackend) addWindow(id platform.WindowID, info platform.WindowInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows[id] = &fakeWindow{
		geom: platform.Geometry{X: 0, Y: 0, Width: 200, Height: 100, Border: 0},
		info: info,
	}
}

func normalWindow(class string) platform.WindowInfo {
	return platform.WindowInfo{Class: class, Instance: class, Manageable: true, Desktop: -1}
}

func dockWindow(class string) platform.WindowInfo {
	return platform.WindowInfo{Class: class, Instance: class, Dock: true, Desktop: -1}
}

func (f *fakeBackend) geometry(id platform.WindowID) platform.Geometry {
	f.mu.Lock()
	defer f.mu.Unlock()
	if w, ok := f.windows[id]; ok {
		return w.geom
	}
	return platform.Geometry{}
}

func (f *fakeBackend) removeWindow(id platform.WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.windows, id)
}

func (f *fakeBackend) checkOverlap() {
	if f.inflight.Load() > 0 {
		f.overlap.Store(true)
	}
}

func gone(op string, id platform.WindowID) error {
	return &platform.RequestError{Op: op, Window: id, Err: platform.ErrWindowGone}
}

func (f *fakeBackend) NextEvent() (platform.Event, error) {
	ev, ok := <-f.events
	if !ok {
		return nil, platform.ErrConnectionClosed
	}
	return ev, nil
}

func (f *fakeBackend) QueryGeometry(id platform.WindowID) (platform.Geometry, error) {
	f.checkOverlap()
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[id]
	if !ok {
		return platform.Geometry{}, gone("query geometry", id)
	}
	return w.geom, nil
}

func (f *fakeBackend) Configure(id platform.WindowID, changes platform.Changes) error {
	f.inflight.Add(1)
	defer f.inflight.Add(-1)
	if f.configureDelay > 0 {
		time.Sleep(f.configureDelay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.configures = append(f.configures, configureCall{id: id, changes: changes})
	if f.failConfigure[id] {
		return &platform.RequestError{Op: "configure", Window: id, Err: io.ErrUnexpectedEOF}
	}
	w, ok := f.windows[id]
	if !ok {
		return gone("configure", id)
	}
	w.geom = changes.Apply(w.geom)
	return nil
}

func (f *fakeBackend) SendConfigureNotify(id platform.WindowID, g platform.Geometry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifies = append(f.notifies, id)
	return nil
}

func (f *fakeBackend) MapWindow(id platform.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mapped = append(f.mapped, id)
	return nil
}

func (f *fakeBackend) CloseWindow(id platform.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, id)
	return nil
}

func (f *fakeBackend) Describe(id platform.WindowID) (platform.WindowInfo, error) {
	f.checkOverlap()
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.windows[id]
	if !ok {
		return platform.WindowInfo{}, gone("describe", id)
	}
	return w.info, nil
}

func (f *fakeBackend) ExistingWindows() ([]platform.WindowID, error) {
	return f.existing, nil
}

func (f *fakeBackend) PointerWindow() (platform.WindowID, error) {
	return f.pointer, nil
}

func (f *fakeBackend) ScreenArea() (platform.Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.screen, nil
}

func (f *fakeBackend) setScreen(r platform.Rect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screen = r
}

func (f *fakeBackend) KeyName(code uint8) string {
	return f.keyNames[code]
}

func (f *fakeBackend) ModifierNames(state uint16) []string {
	var out []string
	for bit := uint16(1); bit <= 1<<7; bit <<= 1 {
		if state&bit != 0 {
			out = append(out, f.modNames[bit]...)
		}
	}
	return out
}

func (f *fakeBackend) GrabKey(modifiers [][]string, keysyms []string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grabs = append(f.grabs, grabCall{modifiers: modifiers, keysyms: keysyms})
	return 1, nil
}

func (f *fakeBackend) UngrabKeys() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ungrabs++
	f.grabs = nil
	return nil
}

func (f *fakeBackend) RefreshKeyboard() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
}

func (f *fakeBackend) PublishDesktops(count int) error {
	f.desktopCount = count
	return nil
}

func (f *fakeBackend) SetCurrentDesktop(index int) error {
	f.current = index
	return nil
}

func (f *fakeBackend) SetWindowDesktop(id platform.WindowID, index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.desktops[id] = index
	return nil
}

func (f *fakeBackend) SetClientList(ids []platform.WindowID) error {
	f.clientList = append([]platform.WindowID(nil), ids...)
	return nil
}

func (f *fakeBackend) Close() error { return nil }

type recordingExecutor struct {
	commands []string
}

func (e *recordingExecutor) Invoke(command string) {
	e.commands = append(e.commands, command)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(bindings ...config.Keybinding) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Keybindings = bindings
	cfg.ReconcileInterval = 0
	return cfg
}

func newTestDispatcher(t *testing.T, cfg *config.Config, fb *fakeBackend) (*Dispatcher, *recordingExecutor) {
	t.Helper()
	exec := &recordingExecutor{}
	d, err := New(Options{Config: cfg, Backend: fb, Executor: exec, Logger: testLogger()})
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	if err := d.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return d, exec
}
