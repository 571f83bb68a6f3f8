package daemon

import (
	"log/slog"

	"github.com/1broseidon/xrwm/internal/platform"
	"github.com/1broseidon/xrwm/internal/workspace"
)

// StateSynchronizer mirrors tag state into the desktop properties pagers and
// panels read. Failures are logged and never stop the caller.
type StateSynchronizer struct {
	desktops platform.Desktops
	logger   *slog.Logger
}

func NewStateSynchronizer(desktops platform.Desktops, logger *slog.Logger) *StateSynchronizer {
	return &StateSynchronizer{desktops: desktops, logger: logger}
}

// Announce publishes the desktop count and the active tag.
func (s *StateSynchronizer) Announce(tags int, active uint32) {
	if err := s.desktops.PublishDesktops(tags); err != nil {
		s.logger.Warn("failed to publish desktops", "error", err)
	}
	s.CurrentDesktop(active)
}

func (s *StateSynchronizer) CurrentDesktop(tag uint32) {
	if err := s.desktops.SetCurrentDesktop(int(tag) - 1); err != nil {
		s.logger.Warn("failed to publish current desktop", "tag", tag, "error", err)
	}
}

func (s *StateSynchronizer) WindowDesktop(id platform.WindowID, tag uint32) {
	if err := s.desktops.SetWindowDesktop(id, int(tag)-1); err != nil {
		s.logger.Debug("failed to publish window desktop",
			"window_id", uint32(id),
			"tag", tag,
			"error", err)
	}
}

// ClientList publishes the managed windows in registration order.
func (s *StateSynchronizer) ClientList(windows []workspace.Window) {
	ids := make([]platform.WindowID, len(windows))
	for i, w := range windows {
		ids[i] = w.ID
	}
	if err := s.desktops.SetClientList(ids); err != nil {
		s.logger.Warn("failed to publish client list", "error", err)
	}
}
