package daemon

import (
	"log/slog"
	"os/exec"
	"syscall"
)

// Executor runs bound commands. Invoke must not block on the command.
type Executor interface {
	Invoke(command string)
}

// ShellExecutor runs commands through a shell in their own session, so they
// outlive the window manager's process group.
type ShellExecutor struct {
	Shell  string
	Logger *slog.Logger
}

func NewShellExecutor(logger *slog.Logger) *ShellExecutor {
	return &ShellExecutor{Shell: "/bin/sh", Logger: logger}
}

func (e *ShellExecutor) Invoke(command string) {
	cmd := exec.Command(e.Shell, "-c", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		e.Logger.Warn("command failed to start", "command", command, "error", err)
		return
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			e.Logger.Debug("command exited", "command", command, "error", err)
		}
	}()
}
