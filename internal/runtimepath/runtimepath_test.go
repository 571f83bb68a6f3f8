package runtimepath

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got == "" {
		t.Fatal("Dir() returned empty path")
	}

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/xrwm-runtime-%d", os.Getuid())
	if got != wantRun && got != wantTmp {
		t.Fatalf("Dir() = %q, want %q or %q", got, wantRun, wantTmp)
	}
}

func TestLogPath(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	logPath, err := LogPath()
	if err != nil {
		t.Fatalf("LogPath() error: %v", err)
	}
	if !strings.HasPrefix(logPath, td) || !strings.HasSuffix(logPath, "/xrwm.log") {
		t.Fatalf("LogPath() = %q, want %s/xrwm.log", logPath, td)
	}
}
