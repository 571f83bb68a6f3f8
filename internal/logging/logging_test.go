package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "window_id", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info record to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "window_id=7") {
		t.Fatalf("expected warn record with attrs, got %q", out)
	}
}

func TestNew_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "xrwm.log")
	logger, closer, err := New("info", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("started")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=started") {
		t.Fatalf("expected record in file, got %q", data)
	}
}

func TestRotatingFile_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xrwm.log")
	rf, err := OpenRotatingFile(path, 10, 2)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rf.Close()

	for _, line := range []string{"first-line\n", "second-line\n", "third-line\n"} {
		if _, err := rf.Write([]byte(line)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	cur, _ := os.ReadFile(path)
	if string(cur) != "third-line\n" {
		t.Fatalf("expected current file to hold the last line, got %q", cur)
	}
	one, _ := os.ReadFile(path + ".1")
	if string(one) != "second-line\n" {
		t.Fatalf("expected .1 to hold the second line, got %q", one)
	}
	two, _ := os.ReadFile(path + ".2")
	if string(two) != "first-line\n" {
		t.Fatalf("expected .2 to hold the first line, got %q", two)
	}
}

func TestRotatingFile_DropsOldest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xrwm.log")
	rf, err := OpenRotatingFile(path, 1, 1)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rf.Close()

	for _, line := range []string{"a\n", "b\n", "c\n"} {
		rf.Write([]byte(line))
	}
	if _, err := os.Stat(path + ".2"); !os.IsNotExist(err) {
		t.Fatalf("expected no .2 file with maxFiles=1, got %v", err)
	}
	one, _ := os.ReadFile(path + ".1")
	if string(one) != "b\n" {
		t.Fatalf("expected .1 to hold b, got %q", one)
	}
}

func TestRotatingFile_WriteAfterClose(t *testing.T) {
	rf, err := OpenRotatingFile(filepath.Join(t.TempDir(), "xrwm.log"), 0, 3)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rf.Close()
	if _, err := rf.Write([]byte("x")); err == nil {
		t.Fatalf("expected error writing to a closed file")
	}
}
