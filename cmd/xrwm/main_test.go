package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/xrwm/internal/config"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigValidate(t *testing.T) {
	path := writeConfig(t, "layout: monocle\ntags: 4\n")
	out, err := runCLI(t, "config", "validate", "--path", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "config: ok") {
		t.Fatalf("expected ok, got %q", out)
	}
}

func TestConfigValidate_Rejects(t *testing.T) {
	path := writeConfig(t, "layout: spiral\n")
	if _, err := runCLI(t, "config", "validate", "--path", path); err == nil {
		t.Fatalf("expected validation error for unknown layout")
	}
}

func TestConfigPrintDefaults(t *testing.T) {
	out, err := runCLI(t, "config", "print", "--defaults")
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(out, "layout: tiling") {
		t.Fatalf("expected default layout in output, got %q", out)
	}
}

func TestConfigExplain(t *testing.T) {
	path := writeConfig(t, "layout: floating\n")
	out, err := runCLI(t, "config", "explain", "--path", path, "layout")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if !strings.Contains(out, "path: layout") || !strings.Contains(out, "floating") {
		t.Fatalf("unexpected explain output: %q", out)
	}
	if !strings.Contains(out, "source: file:") {
		t.Fatalf("expected file source, got %q", out)
	}
}

func TestConfigInit_WritesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path, err := config.DefaultConfigPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}

	out, err := runCLI(t, "config", "init")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("expected %s in output, got %q", path, out)
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("expected written config to load, got %v", err)
	}
	if res.Config.Layout != config.LayoutTiling || res.Config.Tags != config.DefaultTags {
		t.Fatalf("expected defaults, got layout=%q tags=%d", res.Config.Layout, res.Config.Tags)
	}

	if _, err := runCLI(t, "config", "init"); err == nil {
		t.Fatalf("expected init to refuse overwriting %s", path)
	}
	if _, err := runCLI(t, "config", "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestConfigInit_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "xrwm.yaml")
	if _, err := runCLI(t, "config", "init", "--path", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := runCLI(t, "config", "validate", "--path", path); err != nil {
		t.Fatalf("expected written file to validate, got %v", err)
	}
}

func TestFormatSource(t *testing.T) {
	cases := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceFile, File: "/a.yaml", Line: 3, Column: 1}, "file:/a.yaml:3:1"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml"}, "file:/a.yaml"},
		{config.Source{Kind: config.SourceBuiltin, Name: "keybindings"}, "builtin:keybindings"},
		{config.Source{Kind: config.SourceDefault}, "default"},
	}
	for _, tc := range cases {
		if got := formatSource(tc.src); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestRoot_RejectsUnknownLogLevel(t *testing.T) {
	_, err := runCLI(t, "--log-level", "debgu")
	if err == nil || !strings.Contains(err.Error(), "log_level must be one of") {
		t.Fatalf("expected log level error, got %v", err)
	}
}
