package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/xrwm/internal/hotkeys"
	"gopkg.in/yaml.v3"
)

// Margins represents padding removed from the screen edges before layout.
type Margins struct {
	Top    int `yaml:"top" toml:"top"`
	Bottom int `yaml:"bottom" toml:"bottom"`
	Left   int `yaml:"left" toml:"left"`
	Right  int `yaml:"right" toml:"right"`
}

// Layout strategy names.
const (
	LayoutTiling   = "tiling"
	LayoutFloating = "floating"
	LayoutMonocle  = "monocle"
)

// Tiling orientations.
const (
	OrientationVertical   = "vertical"   // Master left, stack column right.
	OrientationHorizontal = "horizontal" // Master top, stack row below.
)

const (
	DefaultTags              = 9
	MaxTags                  = 32
	DefaultReconcileInterval = 10
)

// Gaps holds the spacing between tiled windows (inner) and between windows
// and the screen edge (outer).
type Gaps struct {
	Inner int `yaml:"inner" toml:"inner"`
	Outer int `yaml:"outer" toml:"outer"`
}

// TilingOptions tunes the master-stack arrangement.
type TilingOptions struct {
	MasterPercent int    `yaml:"master_percent" toml:"master_percent"` // 10-90
	Orientation   string `yaml:"orientation" toml:"orientation"`
}

// WindowDecoration describes per-window decoration settings.
type WindowDecoration struct {
	BorderSize int `yaml:"border_size" toml:"border_size"`
	// BorderRadius is accepted for compatibility; rounded corners are not drawn.
	BorderRadius               int  `yaml:"border_radius" toml:"border_radius"`
	OpenInCenterOnFloatingMode bool `yaml:"open_in_center_on_floating_mode" toml:"open_in_center_on_floating_mode"`
}

// Keybinding maps a chord such as "Super+Shift+Return" to a command.
// Commands starting with "@" are handled by the window manager itself.
type Keybinding struct {
	Keys    string `yaml:"keys" toml:"keys"`
	Command string `yaml:"command" toml:"command"`
}

// Rule restricts the tags a window may live on, matched by WM_CLASS.
// An empty Tags list allows every tag.
type Rule struct {
	Class    string   `yaml:"class,omitempty" toml:"class,omitempty"`
	Instance string   `yaml:"instance,omitempty" toml:"instance,omitempty"`
	Tags     []uint32 `yaml:"tags" toml:"tags"`
}

// Matches reports whether the rule applies to a window with the given
// WM_CLASS class and instance. Empty rule fields match anything.
func (r Rule) Matches(class, instance string) bool {
	if r.Class != "" && !strings.EqualFold(r.Class, class) {
		return false
	}
	if r.Instance != "" && !strings.EqualFold(r.Instance, instance) {
		return false
	}
	return r.Class != "" || r.Instance != ""
}

// Config holds the application configuration.
type Config struct {
	Display           string           `yaml:"display,omitempty" toml:"display,omitempty"`
	LogLevel          string           `yaml:"log_level" toml:"log_level"`
	LogFile           string           `yaml:"log_file,omitempty" toml:"log_file,omitempty"`
	Layout            string           `yaml:"layout" toml:"layout"`
	Tags              int              `yaml:"tags" toml:"tags"`
	Gaps              Gaps             `yaml:"gaps" toml:"gaps"`
	Tiling            TilingOptions    `yaml:"tiling" toml:"tiling"`
	ScreenPadding     Margins          `yaml:"screen_padding" toml:"screen_padding"`
	Window            WindowDecoration `yaml:"window" toml:"window"`
	Keybindings       []Keybinding     `yaml:"keybindings" toml:"keybindings"`
	Rules             []Rule           `yaml:"rules" toml:"rules"`
	ReconcileInterval int              `yaml:"reconcile_interval" toml:"reconcile_interval"` // seconds, 0 disables
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Layout:   LayoutTiling,
		Tags:     DefaultTags,
		Gaps: Gaps{
			Inner: 8,
			Outer: 8,
		},
		Tiling: TilingOptions{
			MasterPercent: 50,
			Orientation:   OrientationVertical,
		},
		Window: WindowDecoration{
			BorderSize:                 1,
			OpenInCenterOnFloatingMode: true,
		},
		Keybindings:       BuiltinKeybindings(),
		Rules:             []Rule{},
		ReconcileInterval: DefaultReconcileInterval,
	}
}

// RuleFor returns the first rule matching the window class, if any.
func (c *Config) RuleFor(class, instance string) (Rule, bool) {
	for _, r := range c.Rules {
		if r.Matches(class, instance) {
			return r, true
		}
	}
	return Rule{}, false
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.Layout {
	case LayoutTiling, LayoutFloating, LayoutMonocle:
	default:
		return &ValidationError{Path: "layout", Err: fmt.Errorf("layout must be one of: tiling, floating, monocle")}
	}
	if c.Tags < 1 || c.Tags > MaxTags {
		return &ValidationError{Path: "tags", Err: fmt.Errorf("tags must be between 1 and %d", MaxTags)}
	}
	if c.Gaps.Inner < 0 {
		return &ValidationError{Path: "gaps.inner", Err: fmt.Errorf("inner gap must be >= 0")}
	}
	if c.Gaps.Outer < 0 {
		return &ValidationError{Path: "gaps.outer", Err: fmt.Errorf("outer gap must be >= 0")}
	}
	if c.Tiling.MasterPercent < 10 || c.Tiling.MasterPercent > 90 {
		return &ValidationError{Path: "tiling.master_percent", Err: fmt.Errorf("master_percent must be between 10 and 90")}
	}
	switch c.Tiling.Orientation {
	case OrientationVertical, OrientationHorizontal:
	default:
		return &ValidationError{Path: "tiling.orientation", Err: fmt.Errorf("orientation must be one of: vertical, horizontal")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("screen_padding values must be >= 0")}
	}
	if c.Window.BorderSize < 0 || c.Window.BorderSize > 64 {
		return &ValidationError{Path: "window.border_size", Err: fmt.Errorf("border_size must be between 0 and 64")}
	}
	if c.Window.BorderRadius < 0 {
		return &ValidationError{Path: "window.border_radius", Err: fmt.Errorf("border_radius must be >= 0")}
	}
	if err := ValidateLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	if c.ReconcileInterval < 0 {
		return &ValidationError{Path: "reconcile_interval", Err: fmt.Errorf("reconcile_interval must be >= 0")}
	}

	seen := make(map[string]int, len(c.Keybindings))
	for i, kb := range c.Keybindings {
		path := fmt.Sprintf("keybindings.%d", i)
		chord, err := hotkeys.ParseChord(kb.Keys)
		if err != nil {
			return &ValidationError{Path: path + ".keys", Err: err}
		}
		if strings.TrimSpace(kb.Command) == "" {
			return &ValidationError{Path: path + ".command", Err: fmt.Errorf("command must not be empty")}
		}
		if prev, ok := seen[chord.String()]; ok {
			return &ValidationError{Path: path + ".keys", Err: fmt.Errorf("chord %s already bound by keybindings.%d", chord, prev)}
		}
		seen[chord.String()] = i
	}

	for i, r := range c.Rules {
		path := fmt.Sprintf("rules.%d", i)
		if strings.TrimSpace(r.Class) == "" && strings.TrimSpace(r.Instance) == "" {
			return &ValidationError{Path: path, Err: fmt.Errorf("rule needs a class or an instance")}
		}
		for _, tag := range r.Tags {
			if tag < 1 || int(tag) > c.Tags {
				return &ValidationError{Path: path + ".tags", Err: fmt.Errorf("tag %d out of range 1..%d", tag, c.Tags)}
			}
		}
	}
	return nil
}

// ValidateLogLevel accepts the level names understood by log_level.
func ValidateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("log_level must be one of: debug, info, warning, error")
}

// Save writes the configuration as YAML to the default path.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo validates the configuration and writes it as YAML to path.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
