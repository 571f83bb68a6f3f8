package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawMargins struct {
	Top    *int `yaml:"top" toml:"top"`
	Bottom *int `yaml:"bottom" toml:"bottom"`
	Left   *int `yaml:"left" toml:"left"`
	Right  *int `yaml:"right" toml:"right"`
}

type RawGaps struct {
	Inner *int `yaml:"inner" toml:"inner"`
	Outer *int `yaml:"outer" toml:"outer"`
}

type RawTiling struct {
	MasterPercent *int    `yaml:"master_percent" toml:"master_percent"`
	Orientation   *string `yaml:"orientation" toml:"orientation"`
}

type RawWindow struct {
	BorderSize                 *int  `yaml:"border_size" toml:"border_size"`
	BorderRadius               *int  `yaml:"border_radius" toml:"border_radius"`
	OpenInCenterOnFloatingMode *bool `yaml:"open_in_center_on_floating_mode" toml:"open_in_center_on_floating_mode"`
}

// RawConfig mirrors Config with optional fields so that layered files only
// override what they set.
type RawConfig struct {
	Include           IncludeList  `yaml:"include" toml:"-"`
	Display           *string      `yaml:"display" toml:"display"`
	LogLevel          *string      `yaml:"log_level" toml:"log_level"`
	LogFile           *string      `yaml:"log_file" toml:"log_file"`
	Layout            *string      `yaml:"layout" toml:"layout"`
	Tags              *int         `yaml:"tags" toml:"tags"`
	Gaps              *RawGaps     `yaml:"gaps" toml:"gaps"`
	Tiling            *RawTiling   `yaml:"tiling" toml:"tiling"`
	ScreenPadding     *RawMargins  `yaml:"screen_padding" toml:"screen_padding"`
	Window            *RawWindow   `yaml:"window" toml:"window"`
	Keybindings       []Keybinding `yaml:"keybindings" toml:"keybindings"`
	Rules             []Rule       `yaml:"rules" toml:"rules"`
	ReconcileInterval *int         `yaml:"reconcile_interval" toml:"reconcile_interval"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != nil {
		out.LogFile = overlay.LogFile
	}
	if overlay.Layout != nil {
		out.Layout = overlay.Layout
	}
	if overlay.Tags != nil {
		out.Tags = overlay.Tags
	}
	if overlay.Gaps != nil {
		if out.Gaps == nil {
			out.Gaps = &RawGaps{}
		}
		merged := *out.Gaps
		if overlay.Gaps.Inner != nil {
			merged.Inner = overlay.Gaps.Inner
		}
		if overlay.Gaps.Outer != nil {
			merged.Outer = overlay.Gaps.Outer
		}
		out.Gaps = &merged
	}
	if overlay.Tiling != nil {
		if out.Tiling == nil {
			out.Tiling = &RawTiling{}
		}
		merged := *out.Tiling
		if overlay.Tiling.MasterPercent != nil {
			merged.MasterPercent = overlay.Tiling.MasterPercent
		}
		if overlay.Tiling.Orientation != nil {
			merged.Orientation = overlay.Tiling.Orientation
		}
		out.Tiling = &merged
	}
	if overlay.ScreenPadding != nil {
		if out.ScreenPadding == nil {
			out.ScreenPadding = &RawMargins{}
		}
		merged := *out.ScreenPadding
		if overlay.ScreenPadding.Top != nil {
			merged.Top = overlay.ScreenPadding.Top
		}
		if overlay.ScreenPadding.Bottom != nil {
			merged.Bottom = overlay.ScreenPadding.Bottom
		}
		if overlay.ScreenPadding.Left != nil {
			merged.Left = overlay.ScreenPadding.Left
		}
		if overlay.ScreenPadding.Right != nil {
			merged.Right = overlay.ScreenPadding.Right
		}
		out.ScreenPadding = &merged
	}
	if overlay.Window != nil {
		if out.Window == nil {
			out.Window = &RawWindow{}
		}
		merged := *out.Window
		if overlay.Window.BorderSize != nil {
			merged.BorderSize = overlay.Window.BorderSize
		}
		if overlay.Window.BorderRadius != nil {
			merged.BorderRadius = overlay.Window.BorderRadius
		}
		if overlay.Window.OpenInCenterOnFloatingMode != nil {
			merged.OpenInCenterOnFloatingMode = overlay.Window.OpenInCenterOnFloatingMode
		}
		out.Window = &merged
	}
	// Ordered lists replace rather than merge; binding order is significant.
	if overlay.Keybindings != nil {
		out.Keybindings = append([]Keybinding(nil), overlay.Keybindings...)
	}
	if overlay.Rules != nil {
		out.Rules = append([]Rule(nil), overlay.Rules...)
	}
	if overlay.ReconcileInterval != nil {
		out.ReconcileInterval = overlay.ReconcileInterval
	}
	return out
}
