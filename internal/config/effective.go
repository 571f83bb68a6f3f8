package config

import (
	"fmt"
	"strings"
)

// ValidationError reports an invalid configuration value together with the
// file position that produced it, when known.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" {
		return fmt.Sprintf("%s: %s: %v", e.Source.File, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw overrides on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}
	if raw.Layout != nil {
		cfg.Layout = strings.ToLower(strings.TrimSpace(*raw.Layout))
	}
	if raw.Tags != nil {
		cfg.Tags = *raw.Tags
	}
	if raw.Gaps != nil {
		cfg.Gaps.Inner = derefInt(raw.Gaps.Inner, cfg.Gaps.Inner)
		cfg.Gaps.Outer = derefInt(raw.Gaps.Outer, cfg.Gaps.Outer)
	}
	if raw.Tiling != nil {
		cfg.Tiling.MasterPercent = derefInt(raw.Tiling.MasterPercent, cfg.Tiling.MasterPercent)
		if raw.Tiling.Orientation != nil {
			cfg.Tiling.Orientation = strings.ToLower(strings.TrimSpace(*raw.Tiling.Orientation))
		}
	}
	if raw.ScreenPadding != nil {
		cfg.ScreenPadding.Top = derefInt(raw.ScreenPadding.Top, cfg.ScreenPadding.Top)
		cfg.ScreenPadding.Bottom = derefInt(raw.ScreenPadding.Bottom, cfg.ScreenPadding.Bottom)
		cfg.ScreenPadding.Left = derefInt(raw.ScreenPadding.Left, cfg.ScreenPadding.Left)
		cfg.ScreenPadding.Right = derefInt(raw.ScreenPadding.Right, cfg.ScreenPadding.Right)
	}
	if raw.Window != nil {
		cfg.Window.BorderSize = derefInt(raw.Window.BorderSize, cfg.Window.BorderSize)
		cfg.Window.BorderRadius = derefInt(raw.Window.BorderRadius, cfg.Window.BorderRadius)
		if raw.Window.OpenInCenterOnFloatingMode != nil {
			cfg.Window.OpenInCenterOnFloatingMode = *raw.Window.OpenInCenterOnFloatingMode
		}
	}
	if raw.Keybindings != nil {
		cfg.Keybindings = make([]Keybinding, 0, len(raw.Keybindings))
		for _, kb := range raw.Keybindings {
			cfg.Keybindings = append(cfg.Keybindings, Keybinding{
				Keys:    strings.TrimSpace(kb.Keys),
				Command: strings.TrimSpace(kb.Command),
			})
		}
	}
	if raw.Rules != nil {
		cfg.Rules = make([]Rule, 0, len(raw.Rules))
		for _, r := range raw.Rules {
			tags := r.Tags
			if tags == nil {
				tags = []uint32{}
			}
			cfg.Rules = append(cfg.Rules, Rule{
				Class:    strings.TrimSpace(r.Class),
				Instance: strings.TrimSpace(r.Instance),
				Tags:     append([]uint32(nil), tags...),
			})
		}
	}
	if raw.ReconcileInterval != nil {
		cfg.ReconcileInterval = *raw.ReconcileInterval
	}
	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
