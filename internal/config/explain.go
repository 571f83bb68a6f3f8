package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	display
//	log_level
//	layout
//	tags
//	gaps.inner
//	tiling.master_percent
//	screen_padding.top
//	window.border_size
//	keybindings
//	keybindings.<index>.keys
//	rules.<index>.tags
//	reconcile_interval
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	if path == "keybindings" || strings.HasPrefix(path, "keybindings.") {
		return value, Source{Kind: SourceBuiltin, Name: "keybindings"}, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	unknown := fmt.Errorf("unknown path: %s", path)

	leaf := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, unknown
		}
		return v, nil
	}
	section := func(whole any, fields map[string]any) (any, error) {
		switch len(parts) {
		case 1:
			return whole, nil
		case 2:
			if v, ok := fields[parts[1]]; ok {
				return v, nil
			}
		}
		return nil, unknown
	}

	switch parts[0] {
	case "display":
		return leaf(cfg.Display)
	case "log_level":
		return leaf(cfg.LogLevel)
	case "log_file":
		return leaf(cfg.LogFile)
	case "layout":
		return leaf(cfg.Layout)
	case "tags":
		return leaf(cfg.Tags)
	case "reconcile_interval":
		return leaf(cfg.ReconcileInterval)
	case "gaps":
		return section(cfg.Gaps, map[string]any{
			"inner": cfg.Gaps.Inner,
			"outer": cfg.Gaps.Outer,
		})
	case "tiling":
		return section(cfg.Tiling, map[string]any{
			"master_percent": cfg.Tiling.MasterPercent,
			"orientation":    cfg.Tiling.Orientation,
		})
	case "screen_padding":
		return section(cfg.ScreenPadding, map[string]any{
			"top":    cfg.ScreenPadding.Top,
			"bottom": cfg.ScreenPadding.Bottom,
			"left":   cfg.ScreenPadding.Left,
			"right":  cfg.ScreenPadding.Right,
		})
	case "window":
		return section(cfg.Window, map[string]any{
			"border_size":                     cfg.Window.BorderSize,
			"border_radius":                   cfg.Window.BorderRadius,
			"open_in_center_on_floating_mode": cfg.Window.OpenInCenterOnFloatingMode,
		})
	case "keybindings":
		if len(parts) == 1 {
			return cfg.Keybindings, nil
		}
		i, err := indexPart(parts[1], len(cfg.Keybindings))
		if err != nil {
			return nil, err
		}
		kb := cfg.Keybindings[i]
		if len(parts) == 2 {
			return kb, nil
		}
		if len(parts) == 3 {
			switch parts[2] {
			case "keys":
				return kb.Keys, nil
			case "command":
				return kb.Command, nil
			}
		}
		return nil, unknown
	case "rules":
		if len(parts) == 1 {
			return cfg.Rules, nil
		}
		i, err := indexPart(parts[1], len(cfg.Rules))
		if err != nil {
			return nil, err
		}
		r := cfg.Rules[i]
		if len(parts) == 2 {
			return r, nil
		}
		if len(parts) == 3 {
			switch parts[2] {
			case "class":
				return r.Class, nil
			case "instance":
				return r.Instance, nil
			case "tags":
				return r.Tags, nil
			}
		}
		return nil, unknown
	default:
		return nil, unknown
	}
}

func indexPart(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("index %d out of range (have %d)", i, n)
	}
	return i, nil
}
