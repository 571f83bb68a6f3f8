package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceBuiltin SourceKind = "builtin"
	SourceFile    SourceKind = "file"
)

type Source struct {
	Kind   SourceKind
	Name   string // for builtin/default
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // YAML-path -> last writer source (file only)
	Files   []string          // all loaded files, in load order
}

const configDirName = "xrwm"

func configDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, configDirName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", configDirName), nil
}

func DefaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LegacyConfigPath is the TOML location read by earlier xrwm releases.
func LegacyConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "Config.toml"), nil
}

// Load reads the merged configuration from the standard location and returns an
// effective config ready for use by the window manager.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources loads config from the first existing standard location and
// returns file-level sources for introspection. With no file present the
// defaults are returned.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		legacy, err := LegacyConfigPath()
		if err != nil {
			return nil, err
		}
		if ok, err := pathExists(legacy); err != nil {
			return nil, err
		} else if ok {
			path = legacy
		}
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path (YAML, or TOML when the extension is .toml). A
// missing file yields the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	raw := RawConfig{}
	sources := map[string]Source{}
	var files []string

	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		var (
			fileRaw     RawConfig
			fileSources map[string]Source
			fileList    []string
		)
		if isTOML(path) {
			fileRaw, fileSources, fileList, err = loadRawTOML(path)
		} else {
			fileRaw, fileSources, fileList, err = loadRawMerged(path, make(map[string]struct{}), nil)
		}
		if err != nil {
			return nil, err
		}
		raw = raw.merge(fileRaw)
		for key, src := range fileSources {
			sources[key] = src
		}
		files = append(files, fileList...)
	}

	cfg, err := BuildEffectiveConfig(raw)
	if err != nil {
		return nil, attachSourceContext(err, sources)
	}
	if err := cfg.Validate(); err != nil {
		return nil, attachSourceContext(err, sources)
	}

	return &LoadResult{
		Config:  cfg,
		Sources: sources,
		Files:   files,
	}, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

type includeRef struct {
	Value  string
	Source Source
}

func loadRawMerged(path string, seen map[string]struct{}, stack []string) (RawConfig, map[string]Source, []string, error) {
	canon, err := canonicalPath(path)
	if err != nil {
		return RawConfig{}, nil, nil, err
	}
	for _, existing := range stack {
		if existing == canon {
			return RawConfig{}, nil, nil, fmt.Errorf("include cycle detected: %s -> %s", strings.Join(stack, " -> "), canon)
		}
	}
	if _, ok := seen[canon]; ok {
		return RawConfig{}, map[string]Source{}, nil, nil
	}
	seen[canon] = struct{}{}

	data, err := os.ReadFile(canon)
	if err != nil {
		return RawConfig{}, nil, nil, fmt.Errorf("%s: failed to read: %w", canon, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawConfig{}, nil, nil, fmt.Errorf("%s: failed to parse yaml: %w", canon, err)
	}

	var raw RawConfig
	if err := decodeStrictYAML(data, &raw); err != nil {
		return RawConfig{}, nil, nil, fmt.Errorf("%s: %w", canon, err)
	}

	sources := collectSources(&doc, canon)
	refs := collectIncludeRefs(&doc, canon)

	merged := RawConfig{}
	mergedSources := map[string]Source{}
	var files []string

	for _, ref := range refs {
		paths, err := expandInclude(canon, ref.Value)
		if err != nil {
			return RawConfig{}, nil, nil, fmt.Errorf("%s:%d:%d: include %q: %w", ref.Source.File, ref.Source.Line, ref.Source.Column, ref.Value, err)
		}
		for _, incPath := range paths {
			incRaw, incSources, incFiles, err := loadRawMerged(incPath, seen, append(stack, canon))
			if err != nil {
				return RawConfig{}, nil, nil, err
			}
			merged = merged.merge(incRaw)
			for p, src := range incSources {
				mergedSources[p] = src
			}
			files = append(files, incFiles...)
		}
	}

	// This file applies last and overrides its includes.
	merged = merged.merge(raw)
	for p, src := range sources {
		mergedSources[p] = src
	}
	files = append(files, canon)

	return merged, mergedSources, files, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	return real, nil
}

func expandInclude(baseFile string, include string) ([]string, error) {
	path, err := resolvePathRelativeToFile(baseFile, include)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		files = append(files, filepath.Join(path, name))
	}
	sort.Strings(files)
	return files, nil
}

func resolvePathRelativeToFile(baseFile string, include string) (string, error) {
	if include == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(include, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if include == "~" {
			include = home
		} else if strings.HasPrefix(include, "~/") {
			include = filepath.Join(home, include[2:])
		}
	}
	if filepath.IsAbs(include) {
		return include, nil
	}
	return filepath.Join(filepath.Dir(baseFile), include), nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func collectSources(doc *yaml.Node, file string) map[string]Source {
	out := make(map[string]Source)
	if doc == nil {
		return out
	}
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	collectSourcesRec(node, file, "", out)
	return out
}

func collectSourcesRec(node *yaml.Node, file string, prefix string, out map[string]Source) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			valNode := node.Content[i+1]
			path := keyNode.Value
			if prefix != "" {
				path = prefix + "." + keyNode.Value
			}
			out[path] = Source{
				Kind:   SourceFile,
				File:   file,
				Line:   valNode.Line,
				Column: valNode.Column,
			}
			collectSourcesRec(valNode, file, path, out)
		}
	case yaml.SequenceNode:
		if prefix != "" {
			out[prefix] = Source{
				Kind:   SourceFile,
				File:   file,
				Line:   node.Line,
				Column: node.Column,
			}
		}
		// Index elements so keybindings.3.keys resolves to a line.
		for i, item := range node.Content {
			path := strconv.Itoa(i)
			if prefix != "" {
				path = prefix + "." + path
			}
			out[path] = Source{
				Kind:   SourceFile,
				File:   file,
				Line:   item.Line,
				Column: item.Column,
			}
			collectSourcesRec(item, file, path, out)
		}
	}
}

func collectIncludeRefs(doc *yaml.Node, file string) []includeRef {
	if doc == nil {
		return nil
	}
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valNode := node.Content[i+1]
		if keyNode.Value != "include" {
			continue
		}

		switch valNode.Kind {
		case yaml.ScalarNode:
			return []includeRef{{
				Value:  valNode.Value,
				Source: Source{Kind: SourceFile, File: file, Line: valNode.Line, Column: valNode.Column},
			}}
		case yaml.SequenceNode:
			refs := make([]includeRef, 0, len(valNode.Content))
			for _, item := range valNode.Content {
				if item.Kind != yaml.ScalarNode {
					continue
				}
				refs = append(refs, includeRef{
					Value:  item.Value,
					Source: Source{Kind: SourceFile, File: file, Line: item.Line, Column: item.Column},
				})
			}
			return refs
		default:
			return nil
		}
	}
	return nil
}

func attachSourceContext(err error, sources map[string]Source) error {
	verr, ok := err.(*ValidationError)
	if !ok || verr == nil {
		return err
	}
	if verr.Path == "" {
		return err
	}
	// Fall back to the closest enclosing key that has a recorded position.
	for path := verr.Path; path != ""; {
		if src, ok := sources[path]; ok {
			verr.Source = src
			break
		}
		idx := strings.LastIndex(path, ".")
		if idx < 0 {
			break
		}
		path = path[:idx]
	}
	return verr
}
