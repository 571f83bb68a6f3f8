package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// loadRawTOML reads a single TOML config file. TOML files do not support
// include directives.
func loadRawTOML(path string) (RawConfig, map[string]Source, []string, error) {
	canon, err := canonicalPath(path)
	if err != nil {
		return RawConfig{}, nil, nil, err
	}
	data, err := os.ReadFile(canon)
	if err != nil {
		return RawConfig{}, nil, nil, fmt.Errorf("%s: failed to read: %w", canon, err)
	}

	var raw RawConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return RawConfig{}, nil, nil, fmt.Errorf("%s:%d:%d: failed to parse toml: %w", canon, row, col, err)
		}
		return RawConfig{}, nil, nil, fmt.Errorf("%s: failed to parse toml: %w", canon, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return RawConfig{}, nil, nil, fmt.Errorf("%s: failed to parse toml: %w", canon, err)
	}
	sources := make(map[string]Source)
	collectTOMLSources(doc, canon, "", sources)
	return raw, sources, []string{canon}, nil
}

// collectTOMLSources records which keys a TOML file sets. go-toml does not
// expose positions through Unmarshal, so sources carry the file only.
func collectTOMLSources(node any, file string, prefix string, out map[string]Source) {
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			out[path] = Source{Kind: SourceFile, File: file}
			collectTOMLSources(v[k], file, path, out)
		}
	case []any:
		for i, item := range v {
			path := prefix + "." + strconv.Itoa(i)
			out[path] = Source{Kind: SourceFile, File: file}
			collectTOMLSources(item, file, path, out)
		}
	}
}
