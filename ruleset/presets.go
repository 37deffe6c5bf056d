package ruleset

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed presets/*.yaml
var presetFS embed.FS

const presetDir = "presets"

// Preset parses the embedded rule set called name.
func Preset(name string) (*Ruleset, error) {
	data, err := presetFS.ReadFile(path.Join(presetDir, name+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
		}
		return nil, err
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	return rs, nil
}

// Presets lists the embedded rule set names in sorted order.
func Presets() []string {
	entries, err := presetFS.ReadDir(presetDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
