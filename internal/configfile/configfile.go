// SPDX-License-Identifier: AGPL-3.0-or-later

// Package configfile reads the per-plugin-per-action default-values file
// consulted as a fallback when an option was not given on the command line.
//
// The file is YAML, keyed by normalized plugin name, then normalized action
// name, then option name:
//
//	diverse-plugin:
//	  rarefy:
//	    sampling-depth: 100
//	    verbose: true
package configfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/axon-org/axon/internal/registry"
	"gopkg.in/yaml.v3"
)

// File is a parsed command-config source.
type File struct {
	Path     string
	sections map[string]map[string]map[string]any
}

// Load parses the config file at path. A missing file is an error; callers
// that treat the default location as optional should use LoadOptional.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read command config: %w", err)
	}

	sections := make(map[string]map[string]map[string]any)
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("decode command config %s: %w", path, err)
	}

	// Normalize every key once so lookups match CLI names regardless of how
	// the file spells them, option names included.
	normalized := make(map[string]map[string]map[string]any, len(sections))
	for pluginKey, actions := range sections {
		plugin := registry.ToCLIName(pluginKey)
		if normalized[plugin] == nil {
			normalized[plugin] = make(map[string]map[string]any, len(actions))
		}
		for actionKey, options := range actions {
			opts := make(map[string]any, len(options))
			for optionKey, v := range options {
				opts[registry.ToCLIName(optionKey)] = v
			}
			normalized[plugin][registry.ToCLIName(actionKey)] = opts
		}
	}

	return &File{Path: path, sections: normalized}, nil
}

// LoadOptional parses the config file at path, returning an empty source
// when the file does not exist.
func LoadOptional(path string) (*File, error) {
	f, err := Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return &File{Path: path}, nil
	}
	return f, err
}

// Lookup returns the configured value for one option of one action.
func (f *File) Lookup(plugin, action, option string) (any, bool) {
	if f == nil || f.sections == nil {
		return nil, false
	}
	actions, ok := f.sections[registry.ToCLIName(plugin)]
	if !ok {
		return nil, false
	}
	options, ok := actions[registry.ToCLIName(action)]
	if !ok {
		return nil, false
	}
	v, ok := options[option]
	return v, ok
}

// Section returns every configured option of one action.
func (f *File) Section(plugin, action string) map[string]any {
	if f == nil || f.sections == nil {
		return nil
	}
	return f.sections[registry.ToCLIName(plugin)][registry.ToCLIName(action)]
}

// Plugins returns the plugin keys present in the file, for inspection tools.
func (f *File) Plugins() []string {
	keys := make([]string, 0, len(f.sections))
	for k := range f.sections {
		keys = append(keys, k)
	}
	return keys
}
