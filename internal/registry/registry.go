// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry defines the read-only plugin metadata view the command
// tree is built from, plus the live lookup interface used for citations.
package registry

import (
	"strings"

	"github.com/axon-org/axon/internal/types"
)

// Snapshot is the plugin metadata loaded once per process. It is read-only
// after construction; callers that need an alternate view (shell completion,
// tests) construct their own and pass it in rather than substituting a
// hidden global.
type Snapshot struct {
	// Plugins is keyed by the plugin's declared name.
	Plugins map[string]types.Plugin
}

// CommandLookup maps normalized CLI names to plugins that expose at least
// one action. Plugins without actions get no command.
func (s *Snapshot) CommandLookup() map[string]types.Plugin {
	lookup := make(map[string]types.Plugin, len(s.Plugins))
	for name, plugin := range s.Plugins {
		if len(plugin.Actions) == 0 {
			continue
		}
		lookup[ToCLIName(name)] = plugin
	}
	return lookup
}

// ActionLookup maps normalized action IDs to actions of one plugin.
func ActionLookup(plugin types.Plugin) map[string]types.Action {
	lookup := make(map[string]types.Action, len(plugin.Actions))
	for id, action := range plugin.Actions {
		lookup[ToCLIName(id)] = action
	}
	return lookup
}

// ToCLIName normalizes a registry name for use on the command line:
// lowercase with word separators mapped to dashes.
func ToCLIName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, " ", "-")
	return name
}

// Citation is one bibliographic record attached to a plugin or action.
type Citation struct {
	Key   string
	Entry string // raw BibTeX
}

// Provider resolves live plugin objects, as opposed to the cached Snapshot.
// It is consulted only where the snapshot cannot serve: citation lookup and
// cache refresh.
type Provider interface {
	// Plugins returns the full metadata of every installed plugin.
	Plugins() (map[string]types.Plugin, error)
	// PluginCitations returns the citation records of one plugin.
	PluginCitations(pluginName string) ([]Citation, error)
	// ActionCitations returns the citation records of one action.
	ActionCitations(pluginName, actionID string) ([]Citation, error)
}
