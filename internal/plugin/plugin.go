// SPDX-License-Identifier: AGPL-3.0-or-later

// Package plugin holds the in-process plugin registry. Compiled-in plugins
// register themselves at init time; the registry then serves as both the
// live metadata provider (citations, cache refresh) and the execution
// engine behind every action command.
package plugin

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/axon-org/axon/internal/engine"
	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
)

// ActionFunc performs one action given its resolved arguments. Anything it
// writes to out or errw is subject to the caller's capture policy.
type ActionFunc func(ctx context.Context, args map[string]any, out, errw io.Writer) ([]engine.Result, error)

// Registration is one plugin plus the pieces the cached snapshot does not
// carry: citation records and the invocable action bodies.
type Registration struct {
	types.Plugin

	Citations       []registry.Citation
	ActionCitations map[string][]registry.Citation
	Run             map[string]ActionFunc // keyed by action ID
}

// Registry is the process-wide set of registered plugins. It implements
// registry.Provider and engine.Invoker.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]*Registration)}
}

// Default is the registry compiled-in plugins register against.
var Default = NewRegistry()

// Register adds a plugin. Plugin names and their action IDs must be unique.
func (r *Registry) Register(reg *Registration) error {
	if reg.Name == "" {
		return fmt.Errorf("plugin registration missing name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[reg.Name]; exists {
		return fmt.Errorf("plugin %q already registered", reg.Name)
	}
	for id := range reg.Plugin.Actions {
		if reg.Run == nil || reg.Run[id] == nil {
			return fmt.Errorf("plugin %q: action %q has no run function", reg.Name, id)
		}
	}
	r.plugins[reg.Name] = reg
	return nil
}

// MustRegister is Register for init-time use.
func (r *Registry) MustRegister(reg *Registration) {
	if err := r.Register(reg); err != nil {
		panic(err)
	}
}

// Plugins implements registry.Provider.
func (r *Registry) Plugins() (map[string]types.Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]types.Plugin, len(r.plugins))
	for name, reg := range r.plugins {
		out[name] = reg.Plugin
	}
	return out, nil
}

// Snapshot builds a registry snapshot from the live metadata.
func (r *Registry) Snapshot() (*registry.Snapshot, error) {
	plugins, err := r.Plugins()
	if err != nil {
		return nil, err
	}
	return &registry.Snapshot{Plugins: plugins}, nil
}

// PluginCitations implements registry.Provider.
func (r *Registry) PluginCitations(pluginName string) ([]registry.Citation, error) {
	reg, err := r.lookup(pluginName)
	if err != nil {
		return nil, err
	}
	return reg.Citations, nil
}

// ActionCitations implements registry.Provider.
func (r *Registry) ActionCitations(pluginName, actionID string) ([]registry.Citation, error) {
	reg, err := r.lookup(pluginName)
	if err != nil {
		return nil, err
	}
	if _, ok := reg.Plugin.Actions[actionID]; !ok {
		return nil, fmt.Errorf("plugin %q has no action %q", pluginName, actionID)
	}
	return reg.ActionCitations[actionID], nil
}

// Invoke implements engine.Invoker.
func (r *Registry) Invoke(ctx context.Context, inv engine.Invocation) ([]engine.Result, error) {
	reg, err := r.lookup(inv.Plugin)
	if err != nil {
		return nil, err
	}
	run, ok := reg.Run[inv.ActionID]
	if !ok {
		return nil, fmt.Errorf("plugin %q has no action %q", inv.Plugin, inv.ActionID)
	}
	return run(ctx, inv.Arguments, inv.Stdout, inv.Stderr)
}

func (r *Registry) lookup(pluginName string) (*Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if reg, ok := r.plugins[pluginName]; ok {
		return reg, nil
	}
	// Callers may hold a normalized CLI name rather than the declared one.
	for name, reg := range r.plugins {
		if registry.ToCLIName(name) == registry.ToCLIName(pluginName) {
			return reg, nil
		}
	}
	return nil, fmt.Errorf("no plugin registered with name %q", pluginName)
}
