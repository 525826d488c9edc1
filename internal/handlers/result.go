// SPDX-License-Identifier: AGPL-3.0-or-later
package handlers

import (
	"fmt"

	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
	"github.com/spf13/pflag"
)

// ResultHandler maps one output entry to a `--<name> PATH` option. The
// path may also arrive through the composite fallback: command-config
// first, then the output-directory convention.
type ResultHandler struct {
	entry types.SignatureEntry
	name  string
}

func NewResultHandler(entry types.SignatureEntry) *ResultHandler {
	return &ResultHandler{entry: entry, name: registry.ToCLIName(entry.Name)}
}

// Name returns the canonical option name.
func (h *ResultHandler) Name() string { return h.name }

func (h *ResultHandler) AddFlags(fs *pflag.FlagSet) {
	help := "Result"
	if h.entry.Repr != "" {
		help += ": " + h.entry.Repr
	}
	if h.entry.Description != "" {
		help += "  " + h.entry.Description
	}
	fs.String(h.name, "", help+"  [required]")
}

func (h *ResultHandler) Resolve(fs *pflag.FlagSet, fallback Fallback) (any, []string, error) {
	if fs.Changed(h.name) {
		v, err := fs.GetString(h.name)
		return v, nil, err
	}
	if raw, ok := fallback(h.name); ok {
		v, err := h.CoerceItem(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("option --%s: %w", h.name, err)
		}
		return v, nil, nil
	}
	return nil, []string{h.name}, nil
}

func (h *ResultHandler) CoerceItem(v any) (any, error) {
	return coerceString(v)
}

// DefaultFileName is the file name the output-directory convention derives
// a path from when the option is not given explicitly.
func DefaultFileName(entry types.SignatureEntry) string {
	if entry.FileName != "" {
		return entry.FileName
	}
	return registry.ToCLIName(entry.Name)
}
