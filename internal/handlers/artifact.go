// SPDX-License-Identifier: AGPL-3.0-or-later
package handlers

import (
	"fmt"

	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
	"github.com/spf13/pflag"
)

// ArtifactHandler maps one input entry to a `--<name> PATH` option.
type ArtifactHandler struct {
	entry types.SignatureEntry
	name  string
}

func NewArtifactHandler(entry types.SignatureEntry) *ArtifactHandler {
	return &ArtifactHandler{entry: entry, name: registry.ToCLIName(entry.Name)}
}

// Name returns the canonical option name.
func (h *ArtifactHandler) Name() string { return h.name }

func (h *ArtifactHandler) AddFlags(fs *pflag.FlagSet) {
	fs.String(h.name, "", artifactHelp(h.entry))
}

func (h *ArtifactHandler) Resolve(fs *pflag.FlagSet, fallback Fallback) (any, []string, error) {
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

func (h *ArtifactHandler) CoerceItem(v any) (any, error) {
	return coerceString(v)
}

func artifactHelp(entry types.SignatureEntry) string {
	help := "Artifact"
	if entry.Repr != "" {
		help += ": " + entry.Repr
	}
	if entry.Description != "" {
		help += "  " + entry.Description
	}
	return help + "  [required]"
}
