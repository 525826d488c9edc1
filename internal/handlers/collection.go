// SPDX-License-Identifier: AGPL-3.0-or-later
package handlers

import (
	"fmt"

	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
	"github.com/spf13/pflag"
)

// CollectionHandler wraps a scalar handler so its option accepts repeated
// occurrences. Each occurrence is coerced through the inner handler and the
// user's input order is preserved.
type CollectionHandler struct {
	inner ItemCoercer
	entry types.SignatureEntry
	name  string
}

// NewCollectionHandler wraps inner, which must be able to coerce single
// occurrences.
func NewCollectionHandler(inner Handler, entry types.SignatureEntry) (*CollectionHandler, error) {
	coercer, ok := inner.(ItemCoercer)
	if !ok {
		return nil, fmt.Errorf("entry %q: %T cannot be used inside a collection", entry.Name, inner)
	}
	return &CollectionHandler{
		inner: coercer,
		entry: entry,
		name:  registry.ToCLIName(entry.Name),
	}, nil
}

// Name returns the canonical option name.
func (h *CollectionHandler) Name() string { return h.name }

func (h *CollectionHandler) AddFlags(fs *pflag.FlagSet) {
	help := collectionHelp(h.entry)
	// A string array keeps every occurrence verbatim and in order; typing
	// happens per item through the inner handler.
	fs.StringArray(h.name, nil, help)
}

func (h *CollectionHandler) Resolve(fs *pflag.FlagSet, fallback Fallback) (any, []string, error) {
	if fs.Changed(h.name) {
		occurrences, err := fs.GetStringArray(h.name)
		if err != nil {
			return nil, nil, err
		}
		return h.coerceAll(anySlice(occurrences))
	}

	if raw, ok := fallback(h.name); ok {
		items, err := asList(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("option --%s: %w", h.name, err)
		}
		return h.coerceAll(items)
	}

	if h.entry.HasDefault {
		items, err := asList(h.entry.Default)
		if err != nil {
			return nil, nil, fmt.Errorf("option --%s: bad default: %w", h.name, err)
		}
		return h.coerceAll(items)
	}

	return nil, []string{h.name}, nil
}

func (h *CollectionHandler) coerceAll(items []any) (any, []string, error) {
	values := make([]any, 0, len(items))
	for _, item := range items {
		v, err := h.inner.CoerceItem(item)
		if err != nil {
			return nil, nil, fmt.Errorf("option --%s: %w", h.name, err)
		}
		values = append(values, v)
	}
	return values, nil, nil
}

func asList(raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return v, nil
	case []string:
		return anySlice(v), nil
	case nil:
		return nil, nil
	default:
		// A scalar from the config file stands for a one-element list.
		return []any{raw}, nil
	}
}

func anySlice(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func collectionHelp(entry types.SignatureEntry) string {
	help := "Multiple values"
	if entry.Repr != "" {
		help += ": " + entry.Repr
	}
	if entry.Description != "" {
		help += "  " + entry.Description
	}
	if entry.HasDefault {
		return help + fmt.Sprintf("  [default: %v]", entry.Default)
	}
	return help + "  [required]"
}
