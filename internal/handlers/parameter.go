// SPDX-License-Identifier: AGPL-3.0-or-later
package handlers

import (
	"fmt"
	"io"

	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
	"github.com/spf13/pflag"
)

// NewParameterHandler dispatches on the entry's structural type and returns
// the handler for one parameter entry.
func NewParameterHandler(entry types.SignatureEntry) Handler {
	switch entry.Ast.Inner().Type {
	case types.ASTMetadata:
		return NewMetadataHandler(entry, false)
	case types.ASTMetadataColumn:
		return NewMetadataHandler(entry, true)
	}
	if entry.Ast.Inner().Name == types.PrimitiveBool {
		return NewBoolHandler(entry)
	}
	return NewScalarHandler(entry)
}

// ScalarHandler maps a string/integer/float parameter (possibly
// choice-constrained) to a single typed option.
type ScalarHandler struct {
	entry types.SignatureEntry
	name  string
	prim  string
}

func NewScalarHandler(entry types.SignatureEntry) *ScalarHandler {
	prim := entry.Ast.Inner().Name
	if prim == "" {
		prim = types.PrimitiveStr
	}
	return &ScalarHandler{
		entry: entry,
		name:  registry.ToCLIName(entry.Name),
		prim:  prim,
	}
}

func (h *ScalarHandler) Name() string { return h.name }

func (h *ScalarHandler) AddFlags(fs *pflag.FlagSet) {
	help := parameterHelp(h.entry)
	switch h.prim {
	case types.PrimitiveInt:
		fs.Int(h.name, 0, help)
	case types.PrimitiveFloat:
		fs.Float64(h.name, 0, help)
	default:
		fs.String(h.name, "", help)
	}
}

func (h *ScalarHandler) Resolve(fs *pflag.FlagSet, fallback Fallback) (any, []string, error) {
	if fs.Changed(h.name) {
		var (
			v   any
			err error
		)
		switch h.prim {
		case types.PrimitiveInt:
			v, err = fs.GetInt(h.name)
		case types.PrimitiveFloat:
			v, err = fs.GetFloat64(h.name)
		default:
			v, err = fs.GetString(h.name)
		}
		if err != nil {
			return nil, nil, err
		}
		if err := h.checkChoices(v); err != nil {
			return nil, nil, err
		}
		return v, nil, nil
	}

	if raw, ok := fallback(h.name); ok {
		v, err := h.CoerceItem(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("option --%s: %w", h.name, err)
		}
		return v, nil, nil
	}

	if h.entry.HasDefault {
		v, err := h.CoerceItem(h.entry.Default)
		if err != nil {
			return nil, nil, fmt.Errorf("option --%s: bad default: %w", h.name, err)
		}
		return v, nil, nil
	}

	return nil, []string{h.name}, nil
}

func (h *ScalarHandler) CoerceItem(raw any) (any, error) {
	var (
		v   any
		err error
	)
	switch h.prim {
	case types.PrimitiveInt:
		v, err = coerceInt(raw)
	case types.PrimitiveFloat:
		v, err = coerceFloat(raw)
	default:
		v, err = coerceString(raw)
	}
	if err != nil {
		return nil, err
	}
	if err := h.checkChoices(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (h *ScalarHandler) checkChoices(v any) error {
	if len(h.entry.Choices) == 0 {
		return nil
	}
	s := fmt.Sprintf("%v", v)
	for _, c := range h.entry.Choices {
		if s == c {
			return nil
		}
	}
	return fmt.Errorf("option --%s: invalid choice %q (choose from %v)", h.name, s, h.entry.Choices)
}

// BoolHandler maps a boolean parameter to a `--<name>` / `--no-<name>`
// option pair with one canonical name.
type BoolHandler struct {
	entry   types.SignatureEntry
	name    string
	negated string
}

func NewBoolHandler(entry types.SignatureEntry) *BoolHandler {
	name := registry.ToCLIName(entry.Name)
	return &BoolHandler{entry: entry, name: name, negated: "no-" + name}
}

func (h *BoolHandler) Name() string { return h.name }

func (h *BoolHandler) AddFlags(fs *pflag.FlagSet) {
	help := parameterHelp(h.entry)
	fs.Bool(h.name, false, help)
	fs.Bool(h.negated, false, "The inverse of --"+h.name)
}

func (h *BoolHandler) Resolve(fs *pflag.FlagSet, fallback Fallback) (any, []string, error) {
	set := fs.Changed(h.name)
	unset := fs.Changed(h.negated)
	if set && unset {
		return nil, nil, fmt.Errorf("options --%s and --%s cannot be used together", h.name, h.negated)
	}
	if set {
		return true, nil, nil
	}
	if unset {
		return false, nil, nil
	}

	if raw, ok := fallback(h.name); ok {
		v, err := h.CoerceItem(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("option --%s: %w", h.name, err)
		}
		return v, nil, nil
	}

	if h.entry.HasDefault {
		v, err := coerceBool(h.entry.Default)
		if err != nil {
			return nil, nil, fmt.Errorf("option --%s: bad default: %w", h.name, err)
		}
		return v, nil, nil
	}

	return nil, []string{h.name}, nil
}

func (h *BoolHandler) CoerceItem(v any) (any, error) {
	return coerceBool(v)
}

// Metadata is the resolved value of a metadata parameter.
type Metadata struct {
	File string
}

// MetadataColumn is the resolved value of a metadata-column parameter.
type MetadataColumn struct {
	File   string
	Column string
}

// MetadataHandler maps a metadata parameter to a `--m-<name>-file` option,
// plus a `--m-<name>-column` option when a single column is required. Its
// resolution may emit diagnostics, so it receives the verbose flag.
type MetadataHandler struct {
	entry      types.SignatureEntry
	fileName   string
	columnName string
	wantColumn bool
}

func NewMetadataHandler(entry types.SignatureEntry, wantColumn bool) *MetadataHandler {
	base := registry.ToCLIName(entry.Name)
	return &MetadataHandler{
		entry:      entry,
		fileName:   "m-" + base + "-file",
		columnName: "m-" + base + "-column",
		wantColumn: wantColumn,
	}
}

func (h *MetadataHandler) Name() string { return h.fileName }

func (h *MetadataHandler) AddFlags(fs *pflag.FlagSet) {
	fs.String(h.fileName, "", "Metadata file or artifact viewable as metadata  [required]")
	if h.wantColumn {
		fs.String(h.columnName, "", "Column from metadata file or artifact viewable as metadata  [required]")
	}
}

func (h *MetadataHandler) Resolve(fs *pflag.FlagSet, fallback Fallback) (any, []string, error) {
	return h.ResolveVerbose(fs, fallback, false, io.Discard)
}

// ResolveVerbose resolves the metadata value, logging the source file to
// diag when verbose mode is on.
func (h *MetadataHandler) ResolveVerbose(fs *pflag.FlagSet, fallback Fallback, verbose bool, diag io.Writer) (any, []string, error) {
	file, fileOK, err := h.resolveOne(fs, fallback, h.fileName)
	if err != nil {
		return nil, nil, err
	}

	var column string
	columnOK := true
	if h.wantColumn {
		column, columnOK, err = h.resolveOne(fs, fallback, h.columnName)
		if err != nil {
			return nil, nil, err
		}
	}

	var missing []string
	if !fileOK {
		missing = append(missing, h.fileName)
	}
	if !columnOK {
		missing = append(missing, h.columnName)
	}
	if len(missing) > 0 {
		return nil, missing, nil
	}

	if verbose {
		fmt.Fprintf(diag, "Reading metadata from %s\n", file)
	}

	if h.wantColumn {
		return MetadataColumn{File: file, Column: column}, nil, nil
	}
	return Metadata{File: file}, nil, nil
}

func (h *MetadataHandler) resolveOne(fs *pflag.FlagSet, fallback Fallback, name string) (string, bool, error) {
	if fs.Changed(name) {
		v, err := fs.GetString(name)
		return v, err == nil, err
	}
	if raw, ok := fallback(name); ok {
		v, err := coerceString(raw)
		if err != nil {
			return "", false, fmt.Errorf("option --%s: %w", name, err)
		}
		return v, true, nil
	}
	return "", false, nil
}

func parameterHelp(entry types.SignatureEntry) string {
	help := "Parameter"
	if entry.Repr != "" {
		help += ": " + entry.Repr
	}
	if entry.Description != "" {
		help += "  " + entry.Description
	}
	if len(entry.Choices) > 0 {
		help += fmt.Sprintf("  (choices: %v)", entry.Choices)
	}
	if entry.HasDefault {
		return help + fmt.Sprintf("  [default: %v]", entry.Default)
	}
	return help + "  [required]"
}
