// SPDX-License-Identifier: AGPL-3.0-or-later
package types

// Entry kinds. Inputs, parameters and outputs share one flag namespace
// within an action, so entry names must be unique across all three.
const (
	EntryInput     = "input"
	EntryParameter = "parameter"
	EntryOutput    = "output"
)

// Structural type names used by TypeAST.Type.
const (
	ASTPrimitive      = "primitive"
	ASTCollection     = "collection"
	ASTMetadata       = "metadata"
	ASTMetadataColumn = "metadata-column"
	ASTArtifact       = "artifact"
)

// Primitive names used by TypeAST.Name.
const (
	PrimitiveStr   = "Str"
	PrimitiveInt   = "Int"
	PrimitiveFloat = "Float"
	PrimitiveBool  = "Bool"
)

// TypeAST is the structural type descriptor of a signature entry.
type TypeAST struct {
	Type    string   `json:"type" yaml:"type"`
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Element *TypeAST `json:"element,omitempty" yaml:"element,omitempty"`
}

// IsCollection reports whether the entry accepts repeated occurrences.
func (t TypeAST) IsCollection() bool { return t.Type == ASTCollection }

// Inner returns the element AST for collections and the AST itself otherwise.
func (t TypeAST) Inner() TypeAST {
	if t.IsCollection() && t.Element != nil {
		return *t.Element
	}
	return t
}

// SignatureEntry is one parameter of an action. Immutable once loaded
// from the registry.
type SignatureEntry struct {
	Name        string   `json:"name" yaml:"name"`
	Kind        string   `json:"kind" yaml:"kind"`
	Ast         TypeAST  `json:"ast" yaml:"ast"`
	Repr        string   `json:"repr,omitempty" yaml:"repr,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any      `json:"default,omitempty" yaml:"default,omitempty"`
	HasDefault  bool     `json:"has_default,omitempty" yaml:"has_default,omitempty"`
	Choices     []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	// FileName is the default file name used by the output-directory
	// convention for output entries.
	FileName string `json:"file_name,omitempty" yaml:"file_name,omitempty"`
}

// Action is a named operation with a typed signature, supplied by a plugin.
type Action struct {
	ID               string           `json:"id" yaml:"id"`
	Name             string           `json:"name" yaml:"name"`
	Description      string           `json:"description,omitempty" yaml:"description,omitempty"`
	ShortDescription string           `json:"short_description,omitempty" yaml:"short_description,omitempty"`
	Signature        []SignatureEntry `json:"signature" yaml:"signature"`
}

// Outputs returns the output entries in signature order.
func (a Action) Outputs() []SignatureEntry {
	var out []SignatureEntry
	for _, e := range a.Signature {
		if e.Kind == EntryOutput {
			out = append(out, e)
		}
	}
	return out
}

// Plugin bundles one or more actions plus descriptive metadata.
type Plugin struct {
	Name             string            `json:"name" yaml:"name"`
	Version          string            `json:"version" yaml:"version"`
	Website          string            `json:"website,omitempty" yaml:"website,omitempty"`
	Description      string            `json:"description,omitempty" yaml:"description,omitempty"`
	ShortDescription string            `json:"short_description,omitempty" yaml:"short_description,omitempty"`
	UserSupportText  string            `json:"user_support_text,omitempty" yaml:"user_support_text,omitempty"`
	Actions          map[string]Action `json:"actions" yaml:"actions"`
}
