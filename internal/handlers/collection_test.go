// SPDX-License-Identifier: AGPL-3.0-or-later
package handlers

import (
	"reflect"
	"testing"

	"github.com/axon-org/axon/internal/types"
)

func collectionOf(name, prim string) types.SignatureEntry {
	return types.SignatureEntry{
		Name: name,
		Kind: types.EntryParameter,
		Ast: types.TypeAST{
			Type:    types.ASTCollection,
			Element: &types.TypeAST{Type: types.ASTPrimitive, Name: prim},
		},
	}
}

func TestCollectionPreservesInputOrder(t *testing.T) {
	entry := collectionOf("weights", types.PrimitiveInt)
	h, err := ForEntry(entry)
	if err != nil {
		t.Fatal(err)
	}

	fs := newFlagSet(h)
	if err := fs.Parse([]string{"--weights", "3", "--weights", "1", "--weights", "2"}); err != nil {
		t.Fatal(err)
	}

	v, missing, err := h.Resolve(fs, NoFallback)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Fatalf("unexpected missing %v", missing)
	}
	if !reflect.DeepEqual(v, []any{3, 1, 2}) {
		t.Fatalf("resolved %v, want [3 1 2] in input order", v)
	}
}

func TestCollectionFromFallbackList(t *testing.T) {
	entry := collectionOf("metrics", types.PrimitiveStr)
	h, err := ForEntry(entry)
	if err != nil {
		t.Fatal(err)
	}

	fs := newFlagSet(h)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}

	configured := func(string) (any, bool) { return []any{"jaccard", "braycurtis"}, true }
	v, _, err := h.Resolve(fs, configured)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []any{"jaccard", "braycurtis"}) {
		t.Fatalf("resolved %v", v)
	}
}

func TestCollectionMissing(t *testing.T) {
	entry := collectionOf("metrics", types.PrimitiveStr)
	h, err := ForEntry(entry)
	if err != nil {
		t.Fatal(err)
	}

	fs := newFlagSet(h)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	_, missing, err := h.Resolve(fs, NoFallback)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(missing, []string{"metrics"}) {
		t.Fatalf("missing = %v", missing)
	}
}

func TestCollectionOfInputsTakesPaths(t *testing.T) {
	entry := types.SignatureEntry{
		Name: "tables",
		Kind: types.EntryInput,
		Ast: types.TypeAST{
			Type:    types.ASTCollection,
			Element: &types.TypeAST{Type: types.ASTArtifact},
		},
	}
	h, err := ForEntry(entry)
	if err != nil {
		t.Fatal(err)
	}

	fs := newFlagSet(h)
	if err := fs.Parse([]string{"--tables", "a.bin", "--tables", "b.bin"}); err != nil {
		t.Fatal(err)
	}
	v, _, err := h.Resolve(fs, NoFallback)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v, []any{"a.bin", "b.bin"}) {
		t.Fatalf("resolved %v", v)
	}
}
