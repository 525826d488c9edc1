// SPDX-License-Identifier: AGPL-3.0-or-later
package cache

import (
	"context"
	"testing"

	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
)

func testSnapshot() *registry.Snapshot {
	return &registry.Snapshot{Plugins: map[string]types.Plugin{
		"diverse_plugin": {
			Name:    "diverse_plugin",
			Version: "0.3.0",
			Actions: map[string]types.Action{
				"rarefy": {
					ID:   "rarefy",
					Name: "Rarefy table",
					Signature: []types.SignatureEntry{
						{Name: "table", Kind: types.EntryInput, Ast: types.TypeAST{Type: types.ASTArtifact}},
						{Name: "depth", Kind: types.EntryParameter, Ast: types.TypeAST{Type: types.ASTPrimitive, Name: types.PrimitiveInt}},
					},
				},
			},
		},
	}}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.SaveSnapshot(ctx, testSnapshot()); err != nil {
		t.Fatal(err)
	}

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := snap.Plugins["diverse_plugin"]
	if !ok {
		t.Fatalf("plugin missing from loaded snapshot: %v", snap.Plugins)
	}
	if p.Version != "0.3.0" {
		t.Fatalf("version = %q", p.Version)
	}
	action, ok := p.Actions["rarefy"]
	if !ok {
		t.Fatal("action missing from loaded snapshot")
	}
	if len(action.Signature) != 2 || action.Signature[0].Name != "table" {
		t.Fatalf("signature mangled: %+v", action.Signature)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.SaveSnapshot(ctx, testSnapshot()); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSnapshot(ctx, &registry.Snapshot{Plugins: map[string]types.Plugin{}}); err != nil {
		t.Fatal(err)
	}

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Plugins) != 0 {
		t.Fatalf("expected empty snapshot, got %v", snap.Plugins)
	}
}

func TestEmptyCacheLoadsEmptySnapshot(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Plugins) != 0 {
		t.Fatalf("expected empty snapshot, got %v", snap.Plugins)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSnapshot(ctx, testSnapshot()); err != nil {
		t.Fatal(err)
	}
	store.Close()

	if err := Reset(dir); err != nil {
		t.Fatal(err)
	}

	store, err = Open(ctx, dir)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Plugins) != 0 {
		t.Fatal("expected cache to be empty after reset")
	}

	// Resetting a directory with no cache is not an error.
	if err := Reset(t.TempDir()); err != nil {
		t.Fatal(err)
	}
}
