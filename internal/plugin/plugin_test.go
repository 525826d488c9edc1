// SPDX-License-Identifier: AGPL-3.0-or-later
package plugin

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/axon-org/axon/internal/engine"
	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
)

func testRegistration() *Registration {
	return &Registration{
		Plugin: types.Plugin{
			Name:    "diverse_plugin",
			Version: "0.3.0",
			Actions: map[string]types.Action{
				"rarefy": {ID: "rarefy", Name: "Rarefy table"},
			},
		},
		Citations: []registry.Citation{{Key: "smith2019", Entry: "@article{smith2019}"}},
		ActionCitations: map[string][]registry.Citation{
			"rarefy": {{Key: "jones2020", Entry: "@article{jones2020}"}},
		},
		Run: map[string]ActionFunc{
			"rarefy": func(ctx context.Context, args map[string]any, out, errw io.Writer) ([]engine.Result, error) {
				fmt.Fprintln(out, "rarefying")
				return []engine.Result{&engine.FileResult{Kind: "Table", Data: []byte("data")}}, nil
			},
		},
	}
}

func TestRegisterAndInvoke(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(testRegistration()); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	results, err := r.Invoke(context.Background(), engine.Invocation{
		Plugin:    "diverse_plugin",
		ActionID:  "rarefy",
		Arguments: map[string]any{},
		Stdout:    &out,
		Stderr:    io.Discard,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Type() != "Table" {
		t.Fatalf("results = %v", results)
	}
	if out.String() != "rarefying\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestInvokeByNormalizedName(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(testRegistration()); err != nil {
		t.Fatal(err)
	}
	_, err := r.Invoke(context.Background(), engine.Invocation{
		Plugin:   "diverse-plugin",
		ActionID: "rarefy",
		Stdout:   io.Discard,
		Stderr:   io.Discard,
	})
	if err != nil {
		t.Fatalf("normalized name lookup failed: %v", err)
	}
}

func TestDuplicateRegistrationFails(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(testRegistration()); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(testRegistration()); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestRegisterRejectsActionWithoutRunFunc(t *testing.T) {
	reg := testRegistration()
	reg.Run = nil
	if err := NewRegistry().Register(reg); err == nil {
		t.Fatal("expected error for action without run function")
	}
}

func TestCitationLookups(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(testRegistration()); err != nil {
		t.Fatal(err)
	}

	cites, err := r.PluginCitations("diverse_plugin")
	if err != nil || len(cites) != 1 || cites[0].Key != "smith2019" {
		t.Fatalf("plugin citations = %v, %v", cites, err)
	}
	cites, err = r.ActionCitations("diverse_plugin", "rarefy")
	if err != nil || len(cites) != 1 || cites[0].Key != "jones2020" {
		t.Fatalf("action citations = %v, %v", cites, err)
	}
	if _, err := r.ActionCitations("diverse_plugin", "nope"); err == nil {
		t.Fatal("expected error for unknown action")
	}
	if _, err := r.PluginCitations("nope"); err == nil {
		t.Fatal("expected error for unknown plugin")
	}
}

func TestSnapshotCopiesMetadata(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(testRegistration()); err != nil {
		t.Fatal(err)
	}
	snap, err := r.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := snap.Plugins["diverse_plugin"]; !ok {
		t.Fatalf("snapshot = %v", snap.Plugins)
	}
}
