// SPDX-License-Identifier: AGPL-3.0-or-later
package configfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cli.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLookupNormalizesSectionKeys(t *testing.T) {
	path := writeConfig(t, `Diverse_Plugin:
  Rarefy_Table:
    sampling-depth: 100
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	// Lookups use normalized CLI names regardless of the file's spelling.
	v, ok := f.Lookup("diverse-plugin", "rarefy-table", "sampling-depth")
	if !ok || v != 100 {
		t.Fatalf("Lookup = %v, %v; want 100", v, ok)
	}
	if _, ok := f.Lookup("diverse-plugin", "rarefy-table", "other"); ok {
		t.Fatal("expected absent option")
	}
	if _, ok := f.Lookup("unknown", "rarefy-table", "sampling-depth"); ok {
		t.Fatal("expected absent plugin")
	}
}

func TestLookupNormalizesOptionKeys(t *testing.T) {
	path := writeConfig(t, `diverse-plugin:
  rarefy:
    sampling_depth: 7
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	v, ok := f.Lookup("diverse-plugin", "rarefy", "sampling-depth")
	if !ok || v != 7 {
		t.Fatalf("Lookup = %v, %v; want 7 under the canonical option name", v, ok)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "{not yaml: [")
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadOptionalMissingFileIsEmpty(t *testing.T) {
	f, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if _, ok := f.Lookup("p", "a", "x"); ok {
		t.Fatal("expected empty source")
	}
}

func TestSection(t *testing.T) {
	path := writeConfig(t, `p:
  a:
    x: 1
    y: two
`)
	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	section := f.Section("p", "a")
	if len(section) != 2 {
		t.Fatalf("section = %v", section)
	}
}
