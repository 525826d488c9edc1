// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"strings"
	"testing"
)

func TestBuiltinCommandsKeepCuratedOrder(t *testing.T) {
	root, _ := newTestTree(t)
	want := []string{"info", "tools", "dev", "completion", "diverse-plugin"}

	cmds := root.Commands()
	if len(cmds) < len(want) {
		t.Fatalf("got %d commands, want at least %d", len(cmds), len(want))
	}
	for i, name := range want {
		if got := cmds[i].Name(); got != name {
			t.Errorf("command[%d] = %q, want %q", i, got, name)
		}
	}
}

func TestUnknownRootCommandExitsTwo(t *testing.T) {
	root, _ := newTestTree(t)
	code, _, stderr := execTree(t, root, "no-such-plugin")
	if code != 2 {
		t.Fatalf("exit code = %d, want 2\nstderr: %s", code, stderr)
	}
	if !strings.Contains(stderr, `No such command "no-such-plugin"`) {
		t.Fatalf("unknown command not named: %s", stderr)
	}
}

func TestNoArgumentsShowsHelp(t *testing.T) {
	root, _ := newTestTree(t)
	code, stdout, _ := execTree(t, root)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout, "axn") || !strings.Contains(stdout, "diverse-plugin") {
		t.Fatalf("help output incomplete:\n%s", stdout)
	}
}

func TestPluginHelpListsActionsSorted(t *testing.T) {
	root, _ := newTestTree(t)
	code, stdout, _ := execTree(t, root, "diverse-plugin", "--help")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	i := strings.Index(stdout, "explode")
	j := strings.Index(stdout, "rarefy")
	k := strings.Index(stdout, "split")
	if i < 0 || j < 0 || k < 0 {
		t.Fatalf("actions missing from help:\n%s", stdout)
	}
	if !(i < j && j < k) {
		t.Fatalf("actions not sorted in help:\n%s", stdout)
	}
}

func TestInfoListsDeployment(t *testing.T) {
	root, _ := newTestTree(t)
	code, stdout, _ := execTree(t, root, "info")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	for _, want := range []string{"axn version: " + version, "diverse-plugin 0.3.0 (3 actions)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("info output lacks %q:\n%s", want, stdout)
		}
	}
}
