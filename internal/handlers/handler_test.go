// SPDX-License-Identifier: AGPL-3.0-or-later
package handlers

import (
	"testing"
)

func TestChainFallbacksFirstSuccessWins(t *testing.T) {
	first := func(name string) (any, bool) {
		if name == "a" {
			return "from-first", true
		}
		return nil, false
	}
	second := func(name string) (any, bool) {
		return "from-second", true
	}

	chain := ChainFallbacks(first, second)

	if v, ok := chain("a"); !ok || v != "from-first" {
		t.Fatalf("chain(a) = %v, %v; want from-first", v, ok)
	}
	if v, ok := chain("b"); !ok || v != "from-second" {
		t.Fatalf("chain(b) = %v, %v; want from-second", v, ok)
	}
}

func TestChainFallbacksSkipsNilProviders(t *testing.T) {
	chain := ChainFallbacks(nil, func(string) (any, bool) { return 7, true })
	if v, ok := chain("x"); !ok || v != 7 {
		t.Fatalf("chain(x) = %v, %v; want 7", v, ok)
	}
}

func TestChainFallbacksAllAbsent(t *testing.T) {
	chain := ChainFallbacks(NoFallback, NoFallback)
	if _, ok := chain("x"); ok {
		t.Fatal("expected absent")
	}
}

func TestCoercions(t *testing.T) {
	if n, err := coerceInt("7"); err != nil || n != 7 {
		t.Fatalf("coerceInt(\"7\") = %d, %v", n, err)
	}
	if f, err := coerceFloat("0.5"); err != nil || f != 0.5 {
		t.Fatalf("coerceFloat(\"0.5\") = %f, %v", f, err)
	}
	if b, err := coerceBool("true"); err != nil || !b {
		t.Fatalf("coerceBool(\"true\") = %v, %v", b, err)
	}
	if _, err := coerceInt("not a number"); err == nil {
		t.Fatal("expected error for non-numeric input")
	}
}
