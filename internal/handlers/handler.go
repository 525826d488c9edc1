// SPDX-License-Identifier: AGPL-3.0-or-later

// Package handlers converts signature entries into command-line options and
// resolves their final values. Every handler follows the same protocol:
// explicit flag value if present, else the supplied fallback function, else
// the entry's declared default, else the canonical option name is reported
// missing. Missing names are returned, not raised, so the caller can
// aggregate them across the whole signature before failing.
package handlers

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
)

// Fallback looks up a value for a canonical option name from a
// lower-priority source. The boolean reports whether the source had one.
type Fallback func(option string) (any, bool)

// NoFallback is the provider that never has a value.
func NoFallback(string) (any, bool) { return nil, false }

// ChainFallbacks composes providers in the given order; the first success
// wins. The precedence rule lives here and nowhere else.
func ChainFallbacks(providers ...Fallback) Fallback {
	return func(option string) (any, bool) {
		for _, p := range providers {
			if p == nil {
				continue
			}
			if v, ok := p(option); ok {
				return v, true
			}
		}
		return nil, false
	}
}

// Handler binds one signature entry to its command-line options.
//
// AddFlags contributes the handler's options to the flag set; a handler may
// contribute more than one. Resolve returns the typed value, or the
// canonical option name(s) it needed but did not receive. A non-nil error
// means a supplied value was malformed, which is fatal rather than missing.
type Handler interface {
	AddFlags(fs *pflag.FlagSet)
	Resolve(fs *pflag.FlagSet, fallback Fallback) (value any, missing []string, err error)
}

// ItemCoercer is implemented by handlers whose values can appear as
// elements of a collection.
type ItemCoercer interface {
	CoerceItem(v any) (any, error)
}

func coerceString(v any) (string, error) {
	var s string
	if err := mapstructure.WeakDecode(v, &s); err != nil {
		return "", fmt.Errorf("expected a string, got %v: %w", v, err)
	}
	return s, nil
}

func coerceInt(v any) (int, error) {
	var n int
	if err := mapstructure.WeakDecode(v, &n); err != nil {
		return 0, fmt.Errorf("expected an integer, got %v: %w", v, err)
	}
	return n, nil
}

func coerceFloat(v any) (float64, error) {
	var f float64
	if err := mapstructure.WeakDecode(v, &f); err != nil {
		return 0, fmt.Errorf("expected a number, got %v: %w", v, err)
	}
	return f, nil
}

func coerceBool(v any) (bool, error) {
	var b bool
	if err := mapstructure.WeakDecode(v, &b); err != nil {
		return false, fmt.Errorf("expected a boolean, got %v: %w", v, err)
	}
	return b, nil
}
