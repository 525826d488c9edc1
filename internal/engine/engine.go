// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine defines the execution side of the command tree: the
// invoker that runs a resolved action and the result objects it returns.
// The front end treats any failure raised here uniformly regardless of
// origin.
package engine

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Result is one output object produced by a successful invocation.
type Result interface {
	// Type is the human-readable label printed in save confirmations.
	Type() string
	// Save persists the result and returns the final path written.
	Save(path string) (string, error)
}

// Invocation identifies one action call with its resolved arguments.
// Stdout and Stderr receive everything the action writes while running;
// the caller decides whether they point at the live streams or a capture
// file.
type Invocation struct {
	Plugin    string
	ActionID  string
	Arguments map[string]any
	Stdout    io.Writer
	Stderr    io.Writer
}

// Invoker performs the operation behind an action and returns its results
// in output-signature order.
type Invoker interface {
	Invoke(ctx context.Context, inv Invocation) ([]Result, error)
}

// FileResult is a minimal Result that persists a byte payload. Plugins
// whose outputs are plain files can return it directly.
type FileResult struct {
	Kind string
	Data []byte
}

func (r *FileResult) Type() string { return r.Kind }

func (r *FileResult) Save(path string) (string, error) {
	if err := os.WriteFile(path, r.Data, 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", r.Kind, err)
	}
	return path, nil
}
