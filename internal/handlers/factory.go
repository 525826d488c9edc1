// SPDX-License-Identifier: AGPL-3.0-or-later
package handlers

import (
	"fmt"

	"github.com/axon-org/axon/internal/types"
)

// ForEntry selects the handler for one signature entry: inputs get an
// artifact handler, parameters a type-dispatched handler, outputs a result
// handler. Collection-typed entries wrap the chosen handler so the option
// accepts repeated occurrences.
func ForEntry(entry types.SignatureEntry) (Handler, error) {
	var inner Handler
	switch entry.Kind {
	case types.EntryInput:
		inner = NewArtifactHandler(entry)
	case types.EntryParameter:
		inner = NewParameterHandler(entry)
	case types.EntryOutput:
		inner = NewResultHandler(entry)
	default:
		return nil, fmt.Errorf("entry %q: unknown kind %q", entry.Name, entry.Kind)
	}

	if entry.Ast.IsCollection() {
		return NewCollectionHandler(inner, entry)
	}
	return inner, nil
}
