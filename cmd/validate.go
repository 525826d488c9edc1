// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/axon-org/axon/internal/console"
)

// Characters a text editor's autocorrect tends to substitute for ASCII
// quotes and dashes. Left in the argument vector they produce baffling
// parser errors, so they are rejected before any parsing happens.
const smartPunctuation = "‘’“”—"

// Old-style metadata option spelling; the vocabulary changed from
// "category" to "column".
var legacyCategoryPattern = regexp.MustCompile(`^--m-(\S+)-category$`)

// ValidateTokens scans the raw argument vector for known migration pitfalls
// ahead of the parsing framework. Every offending token is reported, not
// just the first. It returns false when the process must terminate.
func ValidateTokens(w io.Writer, args []string) bool {
	var invalid []string
	var renames []string

	for _, arg := range args {
		if strings.ContainsAny(arg, smartPunctuation) {
			invalid = append(invalid, arg)
		}
		if m := legacyCategoryPattern.FindStringSubmatch(arg); m != nil {
			renames = append(renames,
				fmt.Sprintf("Instead of %s, try using --m-%s-column", arg, m[1]))
		}
	}

	if len(invalid) > 0 {
		console.Errorf(w, "Error: Detected invalid character in: %s\n"+
			"Verify the correct quotes or dashes (ASCII) are being used.",
			strings.Join(invalid, ", "))
	}
	if len(renames) > 0 {
		console.Errorf(w, "Error: The following options no longer exist because "+
			"metadata categories are now called metadata columns.\n\n%s",
			strings.Join(renames, "\n"))
	}

	return len(invalid) == 0 && len(renames) == 0
}
