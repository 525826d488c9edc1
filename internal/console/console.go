// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console renders styled diagnostics and carries the exit-status
// contract of the command tree.
package console

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var profile = termenv.ColorProfile()

// Errorf writes a red bold line to w.
func Errorf(w io.Writer, format string, a ...any) {
	msg := termenv.String(fmt.Sprintf(format, a...)).Foreground(profile.Color("1")).Bold()
	fmt.Fprintln(w, msg)
}

// Successf writes a green line to w.
func Successf(w io.Writer, format string, a ...any) {
	msg := termenv.String(fmt.Sprintf(format, a...)).Foreground(profile.Color("2"))
	fmt.Fprintln(w, msg)
}

// ExitError signals that the command already reported its failure and the
// process should terminate with Code. It carries no message of its own so
// cobra does not print anything further.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Exit returns an ExitError with the given status.
func Exit(code int) error {
	return &ExitError{Code: code}
}

// StatusOf maps an error to the process exit status: nil is 0, an ExitError
// carries its own code, anything else is 1.
func StatusOf(err error) int {
	if err == nil {
		return 0
	}
	if ee, ok := err.(*ExitError); ok {
		return ee.Code
	}
	return 1
}

// ReportExecutionError is the single formatting path for failures raised by
// the execution engine. The header names the offending plugin; logPath
// points at the retained capture file, or is empty in verbose mode where
// the detail is already on the live error stream. The returned error
// terminates the process with status 1.
func ReportExecutionError(w io.Writer, pluginCLIName string, err error, logPath string) error {
	Errorf(w, "Plugin error from %s:", pluginCLIName)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %v\n", err)
	fmt.Fprintln(w)
	if logPath == "" {
		fmt.Fprintln(w, "See above for debug info.")
	} else {
		fmt.Fprintf(w, "Debug info has been saved to %s\n", logPath)
	}
	return Exit(1)
}
