// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/axon-org/axon/internal/console"
	"github.com/axon-org/axon/internal/engine"
	"github.com/axon-org/axon/internal/handlers"
	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const outputDirGuidance = "Note: When only providing names for a subset of " +
	"the output results, you must specify an output directory through use " +
	"of the --output-dir DIRECTORY flag."

// actionRunner turns one action's signature into a runnable command: one
// handler per signature entry plus the meta-handlers, resolved against the
// parsed flags and the fallback providers on invocation.
type actionRunner struct {
	pluginCLIName string
	plugin        types.Plugin
	action        types.Action

	entries  []entryHandler
	outDir   *handlers.OutputDirHandler
	config   *handlers.CommandConfigHandler
	verbose  *handlers.VerboseHandler
	quiet    *handlers.QuietHandler
	provider registry.Provider
	invoker  engine.Invoker

	buildErr error
}

type entryHandler struct {
	entry   types.SignatureEntry
	handler handlers.Handler
}

func newActionCommand(pluginCLIName string, p types.Plugin, action types.Action,
	provider registry.Provider, invoker engine.Invoker) *cobra.Command {

	r := &actionRunner{
		pluginCLIName: pluginCLIName,
		plugin:        p,
		action:        action,
		outDir:        handlers.NewOutputDirHandler(action.Outputs()),
		config:        handlers.NewCommandConfigHandler(pluginCLIName, registry.ToCLIName(action.ID)),
		verbose:       handlers.NewVerboseHandler(),
		quiet:         handlers.NewQuietHandler(),
		provider:      provider,
		invoker:       invoker,
	}
	for _, entry := range action.Signature {
		h, err := handlers.ForEntry(entry)
		if err != nil {
			r.buildErr = err
			break
		}
		r.entries = append(r.entries, entryHandler{entry: entry, handler: h})
	}

	cmd := &cobra.Command{
		Use:           registry.ToCLIName(action.ID),
		Short:         action.Name,
		Long:          action.Description,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          r.run,
	}

	// Option order is help-text order: signature entries first, then the
	// meta-handlers, always the same way.
	fs := cmd.Flags()
	fs.SortFlags = false
	for _, eh := range r.entries {
		eh.handler.AddFlags(fs)
	}
	r.outDir.AddFlags(fs)
	r.config.AddFlags(fs)
	r.verbose.AddFlags(fs)
	r.quiet.AddFlags(fs)
	fs.Bool("citations", false, "Show citations and exit.")

	return cmd
}

func (r *actionRunner) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	fs := cmd.Flags()

	if r.buildErr != nil {
		console.Errorf(errOut, "Error: %v", r.buildErr)
		return console.Exit(1)
	}

	if show, _ := fs.GetBool("citations"); show {
		citations, err := r.provider.ActionCitations(r.plugin.Name, r.action.ID)
		if err != nil {
			console.Errorf(errOut, "Error: %v", err)
			return console.Exit(1)
		}
		printCitations(out, citations)
		return nil
	}

	// The command-config provider goes first: every other handler may fall
	// back to it.
	cfgFallback, err := r.config.Provider(fs)
	if err != nil {
		console.Errorf(errOut, "Error: %v", err)
		return console.Exit(1)
	}

	verbose, err := r.resolveMode(r.verbose, fs, cfgFallback)
	if err != nil {
		console.Errorf(errOut, "Error: %v", err)
		return console.Exit(1)
	}
	quiet, err := r.resolveMode(r.quiet, fs, cfgFallback)
	if err != nil {
		console.Errorf(errOut, "Error: %v", err)
		return console.Exit(1)
	}
	if verbose && quiet {
		console.Errorf(errOut, "Unsure of how to be quiet and verbose at the same time.")
		return console.Exit(1)
	}

	arguments, missingIn, err := r.resolveInputs(fs, cfgFallback, verbose, errOut)
	if err != nil {
		console.Errorf(errOut, "Error: %v", err)
		return console.Exit(1)
	}

	outputs, missingOut, err := r.resolveOutputs(fs, cfgFallback)
	if err != nil {
		console.Errorf(errOut, "Error: %v", err)
		return console.Exit(1)
	}

	if len(missingIn) > 0 || len(missingOut) > 0 {
		fmt.Fprintln(errOut, cmd.UsageString())
		for _, name := range missingIn {
			console.Errorf(errOut, "Error: Missing option: --%s", name)
		}
		for _, name := range missingOut {
			console.Errorf(errOut, "Error: Missing option: --%s", name)
		}
		if len(missingOut) > 0 {
			fmt.Fprintln(errOut, outputDirGuidance)
		}
		return console.Exit(1)
	}

	return r.invoke(cmd, arguments, outputs, verbose, quiet)
}

// resolveInputs resolves every input and parameter entry. Missing option
// names are collected across the whole signature so the user sees them all
// in one pass.
func (r *actionRunner) resolveInputs(fs *pflag.FlagSet, cfgFallback handlers.Fallback, verbose bool, diag io.Writer) (map[string]any, []string, error) {
	arguments := make(map[string]any)
	var missing []string

	for _, eh := range r.entries {
		if eh.entry.Kind != types.EntryInput && eh.entry.Kind != types.EntryParameter {
			continue
		}
		var (
			v    any
			miss []string
			err  error
		)
		if mh, ok := eh.handler.(*handlers.MetadataHandler); ok {
			v, miss, err = mh.ResolveVerbose(fs, cfgFallback, verbose, diag)
		} else {
			v, miss, err = eh.handler.Resolve(fs, cfgFallback)
		}
		if err != nil {
			return nil, nil, err
		}
		if len(miss) > 0 {
			missing = append(missing, miss...)
			continue
		}
		arguments[eh.entry.Name] = v
	}
	return arguments, missing, nil
}

// resolveOutputs resolves every output entry against the composite
// fallback: command-config first, then the output-directory convention.
// The order is observable precedence and must not change.
func (r *actionRunner) resolveOutputs(fs *pflag.FlagSet, cfgFallback handlers.Fallback) ([]string, []string, error) {
	outFallback, err := r.outDir.Provider(fs, cfgFallback)
	if err != nil {
		return nil, nil, err
	}
	composite := handlers.ChainFallbacks(cfgFallback, outFallback)

	var outputs []string
	var missing []string
	for _, eh := range r.entries {
		if eh.entry.Kind != types.EntryOutput {
			continue
		}
		v, miss, err := eh.handler.Resolve(fs, composite)
		if err != nil {
			return nil, nil, err
		}
		if len(miss) > 0 {
			missing = append(missing, miss...)
			continue
		}
		path, err := toPath(v)
		if err != nil {
			return nil, nil, fmt.Errorf("output %q: %w", eh.entry.Name, err)
		}
		outputs = append(outputs, path)
	}
	return outputs, missing, nil
}

func (r *actionRunner) resolveMode(h handlers.Handler, fs *pflag.FlagSet, fallback handlers.Fallback) (bool, error) {
	v, _, err := h.Resolve(fs, fallback)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

// invoke runs the action with stdout/stderr captured into a temp log file
// unless verbose mode passes them through, then saves each result to its
// resolved path.
func (r *actionRunner) invoke(cmd *cobra.Command, arguments map[string]any, outputs []string, verbose, quiet bool) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	var (
		logFile *os.File
		stdout  io.Writer = out
		stderr  io.Writer = errOut
	)
	if !verbose {
		f, err := os.CreateTemp("", "axn-err-*.log")
		if err != nil {
			console.Errorf(errOut, "Error: %v", err)
			return console.Exit(1)
		}
		logFile = f
		stdout, stderr = f, f
	}

	results, err := r.invoker.Invoke(cmd.Context(), engine.Invocation{
		Plugin:    r.plugin.Name,
		ActionID:  r.action.ID,
		Arguments: arguments,
		Stdout:    stdout,
		Stderr:    stderr,
	})
	if err != nil {
		// The log stays on disk for inspection; verbose mode has no log
		// because the detail is already on the live error stream.
		logPath := ""
		if logFile != nil {
			logFile.Close()
			logPath = logFile.Name()
		}
		return console.ReportExecutionError(errOut, r.pluginCLIName, err, logPath)
	}

	if logFile != nil {
		logFile.Close()
		// Hosts may reap unattended temp files, so check before removing.
		if _, statErr := os.Stat(logFile.Name()); statErr == nil {
			os.Remove(logFile.Name())
		}
	}

	for i, result := range results {
		if i >= len(outputs) {
			break
		}
		path, err := result.Save(outputs[i])
		if err != nil {
			return console.ReportExecutionError(errOut, r.pluginCLIName, err, "")
		}
		if !quiet {
			console.Successf(out, "Saved %s to: %s", result.Type(), path)
		}
	}
	return nil
}

func toPath(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("resolved to %T, want a path", v)
	}
	return s, nil
}
