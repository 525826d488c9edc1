// SPDX-License-Identifier: AGPL-3.0-or-later
package handlers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/axon-org/axon/internal/configfile"
	"github.com/axon-org/axon/internal/paths"
	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
	"github.com/spf13/pflag"
)

// Meta-handlers contribute cross-cutting options that are not tied to a
// single signature entry. OutputDirHandler and CommandConfigHandler double
// as fallback providers for the entry handlers.

// VerboseHandler resolves the --verbose logging mode.
type VerboseHandler struct{}

func NewVerboseHandler() *VerboseHandler { return &VerboseHandler{} }

func (h *VerboseHandler) AddFlags(fs *pflag.FlagSet) {
	fs.Bool("verbose", false, "Display verbose output to stdout and/or stderr during execution of this action.")
}

func (h *VerboseHandler) Resolve(fs *pflag.FlagSet, fallback Fallback) (any, []string, error) {
	return resolveModeFlag(fs, fallback, "verbose")
}

// QuietHandler resolves the --quiet logging mode.
type QuietHandler struct{}

func NewQuietHandler() *QuietHandler { return &QuietHandler{} }

func (h *QuietHandler) AddFlags(fs *pflag.FlagSet) {
	fs.Bool("quiet", false, "Silence output if execution is successful.")
}

func (h *QuietHandler) Resolve(fs *pflag.FlagSet, fallback Fallback) (any, []string, error) {
	return resolveModeFlag(fs, fallback, "quiet")
}

func resolveModeFlag(fs *pflag.FlagSet, fallback Fallback, name string) (any, []string, error) {
	if fs.Changed(name) {
		v, err := fs.GetBool(name)
		return v, nil, err
	}
	if raw, ok := fallback(name); ok {
		v, err := coerceBool(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("option --%s: %w", name, err)
		}
		return v, nil, nil
	}
	return false, nil, nil
}

// OutputDirHandler contributes --output-dir and provides the
// output-directory convention as a fallback: unnamed outputs land under the
// directory at their default file names.
type OutputDirHandler struct {
	outputs []types.SignatureEntry
}

// NewOutputDirHandler takes the action's output entries, normally
// Action.Outputs().
func NewOutputDirHandler(outputs []types.SignatureEntry) *OutputDirHandler {
	return &OutputDirHandler{outputs: outputs}
}

func (h *OutputDirHandler) AddFlags(fs *pflag.FlagSet) {
	fs.String("output-dir", "", "Output unspecified results to a directory")
}

// Provider resolves the directory (the flag itself may come from the
// command-config fallback) and returns the derived-path provider. With no
// directory declared, the provider never has a value.
func (h *OutputDirHandler) Provider(fs *pflag.FlagSet, fallback Fallback) (Fallback, error) {
	dir := ""
	if fs.Changed("output-dir") {
		v, err := fs.GetString("output-dir")
		if err != nil {
			return nil, err
		}
		dir = v
	} else if raw, ok := fallback("output-dir"); ok {
		v, err := coerceString(raw)
		if err != nil {
			return nil, fmt.Errorf("option --output-dir: %w", err)
		}
		dir = v
	}

	if dir == "" {
		return NoFallback, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("option --output-dir: %w", err)
	}

	fileNames := make(map[string]string, len(h.outputs))
	for _, e := range h.outputs {
		fileNames[registry.ToCLIName(e.Name)] = DefaultFileName(e)
	}

	return func(option string) (any, bool) {
		name, ok := fileNames[option]
		if !ok {
			return nil, false
		}
		return filepath.Join(dir, name), true
	}, nil
}

// CommandConfigHandler contributes --cmd-config and provides default values
// from the per-plugin-per-action section of the config file.
type CommandConfigHandler struct {
	plugin string
	action string
}

// NewCommandConfigHandler takes the normalized plugin and action names that
// scope the config lookup.
func NewCommandConfigHandler(pluginCLIName, actionCLIName string) *CommandConfigHandler {
	return &CommandConfigHandler{plugin: pluginCLIName, action: actionCLIName}
}

func (h *CommandConfigHandler) AddFlags(fs *pflag.FlagSet) {
	fs.String("cmd-config", "", "Use config file for command options")
}

// Provider loads the config source. An explicitly given file must exist;
// the default location is optional.
func (h *CommandConfigHandler) Provider(fs *pflag.FlagSet) (Fallback, error) {
	var (
		file *configfile.File
		err  error
	)
	if fs.Changed("cmd-config") {
		path, gerr := fs.GetString("cmd-config")
		if gerr != nil {
			return nil, gerr
		}
		file, err = configfile.Load(path)
	} else {
		file, err = configfile.LoadOptional(paths.DefaultCommandConfig())
	}
	if err != nil {
		return nil, err
	}

	return func(option string) (any, bool) {
		return file.Lookup(h.plugin, h.action, option)
	}, nil
}
