// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/axon-org/axon/internal/console"
	"github.com/axon-org/axon/internal/engine"
	"github.com/axon-org/axon/internal/registry"
	"github.com/axon-org/axon/internal/types"
	"github.com/spf13/cobra"
)

// newPluginCommand exposes one subcommand per action of a single plugin.
// Flag parsing is disabled so the action command, which is constructed
// lazily on dispatch, owns its full option set.
func newPluginCommand(cliName string, p types.Plugin, provider registry.Provider, invoker engine.Invoker) *cobra.Command {
	actions := registry.ActionLookup(p)

	cmd := &cobra.Command{
		Use:                cliName,
		Short:              p.ShortDescription,
		Long:               pluginHelp(p, actions),
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var out []string
			for name := range actions {
				if strings.HasPrefix(name, toComplete) {
					out = append(out, name)
				}
			}
			sort.Strings(out)
			return out, cobra.ShellCompDirectiveNoFileComp
		},
	}
	// Display-only: parsing is manual because DisableFlagParsing is set.
	cmd.Flags().Bool("version", false, "Show the plugin version and exit.")
	cmd.Flags().Bool("citations", false, "Show citations and exit.")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return dispatchAction(cmd, args, cliName, p, actions, provider, invoker)
	}
	return cmd
}

func dispatchAction(cmd *cobra.Command, args []string, cliName string, p types.Plugin,
	actions map[string]types.Action, provider registry.Provider, invoker engine.Invoker) error {

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	// Plugin-level options are eager: they apply only ahead of an action
	// name and short-circuit dispatch entirely.
	rest := args
	for len(rest) > 0 && strings.HasPrefix(rest[0], "-") {
		switch rest[0] {
		case "--version":
			fmt.Fprintf(out, "%s version %s\n", p.Name, p.Version)
			return nil
		case "--citations":
			citations, err := provider.PluginCitations(p.Name)
			if err != nil {
				console.Errorf(errOut, "Error: %v", err)
				return console.Exit(1)
			}
			printCitations(out, citations)
			return nil
		case "--help", "-h":
			return cmd.Help()
		default:
			console.Errorf(errOut, "Error: No such option: %s", rest[0])
			return console.Exit(2)
		}
	}

	if len(rest) == 0 {
		return cmd.Help()
	}

	name := rest[0]
	action, ok := actions[registry.ToCLIName(name)]
	if !ok {
		console.Errorf(errOut, "Error: Plugin %q has no action %q.", p.Name, name)
		return console.Exit(2)
	}

	// Re-dispatch through a shadow tree so the action command parses its
	// own generated options and its help carries the full command path.
	actionCmd := newActionCommand(cliName, p, action, provider, invoker)
	shadowPlugin := &cobra.Command{Use: cliName, SilenceErrors: true, SilenceUsage: true}
	shadowRoot := &cobra.Command{Use: cmd.Root().Name(), SilenceErrors: true, SilenceUsage: true}
	shadowPlugin.AddCommand(actionCmd)
	shadowRoot.AddCommand(shadowPlugin)
	shadowRoot.SetOut(out)
	shadowRoot.SetErr(errOut)
	shadowRoot.SetArgs(append([]string{cliName, registry.ToCLIName(name)}, rest[1:]...))
	err := shadowRoot.ExecuteContext(cmd.Context())
	if err == nil {
		return nil
	}
	// The action reports its own failures through ExitError; anything else
	// is a parse-level error cobra left unrendered because the shadow tree
	// silences it.
	var ee *console.ExitError
	if errors.As(err, &ee) {
		return err
	}
	console.Errorf(errOut, "Error: %v", err)
	return console.Exit(1)
}

func pluginHelp(p types.Plugin, actions map[string]types.Action) string {
	var b strings.Builder
	if p.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n\n", p.Description)
	}
	if p.Website != "" {
		fmt.Fprintf(&b, "Plugin website: %s\n\n", p.Website)
	}
	if p.UserSupportText != "" {
		fmt.Fprintf(&b, "Getting user support: %s\n\n", p.UserSupportText)
	}

	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("Actions:")
	for _, name := range names {
		fmt.Fprintf(&b, "\n  %-24s%s", name, actions[name].Name)
	}
	return b.String()
}

func printCitations(w io.Writer, citations []registry.Citation) {
	if len(citations) == 0 {
		fmt.Fprintln(w, "No citations found.")
		return
	}
	for _, c := range citations {
		fmt.Fprintf(w, "%% %s\n%s\n\n", c.Key, c.Entry)
	}
}
