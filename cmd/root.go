// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"context"
	"os"
	"sort"

	"github.com/axon-org/axon/internal/cache"
	"github.com/axon-org/axon/internal/console"
	"github.com/axon-org/axon/internal/engine"
	"github.com/axon-org/axon/internal/paths"
	"github.com/axon-org/axon/internal/plugin"
	"github.com/axon-org/axon/internal/registry"
	"github.com/spf13/cobra"
)

const version = "1.4.0"

func init() {
	// Built-in commands have a curated order based on applicability to
	// users; plugin commands are appended sorted. Cobra must not re-sort.
	cobra.EnableCommandSorting = false
}

// Execute is the process entry point.
func Execute() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if !ValidateTokens(os.Stderr, args) {
		return -1
	}

	ctx := context.Background()
	snap, err := loadSnapshot(ctx, plugin.Default)
	if err != nil {
		console.Errorf(os.Stderr, "Error: %v", err)
		return 1
	}

	root := BuildRoot(snap, plugin.Default, plugin.Default)
	root.SetArgs(args)
	return console.StatusOf(root.ExecuteContext(ctx))
}

// loadSnapshot reads the plugin metadata cache, building it from the live
// registry on first use. The returned snapshot is the single in-memory view
// for the rest of the run.
func loadSnapshot(ctx context.Context, provider registry.Provider) (*registry.Snapshot, error) {
	store, err := cache.Open(ctx, paths.DataDir())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(snap.Plugins) > 0 {
		return snap, nil
	}

	plugins, err := provider.Plugins()
	if err != nil {
		return nil, err
	}
	snap = &registry.Snapshot{Plugins: plugins}
	if err := store.SaveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// BuildRoot constructs the full command tree from an explicit snapshot.
// Callers that need an alternate metadata view (shell completion
// generation, tests) pass their own snapshot here instead of substituting
// the cache.
func BuildRoot(snap *registry.Snapshot, provider registry.Provider, invoker engine.Invoker) *cobra.Command {
	root := &cobra.Command{
		Use:   "axn",
		Short: "axn is the command-line front end to the axon action registry.",
		Long: "axn exposes every registered plugin action as a subcommand.\n" +
			"Run `axn <plugin> --help` to list a plugin's actions.",
		SilenceErrors: true,
		SilenceUsage:  true,
		// Unknown names must reach RunE for the exit-code contract rather
		// than trip cobra's own unknown-command error.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			console.Errorf(cmd.ErrOrStderr(), "Error: No such command %q.", args[0])
			return console.Exit(2)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newInfoCmd(snap))
	root.AddCommand(newToolsCmd())
	root.AddCommand(newDevCmd(provider))
	root.AddCommand(NewCompletionCmd(root))

	lookup := snap.CommandLookup()
	names := make([]string, 0, len(lookup))
	for name := range lookup {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		root.AddCommand(newPluginCommand(name, lookup[name], provider, invoker))
	}

	return root
}
