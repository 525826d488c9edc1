// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"fmt"

	"github.com/axon-org/axon/internal/cache"
	"github.com/axon-org/axon/internal/paths"
	"github.com/axon-org/axon/internal/registry"
	"github.com/spf13/cobra"
)

func newDevCmd(provider registry.Provider) *cobra.Command {
	dev := &cobra.Command{
		Use:   "dev",
		Short: "Utilities for developers and advanced users.",
	}

	dev.AddCommand(&cobra.Command{
		Use:   "refresh-cache",
		Short: "Refresh the plugin metadata cache from the live registry.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			plugins, err := provider.Plugins()
			if err != nil {
				return err
			}

			store, err := cache.Open(cmd.Context(), paths.DataDir())
			if err != nil {
				return err
			}
			defer store.Close()

			snap := &registry.Snapshot{Plugins: plugins}
			if err := store.SaveSnapshot(cmd.Context(), snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cached metadata for %d plugins in %s\n",
				len(plugins), store.Path())
			return nil
		},
	})

	dev.AddCommand(&cobra.Command{
		Use:   "reset-cache",
		Short: "Delete the plugin metadata cache; the next run rebuilds it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cache.Reset(paths.DataDir()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache reset.")
			return nil
		},
	})

	return dev
}
