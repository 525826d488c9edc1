// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/axon-org/axon/internal/paths"
	"github.com/axon-org/axon/internal/registry"
	"github.com/spf13/cobra"
)

func newInfoCmd(snap *registry.Snapshot) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display information about current deployment.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "System versions")
			fmt.Fprintf(out, "  axn version: %s\n", version)
			fmt.Fprintf(out, "  Go runtime: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Directories")
			fmt.Fprintf(out, "  data: %s\n", paths.DataDir())
			fmt.Fprintf(out, "  command config: %s\n", paths.DefaultCommandConfig())
			fmt.Fprintln(out)

			names := make([]string, 0, len(snap.Plugins))
			for name := range snap.Plugins {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Fprintln(out, "Installed plugins")
			if len(names) == 0 {
				fmt.Fprintln(out, "  No plugins are currently installed.")
				return nil
			}
			for _, name := range names {
				p := snap.Plugins[name]
				fmt.Fprintf(out, "  %s %s (%d actions)\n", registry.ToCLIName(name), p.Version, len(p.Actions))
			}
			return nil
		},
	}
}
