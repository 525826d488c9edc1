// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"fmt"
	"sort"

	"github.com/axon-org/axon/internal/configfile"
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	tools := &cobra.Command{
		Use:   "tools",
		Short: "Tools for working with axon files.",
	}

	tools.AddCommand(&cobra.Command{
		Use:   "validate-config FILE",
		Short: "Check a command-config file and list the defaults it supplies.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := configfile.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			plugins := file.Plugins()
			sort.Strings(plugins)
			if len(plugins) == 0 {
				fmt.Fprintf(out, "%s is valid but supplies no defaults.\n", args[0])
				return nil
			}

			fmt.Fprintf(out, "%s is valid. Defaults by command:\n", args[0])
			for _, plugin := range plugins {
				fmt.Fprintf(out, "  %s\n", plugin)
			}
			return nil
		},
	})

	return tools
}
