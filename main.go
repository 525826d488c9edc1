// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import "github.com/axon-org/axon/cmd"

func main() {
	cmd.Execute()
}
