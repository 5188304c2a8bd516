// SPDX-License-Identifier: MPL-2.0

package main

import cmd "modhost/cmd/modhost"

func main() {
	cmd.Execute()
}
