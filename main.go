// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/creddock/creddock/cmd/creddock"

func main() {
	cmd.Execute()
}
