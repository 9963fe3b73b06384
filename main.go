// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/kushview/eltool/cmd/eltool"

func main() {
	cmd.Execute()
}
