// Package main is the entry point for the secondhand market admin tool.
package main

import "github.com/XiPingo/secondhand/cmd/secondhand-admin/commands"

func main() {
	commands.Execute()
}
