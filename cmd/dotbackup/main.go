// Package main is the entry point for dotbackup.
package main

import (
	"os"

	"github.com/thoreinstein/dotbackup/cmd/dotbackup/commands"
)

func main() {
	os.Exit(commands.Execute(commands.ModeBackup))
}
