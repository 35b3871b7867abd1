// Package main is the entry point for the craft2obsidian CLI tool.
package main

import (
	"os"

	"github.com/Coryrichter94/Craft.do-to-Obsidian-Migrator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
