package main

import (
	"os"

	"github.com/wonny/cyberdash/cmd/cyberdash/commands"
)

// main is the entry point for the cyberdash CLI: go run ./cmd/cyberdash [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
