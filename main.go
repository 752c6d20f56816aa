// Package main is the entry point for the Trello skill CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dgmdan/trello-codex-skill/cmd"
	"github.com/dgmdan/trello-codex-skill/internal/logging"
)

func main() {
	// A local .env is a convenience for development; missing files are fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to load .env file", "error", err)
	}

	if err := cmd.Execute(); err != nil {
		logging.Debug("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
