package main

import (
	"os"

	"github.com/wonny/macrosig/cmd/macro/commands"
)

// main is the entry point for the macrosig CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/macro [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
