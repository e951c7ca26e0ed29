package main

import (
	"os"

	"github.com/scrytools/scryfall-mcp/internal/infrastructure/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
