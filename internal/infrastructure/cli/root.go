package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "scryfall-mcp",
	Version: Version,
	Short:   "An MCP server exposing Scryfall card data",
	Long: `Scryfall-mcp exposes the Scryfall Magic: The Gathering card API
as a set of MCP tools. It paces outbound requests, retries rate-limited
responses and renders cards as readable text with configurable field
projections.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
