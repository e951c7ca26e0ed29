package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrytools/scryfall-mcp/internal/infrastructure/config"
	inframcp "github.com/scrytools/scryfall-mcp/internal/infrastructure/mcp"
	"github.com/scrytools/scryfall-mcp/internal/scryfall"
)

var (
	serveTransport string
	serveAddr      string
	serveConfigDir string
	serveVerbose   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Scryfall MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		inframcp.Version = Version
		inframcp.BuildCommit = Commit
		inframcp.BuildDate = Date

		logger := newLogger(serveVerbose)

		dir := serveConfigDir
		if dir == "" {
			var err error
			dir, err = os.Getwd()
			if err != nil {
				return err
			}
		}
		cfg, err := config.Load(dir)
		if err != nil {
			return err
		}

		opts := append(cfg.ClientOptions(), scryfall.WithLogger(logger))
		client := scryfall.NewClient(opts...)
		server := inframcp.NewServer(client, logger)

		switch strings.ToLower(serveTransport) {
		case "stdio", "":
			return server.StartStdio()
		case "http":
			return server.StartHTTP(serveAddr)
		case "ws", "websocket":
			return server.StartWebSocket(serveAddr)
		default:
			return fmt.Errorf("unsupported transport: %s", serveTransport)
		}
	},
}

// newLogger writes to stderr so stdio transport framing stays clean.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func init() {
	serveCmd.Flags().StringVar(&serveTransport, "transport", "stdio", "Transport to use (stdio, http, ws)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address for http/ws transports")
	serveCmd.Flags().StringVar(&serveConfigDir, "config-dir", "", "Directory containing scryfall.yaml (default: working directory)")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Enable debug logging")
	RootCmd.AddCommand(serveCmd)
}
