package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scrytools/scryfall-mcp/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage server configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a scryfall.yaml with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		if existing, err := config.Load(dir); err != nil {
			return err
		} else if existing != nil {
			return fmt.Errorf("scryfall.yaml already exists in %s", dir)
		}
		cfg := &config.Config{
			MinIntervalMs:    100,
			MaxRetries:       3,
			InitialBackoffMs: 1000,
		}
		if err := config.Save(dir, cfg); err != nil {
			return err
		}
		cmd.Println("wrote scryfall.yaml")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	RootCmd.AddCommand(configCmd)
}
