package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/choirscrape/internal/config"

	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		if path, err := config.ConfigPathByLabel(config.DefaultLabel); err == nil {
			fmt.Println("Configuration already exists at:")
			fmt.Println("  ", path)
			fmt.Println("Use `choirscrape config reset` to recreate it.")
			return nil
		}

		fmt.Println("Configuration files are stored in:")
		fmt.Println("  ", config.ConfigsDir())
		fmt.Println()

		fmt.Println("Default configuration:")
		config.DefaultConfig().Print()
		fmt.Println()

		if !confirm("Create the Default config") {
			fmt.Println("Aborted.")
			return nil
		}

		path, err := config.CreateConfig(config.DefaultLabel)
		if err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		if err := config.SwitchConfig(config.DefaultLabel); err != nil {
			return fmt.Errorf("failed to set active config: %w", err)
		}

		fmt.Println("Config created at:", path)
		fmt.Println("This config is now active (label: Default).")

		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

func activeLabel() (string, error) {
	label, err := config.CurrentLabel()
	if errors.Is(err, config.ErrNoConfig) {
		return "", fmt.Errorf("%w; run `choirscrape config init` first", err)
	}

	return label, err
}
