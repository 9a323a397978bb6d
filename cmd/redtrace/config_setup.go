package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"redtrace/internal/config"
)

// loadConfig reads redtrace.toml, the env file and REDTRACE_* variables
// according to the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	root := cmd.Root()
	path, err := root.PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	envFile, err := root.PersistentFlags().GetString("env-file")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get env-file flag: %w", err)
	}
	cfg, err := config.Load(config.LoadOptions{Path: path, EnvFile: envFile})
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
