package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/bioid/internal/infrastructure/config"
	"github.com/ersonp/bioid/internal/infrastructure/sessionstore/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize bioid in the current directory",
		Long:  "Creates a .bioid directory with default configuration and the session database.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("bioid already initialized in %s", cwd)
	}

	if err := config.WriteDefault(cwd); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(config.SessionConfig{Path: cfg.SessionPath(cwd)})
	if err != nil {
		return fmt.Errorf("creating session store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring session schema: %w", err)
	}

	fmt.Printf("Created session database: %s\n", store.Path())
	fmt.Println("bioid initialized successfully!")

	return nil
}
