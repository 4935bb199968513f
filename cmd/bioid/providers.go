package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/infrastructure/config"
	"github.com/ersonp/bioid/internal/infrastructure/llm"
)

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List providers and their credential status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				displayProviders(cmd.OutOrStdout(), d.Config, d.Factory)
				return nil
			})
		},
	}
}

func displayProviders(w io.Writer, cfg *config.Config, factory *llm.Factory) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Provider", "Slug", "Model", "Deep Model", "Credential")

	for _, p := range entities.Providers {
		settings := cfg.ProviderSettings(p.Slug())
		deep := settings.DeepModel
		if deep == "" {
			deep = settings.Model
		}

		name := string(p)
		if p.Slug() == cfg.LLM.Provider {
			name += " *"
		}
		t.Row(name, p.Slug(), settings.Model, deep, string(factory.Status(p, "")))
	}

	fmt.Fprintln(w, t.String())
	fmt.Fprintln(w, "* default provider")
}
