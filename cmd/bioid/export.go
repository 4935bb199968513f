package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/bioid/internal/application/handlers"
	"github.com/ersonp/bioid/internal/infrastructure/exporter"
)

type exportFlags struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export session results to file",
		Long:  "Exports the results of the saved session to CSV, JSON, or markdown format.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", exporter.FormatCSV, "Output format (csv, json, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !exporter.IsValidFormat(flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, exporter.Formats)
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		return exportResults(cmd, d.SessionHandler, flags)
	})
}

func exportResults(cmd *cobra.Command, h *handlers.SessionHandler, flags exportFlags) (err error) {
	var w io.Writer
	var f *os.File

	if flags.output != "" {
		f, err = os.OpenFile(flags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	} else {
		w = cmd.OutOrStdout()
	}

	n, err := h.Export(cmd.Context(), w, flags.format)
	if err != nil {
		return err
	}

	if flags.output != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d results to %s\n", n, flags.output)
	}

	return nil
}
