package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"structhub/internal/revit"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Convert a host extraction into the normalized model",
	}
	cmd.AddCommand(importRevitCmd())
	return cmd
}

func importRevitCmd() *cobra.Command {
	var in string
	var out string
	cmd := &cobra.Command{
		Use:   "revit",
		Short: "Convert a raw Revit extraction dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in) == "" {
				return fmt.Errorf("--in is required")
			}
			return runImportRevit(in, out)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Raw extraction dump (JSON, feet)")
	cmd.Flags().StringVar(&out, "out", "model.json", "Normalized model output path")
	return cmd
}

func runImportRevit(in, out string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}

	dump, err := revit.ParseFile(in)
	if err != nil {
		return err
	}

	m, result, err := revit.Convert(dump, revit.Options{DiaphragmName: cfg.Diaphragm()})
	if err != nil {
		return err
	}
	if m.Metadata.Project == "" && cfg != nil {
		m.Metadata.Project = cfg.Project
	}

	if err := m.Save(out); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Wrote %s\n", out)
	fmt.Fprintf(os.Stdout, "  Levels:   %d\n", result.Levels)
	fmt.Fprintf(os.Stdout, "  Grids:    %d\n", result.Grids)
	fmt.Fprintf(os.Stdout, "  Walls:    %d\n", result.Walls)
	fmt.Fprintf(os.Stdout, "  Floors:   %d\n", result.Floors)
	fmt.Fprintf(os.Stdout, "  Columns:  %d\n", result.Columns)
	fmt.Fprintf(os.Stdout, "  Beams:    %d\n", result.Beams)
	fmt.Fprintf(os.Stdout, "  Braces:   %d\n", result.Braces)
	fmt.Fprintf(os.Stdout, "  Footings: %d\n", result.Footings)

	if len(result.Skips) > 0 {
		fmt.Fprintf(os.Stdout, "\nSkipped (%d):\n", len(result.Skips))
		for _, skip := range result.Skips {
			fmt.Fprintf(os.Stdout, "  - %s %d: %s\n", skip.Kind, skip.SourceID, skip.Reason)
		}
	}

	return nil
}
