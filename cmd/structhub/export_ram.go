package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"structhub/internal/model"
	"structhub/internal/ram"
	"structhub/internal/transform"
)

func exportRAMCmd() *cobra.Command {
	var in string
	var dryRun bool
	var tf transformFlags
	cmd := &cobra.Command{
		Use:   "ram",
		Short: "Populate a RAM structural model",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in) == "" {
				return fmt.Errorf("--in is required")
			}
			return runExportRAM(in, dryRun, &tf)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Normalized model input path")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build against an in-memory model instead of a RAM session")
	tf.register(cmd)
	return cmd
}

func runExportRAM(in string, dryRun bool, tf *transformFlags) error {
	if !dryRun {
		// The COM session bridge lives in the host plugin, not in this
		// binary; the CLI can only rehearse the build.
		return fmt.Errorf("no RAM session available, re-run with --dry-run")
	}

	cfg, err := loadProject()
	if err != nil {
		return err
	}

	m, err := model.Load(in)
	if err != nil {
		return err
	}

	opts, err := tf.options(cfg)
	if err != nil {
		return err
	}
	report := transform.Apply(m, opts)

	builder := ram.NewBuilder(ram.NewInMemory())
	result, err := builder.Build(m)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Dry run complete.")
	printTransformReport(report)
	fmt.Fprintf(os.Stdout, "  Floor types: %d created, %d reused\n", result.FloorTypesCreated, result.FloorTypesReused)
	fmt.Fprintf(os.Stdout, "  Stories:     %d created, %d reused\n", result.StoriesCreated, result.StoriesReused)
	fmt.Fprintf(os.Stdout, "  Columns:     %d\n", result.Columns)
	fmt.Fprintf(os.Stdout, "  Beams:       %d\n", result.Beams)
	fmt.Fprintf(os.Stdout, "  Walls:       %d\n", result.Walls)
	if result.Skipped > 0 {
		fmt.Fprintf(os.Stdout, "  Skipped:     %d\n", result.Skipped)
	}
	return nil
}
