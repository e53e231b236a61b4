package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"structhub/internal/model"
)

func inspectCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a model's levels and element counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in) == "" {
				return fmt.Errorf("--in is required")
			}
			return runInspect(in)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Normalized model input path")
	return cmd
}

func runInspect(in string) error {
	m, err := model.Load(in)
	if err != nil {
		return err
	}

	if m.Metadata.Project != "" {
		fmt.Fprintf(os.Stdout, "Project: %s\n", m.Metadata.Project)
	}
	if m.Metadata.SourceApplication != "" {
		source := m.Metadata.SourceApplication
		if m.Metadata.SourceVersion != "" {
			source = fmt.Sprintf("%s %s", source, m.Metadata.SourceVersion)
		}
		fmt.Fprintf(os.Stdout, "Source:  %s\n", source)
	}

	if len(m.Layout.Levels) == 0 {
		fmt.Fprintln(os.Stdout, "No levels.")
	} else {
		fmt.Fprintf(os.Stdout, "Levels (%d):\n", len(m.Layout.Levels))
		for _, level := range m.Layout.Levels {
			line := fmt.Sprintf("  %-16s %10s in", level.Name, fmtShift(level.Elevation))
			if ft := m.FloorTypeByID(level.FloorTypeID); ft != nil {
				line = fmt.Sprintf("%s  [%s]", line, ft.Name)
			}
			fmt.Fprintln(os.Stdout, line)
		}
	}

	s := m.Summarize()
	fmt.Fprintf(os.Stdout, "Properties: %d materials, %d frame, %d wall, %d floor, %d diaphragms\n",
		s.Materials, s.FrameProperties, s.WallProperties, s.FloorProperties, s.Diaphragms)
	fmt.Fprintf(os.Stdout, "Elements (%d): %d walls, %d floors, %d columns, %d beams, %d braces, %d footings\n",
		s.TotalElements(), s.Walls, s.Floors, s.Columns, s.Beams, s.Braces, s.Footings)
	return nil
}
