package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"structhub/internal/config"
	"structhub/internal/transform"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Transform the model and render it for a host application",
	}
	cmd.AddCommand(exportEtabsCmd())
	cmd.AddCommand(exportRAMCmd())
	return cmd
}

// transformFlags are shared by every command that runs the pipeline.
type transformFlags struct {
	baseLevel  string
	levels     string
	rotation   float64
	floorTypes string
}

func (f *transformFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.baseLevel, "base-level", "", "Level renamed to Base at elevation zero")
	cmd.Flags().StringVar(&f.levels, "levels", "", "Comma-separated level names to keep (default all)")
	cmd.Flags().Float64Var(&f.rotation, "rotation", 0, "Plan rotation in degrees, counterclockwise")
	cmd.Flags().StringVar(&f.floorTypes, "floor-types", "", "Custom floor type file (YAML)")
}

func (f *transformFlags) options(cfg *config.ProjectConfig) (transform.Options, error) {
	opts := transform.Options{
		BaseLevel:       strings.TrimSpace(f.baseLevel),
		RotationDegrees: f.rotation,
	}
	if opts.BaseLevel == "" {
		opts.BaseLevel = cfg.BaseLevel()
	}
	for _, name := range strings.Split(f.levels, ",") {
		if name = strings.TrimSpace(name); name != "" {
			opts.SelectedLevels = append(opts.SelectedLevels, name)
		}
	}
	if f.floorTypes != "" {
		types, err := config.LoadFloorTypes(f.floorTypes)
		if err != nil {
			return transform.Options{}, err
		}
		opts.FloorTypes = types
	}
	return opts, nil
}

func printTransformReport(report *transform.Report) {
	if report.BaseApplied {
		fmt.Fprintf(os.Stdout, "  Rebased on %s (shift %s in)\n", report.BaseLevelID, fmtShift(report.BaseShift))
	}
	if report.FloorTypesSynthesized > 0 {
		fmt.Fprintf(os.Stdout, "  Floor types synthesized: %d\n", report.FloorTypesSynthesized)
	}
	if report.FloorTypesMatchedByName > 0 || report.FloorTypesPairedByOrder > 0 {
		fmt.Fprintf(os.Stdout, "  Floor types matched: %d by name, %d by elevation order\n",
			report.FloorTypesMatchedByName, report.FloorTypesPairedByOrder)
	}
	if report.FilterApplied {
		fmt.Fprintf(os.Stdout, "  Levels dropped:   %d\n", len(report.LevelsDropped))
		fmt.Fprintf(os.Stdout, "  Elements dropped: %d\n", len(report.Drops))
		fmt.Fprintf(os.Stdout, "  Properties pruned: %d\n", len(report.PropertiesPruned))
	}
	if report.RotationApplied {
		fmt.Fprintf(os.Stdout, "  Rotated about (%s, %s)\n",
			fmtShift(report.RotationCenter.X), fmtShift(report.RotationCenter.Y))
	}
}

func fmtShift(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
