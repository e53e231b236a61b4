package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"structhub/internal/etabs"
	"structhub/internal/idmap"
	"structhub/internal/model"
	"structhub/internal/transform"
)

func exportEtabsCmd() *cobra.Command {
	var in string
	var out string
	var target string
	var tf transformFlags
	cmd := &cobra.Command{
		Use:   "etabs",
		Short: "Render the model as an ETABS E2K text document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in) == "" {
				return fmt.Errorf("--in is required")
			}
			return runExportEtabs(in, out, target, &tf)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Normalized model input path")
	cmd.Flags().StringVar(&out, "out", "model.e2k", "E2K output path")
	cmd.Flags().StringVar(&target, "target", "", "Existing E2K document whose stories the export maps onto")
	tf.register(cmd)
	return cmd
}

func runExportEtabs(in, out, target string, tf *transformFlags) error {
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

	// Without a target the document's stories are the model's own
	// levels; with one, the export resolves levels onto the stories the
	// existing document already defines.
	var maps *idmap.Map
	if target != "" {
		stories, err := etabs.ReadStoriesFile(target)
		if err != nil {
			return err
		}
		maps = idmap.New()
		maps.BuildLevelMappings(m.Layout.Levels, etabs.StoryRefs(stories))
		maps.BuildPropertyMappings(m.Properties)
	}

	if err := etabs.WriteFile(out, m, maps); err != nil {
		return err
	}

	summary := m.Summarize()
	fmt.Fprintf(os.Stdout, "Wrote %s\n", out)
	printTransformReport(report)
	fmt.Fprintf(os.Stdout, "  Stories:  %d\n", summary.Levels)
	fmt.Fprintf(os.Stdout, "  Elements: %d\n", summary.TotalElements())
	return nil
}
