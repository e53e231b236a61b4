package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"structhub/internal/model"
	"structhub/internal/transform"
)

func transformCmd() *cobra.Command {
	var in string
	var out string
	var tf transformFlags
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Apply the export pipeline and write the result back to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in) == "" {
				return fmt.Errorf("--in is required")
			}
			if strings.TrimSpace(out) == "" {
				return fmt.Errorf("--out is required")
			}
			return runTransform(in, out, &tf)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Normalized model input path")
	cmd.Flags().StringVar(&out, "out", "", "Transformed model output path")
	tf.register(cmd)
	return cmd
}

func runTransform(in, out string, tf *transformFlags) error {
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

	if err := m.Save(out); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Wrote %s\n", out)
	printTransformReport(report)
	return nil
}
