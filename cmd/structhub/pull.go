package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func pullCmd() *cobra.Command {
	var name string
	var ver int
	var out string
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Retrieve a model version from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			return runPull(name, ver, out)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Catalog name")
	cmd.Flags().IntVar(&ver, "version", 0, "Version to retrieve (default: latest)")
	cmd.Flags().StringVar(&out, "out", "model.json", "Normalized model output path")
	return cmd
}

func runPull(name string, ver int, out string) error {
	ctx := context.Background()

	cfg, err := loadProject()
	if err != nil {
		return err
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	m, record, err := db.GetModel(ctx, name, ver)
	if err != nil {
		return err
	}

	if err := m.Save(out); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Wrote %s (%s version %d)\n", out, record.Name, record.Version)
	return nil
}
