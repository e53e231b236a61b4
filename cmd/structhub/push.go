package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"structhub/internal/model"
)

func pushCmd() *cobra.Command {
	var in string
	var name string
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Store a model version in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in) == "" {
				return fmt.Errorf("--in is required")
			}
			return runPush(in, name)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Normalized model input path")
	cmd.Flags().StringVar(&name, "name", "", "Catalog name (default: the project name)")
	return cmd
}

func runPush(in, name string) error {
	ctx := context.Background()

	cfg, err := loadProject()
	if err != nil {
		return err
	}

	m, err := model.Load(in)
	if err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" && cfg != nil {
		name = cfg.Project
	}
	if name == "" {
		name = m.Metadata.Project
	}
	if name == "" {
		return fmt.Errorf("--name is required when no project is configured")
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	record, err := db.SaveModel(ctx, name, m)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Saved %s version %d (%d levels, %d elements)\n",
		record.Name, record.Version, record.Levels, record.Elements)
	return nil
}
