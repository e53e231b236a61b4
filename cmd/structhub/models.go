package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"structhub/internal/store"
)

func modelsCmd() *cobra.Command {
	var name string
	var search string
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models stored in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModels(name, search)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "List every version of one model")
	cmd.Flags().StringVar(&search, "search", "", "Filter by name or project substring")
	return cmd
}

func runModels(name, search string) error {
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

	var records []store.ModelRecord
	switch {
	case strings.TrimSpace(name) != "":
		records, err = db.ListVersions(ctx, name)
	case strings.TrimSpace(search) != "":
		records, err = db.SearchModels(ctx, search)
	default:
		records, err = db.ListModels(ctx)
	}
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "No models found.")
		return nil
	}

	for _, record := range records {
		line := fmt.Sprintf("%s v%d  %d levels  %d elements", record.Name, record.Version, record.Levels, record.Elements)
		if record.SourceApplication != "" {
			line = fmt.Sprintf("%s  [%s]", line, record.SourceApplication)
		}
		fmt.Fprintf(os.Stdout, "%s  %s\n", line, record.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
