package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	var name string
	var ver int
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a model from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			return runDelete(name, ver)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Catalog name")
	cmd.Flags().IntVar(&ver, "version", 0, "Version to delete (default: all versions)")
	return cmd
}

func runDelete(name string, ver int) error {
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

	deleted, err := db.DeleteModel(ctx, name, ver)
	if err != nil {
		return err
	}

	if deleted == 0 {
		fmt.Fprintln(os.Stdout, "Nothing to delete.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Deleted %d version(s) of %s\n", deleted, name)
	return nil
}
