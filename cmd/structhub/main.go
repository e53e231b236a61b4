package main

import (
	"os"

	"github.com/spf13/cobra"

	"structhub/internal/logging"
)

func main() {
	logging.Init("structhub")

	root := &cobra.Command{
		Use:   "structhub",
		Short: "Move structural building models between Revit, ETABS and RAM",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(initCmd())
	root.AddCommand(importCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(transformCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(inspectCmd())
	root.AddCommand(pushCmd())
	root.AddCommand(pullCmd())
	root.AddCommand(modelsCmd())
	root.AddCommand(deleteCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
