package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"structhub/internal/config"
	"structhub/internal/store"
	"structhub/internal/store/postgres"
	"structhub/internal/store/sqlite"
)

// loadProject reads structhub.yaml when it exists. Convert and export
// commands run fine without one; catalog commands fail later on the
// missing DSN with a pointer to the config file.
func loadProject() (*config.ProjectConfig, error) {
	if _, err := os.Stat(config.DefaultFile); os.IsNotExist(err) {
		return nil, nil
	}
	return config.LoadProjectConfig(config.DefaultFile)
}

func openStore(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.New(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return postgres.New(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database dsn scheme (want sqlite:// or postgres://)")
	}
}
