package main

import (
	"context"
	"fmt"

	"github.com/vitlib/biblio-migrate/internal/config"
	"github.com/vitlib/biblio-migrate/internal/service"
	"github.com/vitlib/biblio-migrate/internal/storage"
)

// initStorage opens the configured database and brings its schema up to
// date.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
