// Package storage provides the SQLite persistence layer for the migration.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vitlib/biblio-migrate/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidBiblio = errors.New("invalid biblio record")
	ErrInvalidItem   = errors.New("invalid item record")
	ErrInvalidRun    = errors.New("invalid ingest run")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateBiblios validates a slice of bibliographic records.
func validateBiblios(biblios []model.Biblio) error {
	if biblios == nil {
		return fmt.Errorf("%w: biblios", ErrNilParameter)
	}
	if len(biblios) == 0 {
		return fmt.Errorf("%w: biblios", ErrEmptySlice)
	}
	for i := range biblios {
		if biblios[i].BiblioID == 0 {
			return fmt.Errorf("biblio at index %d: %w: missing biblio ID", i, ErrInvalidBiblio)
		}
	}
	return nil
}

// validateItems validates the elements of a physical-item slice. An empty
// or nil slice is valid; a batched driver legitimately flushes commits in
// which no record yielded an item.
func validateItems(items []model.Item) error {
	for i := range items {
		if items[i].BiblioID == 0 {
			return fmt.Errorf("item at index %d: %w: missing biblio ID", i, ErrInvalidItem)
		}
	}
	return nil
}
