// Package service defines the interfaces between the ingestion driver and
// its collaborators.
package service

import (
	"context"

	"github.com/vitlib/biblio-migrate/internal/model"
)

// Storage defines the persistence contract for migrated catalog data.
type Storage interface {
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Batch, error)

	SaveBiblios(ctx context.Context, biblios []model.Biblio) error
	SaveItems(ctx context.Context, items []model.Item) error
	GetBiblio(ctx context.Context, biblioID int64) (*model.Biblio, error)
	GetItemsByBiblio(ctx context.Context, biblioID int64) ([]model.Item, error)
	GetAllItems(ctx context.Context) ([]model.Item, error)
	GetBiblioCount(ctx context.Context) (int, error)
	GetItemCount(ctx context.Context) (int, error)

	SaveRun(ctx context.Context, run *model.IngestRun) error
	GetRun(ctx context.Context, runID string) (*model.IngestRun, error)

	Close() error
}

// Batch is one commit unit covering parent and child writes.
type Batch interface {
	SaveBiblios(ctx context.Context, biblios []model.Biblio) error
	SaveItems(ctx context.Context, items []model.Item) error
	Commit() error
	Rollback() error
}

// HoldingsParser classifies one raw holdings string into a typed item.
type HoldingsParser interface {
	Parse(raw, itemTypeHint string) (*model.Item, error)
}
