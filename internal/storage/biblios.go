package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vitlib/biblio-migrate/internal/common"
	"github.com/vitlib/biblio-migrate/internal/model"
)

// SaveBiblios upserts multiple bibliographic records in one transaction.
func (s *SQLiteStorage) SaveBiblios(ctx context.Context, biblios []model.Biblio) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBiblios(biblios); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveBibliosTx(ctx, tx, biblios); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveBiblios upserts bibliographic records within the batch transaction.
func (b *Batch) SaveBiblios(ctx context.Context, biblios []model.Biblio) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBiblios(biblios); err != nil {
		return err
	}
	return b.storage.saveBibliosTx(ctx, b.tx, biblios)
}

func (s *SQLiteStorage) saveBibliosTx(ctx context.Context, tx *sql.Tx, biblios []model.Biblio) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO biblio_master (
			biblio_id, title, author, edition, isbn,
			pub_place, pub_publisher, pub_year, page_count,
			access_url, language, dewey_class, item_type, raw_json_dump
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, bib := range biblios {
		_, err = stmt.ExecContext(ctx,
			bib.BiblioID,
			bib.Title,
			nullString(bib.Author),
			nullString(bib.Edition),
			nullString(bib.ISBN),
			nullString(bib.PubPlace),
			nullString(bib.Publisher),
			nullInt(bib.PubYear),
			nullInt(bib.PageCount),
			nullString(bib.AccessURL),
			nullString(bib.Language),
			nullString(bib.DeweyClass),
			nullString(bib.ItemType),
			nullString(bib.RawJSON),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert biblio %d: %w", bib.BiblioID, err)
		}
	}

	return nil
}

// GetBiblio retrieves one bibliographic record by ID.
func (s *SQLiteStorage) GetBiblio(ctx context.Context, biblioID int64) (*model.Biblio, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getBiblioTx(ctx, s.db, biblioID)
}

func (s *SQLiteStorage) getBiblioTx(ctx context.Context, q queryable, biblioID int64) (*model.Biblio, error) {
	row := q.QueryRowContext(ctx, `
		SELECT biblio_id, title,
		       COALESCE(author, ''), COALESCE(edition, ''), COALESCE(isbn, ''),
		       COALESCE(pub_place, ''), COALESCE(pub_publisher, ''),
		       COALESCE(pub_year, 0), COALESCE(page_count, 0),
		       COALESCE(access_url, ''), COALESCE(language, ''),
		       COALESCE(dewey_class, ''), COALESCE(item_type, ''),
		       COALESCE(raw_json_dump, '')
		FROM biblio_master WHERE biblio_id = ?
	`, biblioID)

	var b model.Biblio
	err := row.Scan(
		&b.BiblioID, &b.Title, &b.Author, &b.Edition, &b.ISBN,
		&b.PubPlace, &b.Publisher, &b.PubYear, &b.PageCount,
		&b.AccessURL, &b.Language, &b.DeweyClass, &b.ItemType, &b.RawJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("biblio %d: %w", biblioID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get biblio %d: %w", biblioID, err)
	}
	return &b, nil
}

// GetBiblioCount returns the number of stored bibliographic records.
func (s *SQLiteStorage) GetBiblioCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM biblio_master").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count biblios: %w", err)
	}
	return count, nil
}

// nullString maps "" to NULL so absent fields stay distinguishable from
// empty ones in the schema.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}
