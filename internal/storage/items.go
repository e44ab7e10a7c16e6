package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vitlib/biblio-migrate/internal/model"
)

const dateLayout = "2006-01-02"

// SaveItems inserts multiple physical-item records in one transaction.
// An empty slice is a no-op.
func (s *SQLiteStorage) SaveItems(ctx context.Context, items []model.Item) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	if err := validateItems(items); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveItemsTx(ctx, tx, items); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveItems inserts physical-item records within the batch transaction.
// An empty slice is a no-op.
func (b *Batch) SaveItems(ctx context.Context, items []model.Item) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	if err := validateItems(items); err != nil {
		return err
	}
	return b.storage.saveItemsTx(ctx, b.tx, items)
}

func (s *SQLiteStorage) saveItemsTx(ctx context.Context, tx *sql.Tx, items []model.Item) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO physical_items (
			biblio_id, barcode, call_number, shelving_location, library_code,
			vendor, bill_number, price, currency,
			bill_date, date_acquired, last_seen_date, last_seen_time,
			is_withdrawn, is_lost, is_damaged, is_not_for_loan
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, item := range items {
		_, err = stmt.ExecContext(ctx,
			item.BiblioID,
			nullString(item.Barcode),
			nullString(item.CallNumber),
			nullString(item.ShelvingLocation),
			nullString(item.LibraryCode),
			nullString(item.Vendor),
			nullString(item.BillNumber),
			nullFloat(item.Price),
			item.Currency,
			nullDate(item.BillDate),
			nullDate(item.DateAcquired),
			nullDate(item.LastSeenDate),
			nullString(item.LastSeenTime),
			item.StatusFlags.Withdrawn,
			item.StatusFlags.Lost,
			item.StatusFlags.Damaged,
			item.StatusFlags.NotForLoan,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item for biblio %d: %w", item.BiblioID, err)
		}
	}

	return nil
}

// GetItemsByBiblio retrieves all physical items attached to one
// bibliographic record.
func (s *SQLiteStorage) GetItemsByBiblio(ctx context.Context, biblioID int64) ([]model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryItems(ctx,
		`WHERE biblio_id = ? ORDER BY item_id`, biblioID)
}

// GetAllItems retrieves every stored physical item ordered by insertion.
func (s *SQLiteStorage) GetAllItems(ctx context.Context) ([]model.Item, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryItems(ctx, `ORDER BY item_id`)
}

func (s *SQLiteStorage) queryItems(ctx context.Context, tail string, args ...any) ([]model.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT biblio_id,
		       COALESCE(barcode, ''), COALESCE(call_number, ''),
		       COALESCE(shelving_location, ''), COALESCE(library_code, ''),
		       COALESCE(vendor, ''), COALESCE(bill_number, ''),
		       price, COALESCE(currency, ''),
		       bill_date, date_acquired, last_seen_date,
		       COALESCE(last_seen_time, ''),
		       is_withdrawn, is_lost, is_damaged, is_not_for_loan
		FROM physical_items `+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.Item
	for rows.Next() {
		var (
			item     model.Item
			price    sql.NullFloat64
			billDate sql.NullString
			acquired sql.NullString
			lastSeen sql.NullString
		)

		err := rows.Scan(
			&item.BiblioID,
			&item.Barcode, &item.CallNumber,
			&item.ShelvingLocation, &item.LibraryCode,
			&item.Vendor, &item.BillNumber,
			&price, &item.Currency,
			&billDate, &acquired, &lastSeen,
			&item.LastSeenTime,
			&item.StatusFlags.Withdrawn, &item.StatusFlags.Lost,
			&item.StatusFlags.Damaged, &item.StatusFlags.NotForLoan,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		if price.Valid {
			item.Price = &price.Float64
		}
		item.BillDate = scanDate(billDate)
		item.DateAcquired = scanDate(acquired)
		item.LastSeenDate = scanDate(lastSeen)

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}
	return items, nil
}

// GetItemCount returns the number of stored physical items.
func (s *SQLiteStorage) GetItemCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM physical_items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func scanDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}
