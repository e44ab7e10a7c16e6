package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial two-table schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS biblio_master (
					biblio_id INTEGER PRIMARY KEY,
					title TEXT NOT NULL,
					author TEXT,
					edition TEXT,
					isbn TEXT,
					pub_place TEXT,
					pub_publisher TEXT,
					pub_year INTEGER,
					page_count INTEGER,
					access_url TEXT,
					language TEXT,
					dewey_class TEXT,
					item_type TEXT,
					raw_json_dump TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS physical_items (
					item_id INTEGER PRIMARY KEY AUTOINCREMENT,
					biblio_id INTEGER NOT NULL,
					barcode TEXT,
					call_number TEXT,
					shelving_location TEXT,
					library_code TEXT,
					vendor TEXT,
					bill_number TEXT,
					price REAL,
					currency TEXT,
					bill_date DATE,
					date_acquired DATE,
					last_seen_date DATE,
					last_seen_time TEXT,
					is_withdrawn INTEGER DEFAULT 0,
					is_lost INTEGER DEFAULT 0,
					is_damaged INTEGER DEFAULT 0,
					is_not_for_loan INTEGER DEFAULT 0,
					FOREIGN KEY (biblio_id) REFERENCES biblio_master(biblio_id)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add lookup indexes",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE INDEX IF NOT EXISTS idx_physical_items_biblio_id ON physical_items(biblio_id)`,
				`CREATE INDEX IF NOT EXISTS idx_physical_items_barcode ON physical_items(barcode)`,
				`CREATE INDEX IF NOT EXISTS idx_biblio_master_isbn ON biblio_master(isbn)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Add ingest run bookkeeping",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS ingest_runs (
					run_id TEXT PRIMARY KEY,
					source_path TEXT NOT NULL,
					started_at DATETIME NOT NULL,
					finished_at DATETIME,
					records_read INTEGER DEFAULT 0,
					items_written INTEGER DEFAULT 0,
					no_data INTEGER DEFAULT 0,
					malformed INTEGER DEFAULT 0
				)
			`)
			return err
		},
	},
}

// Migrate applies all outstanding schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
