// Package export publishes migrated catalog data in analyst-friendly
// formats: a Parquet item dump and a YAML run report.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/vitlib/biblio-migrate/internal/model"
	"github.com/vitlib/biblio-migrate/internal/service"
)

const dateLayout = "2006-01-02"

// Exporter reads migrated data back out of storage.
type Exporter struct {
	storage service.Storage
}

// NewExporter creates an exporter over the given storage.
func NewExporter(storage service.Storage) (*Exporter, error) {
	if storage == nil {
		return nil, errors.New("storage is required")
	}
	return &Exporter{storage: storage}, nil
}

// itemRow flattens an item for columnar storage. Dates are ISO strings so
// downstream tools need no logical-type support.
type itemRow struct {
	BiblioID         int64    `parquet:"biblio_id"`
	Barcode          string   `parquet:"barcode,optional"`
	CallNumber       string   `parquet:"call_number,optional"`
	ShelvingLocation string   `parquet:"shelving_location,optional"`
	LibraryCode      string   `parquet:"library_code,optional"`
	Vendor           string   `parquet:"vendor,optional"`
	BillNumber       string   `parquet:"bill_number,optional"`
	Currency         string   `parquet:"currency,optional"`
	Price            *float64 `parquet:"price,optional"`
	BillDate         string   `parquet:"bill_date,optional"`
	DateAcquired     string   `parquet:"date_acquired,optional"`
	LastSeenDate     string   `parquet:"last_seen_date,optional"`
	LastSeenTime     string   `parquet:"last_seen_time,optional"`
	IsWithdrawn      bool     `parquet:"is_withdrawn"`
	IsLost           bool     `parquet:"is_lost"`
	IsDamaged        bool     `parquet:"is_damaged"`
	IsNotForLoan     bool     `parquet:"is_not_for_loan"`
}

func toItemRow(item model.Item) itemRow {
	row := itemRow{
		BiblioID:         item.BiblioID,
		Barcode:          item.Barcode,
		CallNumber:       item.CallNumber,
		ShelvingLocation: item.ShelvingLocation,
		LibraryCode:      item.LibraryCode,
		Vendor:           item.Vendor,
		BillNumber:       item.BillNumber,
		Currency:         item.Currency,
		Price:            item.Price,
		LastSeenTime:     item.LastSeenTime,
		IsWithdrawn:      item.StatusFlags.Withdrawn,
		IsLost:           item.StatusFlags.Lost,
		IsDamaged:        item.StatusFlags.Damaged,
		IsNotForLoan:     item.StatusFlags.NotForLoan,
	}
	row.BillDate = formatDate(item.BillDate)
	row.DateAcquired = formatDate(item.DateAcquired)
	row.LastSeenDate = formatDate(item.LastSeenDate)
	return row
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// WriteItemsParquet dumps every migrated item to a Parquet file and returns
// the row count.
func (e *Exporter) WriteItemsParquet(ctx context.Context, path string) (int, error) {
	items, err := e.storage.GetAllItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load items: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[itemRow](file)

	rows := make([]itemRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, toItemRow(item))
	}

	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return 0, fmt.Errorf("failed to write parquet rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	slog.Info("Wrote parquet export", "path", path, "rows", len(rows))
	return len(rows), nil
}
