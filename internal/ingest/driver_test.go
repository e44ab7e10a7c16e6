package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitlib/biblio-migrate/internal/biblio"
	"github.com/vitlib/biblio-migrate/internal/common"
	"github.com/vitlib/biblio-migrate/internal/holdings"
	"github.com/vitlib/biblio-migrate/internal/publisher"
	"github.com/vitlib/biblio-migrate/internal/storage"
)

func createTestDriver(t *testing.T, sourcePath string, batchSize int) (*Driver, *storage.SQLiteStorage) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err, "failed to create storage")
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close storage: %v", err)
		}
	})

	driver, err := NewDriver(
		store,
		holdings.NewParser(holdings.DefaultOptions()),
		biblio.NewExtractor(publisher.NewHeuristic()),
		Config{SourcePath: sourcePath, BatchSize: batchSize},
	)
	require.NoError(t, err, "failed to create driver")

	return driver, store
}

func writeSourceFile(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "export.jsonl")
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRunMigratesExport(t *testing.T) {
	source := writeSourceFile(t,
		`{"id": "1", "245": "Operations Research", "100": "Taha, H.A.", "260": "NEW DELHI: PRENTICE HALL, 2007", "942": "BK", "952": "0 0 0 0 250.00 2007-06-15 VIT IIF-R76-C2-A 621.7:744 BHA 5023"}`,
		`{"id": "2", "245": "Missing Holdings", "952": "0"}`,
		`{not valid json`,
		``,
	)
	driver, store := createTestDriver(t, source, 0)

	ctx := context.Background()
	run, err := driver.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, run.RecordsRead)
	assert.Equal(t, 1, run.ItemsWritten)
	assert.Equal(t, 1, run.NoData)
	assert.Equal(t, 1, run.Malformed)
	assert.NotEmpty(t, run.RunID)
	assert.False(t, run.FinishedAt.Before(run.StartedAt))

	biblioCount, err := store.GetBiblioCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, biblioCount, "both decodable records get a parent row")

	itemCount, err := store.GetItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, itemCount)

	items, err := store.GetItemsByBiblio(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].BiblioID)
	assert.Equal(t, "5023", items[0].Barcode)
	assert.Equal(t, "621.7:744 BHA", items[0].CallNumber)

	b, err := store.GetBiblio(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Operations Research", b.Title)
	assert.Equal(t, "NEW DELHI", b.PubPlace)
	assert.Equal(t, 2007, b.PubYear)
}

func TestRunFlushesInBatches(t *testing.T) {
	source := writeSourceFile(t,
		`{"id": "10", "245": "A", "952": "0 0 0 0 VIT 1001"}`,
		`{"id": "11", "245": "B", "952": "0 0 0 0 VIT 1002"}`,
		`{"id": "12", "245": "C", "952": "0 0 0 0 VIT 1003"}`,
		`{"id": "13", "245": "D", "952": "0 0 0 0 VIT 1004"}`,
		`{"id": "14", "245": "E", "952": "0 0 0 0 VIT 1005"}`,
	)
	driver, store := createTestDriver(t, source, 2)

	ctx := context.Background()
	run, err := driver.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5, run.RecordsRead)
	assert.Equal(t, 5, run.ItemsWritten)

	itemCount, err := store.GetItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, itemCount)
}

func TestRunPersistsTally(t *testing.T) {
	source := writeSourceFile(t,
		`{"id": "1", "245": "Only Record", "952": "0 0 0 0 VIT 2001"}`,
	)
	driver, store := createTestDriver(t, source, 0)

	ctx := context.Background()
	run, err := driver.Run(ctx)
	require.NoError(t, err)

	saved, err := store.GetRun(ctx, run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.RecordsRead, saved.RecordsRead)
	assert.Equal(t, run.ItemsWritten, saved.ItemsWritten)
	assert.Equal(t, source, saved.SourcePath)
}

func TestRunMissingSourceFile(t *testing.T) {
	driver, _ := createTestDriver(t, filepath.Join(t.TempDir(), "nope.jsonl"), 0)

	_, err := driver.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open source file")
}

func TestNewDriverValidation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	parser := holdings.NewParser(holdings.DefaultOptions())
	extractor := biblio.NewExtractor(publisher.NewHeuristic())

	_, err = NewDriver(nil, parser, extractor, Config{})
	assert.Error(t, err)

	_, err = NewDriver(store, nil, extractor, Config{})
	assert.Error(t, err)

	_, err = NewDriver(store, parser, nil, Config{})
	assert.Error(t, err)

	d, err := NewDriver(store, parser, extractor, Config{BatchSize: -1})
	require.NoError(t, err)
	assert.Equal(t, DefaultBatchSize, d.cfg.BatchSize)
}

func TestRunAllNoDataBatch(t *testing.T) {
	source := writeSourceFile(t,
		`{"id": "20", "245": "Bare Record"}`,
		`{"id": "21", "245": "Holdings Too Short", "952": "0"}`,
	)
	driver, store := createTestDriver(t, source, 0)

	ctx := context.Background()
	run, err := driver.Run(ctx)
	require.NoError(t, err, "a batch with no classifiable items must still commit")

	assert.Equal(t, 2, run.RecordsRead)
	assert.Equal(t, 2, run.NoData)
	assert.Zero(t, run.ItemsWritten)
	assert.Zero(t, run.Malformed)

	biblioCount, err := store.GetBiblioCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, biblioCount, "parent rows are written even without items")

	itemCount, err := store.GetItemCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, itemCount)
}

func TestDecodeRecordMalformedSentinel(t *testing.T) {
	_, err := decodeRecord([]byte(`{not valid json`))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMalformedRecord)

	rec, err := decodeRecord([]byte(`{"id": "9", "245": "Fine"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(9), rec.BiblioID())
}
