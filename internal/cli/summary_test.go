package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vitlib/biblio-migrate/internal/model"
)

func TestRenderRunSummary(t *testing.T) {
	started := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	run := &model.IngestRun{
		RunID:        "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		SourcePath:   "/data/export.jsonl",
		StartedAt:    started,
		FinishedAt:   started.Add(2 * time.Second),
		RecordsRead:  120,
		ItemsWritten: 100,
		NoData:       15,
		Malformed:    5,
	}

	out := RenderRunSummary(run)
	assert.Contains(t, out, "Migration complete")
	assert.Contains(t, out, "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.Contains(t, out, "120")
	assert.Contains(t, out, "100")
	assert.Contains(t, out, "2s")
}

func TestRenderItem(t *testing.T) {
	price := 250.00
	acquired := time.Date(2007, time.June, 15, 0, 0, 0, 0, time.UTC)
	item := &model.Item{
		Barcode:      "5023",
		CallNumber:   "621.7:744 BHA",
		LibraryCode:  "VIT",
		Currency:     "INR",
		Price:        &price,
		DateAcquired: &acquired,
		StatusFlags:  model.StatusFlags{Lost: true, Damaged: true},
	}

	out := RenderItem(item)
	assert.Contains(t, out, "5023")
	assert.Contains(t, out, "250.00 INR")
	assert.Contains(t, out, "2007-06-15")
	assert.Contains(t, out, "lost, damaged")
}

func TestRenderItemEmptyFields(t *testing.T) {
	out := RenderItem(&model.Item{Barcode: "9001"})
	assert.Contains(t, out, "9001")
	assert.NotContains(t, out, "Flags")
}
