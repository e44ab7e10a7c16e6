// Package ingest drives a full migration run: it streams the legacy JSONL
// export, classifies each holdings string, and writes parent and child rows
// in batched transactions.
package ingest

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/schollz/progressbar/v3"

	"github.com/vitlib/biblio-migrate/internal/biblio"
	"github.com/vitlib/biblio-migrate/internal/common"
	"github.com/vitlib/biblio-migrate/internal/model"
	"github.com/vitlib/biblio-migrate/internal/service"
)

// DefaultBatchSize is the number of source records committed per
// transaction when the caller does not override it.
const DefaultBatchSize = 5000

// Large catalog exports occasionally carry multi-megabyte lines when the
// raw MARC blob is embedded.
const maxLineBytes = 10 * 1024 * 1024

// Config controls one migration run.
type Config struct {
	SourcePath   string
	BatchSize    int
	ShowProgress bool
}

// Driver streams a JSONL export into storage.
type Driver struct {
	storage   service.Storage
	parser    service.HoldingsParser
	extractor *biblio.Extractor
	entropy   *ulid.MonotonicEntropy
	cfg       Config
}

// NewDriver creates a migration driver. BatchSize falls back to
// DefaultBatchSize when zero or negative.
func NewDriver(storage service.Storage, parser service.HoldingsParser, extractor *biblio.Extractor, cfg Config) (*Driver, error) {
	if storage == nil {
		return nil, errors.New("storage is required")
	}
	if parser == nil {
		return nil, errors.New("holdings parser is required")
	}
	if extractor == nil {
		return nil, errors.New("biblio extractor is required")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Driver{
		storage:   storage,
		parser:    parser,
		extractor: extractor,
		entropy:   ulid.Monotonic(rand.Reader, 0),
		cfg:       cfg,
	}, nil
}

// Run executes the migration and returns its tally. Malformed lines and
// empty holdings never abort the run; they are counted and skipped.
func (d *Driver) Run(ctx context.Context) (*model.IngestRun, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	run := &model.IngestRun{
		RunID:      ulid.MustNew(ulid.Now(), d.entropy).String(),
		SourcePath: d.cfg.SourcePath,
		StartedAt:  time.Now().UTC(),
	}

	file, err := os.Open(d.cfg.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer file.Close()

	slog.Info("Starting migration run",
		"run_id", run.RunID,
		"source", d.cfg.SourcePath,
		"batch_size", d.cfg.BatchSize)

	var bar *progressbar.ProgressBar
	if d.cfg.ShowProgress {
		bar = newRunProgressBar()
	}

	scanner := bufio.NewScanner(file)
	buf := make([]byte, maxLineBytes)
	scanner.Buffer(buf, maxLineBytes)

	var (
		biblios []model.Biblio
		items   []model.Item
	)

	flush := func() error {
		if len(biblios) == 0 && len(items) == 0 {
			return nil
		}
		batch, err := d.storage.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin batch: %w", err)
		}
		if err := batch.SaveBiblios(ctx, biblios); err != nil {
			_ = batch.Rollback()
			return fmt.Errorf("failed to save biblio batch: %w", err)
		}
		if err := batch.SaveItems(ctx, items); err != nil {
			_ = batch.Rollback()
			return fmt.Errorf("failed to save item batch: %w", err)
		}
		if err := batch.Commit(); err != nil {
			return fmt.Errorf("failed to commit batch: %w", err)
		}
		run.ItemsWritten += len(items)
		biblios = biblios[:0]
		items = items[:0]
		return nil
	}

	lineNum := 0
	for scanner.Scan() {
		lineNum++

		if lineNum%d.cfg.BatchSize == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		run.RecordsRead++

		rec, err := decodeRecord(line)
		if err != nil {
			run.Malformed++
			common.LogError(err, "Skipping malformed source line", common.Fields{"line": lineNum})
			continue
		}

		b := d.extractor.Extract(&rec, string(line))
		biblios = append(biblios, b)

		item, err := d.parser.Parse(rec.Holdings, b.ItemType)
		if err != nil {
			// The classifier's only failure mode is absent holdings data.
			run.NoData++
		} else {
			item.BiblioID = b.BiblioID
			items = append(items, *item)
		}

		if bar != nil {
			_ = bar.Add(1)
		}

		if len(biblios) >= d.cfg.BatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading source file: %w", err)
	}

	if err := flush(); err != nil {
		return nil, err
	}

	run.FinishedAt = time.Now().UTC()
	if err := d.storage.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}

	common.LogInfo("Migration run complete", common.Fields{
		"run_id":        run.RunID,
		"records_read":  run.RecordsRead,
		"items_written": run.ItemsWritten,
		"no_data":       run.NoData,
		"malformed":     run.Malformed,
		"elapsed":       run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
	})

	return run, nil
}

// decodeRecord unmarshals one source line, tagging decode failures with
// the malformed-record sentinel so callers and log lines can branch on it.
func decodeRecord(line []byte) (model.SourceRecord, error) {
	var rec model.SourceRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return rec, fmt.Errorf("%w: %v", common.ErrMalformedRecord, err)
	}
	return rec, nil
}

func newRunProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("[cyan][bold]Migrating records...[reset]"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}
