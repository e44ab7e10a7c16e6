package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RunReport is the YAML summary written after a migration run.
type RunReport struct {
	RunID        string `yaml:"run_id"`
	SourcePath   string `yaml:"source_path"`
	StartedAt    string `yaml:"started_at"`
	FinishedAt   string `yaml:"finished_at"`
	Elapsed      string `yaml:"elapsed"`
	RecordsRead  int    `yaml:"records_read"`
	ItemsWritten int    `yaml:"items_written"`
	NoData       int    `yaml:"no_data"`
	Malformed    int    `yaml:"malformed"`
	BiblioCount  int    `yaml:"biblio_count"`
	ItemCount    int    `yaml:"item_count"`
}

// WriteRunReport looks up a recorded run, combines it with current table
// counts, and writes the summary to path.
func (e *Exporter) WriteRunReport(ctx context.Context, runID, path string) (*RunReport, error) {
	run, err := e.storage.GetRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	biblioCount, err := e.storage.GetBiblioCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count biblios: %w", err)
	}
	itemCount, err := e.storage.GetItemCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count items: %w", err)
	}

	report := &RunReport{
		RunID:        run.RunID,
		SourcePath:   run.SourcePath,
		StartedAt:    run.StartedAt.Format(time.RFC3339),
		FinishedAt:   run.FinishedAt.Format(time.RFC3339),
		Elapsed:      run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
		RecordsRead:  run.RecordsRead,
		ItemsWritten: run.ItemsWritten,
		NoData:       run.NoData,
		Malformed:    run.Malformed,
		BiblioCount:  biblioCount,
		ItemCount:    itemCount,
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write report file: %w", err)
	}

	slog.Info("Wrote run report", "path", path, "run_id", runID)
	return report, nil
}
