package model

import "time"

// IngestRun records the outcome of one migration run over a source file.
type IngestRun struct {
	StartedAt    time.Time
	FinishedAt   time.Time
	RunID        string
	SourcePath   string
	RecordsRead  int
	ItemsWritten int
	NoData       int
	Malformed    int
}
