package importrun

import (
	"context"
	"time"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// ImportRun is one append-only ledger row describing a single import
// attempt. Rows are never updated after insert.
type ImportRun struct {
	ID           int64
	City         string
	SourceName   string
	SourceFile   string
	RefreshMode  bool
	RowCount     *int
	Status       string
	ErrorMessage *string
	StartedAt    time.Time
	FinishedAt   time.Time
}

type FindParams struct {
	City  string
	Limit int
}

type Repository interface {
	// EnsureSchema provisions the import_runs table and its index when
	// they do not exist yet.
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, run *ImportRun) error
	List(ctx context.Context, params *FindParams) ([]*ImportRun, error)
}
