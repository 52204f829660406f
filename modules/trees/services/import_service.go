package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/importrun"
	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
	"github.com/drzewo/drzewo/modules/trees/infrastructure/persistence"
	"github.com/drzewo/drzewo/modules/trees/normalize"
	"github.com/drzewo/drzewo/pkg/composables"
	"github.com/drzewo/drzewo/pkg/eventbus"
)

type ImportOptions struct {
	City             tree.City
	File             string
	Refresh          bool
	Enrich           bool
	BatchSize        int
	ProgressInterval int
}

// ImportSummary describes one finished run for CLI output.
type ImportSummary struct {
	RunID      string    `json:"run_id"`
	City       string    `json:"city"`
	SourceName string    `json:"source_name"`
	SourceFile string    `json:"source_file"`
	Status     string    `json:"status"`
	Refresh    bool      `json:"refresh"`
	Deleted    int64     `json:"deleted,omitempty"`
	Processed  int       `json:"processed"`
	Accepted   int       `json:"accepted"`
	Skipped    int       `json:"skipped"`
	Batches    int       `json:"batches"`
	RowCount   int64     `json:"row_count"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// ImportService runs a whole import as one transaction: optional purge,
// batched load, optional enrichment, row count and the success ledger row
// all commit or roll back together.
type ImportService struct {
	db        composables.Pool
	trees     *persistence.TreeRepository
	runs      importrun.Repository
	publisher eventbus.EventBus
	logger    *logrus.Logger
}

func NewImportService(
	db composables.Pool,
	trees *persistence.TreeRepository,
	runs importrun.Repository,
	publisher eventbus.EventBus,
	logger *logrus.Logger,
) *ImportService {
	return &ImportService{
		db:        db,
		trees:     trees,
		runs:      runs,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *ImportService) Import(ctx context.Context, opts ImportOptions) (*ImportSummary, error) {
	src := normalize.ForCity(opts.City)
	sourceFile, err := filepath.Abs(opts.File)
	if err != nil {
		sourceFile = opts.File
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}

	summary := &ImportSummary{
		RunID:      uuid.NewString(),
		City:       string(opts.City),
		SourceName: src.Config.SourceName,
		SourceFile: sourceFile,
		Refresh:    opts.Refresh,
		StartedAt:  time.Now().UTC(),
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	txCtx := composables.WithTx(ctx, tx)

	if err := s.runImport(txCtx, src, opts, summary); err != nil {
		if rErr := tx.Rollback(ctx); rErr != nil {
			s.logger.WithError(rErr).Error("rollback failed after import error")
		}
		s.recordFailure(ctx, summary, err)
		summary.Status = importrun.StatusFailed
		summary.FinishedAt = time.Now().UTC()
		s.publisher.Publish(tree.ImportCompleted{
			RunID:  summary.RunID,
			City:   opts.City,
			Status: summary.Status,
		})
		return summary, err
	}

	if err := tx.Commit(ctx); err != nil {
		s.recordFailure(ctx, summary, err)
		summary.Status = importrun.StatusFailed
		summary.FinishedAt = time.Now().UTC()
		s.publisher.Publish(tree.ImportCompleted{
			RunID:  summary.RunID,
			City:   opts.City,
			Status: summary.Status,
		})
		return summary, fmt.Errorf("failed to commit import: %w", err)
	}

	summary.Status = importrun.StatusCompleted
	summary.FinishedAt = time.Now().UTC()
	s.publisher.Publish(tree.ImportCompleted{
		RunID:    summary.RunID,
		City:     opts.City,
		Status:   summary.Status,
		RowCount: int(summary.RowCount),
	})

	// Planner statistics refresh happens after the commit; a failure here
	// does not change the outcome of the import.
	if err := s.analyze(ctx); err != nil {
		s.logger.WithError(err).Warn("ANALYZE failed (data import still committed)")
	}

	return summary, nil
}

func (s *ImportService) runImport(ctx context.Context, src normalize.Source, opts ImportOptions, summary *ImportSummary) error {
	if err := s.runs.EnsureSchema(ctx); err != nil {
		return err
	}

	if opts.Refresh {
		s.logger.Infof("refreshing existing rows for %s", src.Config.SourceName)
		deleted, err := s.trees.DeleteBySource(ctx, src.Config.SourceName)
		if err != nil {
			return err
		}
		summary.Deleted = deleted
	}

	writer := persistence.NewBatchWriter(opts.BatchSize)
	progressInterval := opts.ProgressInterval
	if progressInterval < 1 {
		progressInterval = 10000
	}

	sink := func(result normalize.Result) error {
		summary.Processed++
		if err := result.Err(); err != nil {
			return err
		}
		if reason, ok := result.SkipReason(); ok {
			summary.Skipped++
			s.logger.Debugf("skipping %s record %d: %s", summary.City, summary.Processed, reason)
		} else if record, ok := result.Record(); ok {
			if err := writer.Add(ctx, record); err != nil {
				return err
			}
			summary.Accepted++
		}
		if summary.Processed%progressInterval == 0 {
			s.logger.Infof("processed %d %s records", summary.Processed, summary.City)
			s.publisher.Publish(tree.ImportProgress{
				RunID:     summary.RunID,
				City:      opts.City,
				Processed: summary.Processed,
			})
		}
		return nil
	}

	var err error
	switch src.Config.Format {
	case tree.FormatGeoJSON:
		err = eachFeature(opts.File, src.Feature, sink)
	case tree.FormatCSV:
		err = eachRow(opts.File, src.Row, sink)
	default:
		err = fmt.Errorf("unsupported dataset format %q", src.Config.Format)
	}
	if err != nil {
		return err
	}
	if err := writer.Flush(ctx); err != nil {
		return err
	}
	summary.Batches = writer.Flushes()

	if opts.Enrich {
		s.logger.Infof("applying enrichments for %s", summary.City)
		if err := s.enrich(ctx, src.Config.Enrichments); err != nil {
			return err
		}
	}

	rowCount, err := s.trees.CountBySource(ctx, src.Config.SourceName)
	if err != nil {
		return err
	}
	summary.RowCount = rowCount

	count := int(rowCount)
	return s.runs.Create(ctx, &importrun.ImportRun{
		City:        summary.City,
		SourceName:  summary.SourceName,
		SourceFile:  summary.SourceFile,
		RefreshMode: summary.Refresh,
		RowCount:    &count,
		Status:      importrun.StatusCompleted,
		StartedAt:   summary.StartedAt,
		FinishedAt:  time.Now().UTC(),
	})
}

func (s *ImportService) enrich(ctx context.Context, tags []tree.EnrichmentTag) error {
	for _, tag := range tags {
		switch tag {
		case tree.EnrichWikipediaLinks:
			if err := s.trees.LinkWikipedia(ctx); err != nil {
				return err
			}
		case tree.EnrichHumanNames:
			if err := s.trees.ApplyReadableNames(ctx); err != nil {
				return err
			}
		default:
			s.logger.Warnf("no enrichment handler for %q, skipping", string(tag))
		}
	}
	return nil
}

// recordFailure writes the failure ledger row through its own transaction
// after the import transaction has rolled back.
func (s *ImportService) recordFailure(ctx context.Context, summary *ImportSummary, cause error) {
	ctx = context.WithoutCancel(ctx)
	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to open failure ledger transaction")
		return
	}
	txCtx := composables.WithTx(ctx, tx)

	message := cause.Error()
	run := &importrun.ImportRun{
		City:         summary.City,
		SourceName:   summary.SourceName,
		SourceFile:   summary.SourceFile,
		RefreshMode:  summary.Refresh,
		Status:       importrun.StatusFailed,
		ErrorMessage: &message,
		StartedAt:    summary.StartedAt,
		FinishedAt:   time.Now().UTC(),
	}

	if err := s.runs.EnsureSchema(txCtx); err != nil {
		s.logger.WithError(err).Error("failed to ensure import_runs schema for failure entry")
		_ = tx.Rollback(ctx)
		return
	}
	if err := s.runs.Create(txCtx, run); err != nil {
		s.logger.WithError(err).Error("failed to write import_runs failure entry")
		_ = tx.Rollback(ctx)
		return
	}
	if err := tx.Commit(ctx); err != nil {
		s.logger.WithError(err).Error("failed to commit import_runs failure entry")
	}
}

func (s *ImportService) analyze(ctx context.Context) error {
	return composables.InTx(composables.WithPool(ctx, s.db), func(txCtx context.Context) error {
		return s.trees.Analyze(txCtx)
	})
}

// Runs lists recent ledger entries through a read-only transaction.
func (s *ImportService) Runs(ctx context.Context, params *importrun.FindParams) ([]*importrun.ImportRun, error) {
	var runs []*importrun.ImportRun
	err := composables.InTx(composables.WithPool(ctx, s.db), func(txCtx context.Context) error {
		var err error
		runs, err = s.runs.List(txCtx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return runs, nil
}
