package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/importrun"
	"github.com/drzewo/drzewo/modules/trees/infrastructure/persistence/models"
	"github.com/drzewo/drzewo/pkg/composables"
	"github.com/drzewo/drzewo/pkg/repo"
)

const importRunsTableDDL = `
CREATE TABLE IF NOT EXISTS import_runs (
	id BIGSERIAL PRIMARY KEY,
	city TEXT NOT NULL,
	source_name TEXT NOT NULL,
	source_file TEXT NOT NULL,
	refresh_mode BOOLEAN NOT NULL DEFAULT FALSE,
	row_count INTEGER,
	status TEXT NOT NULL,
	error_message TEXT,
	started_at TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
)`

const importRunsIndexDDL = `
CREATE INDEX IF NOT EXISTS idx_import_runs_city_finished_at
ON import_runs (city, finished_at DESC)`

type ImportRunRepository struct{}

func NewImportRunRepository() importrun.Repository {
	return &ImportRunRepository{}
}

func (r *ImportRunRepository) EnsureSchema(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	var regclass *string
	if err := tx.QueryRow(ctx, "SELECT to_regclass('public.import_runs')").Scan(&regclass); err != nil {
		return fmt.Errorf("failed to probe import_runs table: %w", err)
	}
	if regclass != nil {
		return nil
	}

	if _, err := tx.Exec(ctx, importRunsTableDDL); err != nil {
		return fmt.Errorf("failed to create import_runs table: %w", err)
	}
	if _, err := tx.Exec(ctx, importRunsIndexDDL); err != nil {
		return fmt.Errorf("failed to create import_runs index: %w", err)
	}
	return nil
}

func (r *ImportRunRepository) Create(ctx context.Context, run *importrun.ImportRun) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	dbRow := toDBImportRun(run)
	return tx.QueryRow(
		ctx,
		`INSERT INTO import_runs (
			city, source_name, source_file, refresh_mode, row_count, status,
			error_message, started_at, finished_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		dbRow.City,
		dbRow.SourceName,
		dbRow.SourceFile,
		dbRow.RefreshMode,
		dbRow.RowCount,
		dbRow.Status,
		dbRow.ErrorMessage,
		dbRow.StartedAt,
		dbRow.FinishedAt,
	).Scan(&run.ID)
}

func (r *ImportRunRepository) List(ctx context.Context, params *importrun.FindParams) ([]*importrun.ImportRun, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where := []string{"1 = 1"}
	args := []interface{}{}
	if params != nil {
		if city := strings.TrimSpace(params.City); city != "" {
			where = append(where, fmt.Sprintf("city = $%d", len(args)+1))
			args = append(args, city)
		}
	}

	query := `
		SELECT id, city, source_name, source_file, refresh_mode, row_count,
			status, error_message, started_at, finished_at
		FROM import_runs
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY finished_at DESC
	`
	if params != nil {
		query += " " + repo.FormatLimitOffset(params.Limit, 0)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*importrun.ImportRun
	for rows.Next() {
		var row models.ImportRun
		if err := rows.Scan(
			&row.ID,
			&row.City,
			&row.SourceName,
			&row.SourceFile,
			&row.RefreshMode,
			&row.RowCount,
			&row.Status,
			&row.ErrorMessage,
			&row.StartedAt,
			&row.FinishedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, toDomainImportRun(&row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
