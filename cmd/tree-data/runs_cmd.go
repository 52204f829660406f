package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/importrun"
	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
	"github.com/drzewo/drzewo/modules/trees/infrastructure/persistence"
	"github.com/drzewo/drzewo/modules/trees/services"
	"github.com/drzewo/drzewo/pkg/configuration"
	"github.com/drzewo/drzewo/pkg/eventbus"
)

type runsOptions struct {
	city  string
	limit int
}

func newRunsCmd() *cobra.Command {
	var opts runsOptions

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent import runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsCmd(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.city, "city", "", "Only show runs for one city")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "Maximum number of runs to list")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if city := strings.TrimSpace(opts.city); city != "" {
			if _, err := tree.ParseCity(city); err != nil {
				return withCode(exitUsage, err)
			}
		}
		if opts.limit < 1 {
			return withCode(exitUsage, fmt.Errorf("--limit must be positive"))
		}
		return nil
	}

	return cmd
}

type runLine struct {
	ID           int64   `json:"id"`
	City         string  `json:"city"`
	SourceName   string  `json:"source_name"`
	SourceFile   string  `json:"source_file"`
	RefreshMode  bool    `json:"refresh_mode"`
	RowCount     *int    `json:"row_count"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message,omitempty"`
	StartedAt    string  `json:"started_at"`
	FinishedAt   string  `json:"finished_at"`
}

func runRunsCmd(ctx context.Context, opts runsOptions) error {
	conf := configuration.Use()
	defer conf.Unload()

	pool, err := connectDB(ctx)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()

	service := services.NewImportService(
		pool,
		persistence.NewTreeRepository(),
		persistence.NewImportRunRepository(),
		eventbus.NewEventPublisher(conf.Logger()),
		conf.Logger(),
	)

	runs, err := service.Runs(ctx, &importrun.FindParams{
		City:  strings.TrimSpace(opts.city),
		Limit: opts.limit,
	})
	if err != nil {
		return withCode(exitDB, fmt.Errorf("failed to list import runs: %w", err))
	}

	for _, run := range runs {
		line := runLine{
			ID:           run.ID,
			City:         run.City,
			SourceName:   run.SourceName,
			SourceFile:   run.SourceFile,
			RefreshMode:  run.RefreshMode,
			RowCount:     run.RowCount,
			Status:       run.Status,
			ErrorMessage: run.ErrorMessage,
			StartedAt:    run.StartedAt.UTC().Format(time.RFC3339),
			FinishedAt:   run.FinishedAt.UTC().Format(time.RFC3339),
		}
		if err := writeJSONLine(line); err != nil {
			return err
		}
	}
	return nil
}
