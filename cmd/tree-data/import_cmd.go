package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
	"github.com/drzewo/drzewo/modules/trees/infrastructure/persistence"
	"github.com/drzewo/drzewo/modules/trees/services"
	"github.com/drzewo/drzewo/pkg/configuration"
	"github.com/drzewo/drzewo/pkg/eventbus"
)

type importOptions struct {
	city      tree.City
	file      string
	enrich    bool
	refresh   bool
	batchSize int
}

func newImportCmd() *cobra.Command {
	var opts importOptions
	var cityArg string

	cmd := &cobra.Command{
		Use:   "import <city>",
		Short: "Import one city dataset into street_trees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return runImportCmd(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Path to the data file (required)")
	cmd.Flags().BoolVar(&opts.enrich, "enrich", false, "Apply data enrichments after the load")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "Delete existing rows for this city source before loading")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", 0, "Rows per batched INSERT (default from configuration)")
	_ = cmd.MarkFlagRequired("file")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cityArg = strings.TrimSpace(args[0])
		city, err := tree.ParseCity(cityArg)
		if err != nil {
			return withCode(exitUsage, fmt.Errorf("%w (choose one of: %s)", err, cityList()))
		}
		opts.city = city
		return nil
	}

	return cmd
}

func cityList() string {
	cities := tree.Cities()
	names := make([]string, len(cities))
	for i, c := range cities {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func runImportCmd(ctx context.Context, opts importOptions) error {
	if _, err := os.Stat(opts.file); err != nil {
		return withCode(exitValidation, fmt.Errorf("cannot read --file: %w", err))
	}

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	batchSize := opts.batchSize
	if batchSize <= 0 {
		batchSize = conf.Import.BatchSize
	}

	pool, err := connectDB(ctx)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()

	publisher := eventbus.NewEventPublisher(logger)
	publisher.Subscribe(func(e tree.ImportProgress) {
		logger.WithField("run_id", e.RunID).Infof("%s: %d records processed", e.City, e.Processed)
	})
	publisher.Subscribe(func(e tree.ImportCompleted) {
		logger.WithField("run_id", e.RunID).Infof("%s import finished: %s", e.City, e.Status)
	})

	service := services.NewImportService(
		pool,
		persistence.NewTreeRepository(),
		persistence.NewImportRunRepository(),
		publisher,
		logger,
	)

	logger.Infof("loading data for %s", opts.city)
	summary, err := service.Import(ctx, services.ImportOptions{
		City:             opts.city,
		File:             opts.file,
		Refresh:          opts.refresh,
		Enrich:           opts.enrich,
		BatchSize:        batchSize,
		ProgressInterval: conf.Import.ProgressInterval,
	})
	if summary != nil {
		if wErr := writeJSONLine(summary); wErr != nil {
			return wErr
		}
	}
	if err != nil {
		return withCode(exitDBWrite, fmt.Errorf("import failed: %w", err))
	}
	return nil
}
