package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/drzewo/drzewo/modules/trees/domain/entities/tree"
	"github.com/drzewo/drzewo/pkg/configuration"
	"github.com/drzewo/drzewo/pkg/datafiles"
)

type archiveOptions struct {
	date     string
	copyFile bool
	apply    bool
}

func newArchiveCmd() *cobra.Command {
	var opts archiveOptions

	cmd := &cobra.Command{
		Use:   "archive <city> <file>",
		Short: "Archive a downloaded dataset under data/raw/<city>/<date>/",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveCmd(args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "Override the archive date (YYYY-MM-DD, default: file date)")
	cmd.Flags().BoolVar(&opts.copyFile, "copy", false, "Copy instead of move the file")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Actually perform the move/copy (default is dry run)")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if _, err := tree.ParseCity(strings.TrimSpace(args[0])); err != nil {
			return withCode(exitUsage, err)
		}
		if opts.date != "" {
			if _, err := time.Parse("2006-01-02", opts.date); err != nil {
				return withCode(exitUsage, fmt.Errorf("invalid --date: %w", err))
			}
		}
		return nil
	}

	return cmd
}

func runArchiveCmd(city, file string, opts archiveOptions) error {
	if _, err := os.Stat(file); err != nil {
		return withCode(exitValidation, fmt.Errorf("file not found: %s", file))
	}

	conf := configuration.Use()
	defer conf.Unload()
	baseDir := filepath.Join(conf.DataDir, "raw")

	destination, err := datafiles.ArchiveDestination(file, city, baseDir, opts.date)
	if err != nil {
		return withCode(exitValidation, err)
	}

	fmt.Printf("Source:      %s\n", file)
	fmt.Printf("Destination: %s\n", destination)

	if !opts.apply {
		fmt.Println("Dry run only. Re-run with --apply to perform the archive.")
		return nil
	}

	if err := datafiles.Archive(file, destination, opts.copyFile); err != nil {
		return withCode(exitValidation, err)
	}
	if opts.copyFile {
		fmt.Println("Copied dataset.")
	} else {
		fmt.Println("Moved dataset.")
	}
	return nil
}
