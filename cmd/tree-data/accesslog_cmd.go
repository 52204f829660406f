package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drzewo/drzewo/pkg/accesslog"
)

func newAccessLogCmd() *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "accesslog [paths...]",
		Short: "Summarize Nginx access logs for the nearest-trees API",
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns := args
			if len(patterns) == 0 {
				patterns = []string{"/var/log/nginx/access.log", "/var/log/nginx/access.log*.gz"}
			}
			return runAccessLogCmd(patterns, topN)
		},
	}

	cmd.Flags().IntVar(&topN, "top", 10, "Number of top entries to display per section")
	return cmd
}

func runAccessLogCmd(patterns []string, topN int) error {
	paths, err := accesslog.ExpandPaths(patterns)
	if err != nil {
		return withCode(exitUsage, err)
	}
	if len(paths) == 0 {
		return withCode(exitValidation, fmt.Errorf("no matching log files found"))
	}

	summary, err := accesslog.Analyze(paths, topN)
	if err != nil {
		return withCode(exitValidation, err)
	}
	fmt.Print(summary.Format())
	return nil
}
