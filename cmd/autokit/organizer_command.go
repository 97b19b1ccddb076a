package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"autokit/internal/classify"
	"autokit/internal/history"
	"autokit/internal/logging"
	"autokit/internal/notifications"
	"autokit/internal/organizer"
)

func newOrganizerCommand(ctx *commandContext) *cobra.Command {
	var sourceDir string
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "organizer",
		Aliases: []string{"organize"},
		Short:   "Sort the top-level files of a directory into category folders",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			t, err := newOrganizeTool(cfg, sourceDir, dryRun)
			if err != nil {
				return err
			}
			return runTool(ctx, cmd, t)
		},
	}

	cmd.Flags().StringVarP(&sourceDir, "source-dir", "s", "", "Directory to organize (default: organizer.source_dir)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show where files would go without moving them")
	return cmd
}

func runOrganize(runCtx context.Context, ctx *commandContext, cmd *cobra.Command, t organizeTool) (outcome, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return outcome{}, err
	}
	logger := ctx.loggerFor(cmd)

	table, err := classify.NewExtensionMap(cfg.Organizer.Categories)
	if err != nil {
		return outcome{}, fmt.Errorf("build category table: %w", err)
	}
	for _, overlap := range table.Overlaps() {
		logger.Warn("extension listed in more than one category",
			logging.String("extension", overlap.Extension),
			logging.String("used", overlap.Winner),
			logging.Any("ignored", overlap.Shadowed),
		)
	}

	org := organizer.New(classify.New(table), logger, organizer.WithLockDir(cfg.LockDir()))

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	if t.dryRun {
		fmt.Fprintf(out, "Planning organization of: %s\n", t.dir)
	} else {
		fmt.Fprintf(out, "Organizing files in: %s\n", t.dir)
	}

	var report organizer.Report
	if t.dryRun {
		report, err = org.Plan(runCtx, t.dir)
	} else {
		report, err = org.Organize(runCtx, t.dir)
	}
	if err != nil {
		return outcome{}, err
	}

	renderOrganizeReport(out, report, colorize)

	result := outcome{
		status:  history.StatusSucceeded,
		summary: organizeSummary(report),
		event:   notifications.EventOrganizeCompleted,
		payload: notifications.Payload{
			"dir":     report.Dir,
			"moved":   report.Moved(),
			"skipped": report.Skipped(),
			"failed":  report.Failed(),
		},
	}
	if report.DryRun {
		result.event = notifications.EventOrganizePlanned
	}
	if report.Failed() > 0 {
		result.status = history.StatusPartial
	}
	return result, nil
}

func organizeSummary(report organizer.Report) string {
	if report.DryRun {
		return fmt.Sprintf("%d planned, %d skipped (dry run)", report.Count(organizer.OutcomePlanned), report.Skipped())
	}
	return fmt.Sprintf("%d moved, %d skipped, %d failed", report.Moved(), report.Skipped(), report.Failed())
}
