package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"autokit/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var toolFilter string
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent tool runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.History.Limit
			}

			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), toolFilter, limit)
			if err != nil {
				return err
			}
			if asJSON {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			colorize := shouldColorize(out)
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				detail := run.Summary
				if run.Error != "" {
					detail = run.Error
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", run.ID),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Tool,
					colorizeText(titleLabel(string(run.Status)), statusKindColor(historyKind(run.Status)), colorize),
					run.Target,
					detail,
					run.Duration().Round(time.Millisecond).String(),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{title: "ID", right: true},
				{title: "Started"},
				{title: "Tool"},
				{title: "Status"},
				{title: "Target", maxWidth: 40},
				{title: "Detail", maxWidth: 60},
				{title: "Duration", right: true},
			}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&toolFilter, "tool", "", "Only show runs of this tool (organizer, mcq, email)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum runs to show (default: history.limit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func historyKind(status history.Status) statusKind {
	switch status {
	case history.StatusSucceeded:
		return statusOK
	case history.StatusPartial:
		return statusWarn
	default:
		return statusError
	}
}
