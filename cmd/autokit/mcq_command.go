package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"autokit/internal/history"
	"autokit/internal/logging"
	"autokit/internal/notifications"
	"autokit/internal/quiz"
)

func newMCQCommand(ctx *commandContext) *cobra.Command {
	var csvFile string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "mcq",
		Aliases: []string{"grade"},
		Short:   "Grade a multiple-choice answer sheet",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := newGradeTool(csvFile, asJSON)
			if err != nil {
				return err
			}
			return runTool(ctx, cmd, t)
		},
	}

	cmd.Flags().StringVarP(&csvFile, "csv-file", "f", "", "Quiz CSV file with question, correct_answer and user_answer columns")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the report as JSON")
	return cmd
}

func runGrade(_ context.Context, ctx *commandContext, cmd *cobra.Command, t gradeTool) (outcome, error) {
	rows, err := quiz.ParseFile(t.csvPath)
	if err != nil {
		return outcome{}, err
	}
	report := quiz.Grade(rows)
	ctx.loggerFor(cmd).Info("quiz graded",
		logging.String("file", t.csvPath),
		logging.Int("correct", report.Correct),
		logging.Int("total", report.Total),
	)

	out := cmd.OutOrStdout()
	if t.asJSON {
		if err := writeJSON(cmd, report); err != nil {
			return outcome{}, err
		}
	} else {
		fmt.Fprintf(out, "Evaluating quiz: %s\n", filepath.Base(t.csvPath))
		renderQuizReport(out, report, shouldColorize(out))
	}

	return outcome{
		status:  history.StatusSucceeded,
		summary: fmt.Sprintf("%d/%d correct (%.2f%%)", report.Correct, report.Total, report.Percentage),
		event:   notifications.EventQuizGraded,
		payload: notifications.Payload{
			"file":       filepath.Base(t.csvPath),
			"correct":    report.Correct,
			"total":      report.Total,
			"percentage": report.Percentage,
		},
	}, nil
}
