package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"autokit/internal/organizer"
	"autokit/internal/quiz"
)

func titleLabel(value string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(value, "_", " "))
}

func outcomeKind(o organizer.Outcome) statusKind {
	switch o {
	case organizer.OutcomeMoved:
		return statusOK
	case organizer.OutcomeSkipped:
		return statusWarn
	case organizer.OutcomeFailed:
		return statusError
	default:
		return statusInfo
	}
}

func renderOrganizeReport(out io.Writer, report organizer.Report, colorize bool) {
	if len(report.CreatedDirs) > 0 {
		verb := "Created"
		if report.DryRun {
			verb = "Would create"
		}
		fmt.Fprintf(out, "%s folders: %s\n", verb, strings.Join(report.CreatedDirs, ", "))
	}
	if len(report.Entries) == 0 {
		fmt.Fprintln(out, "No files to organize.")
		return
	}

	rows := make([][]string, 0, len(report.Entries))
	for _, entry := range report.Entries {
		status := colorizeText(titleLabel(string(entry.Outcome)), statusKindColor(outcomeKind(entry.Outcome)), colorize)
		detail := ""
		switch entry.Outcome {
		case organizer.OutcomeSkipped:
			detail = "destination exists"
		case organizer.OutcomeFailed:
			if entry.Err != nil {
				detail = entry.Err.Error()
			}
		}
		rows = append(rows, []string{entry.Name, entry.Category, status, detail})
	}
	fmt.Fprintln(out, renderTable([]column{
		{title: "File"},
		{title: "Category"},
		{title: "Outcome"},
		{title: "Detail", maxWidth: 60},
	}, rows))

	counts := report.ByCategory()
	categories := make([]string, 0, len(counts))
	for name := range counts {
		categories = append(categories, name)
	}
	slices.Sort(categories)
	parts := make([]string, 0, len(categories))
	for _, name := range categories {
		parts = append(parts, fmt.Sprintf("%s %d", name, counts[name]))
	}
	if len(parts) > 0 {
		fmt.Fprintf(out, "By category: %s\n", strings.Join(parts, ", "))
	}

	kind := statusOK
	switch {
	case report.Failed() > 0:
		kind = statusError
	case report.Skipped() > 0:
		kind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Summary", kind, organizeSummary(report), colorize))
}

func renderQuizReport(out io.Writer, report quiz.Report, colorize bool) {
	for _, line := range renderSectionHeader("MCQ Evaluation Report", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Total Questions: %d\n", report.Total)
	fmt.Fprintf(out, "Correct Answers: %d\n", report.Correct)
	fmt.Fprintf(out, "Incorrect Answers: %d\n", report.Incorrect())
	fmt.Fprintf(out, "Score: %.2f%%\n", report.Percentage)
	if report.Total == 0 {
		return
	}

	rows := make([][]string, 0, len(report.Results))
	for i, result := range report.Results {
		mark := colorizeText("PASS", ansiGreen, colorize)
		if !result.Correct {
			mark = colorizeText("FAIL", ansiRed, colorize)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			mark,
			result.Question,
			result.UserAnswer,
			result.CorrectAnswer,
		})
	}
	fmt.Fprintln(out, renderTable([]column{
		{title: "#", right: true},
		{title: "Result"},
		{title: "Question", maxWidth: 50},
		{title: "Your Answer", maxWidth: 30},
		{title: "Correct", maxWidth: 30},
	}, rows))

	missed := report.Missed()
	if len(missed) == 0 {
		fmt.Fprintln(out, colorizeText("All questions answered correctly.", ansiGreen, colorize))
		return
	}
	noun := "questions"
	if len(missed) == 1 {
		noun = "question"
	}
	fmt.Fprintf(out, "Review %d missed %s:\n", len(missed), noun)
	for _, result := range missed {
		fmt.Fprintf(out, "  - %s (expected %q)\n", result.Question, result.CorrectAnswer)
	}
}
