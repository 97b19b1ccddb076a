package quiz_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autokit/internal/quiz"
	"autokit/internal/services"
)

const sampleSheet = `question,correct_answer,user_answer
"What is 2+2?",4,4
"Capital of India?","New Delhi","New Delhi"
"Python is a...","Programming Language","Scripting Language"
"What does len('abc') return?",3,2
`

func TestParseFileAndGrade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleSheet), 0o644))

	rows, err := quiz.ParseFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "What is 2+2?", rows[0].Question)

	report := quiz.Grade(rows)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Correct)
	assert.Equal(t, 2, report.Incorrect())
	assert.InDelta(t, 50.0, report.Percentage, 1e-9)

	missed := report.Missed()
	require.Len(t, missed, 2)
	assert.Equal(t, "Python is a...", missed[0].Question)
	assert.Equal(t, "2", missed[1].UserAnswer)
}

func TestGradePreservesOrder(t *testing.T) {
	rows := []quiz.Row{
		{Question: "2+2", CorrectAnswer: "4", UserAnswer: "4"},
		{Question: "capital", CorrectAnswer: "Delhi", UserAnswer: "delhi"},
	}

	report := quiz.Grade(rows)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Correct)
	assert.InDelta(t, 100.0, report.Percentage, 1e-9)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "2+2", report.Results[0].Question)
	assert.Equal(t, "capital", report.Results[1].Question)
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		correct string
		given   string
		want    bool
	}{
		{name: "case", correct: "YES", given: "yes", want: true},
		{name: "trim", correct: " 4 ", given: "4", want: true},
		{name: "both empty", correct: "", given: "  ", want: true},
		{name: "no numeric equivalence", correct: "4", given: "4.0", want: false},
		{name: "inner whitespace kept", correct: "New Delhi", given: "NewDelhi", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, quiz.Matches(tt.correct, tt.given))
		})
	}
}

func TestGradeEmpty(t *testing.T) {
	report := quiz.Grade(nil)
	assert.Zero(t, report.Total)
	assert.Zero(t, report.Correct)
	assert.Zero(t, report.Percentage)
	assert.Empty(t, report.Results)
}

func TestParseColumnsByName(t *testing.T) {
	input := "user_answer, Notes ,Question,CORRECT_ANSWER\nb,ignored,pick one,B\n"
	rows, err := quiz.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []quiz.Row{{Question: "pick one", CorrectAnswer: "B", UserAnswer: "b"}}, rows)
}

func TestParseRepeatedColumnUsesLast(t *testing.T) {
	input := "question,user_answer,correct_answer,user_answer\nq1,draft,A,a\n"
	rows, err := quiz.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, []quiz.Row{{Question: "q1", CorrectAnswer: "A", UserAnswer: "a"}}, rows)
	assert.Equal(t, 1, quiz.Grade(rows).Correct)
}

func TestParseShortRecordsAndBOM(t *testing.T) {
	input := "\ufeffquestion,correct_answer,user_answer\nunanswered,A\n"
	rows, err := quiz.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "unanswered", rows[0].Question)
	assert.Equal(t, "", rows[0].UserAnswer)
	assert.False(t, quiz.Grade(rows).Results[0].Correct)
}

func TestParseUnterminatedQuote(t *testing.T) {
	input := "question,correct_answer,user_answer\n\"Test?\",\"YES\",\"yes"
	rows, err := quiz.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 1, quiz.Grade(rows).Correct)
}

func TestParseMissingColumn(t *testing.T) {
	_, err := quiz.Parse(strings.NewReader("question,answer\nq,a\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, quiz.ErrMissingColumn))
	assert.True(t, errors.Is(err, services.ErrValidation))
	assert.Contains(t, err.Error(), "correct_answer, user_answer")
}

func TestParseEmptyInput(t *testing.T) {
	_, err := quiz.Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, quiz.ErrMissingColumn)
}

func TestParseFileNotFound(t *testing.T) {
	_, err := quiz.ParseFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Equal(t, services.FailurePrecondition, services.Classify(err))
}
