package quiz

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"autokit/internal/services"
)

const (
	ColumnQuestion      = "question"
	ColumnCorrectAnswer = "correct_answer"
	ColumnUserAnswer    = "user_answer"

	toolName = "mcq"
	bom      = "\ufeff"
)

// ErrMissingColumn reports a header without one of the required columns.
var ErrMissingColumn = errors.New("missing required column")

// Row is one question with the expected and submitted answers, kept verbatim.
type Row struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
	UserAnswer    string `json:"user_answer"`
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, toolName, "open csv", fmt.Sprintf("CSV file not found: %s", path), err)
		}
		return nil, services.Wrap(services.ErrValidation, toolName, "open csv", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a header row followed by answer rows. Records shorter than the
// header yield empty strings for the missing fields.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrValidation, toolName, "read header", "empty input", ErrMissingColumn)
		}
		return nil, services.Wrap(services.ErrValidation, toolName, "read header", "", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, toolName, "read row", "", err)
		}
		rows = append(rows, Row{
			Question:      field(record, idx.question),
			CorrectAnswer: field(record, idx.correct),
			UserAnswer:    field(record, idx.user),
		})
	}
	return rows, nil
}

type columns struct {
	question, correct, user int
}

func columnIndex(header []string) (columns, error) {
	idx := columns{question: -1, correct: -1, user: -1}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, bom)
		}
		// A repeated column name resolves to its last occurrence.
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColumnQuestion:
			idx.question = i
		case ColumnCorrectAnswer:
			idx.correct = i
		case ColumnUserAnswer:
			idx.user = i
		}
	}

	var missing []string
	if idx.question < 0 {
		missing = append(missing, ColumnQuestion)
	}
	if idx.correct < 0 {
		missing = append(missing, ColumnCorrectAnswer)
	}
	if idx.user < 0 {
		missing = append(missing, ColumnUserAnswer)
	}
	if len(missing) > 0 {
		return idx, services.Wrap(services.ErrValidation, toolName, "read header",
			strings.Join(missing, ", "), ErrMissingColumn)
	}
	return idx, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
