package quiz

import "strings"

// Result is the verdict for a single row.
type Result struct {
	Row
	Correct bool `json:"is_correct"`
}

// Report aggregates graded results in input order.
type Report struct {
	Total      int      `json:"total"`
	Correct    int      `json:"correct"`
	Percentage float64  `json:"percentage"`
	Results    []Result `json:"results"`
}

// Grade judges every row. Percentage is 0 when there are no rows.
func Grade(rows []Row) Report {
	report := Report{
		Total:   len(rows),
		Results: make([]Result, 0, len(rows)),
	}
	for _, row := range rows {
		ok := Matches(row.CorrectAnswer, row.UserAnswer)
		if ok {
			report.Correct++
		}
		report.Results = append(report.Results, Result{Row: row, Correct: ok})
	}
	if report.Total > 0 {
		report.Percentage = float64(report.Correct) / float64(report.Total) * 100
	}
	return report
}

// Matches compares answers after trimming whitespace and lower-casing.
func Matches(correct, given string) bool {
	return normalize(correct) == normalize(given)
}

// Incorrect returns the count of rows answered wrongly.
func (r Report) Incorrect() int {
	return r.Total - r.Correct
}

// Missed returns the results that were answered wrongly, in order.
func (r Report) Missed() []Result {
	var out []Result
	for _, result := range r.Results {
		if !result.Correct {
			out = append(out, result)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
