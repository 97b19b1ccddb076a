package organizer

// Outcome classifies what happened to one directory entry.
type Outcome string

const (
	OutcomeMoved   Outcome = "moved"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
	OutcomePlanned Outcome = "planned"
)

// Entry records the handling of a single top-level file.
type Entry struct {
	Name        string
	Category    string
	Destination string
	Outcome     Outcome
	Err         error
}

// Report summarizes an organize pass. Entries are in listing order.
type Report struct {
	Dir         string
	DryRun      bool
	CreatedDirs []string
	Entries     []Entry
}

// Count returns how many entries ended with outcome.
func (r Report) Count(outcome Outcome) int {
	n := 0
	for _, entry := range r.Entries {
		if entry.Outcome == outcome {
			n++
		}
	}
	return n
}

func (r Report) Moved() int   { return r.Count(OutcomeMoved) }
func (r Report) Skipped() int { return r.Count(OutcomeSkipped) }
func (r Report) Failed() int  { return r.Count(OutcomeFailed) }

// ByCategory groups moved (or planned) file counts by category.
func (r Report) ByCategory() map[string]int {
	counts := make(map[string]int)
	for _, entry := range r.Entries {
		if entry.Outcome == OutcomeMoved || entry.Outcome == OutcomePlanned {
			counts[entry.Category]++
		}
	}
	return counts
}
