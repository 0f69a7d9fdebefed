package orchestrator

import "github.com/LiNCS-lab/usAge/features"

// Failure records one transcript the run could not process. Failures skip
// the transcript and never abort the rest of the corpus.
type Failure struct {
	TranscriptID string
	Err          error
}

// Summary is the outcome of one corpus run.
type Summary struct {
	Processed int
	Failures  []Failure
	Table     features.Table
}

// OK reports whether every transcript processed cleanly.
func (s *Summary) OK() bool { return len(s.Failures) == 0 }
