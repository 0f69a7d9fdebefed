// Package features accumulates discourse-marker counts per transcript and
// rolls them up into a corpus-level summary table for export.
package features

import (
	"sync"

	"github.com/LiNCS-lab/usAge/normalize"
)

// Counts holds the extraction measures of one transcript (or, summed, of a
// whole corpus). Fields only ever increase while a run is in progress.
type Counts struct {
	PausesTotal       int
	PausesShort       int
	PausesMedium      int
	PausesLong        int
	PausesOther       int
	Interjections     int
	Expressions       int
	IncompleteWords   int
	IncompletePhrases int
	Errors            int
	Repetitions       int
	Retracings        int
	Synonyms          int
	Words             int
}

// CountResult folds one utterance's pipeline result into c.
func (c *Counts) CountResult(res normalize.Result) {
	for _, m := range res.Markers {
		c.CountMarker(m)
	}
	c.Synonyms += res.Synonyms
	c.Words += res.Words
}

// CountMarker increments the measure matching one marker event.
func (c *Counts) CountMarker(m normalize.Marker) {
	switch m.Kind {
	case normalize.KindPause:
		c.PausesTotal++
		switch m.Severity {
		case normalize.SeverityShort:
			c.PausesShort++
		case normalize.SeverityMedium:
			c.PausesMedium++
		case normalize.SeverityLong:
			c.PausesLong++
		case normalize.SeverityOther:
			c.PausesOther++
		}
	case normalize.KindInterjection:
		c.Interjections++
	case normalize.KindExpression:
		c.Expressions++
	case normalize.KindIncompleteWord:
		c.IncompleteWords++
	case normalize.KindIncompletePhrase:
		c.IncompletePhrases++
	case normalize.KindError:
		c.Errors++
	case normalize.KindRepetition:
		c.Repetitions++
	case normalize.KindRetracing:
		c.Retracings++
	}
}

// Merge adds o into c.
func (c *Counts) Merge(o Counts) {
	c.PausesTotal += o.PausesTotal
	c.PausesShort += o.PausesShort
	c.PausesMedium += o.PausesMedium
	c.PausesLong += o.PausesLong
	c.PausesOther += o.PausesOther
	c.Interjections += o.Interjections
	c.Expressions += o.Expressions
	c.IncompleteWords += o.IncompleteWords
	c.IncompletePhrases += o.IncompletePhrases
	c.Errors += o.Errors
	c.Repetitions += o.Repetitions
	c.Retracings += o.Retracings
	c.Synonyms += o.Synonyms
	c.Words += o.Words
}

// Row is one transcript's line in the feature table.
type Row struct {
	TranscriptID    string
	Status          string
	ParticipantID   string
	InterviewNumber string
	Counts          Counts
}

// Table is a finalized (or partial) feature summary: one row per recorded
// transcript plus the corpus-wide sum.
type Table struct {
	Rows   []Row
	Corpus Counts
}

// Aggregator collects per-transcript counts from concurrent workers. Each
// worker computes its counts locally and performs a single Record call, so
// the aggregator is the only point of contention in a run.
type Aggregator struct {
	mu    sync.Mutex
	rows  map[string]*Row
	order []string
}

func NewAggregator() *Aggregator {
	return &Aggregator{rows: map[string]*Row{}}
}

// Record merges one transcript's counts into the aggregate. Recording the
// same transcript twice merges the counts, keeping increments monotonic.
func (a *Aggregator) Record(row Row) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if existing, ok := a.rows[row.TranscriptID]; ok {
		existing.Counts.Merge(row.Counts)
		return
	}
	r := row
	a.rows[row.TranscriptID] = &r
	a.order = append(a.order, row.TranscriptID)
}

// Finalize snapshots the table: rows in recording order plus corpus totals.
// Idempotent; calling before every transcript is recorded yields a correct
// partial table, which streaming exports rely on.
func (a *Aggregator) Finalize() Table {
	a.mu.Lock()
	defer a.mu.Unlock()
	t := Table{Rows: make([]Row, 0, len(a.order))}
	for _, id := range a.order {
		t.Rows = append(t.Rows, *a.rows[id])
		t.Corpus.Merge(a.rows[id].Counts)
	}
	return t
}
