package features

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// measure binds a feature-export column name to its Counts field.
type measure struct {
	name string
	get  func(Counts) int
}

// measures fixes the export column order. Ratio columns are derived from
// these against the transcript word count.
var measures = []measure{
	{"nbPausesTotal", func(c Counts) int { return c.PausesTotal }},
	{"nbPausesShort", func(c Counts) int { return c.PausesShort }},
	{"nbPausesMedium", func(c Counts) int { return c.PausesMedium }},
	{"nbPausesLong", func(c Counts) int { return c.PausesLong }},
	{"nbPausesOther", func(c Counts) int { return c.PausesOther }},
	{"nbInterjections", func(c Counts) int { return c.Interjections }},
	{"nbExpressions", func(c Counts) int { return c.Expressions }},
	{"nbIncWords", func(c Counts) int { return c.IncompleteWords }},
	{"nbIncPhrases", func(c Counts) int { return c.IncompletePhrases }},
	{"nbErrors", func(c Counts) int { return c.Errors }},
	{"nbRepetitions", func(c Counts) int { return c.Repetitions }},
	{"nbRetracings", func(c Counts) int { return c.Retracings }},
	{"nbSynonyms", func(c Counts) int { return c.Synonyms }},
}

// ExportCSV writes the feature table to path: one row per transcript with
// its identifier columns, each measure's frequency, its ratio to the
// transcript word count, and the word count itself.
func ExportCSV(t Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export features: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export features: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"transcriptId", "status", "idParticipant", "interviewNumber"}
	for _, m := range measures {
		header = append(header, m.name, m.name+"Ratio")
	}
	header = append(header, "totalWordCount")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("export features: %w", err)
	}

	for _, row := range t.Rows {
		rec := []string{row.TranscriptID, row.Status, row.ParticipantID, row.InterviewNumber}
		for _, m := range measures {
			n := m.get(row.Counts)
			rec = append(rec, strconv.Itoa(n), formatRatio(n, row.Counts.Words))
		}
		rec = append(rec, strconv.Itoa(row.Counts.Words))
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("export features: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("export features: %w", err)
	}
	return nil
}

// Means returns the per-transcript average of every measure, for the
// end-of-run summary.
func (t Table) Means() map[string]float64 {
	out := make(map[string]float64, len(measures)+1)
	n := float64(len(t.Rows))
	if n == 0 {
		return out
	}
	for _, m := range measures {
		out[m.name] = float64(m.get(t.Corpus)) / n
	}
	out["totalWordCount"] = float64(t.Corpus.Words) / n
	return out
}

func formatRatio(n, words int) string {
	if words == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(n)/float64(words), 'f', 6, 64)
}
