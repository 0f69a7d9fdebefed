package normalize

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/LiNCS-lab/usAge/config"
)

// Pipeline threads one utterance through the twelve rewrite stages in their
// required order, collecting every marker the stages emit. A Pipeline is
// immutable after construction and safe for concurrent use.
type Pipeline struct {
	lex     *config.Lexicon
	reducer *Reducer
	log     *logrus.Entry
}

func NewPipeline(lex *config.Lexicon, log *logrus.Entry) *Pipeline {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &Pipeline{lex: lex, reducer: NewReducer(lex), log: log}
}

// Result is the outcome of cleaning a single utterance.
type Result struct {
	// Sentences is the normalized text, synonym-reduced when a synonym
	// lexicon is configured. One entry per sentence.
	Sentences []string

	// Plain is the normalized text without synonym reduction. Equal to
	// Sentences when no synonym lexicon is configured.
	Plain []string

	// Markers lists every annotation event extracted, in stage order.
	Markers []Marker

	// Synonyms is the number of variant phrases reduced to canonical form.
	// Reductions change text only; they never emit a Marker.
	Synonyms int

	// Words is the token count of the cleaned text, before normalization.
	Words int
}

// CleanUtterance runs the full stage sequence over one utterance's text.
func (p *Pipeline) CleanUtterance(text string) Result {
	out := text
	var markers []Marker

	collect := func(stage string, ms []Marker) {
		if len(ms) > 0 {
			p.log.WithFields(logrus.Fields{"stage": stage, "markers": len(ms)}).Debug("extracted markers")
			markers = append(markers, ms...)
		}
	}

	var ms []Marker
	out, ms = ExtractPauses(out)
	collect(StagePauses, ms)

	out = StripParentheses(out)

	out, ms = ExtractInterjections(out, p.lex)
	collect(StageInterjections, ms)

	out, ms = ExtractExpressions(out, p.lex)
	collect(StageExpressions, ms)

	out, ms = ExtractIncompleteWords(out)
	collect(StageIncompleteWords, ms)

	out, ms = ExtractIncompletePhrases(out)
	collect(StageIncompletePhrases, ms)

	var warnings []string
	out, ms, warnings = ExtractErrors(out)
	collect(StageErrors, ms)
	for _, w := range warnings {
		p.log.WithField("stage", StageErrors).Warn(w)
	}

	out, ms = ExtractRepetitions(out)
	collect(StageRepetitions, ms)

	out, ms = ExtractRetracings(out)
	collect(StageRetracings, ms)

	out = StripSymbols(out)

	res := Result{
		Markers: markers,
		Words:   countWords(out),
	}
	res.Plain = NormalizeSentences(out)
	res.Sentences = res.Plain
	if p.reducer.Enabled() {
		reduced, n := p.reducer.Reduce(out)
		res.Sentences = NormalizeSentences(reduced)
		res.Synonyms = n
	}
	return res
}

// countWords counts tokens carrying at least one letter, the word measure
// the feature ratios are computed against.
func countWords(text string) int {
	n := 0
	for _, f := range strings.Fields(text) {
		if letterRe.MatchString(f) {
			n++
		}
	}
	return n
}
