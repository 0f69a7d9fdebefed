// Package normalize implements the transcript normalization pipeline: an
// ordered sequence of rewrite stages that strip CHAT-style discourse
// annotation from an utterance while extracting a typed stream of marker
// events (pauses, interjections, expressions, incomplete words and phrases,
// errors, repetitions, retracings).
//
// Stage order is fixed and significant. Early stages consume annotation
// syntax that later stages would otherwise misread (pause tokens look like
// parenthetical asides, repetition delimiters share brackets with error
// annotations), and the final stages assume all marker syntax is already
// gone. Each stage is a pure function over (text, lexicon) and is
// independently testable.
package normalize

// Kind identifies the discourse-marker class a pipeline stage extracted.
type Kind string

const (
	KindPause            Kind = "pause"
	KindInterjection     Kind = "interjection"
	KindExpression       Kind = "expression"
	KindIncompleteWord   Kind = "incompleteWord"
	KindIncompletePhrase Kind = "incompletePhrase"
	KindError            Kind = "error"
	KindRepetition       Kind = "repetition"
	KindRetracing        Kind = "retracing"
)

// Kinds lists every marker kind in pipeline stage order. The feature export
// iterates it so column order stays stable.
var Kinds = []Kind{
	KindPause, KindInterjection, KindExpression, KindIncompleteWord,
	KindIncompletePhrase, KindError, KindRepetition, KindRetracing,
}

// Severity grades a pause by its annotated length.
type Severity string

const (
	SeverityShort  Severity = "short"  // (.)
	SeverityMedium Severity = "medium" // (..)
	SeverityLong   Severity = "long"   // (...)
	SeverityOther  Severity = "other"  // (....) or more dots
)

// Marker is one extracted annotation event. It is created by exactly one
// stage and never mutated afterward.
type Marker struct {
	// Kind is the marker class.
	Kind Kind

	// Span is the annotated text as it appeared in the utterance: the wrong
	// form for errors, the discarded span for retracings, the repeated unit
	// for repetitions, the raw token for the other kinds.
	Span string

	// Replacement is the text the pipeline kept or substituted, when any:
	// the correction for errors, the retained span for retracings, the
	// canonical token for interjections and expressions, the incomplete
	// word itself for incomplete-word markers. Empty when the span was
	// removed outright.
	Replacement string

	// Stage names the pipeline stage that produced this marker.
	Stage string

	// Severity is set for pause markers only.
	Severity Severity

	// Count is set for repetition markers: how many times the unit occurred
	// in the collapsed run (2 for a single repeat, more when chained).
	Count int
}
