package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/LiNCS-lab/usAge/config"
)

// Stage names, in required execution order.
const (
	StagePauses            = "pauses"
	StageParentheses       = "parentheses"
	StageInterjections     = "interjections"
	StageExpressions       = "expressions"
	StageIncompleteWords   = "incomplete-words"
	StageIncompletePhrases = "incomplete-phrases"
	StageErrors            = "errors"
	StageRepetitions       = "repetitions"
	StageRetracings        = "retracings"
	StageSymbols           = "symbols"
	StageSynonyms          = "synonyms"
	StageSentences         = "sentences"
)

var (
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)

	pauseRe = regexp.MustCompile(`\((\.+)(\+?)\)`)
	parenRe = regexp.MustCompile(`\([^()]*\)`)

	prefixedTokenRe = regexp.MustCompile(`&([-=])([\p{L}\p{N}'_-]+)`)
	expressionRe    = regexp.MustCompile(`&=([\p{L}\p{N}'_-]+)`)
	wordRe          = regexp.MustCompile(`[\p{L}\p{N}'’_-]+`)

	incompleteWordRe = regexp.MustCompile(`&(\+?)([\p{L}\p{N}'_][\p{L}\p{N}'_-]*)`)
	commaRunRe       = regexp.MustCompile(`,{3,}`)
	ellipsisRe       = regexp.MustCompile(`\.{3,}`)

	multiErrorRe    = regexp.MustCompile(`<([^<>]+)>\s*\[:\s*([^\[\]]+)\]\s*\[\*\]`)
	wordErrorRe     = regexp.MustCompile(`([\p{L}\p{N}'’_-]+)\s*\[:\s*([^\[\]]+)\]\s*\[\*\]`)
	danglingErrorRe = regexp.MustCompile(`\[:\s*[^\[\]]+\]`)

	phraseRepeatRe = regexp.MustCompile(`<([^<>]+)>\s*\[/\]\s*`)
	wordRepeatRe   = regexp.MustCompile(`([\p{L}\p{N}'’_-]+)\s+\[/\]\s*`)

	phraseRetraceRe = regexp.MustCompile(`<([^<>]+)>\s*\[//\]\s*`)
	wordRetraceRe   = regexp.MustCompile(`([\p{L}\p{N}'’_-]+)\s+\[//\]\s*`)

	compoundPlusRe = regexp.MustCompile(`(\p{L}+)\+(\p{L}+)`)
	bracketAnyRe   = regexp.MustCompile(`\[[^\[\]]*\]`)
	angleAnyRe     = regexp.MustCompile(`<[^<>]*>`)
	ampersandRe    = regexp.MustCompile(`&[-=+]?[\p{L}\p{N}'_-]*`)
	atFormRe       = regexp.MustCompile(`@[\p{L}\p{N}:-]*`)
	strayCharRe    = regexp.MustCompile(`[<>\[\]+="/()]`)
	disallowedRe   = regexp.MustCompile(`[^\p{L}\p{N}\s,\._;?!'’œ-]`)
	leadingZeroRe  = regexp.MustCompile(`\b0([\p{L}\p{N}_-])`)
	leadingCommaRe = regexp.MustCompile(`^\s*\+?,\s*`)
)

// squeeze collapses runs of whitespace left behind by annotation removal.
func squeeze(text string) string {
	return multiSpaceRe.ReplaceAllString(text, " ")
}

// ExtractPauses removes pause tokens and grades each by dot count: (.) short,
// (..) medium, (...) long, four or more dots (optionally closed with a +)
// "other".
func ExtractPauses(text string) (string, []Marker) {
	var markers []Marker
	out := pauseRe.ReplaceAllStringFunc(squeeze(text), func(m string) string {
		sub := pauseRe.FindStringSubmatch(m)
		sev := SeverityOther
		if sub[2] == "" {
			switch len(sub[1]) {
			case 1:
				sev = SeverityShort
			case 2:
				sev = SeverityMedium
			case 3:
				sev = SeverityLong
			}
		}
		markers = append(markers, Marker{Kind: KindPause, Span: m, Stage: StagePauses, Severity: sev})
		return " "
	})
	return out, markers
}

// StripParentheses removes parenthetical asides left over once pause tokens
// are gone, innermost first so nested parentheses unwind. Unbalanced
// parentheses are left for the symbol stage.
func StripParentheses(text string) string {
	out := squeeze(text)
	for parenRe.MatchString(out) {
		out = parenRe.ReplaceAllString(out, " ")
	}
	return out
}

// ExtractInterjections removes tokens of the interjection lexicon, annotated
// as &-token or &=token, or appearing bare in plain-text transcripts.
// Without a configured lexicon the text passes through untouched.
func ExtractInterjections(text string, lex *config.Lexicon) (string, []Marker) {
	if !lex.HasInterjections() {
		return text, nil
	}
	var markers []Marker
	out := prefixedTokenRe.ReplaceAllStringFunc(squeeze(text), func(m string) string {
		sub := prefixedTokenRe.FindStringSubmatch(m)
		if !lex.IsInterjection(sub[2]) {
			return m
		}
		markers = append(markers, Marker{
			Kind: KindInterjection, Span: m,
			Replacement: strings.ToLower(sub[2]), Stage: StageInterjections,
		})
		return " "
	})
	out = removeBareWords(out, lex.IsInterjection, func(word string) {
		markers = append(markers, Marker{
			Kind: KindInterjection, Span: word,
			Replacement: strings.ToLower(word), Stage: StageInterjections,
		})
	})
	return out, markers
}

// ExtractExpressions removes &=token annotations whose token is in the
// expression lexicon. It runs after the interjection stage, which has
// already consumed any &= token claimed by both lexicons.
func ExtractExpressions(text string, lex *config.Lexicon) (string, []Marker) {
	if !lex.HasExpressions() {
		return text, nil
	}
	var markers []Marker
	out := expressionRe.ReplaceAllStringFunc(squeeze(text), func(m string) string {
		sub := expressionRe.FindStringSubmatch(m)
		if !lex.IsExpression(sub[1]) {
			return m
		}
		markers = append(markers, Marker{
			Kind: KindExpression, Span: m,
			Replacement: strings.ToLower(sub[1]), Stage: StageExpressions,
		})
		return " "
	})
	return out, markers
}

// removeBareWords deletes standalone words accepted by match, leaving
// prefixed annotation forms for their own stages.
func removeBareWords(text string, match func(string) bool, onRemove func(string)) string {
	locs := wordRe.FindAllStringIndex(text, -1)
	if locs == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		word := text[loc[0]:loc[1]]
		prefixed := loc[0] > 0 && strings.ContainsAny(text[loc[0]-1:loc[0]], "&-=+")
		if prefixed || !match(word) {
			continue
		}
		onRemove(word)
		b.WriteString(text[last:loc[0]])
		b.WriteString(" ")
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// ExtractIncompleteWords rewrites &token and &+token to the bare token,
// recording the word as incomplete. The &-/&= separators are never matched
// here; unclaimed ones fall through to the symbol stage.
func ExtractIncompleteWords(text string) (string, []Marker) {
	var markers []Marker
	out := incompleteWordRe.ReplaceAllStringFunc(squeeze(text), func(m string) string {
		sub := incompleteWordRe.FindStringSubmatch(m)
		markers = append(markers, Marker{
			Kind: KindIncompleteWord, Span: m,
			Replacement: sub[2], Stage: StageIncompleteWords,
		})
		return sub[2]
	})
	return out, markers
}

// ExtractIncompletePhrases collapses the two trailing-off notations: a run
// of three or more commas to a single comma and a bare ellipsis to a period.
func ExtractIncompletePhrases(text string) (string, []Marker) {
	var markers []Marker
	out := commaRunRe.ReplaceAllStringFunc(squeeze(text), func(m string) string {
		markers = append(markers, Marker{
			Kind: KindIncompletePhrase, Span: m, Replacement: ",", Stage: StageIncompletePhrases,
		})
		return ","
	})
	out = ellipsisRe.ReplaceAllStringFunc(out, func(m string) string {
		markers = append(markers, Marker{
			Kind: KindIncompletePhrase, Span: m, Replacement: ".", Stage: StageIncompletePhrases,
		})
		return "."
	})
	return out, markers
}

// ExtractErrors substitutes annotated corrections for production errors.
// Both the multi-word form <de composed> [: decomposed] [*] and the
// single-word form mouses [: mice] [*] require the trailing [*]; a
// correction without it is malformed annotation, left literal and reported
// as a warning.
func ExtractErrors(text string) (string, []Marker, []string) {
	var markers []Marker
	out := squeeze(text)

	for _, re := range []*regexp.Regexp{multiErrorRe, wordErrorRe} {
		out = re.ReplaceAllStringFunc(out, func(m string) string {
			sub := re.FindStringSubmatch(m)
			wrong := strings.TrimSpace(sub[1])
			correct := strings.TrimSpace(sub[2])
			markers = append(markers, Marker{
				Kind: KindError, Span: wrong, Replacement: correct, Stage: StageErrors,
			})
			return correct
		})
	}

	var warnings []string
	for _, m := range danglingErrorRe.FindAllString(out, -1) {
		warnings = append(warnings, fmt.Sprintf("correction %q lacks its [*] confirmation, kept as literal text", m))
	}
	return out, markers, warnings
}

// ExtractRepetitions collapses repeated material to a single occurrence.
// Three notations, tried in order: <phrase> [/], word [/], and the
// plain-text "phrase, phrase" form. Chained repeats of the same unit merge
// into one marker with the total occurrence count.
func ExtractRepetitions(text string) (string, []Marker) {
	out, markers := collapseDelimited(squeeze(text), phraseRepeatRe, nil)
	out, markers = collapseDelimited(out, wordRepeatRe, markers)
	out, markers = collapseCommaRepeat(out, markers)
	return out, markers
}

// collapseDelimited removes every "unit <delim>" match of re, merging
// adjacent matches of the same unit into a single repetition marker.
func collapseDelimited(text string, re *regexp.Regexp, markers []Marker) (string, []Marker) {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return text, markers
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		unit := strings.TrimSpace(text[loc[2]:loc[3]])
		b.WriteString(text[last:loc[0]])
		last = loc[1]

		n := len(markers)
		if n > 0 && markers[n-1].Kind == KindRepetition &&
			strings.EqualFold(markers[n-1].Span, unit) && adjacent(locs, loc) {
			markers[n-1].Count++
			continue
		}
		markers = append(markers, Marker{
			Kind: KindRepetition, Span: unit, Replacement: unit,
			Stage: StageRepetitions, Count: 2,
		})
	}
	b.WriteString(text[last:])
	return b.String(), markers
}

// adjacent reports whether loc immediately follows its predecessor in locs.
func adjacent(locs [][]int, loc []int) bool {
	for i, l := range locs {
		if l[0] == loc[0] {
			return i > 0 && locs[i-1][1] == loc[0]
		}
	}
	return false
}

// collapseCommaRepeat handles the plain-text form "la voiture, la voiture":
// a comma-separated phrase immediately repeated verbatim. The leading copy
// and its comma are dropped; chains of the same phrase merge their counts.
func collapseCommaRepeat(text string, markers []Marker) (string, []Marker) {
	for {
		collapsed := false
		for i := 0; i < len(text); i++ {
			if text[i] != ',' {
				continue
			}
			start := phraseStart(text, i)
			left := strings.TrimSpace(text[start:i])
			if left == "" {
				continue
			}
			rest := strings.TrimLeft(text[i+1:], " ")
			if len(rest) < len(left) || !strings.EqualFold(rest[:len(left)], left) {
				continue
			}
			if tail := rest[len(left):]; tail != "" && !phraseBoundary(tail[0]) {
				continue
			}

			n := len(markers)
			if n > 0 && markers[n-1].Kind == KindRepetition && strings.EqualFold(markers[n-1].Span, left) {
				markers[n-1].Count++
			} else {
				markers = append(markers, Marker{
					Kind: KindRepetition, Span: left, Replacement: left,
					Stage: StageRepetitions, Count: 2,
				})
			}
			// Splice out the leading copy and its comma, keeping whatever
			// whitespace preceded the phrase.
			seg := text[start:i]
			leftStart := start + (len(seg) - len(strings.TrimLeft(seg, " ")))
			text = text[:leftStart] + rest
			collapsed = true
			break
		}
		if !collapsed {
			return text, markers
		}
	}
}

// phraseStart walks back from the comma at i to the beginning of the
// current phrase.
func phraseStart(text string, i int) int {
	for j := i - 1; j >= 0; j-- {
		switch text[j] {
		case ',', '.', '!', '?', ';':
			return j + 1
		}
	}
	return 0
}

func phraseBoundary(c byte) bool {
	switch c {
	case ' ', ',', '.', '!', '?', ';':
		return true
	}
	return false
}

// ExtractRetracings drops the abandoned span of a self-correction, marked
// <wrong> [//] or wrong [//], keeping only the corrected material that
// follows. The marker records both spans.
func ExtractRetracings(text string) (string, []Marker) {
	var markers []Marker
	out := squeeze(text)
	for _, re := range []*regexp.Regexp{phraseRetraceRe, wordRetraceRe} {
		for {
			loc := re.FindStringSubmatchIndex(out)
			if loc == nil {
				break
			}
			discarded := strings.TrimSpace(out[loc[2]:loc[3]])
			kept := strings.TrimRight(strings.TrimSpace(out[loc[1]:]), " .!?")
			markers = append(markers, Marker{
				Kind: KindRetracing, Span: discarded, Replacement: kept, Stage: StageRetracings,
			})
			out = out[:loc[0]] + out[loc[1]:]
		}
	}
	return out, markers
}

// StripSymbols is pure cleanup: it rejoins plus-written compounds
// (cerf+volant), then deletes every annotation remnant the marker stages
// did not claim — bracketed and angled spans, stray delimiters, ampersand
// and @-form fragments, characters outside the transcript alphabet, and
// the leading zero some transcripts put on words. Runs after all
// marker-bearing stages so it never destroys anything they still need.
func StripSymbols(text string) string {
	out := squeeze(text)
	out = compoundPlusRe.ReplaceAllString(out, "$1-$2")
	out = bracketAnyRe.ReplaceAllString(out, " ")
	out = angleAnyRe.ReplaceAllString(out, " ")
	out = ampersandRe.ReplaceAllString(out, " ")
	out = atFormRe.ReplaceAllString(out, "")
	out = strayCharRe.ReplaceAllString(out, " ")
	out = disallowedRe.ReplaceAllString(out, "")
	out = leadingZeroRe.ReplaceAllString(out, "$1")
	out = leadingCommaRe.ReplaceAllString(out, "")
	return out
}
