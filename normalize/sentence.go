package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	spaceBeforePunctRe = regexp.MustCompile(`\s+([.,?!;])`)
	sentenceEndRe      = regexp.MustCompile(`[.?!]`)
	letterRe           = regexp.MustCompile(`\p{L}`)
)

// NormalizeSentences turns cleaned utterance text into sentence-like
// segments: named-entity underscores become spaces, whitespace collapses,
// each segment starts with a capital and ends with terminal punctuation.
// Segments with no alphabetic content are dropped.
func NormalizeSentences(text string) []string {
	clean := strings.ReplaceAll(text, "_", " ")
	clean = spaceBeforePunctRe.ReplaceAllString(squeeze(clean), "$1")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return nil
	}

	var sentences []string
	for _, seg := range splitSentences(clean) {
		seg = strings.TrimSpace(seg)
		if seg == "" || !letterRe.MatchString(seg) {
			continue
		}
		seg = capitalize(seg)
		if !strings.ContainsAny(seg[len(seg)-1:], ".?!") {
			seg += "."
		}
		sentences = append(sentences, seg)
	}
	return sentences
}

// splitSentences cuts text after each terminal punctuation mark, keeping
// the mark with its segment.
func splitSentences(text string) []string {
	var segs []string
	last := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		segs = append(segs, text[last:loc[1]])
		last = loc[1]
	}
	if last < len(text) {
		segs = append(segs, text[last:])
	}
	return segs
}

// capitalize upper-cases the first alphabetic rune of s.
func capitalize(s string) string {
	for i, r := range s {
		if unicode.IsLetter(r) {
			if unicode.IsUpper(r) {
				return s
			}
			return s[:i] + string(unicode.ToUpper(r)) + s[i+len(string(r)):]
		}
	}
	return s
}
