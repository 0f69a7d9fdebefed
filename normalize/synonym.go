package normalize

import (
	"strings"

	"github.com/LiNCS-lab/usAge/config"
)

// variant is one synonym phrase prepared for matching: its lowercased
// tokens plus the canonical form it reduces to.
type variant struct {
	tokens    []string
	canonical string
}

// Reducer rewrites variant phrases to their canonical form. Candidate
// phrases across all groups are ordered longest first (token count, then
// character count) so a phrase that contains another is always attempted
// before the phrase it contains.
type Reducer struct {
	variants []variant
}

// NewReducer builds a reducer from the synonym lexicon. A lexicon without
// synonym groups yields a reducer that never rewrites.
func NewReducer(lex *config.Lexicon) *Reducer {
	r := &Reducer{}
	for _, g := range lex.SynonymGroups() {
		for _, v := range g.Variants {
			r.variants = append(r.variants, variant{
				tokens:    strings.Fields(v),
				canonical: g.Canonical,
			})
		}
	}
	// Lexicon variants come sorted within their group; interleave groups by
	// the same longest-first order so cross-group ties resolve consistently.
	for i := 1; i < len(r.variants); i++ {
		for j := i; j > 0 && longer(r.variants[j], r.variants[j-1]); j-- {
			r.variants[j], r.variants[j-1] = r.variants[j-1], r.variants[j]
		}
	}
	return r
}

func longer(a, b variant) bool {
	if len(a.tokens) != len(b.tokens) {
		return len(a.tokens) > len(b.tokens)
	}
	return phraseLen(a.tokens) > phraseLen(b.tokens)
}

func phraseLen(tokens []string) int {
	n := len(tokens) - 1
	for _, t := range tokens {
		n += len(t)
	}
	return n
}

func (r *Reducer) Enabled() bool { return len(r.variants) > 0 }

// Reduce scans text left to right and replaces each matched variant phrase
// with its canonical form, advancing past the replacement so rewrites never
// overlap. Matching is case-insensitive on word boundaries. Returns the
// rewritten text and the number of reductions applied.
func (r *Reducer) Reduce(text string) (string, int) {
	if !r.Enabled() {
		return text, 0
	}

	locs := wordRe.FindAllStringIndex(text, -1)
	words := make([]string, len(locs))
	for i, loc := range locs {
		words[i] = strings.ToLower(text[loc[0]:loc[1]])
	}

	var b strings.Builder
	count := 0
	last := 0
	for i := 0; i < len(locs); {
		v := r.matchAt(text, locs, words, i)
		if v == nil {
			i++
			continue
		}
		span := len(v.tokens)
		b.WriteString(text[last:locs[i][0]])
		b.WriteString(v.canonical)
		last = locs[i+span-1][1]
		count++
		i += span
	}
	b.WriteString(text[last:])
	return b.String(), count
}

// matchAt returns the longest variant whose tokens equal the words starting
// at index i, or nil. Multi-token variants only match across plain spaces,
// never across punctuation.
func (r *Reducer) matchAt(text string, locs [][]int, words []string, i int) *variant {
	for vi := range r.variants {
		v := &r.variants[vi]
		if i+len(v.tokens) > len(words) {
			continue
		}
		ok := true
		for k, tok := range v.tokens {
			if words[i+k] != tok {
				ok = false
				break
			}
			if k > 0 && strings.TrimSpace(text[locs[i+k-1][1]:locs[i+k][0]]) != "" {
				ok = false
				break
			}
		}
		if ok {
			return v
		}
	}
	return nil
}
