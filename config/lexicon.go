// Lexicon loading for the normalization pipeline.
//
// Three plain-text lexicons parameterize extraction per language: a synonym
// map (canonical form plus its variant phrases), an interjection list and an
// expression list. Each lexicon is optional — an empty path disables only the
// pipeline stage that depends on it.
package config

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ParseError reports a structural problem in a lexicon file. It is the only
// fatal error class of a run: nothing is processed when a lexicon is broken.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("lexicon %s:%d: %s", e.File, e.Line, e.Msg)
}

// SynonymGroup maps one canonical form to its variant phrases. Variants are
// kept sorted longest first (token count, then character count) so matching
// never picks a variant that is a substring of a longer one.
type SynonymGroup struct {
	Canonical string
	Variants  []string
}

// Lexicon is the immutable lookup object shared by all pipeline workers.
// A nil *Lexicon behaves as a lexicon with every list absent.
type Lexicon struct {
	groups        []SynonymGroup
	interjections map[string]struct{}
	expressions   map[string]struct{}
}

// LoadLexicon loads the three lexicons named by paths. Empty paths disable
// the corresponding lookup; a non-empty path that cannot be read or parsed
// is an error.
func LoadLexicon(paths LexiconPaths) (*Lexicon, error) {
	lex := &Lexicon{}

	if paths.Synonyms != "" {
		groups, err := loadSynonyms(paths.Synonyms)
		if err != nil {
			return nil, err
		}
		lex.groups = groups
	}
	if paths.Interjections != "" {
		set, err := loadSet(paths.Interjections)
		if err != nil {
			return nil, err
		}
		lex.interjections = set
	}
	if paths.Expressions != "" {
		set, err := loadSet(paths.Expressions)
		if err != nil {
			return nil, err
		}
		lex.expressions = set
	}
	return lex, nil
}

// SynonymGroups returns the configured groups in file order, variants sorted
// longest first. Nil when no synonym lexicon is configured.
func (l *Lexicon) SynonymGroups() []SynonymGroup {
	if l == nil {
		return nil
	}
	return l.groups
}

func (l *Lexicon) HasSynonyms() bool { return l != nil && len(l.groups) > 0 }

func (l *Lexicon) HasInterjections() bool { return l != nil && len(l.interjections) > 0 }

func (l *Lexicon) HasExpressions() bool { return l != nil && len(l.expressions) > 0 }

// IsInterjection reports whether token is a configured interjection.
// Matching is case-insensitive.
func (l *Lexicon) IsInterjection(token string) bool {
	if l == nil {
		return false
	}
	_, ok := l.interjections[strings.ToLower(token)]
	return ok
}

// IsExpression reports whether token is a configured expression.
// Matching is case-insensitive.
func (l *Lexicon) IsExpression(token string) bool {
	if l == nil {
		return false
	}
	_, ok := l.expressions[strings.ToLower(token)]
	return ok
}

// loadSynonyms parses the grouped synonym format: a header line introduces a
// canonical form, either bracketed ("[girl]") or label-style ("girl:"), and
// every following non-empty line is one variant phrase of that group.
func loadSynonyms(path string) ([]SynonymGroup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open synonym lexicon: %w", err)
	}
	defer f.Close()

	var groups []SynonymGroup
	idx := map[string]int{}

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if canonical, ok := headerLine(line); ok {
			key := strings.ToLower(canonical)
			if _, seen := idx[key]; !seen {
				idx[key] = len(groups)
				groups = append(groups, SynonymGroup{Canonical: canonical})
			}
			continue
		}

		if len(groups) == 0 {
			return nil, &ParseError{File: path, Line: lineNo,
				Msg: fmt.Sprintf("variant %q before any canonical header", line)}
		}
		g := &groups[len(groups)-1]
		variant := strings.ToLower(line)
		if !contains(g.Variants, variant) {
			g.Variants = append(g.Variants, variant)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read synonym lexicon: %w", err)
	}

	for i := range groups {
		sortVariants(groups[i].Variants)
	}
	return groups, nil
}

// headerLine reports whether line is a group header and returns the
// canonical form it declares.
func headerLine(line string) (string, bool) {
	if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		return strings.TrimSpace(line[1 : len(line)-1]), true
	}
	if strings.HasSuffix(line, ":") {
		return strings.TrimSpace(line[:len(line)-1]), true
	}
	return "", false
}

// sortVariants orders variant phrases by descending token count, then
// descending character count, so longer phrases always match first.
func sortVariants(variants []string) {
	sort.SliceStable(variants, func(i, j int) bool {
		ti, tj := strings.Count(variants[i], " "), strings.Count(variants[j], " ")
		if ti != tj {
			return ti > tj
		}
		return len(variants[i]) > len(variants[j])
	})
}

// loadSet parses a one-token-per-line lexicon, lowercasing entries and
// collapsing duplicates silently.
func loadSet(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	set := map[string]struct{}{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		if tok == "" || strings.HasPrefix(tok, "#") {
			continue
		}
		set[strings.ToLower(tok)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	return set, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
