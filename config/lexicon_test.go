package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiNCS-lab/usAge/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadLexicon_SynonymGroups(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "synonyms.txt", `# reduction rules
[girl]
little girl
girl
mother

woman:
wife
`)
	lex, err := config.LoadLexicon(config.LexiconPaths{Synonyms: path})
	require.NoError(t, err)
	require.True(t, lex.HasSynonyms())

	groups := lex.SynonymGroups()
	require.Len(t, groups, 2)
	assert.Equal(t, "girl", groups[0].Canonical)
	// Longest variant first: token count, then character count.
	assert.Equal(t, []string{"little girl", "mother", "girl"}, groups[0].Variants)
	assert.Equal(t, "woman", groups[1].Canonical)
	assert.Equal(t, []string{"wife"}, groups[1].Variants)
}

func TestLoadLexicon_VariantBeforeHeaderFails(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "synonyms.txt", "little girl\n[girl]\n")
	_, err := config.LoadLexicon(config.LexiconPaths{Synonyms: path})
	require.Error(t, err)

	var parseErr *config.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Line)
}

func TestLoadLexicon_SetsCollapseDuplicates(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "interjections.txt", "uh\nUhm\nuh\nUH\n")
	lex, err := config.LoadLexicon(config.LexiconPaths{Interjections: path})
	require.NoError(t, err)

	assert.True(t, lex.HasInterjections())
	assert.True(t, lex.IsInterjection("uh"))
	assert.True(t, lex.IsInterjection("UHM"), "matching is case-insensitive")
	assert.False(t, lex.IsInterjection("laugh"))
	assert.False(t, lex.HasExpressions())
}

func TestLoadLexicon_EmptyPathsDisable(t *testing.T) {
	t.Parallel()

	lex, err := config.LoadLexicon(config.LexiconPaths{})
	require.NoError(t, err)
	assert.False(t, lex.HasSynonyms())
	assert.False(t, lex.HasInterjections())
	assert.False(t, lex.HasExpressions())
}

func TestLoadLexicon_MissingFileFails(t *testing.T) {
	t.Parallel()

	_, err := config.LoadLexicon(config.LexiconPaths{Expressions: filepath.Join(t.TempDir(), "nope.txt")})
	require.Error(t, err)
}

func TestLoadLexicon_NilLexiconLookups(t *testing.T) {
	t.Parallel()

	var lex *config.Lexicon
	assert.False(t, lex.IsInterjection("uh"))
	assert.False(t, lex.IsExpression("laugh"))
	assert.False(t, lex.HasSynonyms())
	assert.Nil(t, lex.SynonymGroups())
}
