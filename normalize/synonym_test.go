package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiNCS-lab/usAge/normalize"
)

func TestReducer_LongestVariantWins(t *testing.T) {
	t.Parallel()

	lex := newLexicon(t, "[girl]\nlittle girl\ngirl\n", "", "")
	r := normalize.NewReducer(lex)

	out, n := r.Reduce("the little girl ran")
	assert.Equal(t, "the girl ran", out)
	assert.Equal(t, 1, n, "one reduction, never a partial match on the contained variant")
}

func TestReducer_CaseInsensitive(t *testing.T) {
	t.Parallel()

	lex := newLexicon(t, "[woman]\nMother\nwife\n", "", "")
	r := normalize.NewReducer(lex)

	out, n := r.Reduce("his MOTHER and his Wife")
	assert.Equal(t, "his woman and his woman", out)
	assert.Equal(t, 2, n)
}

func TestReducer_NoOverlappingRewrites(t *testing.T) {
	t.Parallel()

	// After "little girl" is consumed the scan continues past the
	// replacement, so the canonical form itself is never rewritten again.
	lex := newLexicon(t, "[girl]\nlittle girl\ngirl\n", "", "")
	r := normalize.NewReducer(lex)

	out, n := r.Reduce("little girl girl")
	assert.Equal(t, "girl girl", out)
	assert.Equal(t, 2, n)
}

func TestReducer_CrossGroupLongestFirst(t *testing.T) {
	t.Parallel()

	lex := newLexicon(t, "[dog]\ndog\n[hound]\nbig brown dog\n", "", "")
	r := normalize.NewReducer(lex)

	out, n := r.Reduce("a big brown dog barked")
	assert.Equal(t, "a hound barked", out)
	assert.Equal(t, 1, n)
}

func TestReducer_NoMatchAcrossPunctuation(t *testing.T) {
	t.Parallel()

	lex := newLexicon(t, "[girl]\nlittle girl\n", "", "")
	r := normalize.NewReducer(lex)

	out, n := r.Reduce("little, girl")
	assert.Equal(t, "little, girl", out)
	assert.Equal(t, 0, n)
}

func TestReducer_DisabledWithoutLexicon(t *testing.T) {
	t.Parallel()

	r := normalize.NewReducer(nil)
	require.False(t, r.Enabled())
	out, n := r.Reduce("anything at all")
	assert.Equal(t, "anything at all", out)
	assert.Zero(t, n)
}
