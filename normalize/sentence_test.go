package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LiNCS-lab/usAge/normalize"
)

func TestNormalizeSentences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"adds period", "I don't know", []string{"I don't know."}},
		{"capitalizes", "uh I thought so .", []string{"Uh I thought so."}},
		{"keeps question mark", "what do you mean ?", []string{"What do you mean?"}},
		{"splits segments", "he left. she stayed", []string{"He left.", "She stayed."}},
		{"underscores separate entities", "saw New_York today", []string{"Saw New York today."}},
		{"collapses whitespace", "  well   then  ", []string{"Well then."}},
		{"drops letterless segments", "123 , .", nil},
		{"empty", "   ", nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize.NormalizeSentences(tt.in))
		})
	}
}

func TestNormalizeSentences_AccentedInitial(t *testing.T) {
	t.Parallel()

	got := normalize.NormalizeSentences("école est loin")
	assert.Equal(t, []string{"École est loin."}, got)
}
