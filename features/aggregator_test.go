package features_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiNCS-lab/usAge/features"
	"github.com/LiNCS-lab/usAge/normalize"
)

func sampleResult() normalize.Result {
	return normalize.Result{
		Markers: []normalize.Marker{
			{Kind: normalize.KindPause, Severity: normalize.SeverityShort},
			{Kind: normalize.KindPause, Severity: normalize.SeverityLong},
			{Kind: normalize.KindInterjection},
			{Kind: normalize.KindRepetition, Count: 2},
			{Kind: normalize.KindRetracing},
		},
		Synonyms: 1,
		Words:    12,
	}
}

func TestCounts_CountResult(t *testing.T) {
	t.Parallel()

	var c features.Counts
	c.CountResult(sampleResult())

	assert.Equal(t, 2, c.PausesTotal)
	assert.Equal(t, 1, c.PausesShort)
	assert.Equal(t, 1, c.PausesLong)
	assert.Zero(t, c.PausesMedium)
	assert.Equal(t, 1, c.Interjections)
	assert.Equal(t, 1, c.Repetitions)
	assert.Equal(t, 1, c.Retracings)
	assert.Equal(t, 1, c.Synonyms)
	assert.Equal(t, 12, c.Words)
}

func TestAggregator_RecordAndFinalize(t *testing.T) {
	t.Parallel()

	agg := features.NewAggregator()

	var c1 features.Counts
	c1.CountResult(sampleResult())
	agg.Record(features.Row{TranscriptID: "AD_101-1", Status: "AD", Counts: c1})

	var c2 features.Counts
	c2.CountResult(sampleResult())
	c2.CountResult(sampleResult())
	agg.Record(features.Row{TranscriptID: "HC_230-2", Status: "HC", Counts: c2})

	table := agg.Finalize()
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "AD_101-1", table.Rows[0].TranscriptID, "rows keep recording order")
	assert.Equal(t, 6, table.Corpus.PausesTotal)
	assert.Equal(t, 36, table.Corpus.Words)

	// Finalize is idempotent.
	again := agg.Finalize()
	assert.Equal(t, table, again)
}

func TestAggregator_DuplicateRecordMerges(t *testing.T) {
	t.Parallel()

	agg := features.NewAggregator()
	agg.Record(features.Row{TranscriptID: "AD_101-1", Counts: features.Counts{Errors: 1, Words: 5}})
	agg.Record(features.Row{TranscriptID: "AD_101-1", Counts: features.Counts{Errors: 2, Words: 7}})

	table := agg.Finalize()
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 3, table.Rows[0].Counts.Errors)
	assert.Equal(t, 12, table.Rows[0].Counts.Words)
}

func TestAggregator_PartialFinalize(t *testing.T) {
	t.Parallel()

	agg := features.NewAggregator()
	agg.Record(features.Row{TranscriptID: "AD_101-1", Counts: features.Counts{PausesTotal: 1}})

	partial := agg.Finalize()
	require.Len(t, partial.Rows, 1)

	agg.Record(features.Row{TranscriptID: "HC_230-2", Counts: features.Counts{PausesTotal: 2}})
	full := agg.Finalize()
	require.Len(t, full.Rows, 2)
	assert.Equal(t, 3, full.Corpus.PausesTotal)
}

func TestTable_Means(t *testing.T) {
	t.Parallel()

	agg := features.NewAggregator()
	agg.Record(features.Row{TranscriptID: "a", Counts: features.Counts{PausesTotal: 2, Words: 10}})
	agg.Record(features.Row{TranscriptID: "b", Counts: features.Counts{PausesTotal: 4, Words: 30}})

	means := agg.Finalize().Means()
	assert.InDelta(t, 3.0, means["nbPausesTotal"], 1e-9)
	assert.InDelta(t, 20.0, means["totalWordCount"], 1e-9)
}
