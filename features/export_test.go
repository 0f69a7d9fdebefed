package features_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiNCS-lab/usAge/features"
)

func TestExportCSV(t *testing.T) {
	t.Parallel()

	agg := features.NewAggregator()
	agg.Record(features.Row{
		TranscriptID:    "AD_101-1",
		Status:          "AD",
		ParticipantID:   "101",
		InterviewNumber: "1",
		Counts:          features.Counts{PausesTotal: 2, PausesShort: 2, Errors: 1, Words: 8},
	})

	path := filepath.Join(t.TempDir(), "features", "markers.csv")
	require.NoError(t, features.ExportCSV(agg.Finalize(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one transcript row")

	header, row := records[0], records[1]
	require.Equal(t, len(header), len(row))

	byName := map[string]string{}
	for i, h := range header {
		byName[h] = row[i]
	}
	assert.Equal(t, "AD_101-1", byName["transcriptId"])
	assert.Equal(t, "AD", byName["status"])
	assert.Equal(t, "101", byName["idParticipant"])
	assert.Equal(t, "1", byName["interviewNumber"])
	assert.Equal(t, "2", byName["nbPausesTotal"])
	assert.Equal(t, "1", byName["nbErrors"])
	assert.Equal(t, "8", byName["totalWordCount"])
	assert.Equal(t, "0.250000", byName["nbPausesTotalRatio"])
	assert.Equal(t, "0", byName["nbRetracings"])
}

func TestExportCSV_EmptyTable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "markers.csv")
	require.NoError(t, features.ExportCSV(features.Table{}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "transcriptId", "header is written even with no rows")
}
