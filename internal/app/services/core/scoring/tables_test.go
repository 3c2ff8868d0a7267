package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTables(t *testing.T) {
	require.NoError(t, ValidateTables())
}

func TestTracksAreDisjoint(t *testing.T) {
	owner := map[string]DiseaseTrack{}
	for _, track := range []DiseaseTrack{TrackCardiovascular, TrackPulmonary, TrackGeneral} {
		for _, field := range FeatureSetFor(track) {
			other, taken := owner[field]
			assert.False(t, taken, "field %s appears in both %s and %s", field, other, track)
			owner[field] = track
		}
	}
}

func TestEveryQuestionHasAWeight(t *testing.T) {
	for _, track := range []DiseaseTrack{TrackCardiovascular, TrackPulmonary, TrackGeneral} {
		for _, q := range QuestionsFor(track) {
			weight := WeightOf(q.Field)
			assert.Greater(t, weight, 0.0, q.Field)
			assert.LessOrEqual(t, weight, 1.0, q.Field)
			assert.NotEmpty(t, q.Prompt, q.Field)
		}
	}
}
