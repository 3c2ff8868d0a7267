package scoring

import "math"

// ClinicalThreshold is the cumulative symptom weight treated as 100% risk.
const ClinicalThreshold = 2.5

// Score maps a completed answer set to a 0-100 risk percentage and a per-field
// contribution breakdown for the track's feature set.
//
// Only "Yes" answers contribute; "No" and unanswered fields contribute exactly 0.0 so
// the dashboard chart never shows negative or missing bars. Fields outside the track's
// feature set are ignored. The contributions map always holds one entry per relevant
// field. Score never fails, including on an empty answer map.
func Score(track DiseaseTrack, answers map[string]string) (float64, map[string]float64) {
	relevantFields := FeatureSetFor(track)

	totalWeight := 0.0
	contributions := make(map[string]float64, len(relevantFields))
	for _, field := range relevantFields {
		if answers[field] == AnswerYes {
			weight := WeightOf(field)
			totalWeight += weight
			contributions[field] = weight
		} else {
			contributions[field] = 0.0
		}
	}

	riskScore := totalWeight / ClinicalThreshold * 100
	if riskScore > 100 {
		riskScore = 100
	}
	if riskScore < 0 {
		riskScore = 0
	}
	riskScore = math.Round(riskScore*100) / 100

	return riskScore, contributions
}
