package scoring

import "fmt"

// Question is one yes/no survey entry: the stable field identifier the score keys on,
// and the prompt the IVR reads out.
type Question struct {
	Field  string
	Prompt string
}

// Clinical severity weights per symptom field, in (0, 1]. These are protocol constants
// (AHA heart-failure/ACS and WHO respiratory/qSOFA guidance), not tuned parameters.
var clinicalWeights = map[string]float64{
	// Cardiovascular (AHA)
	"chest_discomfort":    0.85,
	"dizziness":           0.70,
	"shortness_of_breath": 0.65,
	"weight_gain":         0.50,
	"leg_swelling":        0.40,
	"palpitations":        0.35,
	"fatigue":             0.20,

	// Pulmonary (WHO)
	"rest_dyspnea":       0.80,
	"chest_tightness":    0.60,
	"exertional_dyspnea": 0.55,
	"wheezing":           0.45,
	"phlegm_change":      0.30,
	"cough_increase":     0.25,

	// General (WHO qSOFA)
	"confusion":          0.90,
	"fever_chills":       0.60,
	"condition_worsened": 0.50,
	"nausea_vomiting":    0.30,
	"new_pain":           0.25,
}

// Per-track question sequences, in the order the IVR asks them. Tracks are strictly
// disjoint; General doubles as the fallback for unknown tracks.
var trackQuestions = map[DiseaseTrack][]Question{
	TrackCardiovascular: {
		{Field: "chest_discomfort", Prompt: "Since your discharge, have you felt any chest pain, pressure, or discomfort?"},
		{Field: "dizziness", Prompt: "Have you felt dizzy, lightheaded, or close to fainting?"},
		{Field: "shortness_of_breath", Prompt: "Have you been more short of breath than usual?"},
		{Field: "weight_gain", Prompt: "Have you gained more than two kilograms in the last few days?"},
		{Field: "leg_swelling", Prompt: "Have you noticed new swelling in your legs, ankles, or feet?"},
		{Field: "palpitations", Prompt: "Have you felt your heart racing, fluttering, or skipping beats?"},
	},
	TrackPulmonary: {
		{Field: "rest_dyspnea", Prompt: "Are you short of breath even while resting?"},
		{Field: "chest_tightness", Prompt: "Have you felt tightness in your chest?"},
		{Field: "exertional_dyspnea", Prompt: "Do everyday activities leave you more breathless than before?"},
		{Field: "wheezing", Prompt: "Have you been wheezing or making whistling sounds when you breathe?"},
		{Field: "phlegm_change", Prompt: "Has your phlegm changed in colour or amount?"},
		{Field: "cough_increase", Prompt: "Has your cough become more frequent or severe?"},
	},
	TrackGeneral: {
		{Field: "confusion", Prompt: "Have you felt unusually confused, drowsy, or hard to wake?"},
		{Field: "fever_chills", Prompt: "Have you had a fever or chills?"},
		{Field: "condition_worsened", Prompt: "Do you feel your overall condition has become worse?"},
		{Field: "nausea_vomiting", Prompt: "Have you had nausea or vomiting?"},
		{Field: "new_pain", Prompt: "Do you have any new pain since leaving the hospital?"},
	},
}

// QuestionsFor returns the ordered question sequence for the track. Unknown tracks get
// the General sequence.
func QuestionsFor(track DiseaseTrack) []Question {
	if qs, ok := trackQuestions[track]; ok {
		return qs
	}
	return trackQuestions[TrackGeneral]
}

// FeatureSetFor returns the field identifiers scored for the track, in declared order.
func FeatureSetFor(track DiseaseTrack) []string {
	questions := QuestionsFor(track)
	fields := make([]string, 0, len(questions))
	for _, q := range questions {
		fields = append(fields, q.Field)
	}
	return fields
}

// WeightOf returns the clinical weight for a field, 0 when unknown.
func WeightOf(field string) float64 {
	return clinicalWeights[field]
}

// ValidateTables cross-checks the question sequences against the weight table at boot:
// every track field needs a weight in (0, 1] and a non-empty prompt, fields are unique
// within a track, and tracks do not share fields. The drift this catches must never
// surface at call time.
func ValidateTables() error {
	owner := make(map[string]DiseaseTrack)
	for track, questions := range trackQuestions {
		seen := make(map[string]bool)
		for _, q := range questions {
			if q.Field == "" || q.Prompt == "" {
				return fmt.Errorf("track %s has a question with an empty field or prompt", track)
			}
			if seen[q.Field] {
				return fmt.Errorf("track %s declares field %s twice", track, q.Field)
			}
			seen[q.Field] = true
			if other, taken := owner[q.Field]; taken {
				return fmt.Errorf("field %s belongs to both %s and %s tracks", q.Field, other, track)
			}
			owner[q.Field] = track
			weight, ok := clinicalWeights[q.Field]
			if !ok {
				return fmt.Errorf("field %s has no clinical weight", q.Field)
			}
			if weight <= 0 || weight > 1 {
				return fmt.Errorf("field %s has weight %.2f outside (0, 1]", q.Field, weight)
			}
		}
	}
	return nil
}
