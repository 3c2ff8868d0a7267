package scoring

// DiseaseTrack selects which symptom questions and weights apply to a patient. The set
// is closed; anything else resolves to TrackGeneral.
type DiseaseTrack string

const (
	TrackCardiovascular DiseaseTrack = "Cardiovascular"
	TrackPulmonary      DiseaseTrack = "Pulmonary"
	TrackGeneral        DiseaseTrack = "General"
)

// ParseDiseaseTrack maps a stored track label to its enumeration value. Unknown labels
// fall back to TrackGeneral; the second return reports whether the label was known.
func ParseDiseaseTrack(s string) (DiseaseTrack, bool) {
	switch DiseaseTrack(s) {
	case TrackCardiovascular, TrackPulmonary, TrackGeneral:
		return DiseaseTrack(s), true
	default:
		return TrackGeneral, false
	}
}

const (
	AnswerYes = "Yes"
	AnswerNo  = "No"
)
