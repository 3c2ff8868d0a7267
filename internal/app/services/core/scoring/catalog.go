package scoring

// Catalog exposes the static question tables behind an interface so callers can be
// tested against alternative (e.g. empty) sequences.
type Catalog struct{}

func (Catalog) QuestionsFor(track DiseaseTrack) []Question {
	return QuestionsFor(track)
}
