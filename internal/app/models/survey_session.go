package models

import "time"

// SurveySession is one phone check-in: the accumulated answers, the cursor into the
// track's question sequence, and (once the cursor passes the last question) the risk
// score with its per-symptom contribution breakdown. RiskScore and Contributions are
// set together, exactly once.
type SurveySession struct {
	ID              string             `json:"id" bson:"_id,omitempty"`
	PatientID       string             `json:"patient_id" bson:"patientId"`
	DiseaseTrack    string             `json:"disease_track" bson:"diseaseTrack"`
	Answers         map[string]string  `json:"answers" bson:"answers"`
	Cursor          int                `json:"cursor" bson:"cursor"`
	RiskScore       *float64           `json:"risk_score,omitempty" bson:"riskScore,omitempty"`
	Contributions   map[string]float64 `json:"contributions,omitempty" bson:"contributions,omitempty"`
	DoctorStatus    string             `json:"doctor_status" bson:"doctorStatus"`
	DoctorNotes     string             `json:"doctor_notes,omitempty" bson:"doctorNotes,omitempty"`
	ReviewedAt      *time.Time         `json:"reviewed_at,omitempty" bson:"reviewedAt,omitempty"`
	RecordingObject string             `json:"-" bson:"recordingObject,omitempty"`
	TimeModel       `bson:",inline"`
}

// Finalized reports whether the session has been scored. A finalized session is never
// mutated again except for doctor review fields and the recording reference.
func (s *SurveySession) Finalized() bool {
	return s.RiskScore != nil
}
