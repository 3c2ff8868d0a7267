package responses

import "time"

// StepResult tells the call-flow driver what to do next.
type StepResult string

const (
	StepNextQuestion  StepResult = "NEXT_QUESTION"
	StepAwaitingRetry StepResult = "AWAITING_RETRY"
	StepComplete      StepResult = "COMPLETE"
)

type SurveyQuestion struct {
	Field  string `json:"field"`
	Prompt string `json:"prompt"`
}

// SurveyStep is returned on every IVR exchange. Question is present unless the survey
// is complete; Gather tells the vendor adapter whether to collect another digit.
type SurveyStep struct {
	SessionID string          `json:"session_id"`
	Result    StepResult      `json:"result"`
	Question  *SurveyQuestion `json:"question,omitempty"`
	Gather    bool            `json:"gather"`
	RiskScore *float64        `json:"risk_score,omitempty"`
}

type CheckIn struct {
	ID            string             `json:"id"`
	PatientID     string             `json:"patient_id"`
	DiseaseTrack  string             `json:"disease_track"`
	Answers       map[string]string  `json:"answers"`
	Cursor        int                `json:"cursor"`
	Completed     bool               `json:"completed"`
	RiskScore     *float64           `json:"risk_score,omitempty"`
	Contributions map[string]float64 `json:"contributions,omitempty"`
	DoctorStatus  string             `json:"doctor_status"`
	DoctorNotes   string             `json:"doctor_notes,omitempty"`
	ReviewedAt    *time.Time         `json:"reviewed_at,omitempty"`
	HasRecording  bool               `json:"has_recording"`
	CreatedAt     time.Time          `json:"created_at"`
}

type RecordingURL struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
