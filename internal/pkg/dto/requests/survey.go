package requests

// IVRVoice is the vendor callback sent when the patient answers the call.
type IVRVoice struct {
	PatientID string `json:"patient_id" validate:"required"`
	CallSID   string `json:"call_sid,omitempty"`
}

// IVRCollect is the vendor callback carrying the digit the patient pressed.
type IVRCollect struct {
	PatientID string `json:"patient_id" validate:"required"`
	Digits    string `json:"digits"`
	CallSID   string `json:"call_sid,omitempty"`
}

type ReviewCheckIn struct {
	DoctorStatus string `json:"doctor_status" validate:"required,oneof=Pending Reviewed Escalate"`
	DoctorNotes  string `json:"doctor_notes" validate:"max=2000"`
}
