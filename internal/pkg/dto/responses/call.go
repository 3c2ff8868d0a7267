package responses

type CallEnqueued struct {
	RequestID string `json:"request_id"`
	PatientID string `json:"patient_id"`
}
