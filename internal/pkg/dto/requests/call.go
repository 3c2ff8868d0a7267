package requests

// CallRequest is the payload pushed onto the dial-out queue. The external dialer owns
// call placement; this service only schedules.
type CallRequest struct {
	RequestID   string `json:"request_id"`
	PatientID   string `json:"patient_id"`
	PhoneNumber string `json:"phone_number"`
	FailedCount int    `json:"failed_count"`
}
