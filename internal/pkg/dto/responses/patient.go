package responses

import "time"

type Patient struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PhoneNumber  string    `json:"phone_number"`
	DiseaseTrack string    `json:"disease_track"`
	EnrolledOn   time.Time `json:"enrolled_on"`
	Active       bool      `json:"active"`
}
