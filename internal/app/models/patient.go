package models

import "time"

type Patient struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Name           string    `json:"name" bson:"name"`
	PhoneNumber    string    `json:"phone_number" bson:"phoneNumber"`
	DiseaseTrack   string    `json:"disease_track" bson:"diseaseTrack"`
	EnrolledOn     time.Time `json:"enrolled_on" bson:"enrolledOn"`
	Active         bool      `json:"active" bson:"active"`
	DoctorOverride bool      `json:"doctor_override" bson:"doctorOverride"`
	OverrideNotes  string    `json:"override_notes,omitempty" bson:"overrideNotes,omitempty"`
	TimeModel      `bson:",inline"`
}
