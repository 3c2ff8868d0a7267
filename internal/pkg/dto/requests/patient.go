package requests

type EnrollPatient struct {
	Name         string `json:"name" validate:"required,min=2,max=100"`
	PhoneNumber  string `json:"phone_number" validate:"required,phone_number"`
	DiseaseTrack string `json:"disease_track" validate:"required,oneof=Cardiovascular Pulmonary General"`
}
