package responses

type Login struct {
	Token string `json:"token"`
}

type RegisterClinician struct {
	ClinicianID string `json:"clinician_id"`
}
