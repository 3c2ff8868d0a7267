package patients

import (
	"context"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/dto/responses"
)

type PatientUsecase interface {
	// Enroll registers a patient for daily check-ins. Enrolling an already active phone
	// number returns the existing patient instead of creating a duplicate.
	Enroll(ctx context.Context, request *requests.EnrollPatient) (*responses.Patient, bool, error)
	ListActive(ctx context.Context) ([]responses.Patient, error)
	GetByID(ctx context.Context, patientID string) (*responses.Patient, error)
	// Deactivate soft-deletes the patient and removes their check-in history.
	Deactivate(ctx context.Context, patientID string) error
}
