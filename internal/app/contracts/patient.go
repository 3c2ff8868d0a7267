package contracts

import (
	"context"
	"pulsecheck-service/internal/app/models"
	"time"
)

type PatientRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) (string, error)
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Patient, error)
	FindActive(ctx context.Context) ([]models.Patient, error)
	FindActiveEnrolledAfter(ctx context.Context, cutoff time.Time) ([]models.Patient, error)
	Deactivate(ctx context.Context, patientID string) error
}
