package contracts

import (
	"context"
	"pulsecheck-service/internal/app/models"
)

type ClinicianRepository interface {
	CreateClinician(ctx context.Context, clinician *models.Clinician) (string, error)
	FindByEmail(ctx context.Context, email string) (*models.Clinician, error)
	FindByID(ctx context.Context, clinicianID string) (*models.Clinician, error)
}
