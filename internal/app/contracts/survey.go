package contracts

import (
	"context"
	"pulsecheck-service/internal/app/models"
	"time"
)

type SurveySessionRepository interface {
	CreateSession(ctx context.Context, session *models.SurveySession) (string, error)
	FindByID(ctx context.Context, sessionID string) (*models.SurveySession, error)
	// FindLatestByPatientID returns the most recently created session for the patient,
	// or nil when the patient has never been called.
	FindLatestByPatientID(ctx context.Context, patientID string) (*models.SurveySession, error)
	ListByPatientID(ctx context.Context, patientID string) ([]models.SurveySession, error)
	// AdvanceCursor records one answer and moves the cursor forward, but only if the
	// stored cursor still equals fromCursor. Returns false when another delivery of the
	// same step already advanced it.
	AdvanceCursor(ctx context.Context, sessionID string, fromCursor int, field, answer string) (bool, error)
	// FinalizeIfUnscored writes riskScore and contributions in one update, but only if
	// the session has not been scored yet. Returns false when already finalized.
	FinalizeIfUnscored(ctx context.Context, sessionID string, riskScore float64, contributions map[string]float64) (bool, error)
	UpdateReview(ctx context.Context, sessionID, status, notes string, reviewedAt time.Time) error
	SetRecordingObject(ctx context.Context, sessionID, objectName string) error
	DeleteByPatientID(ctx context.Context, patientID string) error
}
