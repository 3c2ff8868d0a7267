package patients

import (
	"context"
	"fmt"
	"pulsecheck-service/internal/app/contracts"
	"pulsecheck-service/internal/app/models"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/dto/responses"
	"pulsecheck-service/internal/pkg/exceptions"
	"pulsecheck-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const enrollmentLockTTL = 10 * time.Second

type patientUsecase struct {
	PatientRepository contracts.PatientRepository
	SessionRepository contracts.SurveySessionRepository
	LockerService     contracts.LockerService
	Log               *zap.Logger
}

func NewPatientUsecase(
	patientRepository contracts.PatientRepository,
	sessionRepository contracts.SurveySessionRepository,
	lockerService contracts.LockerService,
	logger *zap.Logger,
) PatientUsecase {
	return &patientUsecase{
		PatientRepository: patientRepository,
		SessionRepository: sessionRepository,
		LockerService:     lockerService,
		Log:               logger,
	}
}

func (uc *patientUsecase) Enroll(ctx context.Context, request *requests.EnrollPatient) (*responses.Patient, bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, false, exceptions.ErrInputValidation(err)
	}

	// The lock narrows the window where two concurrent enrollments of the same number
	// both pass the existence check.
	lockKey := fmt.Sprintf(constvars.RedisKeyEnrollmentLockFormat, request.PhoneNumber)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, enrollmentLockTTL)
	if err != nil {
		uc.Log.Warn("patientUsecase.Enroll lock unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if acquired {
		defer func() {
			if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
				uc.Log.Warn("patientUsecase.Enroll unlock failed",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(unlockErr),
				)
			}
		}()
	}

	existing, err := uc.PatientRepository.FindByPhoneNumber(ctx, request.PhoneNumber)
	if err != nil {
		return nil, false, err
	}
	if existing != nil && existing.Active {
		uc.Log.Info("patientUsecase.Enroll phone number already enrolled",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, existing.ID),
		)
		return toPatientResponse(existing), false, nil
	}

	now := time.Now()
	patient := &models.Patient{
		Name:         request.Name,
		PhoneNumber:  request.PhoneNumber,
		DiseaseTrack: request.DiseaseTrack,
		EnrolledOn:   now,
		Active:       true,
		TimeModel:    models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	patientID, err := uc.PatientRepository.CreatePatient(ctx, patient)
	if err != nil {
		return nil, false, err
	}
	patient.ID = patientID

	uc.Log.Info("patientUsecase.Enroll patient enrolled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingDiseaseTrackKey, patient.DiseaseTrack),
	)
	return toPatientResponse(patient), true, nil
}

func (uc *patientUsecase) ListActive(ctx context.Context) ([]responses.Patient, error) {
	patients, err := uc.PatientRepository.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]responses.Patient, 0, len(patients))
	for i := range patients {
		out = append(out, *toPatientResponse(&patients[i]))
	}
	return out, nil
}

func (uc *patientUsecase) GetByID(ctx context.Context, patientID string) (*responses.Patient, error) {
	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(nil)
	}
	return toPatientResponse(patient), nil
}

func (uc *patientUsecase) Deactivate(ctx context.Context, patientID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return exceptions.ErrPatientNotFound(nil)
	}

	if err := uc.PatientRepository.Deactivate(ctx, patientID); err != nil {
		return err
	}
	if err := uc.SessionRepository.DeleteByPatientID(ctx, patientID); err != nil {
		return err
	}

	uc.Log.Info("patientUsecase.Deactivate patient removed from monitoring",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return nil
}

func toPatientResponse(patient *models.Patient) *responses.Patient {
	return &responses.Patient{
		ID:           patient.ID,
		Name:         patient.Name,
		PhoneNumber:  patient.PhoneNumber,
		DiseaseTrack: patient.DiseaseTrack,
		EnrolledOn:   patient.EnrolledOn,
		Active:       patient.Active,
	}
}
