package calls

import (
	"context"
	"pulsecheck-service/internal/app/config"
	"pulsecheck-service/internal/app/contracts"
	"pulsecheck-service/internal/app/models"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/dto/responses"
	"pulsecheck-service/internal/pkg/exceptions"
	"pulsecheck-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type callUsecase struct {
	PatientRepository contracts.PatientRepository
	CallQueueService  contracts.CallQueueService
	InternalConfig    *config.InternalConfig
	DispatchLimiter   *rate.Limiter
	Log               *zap.Logger
}

func NewCallUsecase(
	patientRepository contracts.PatientRepository,
	callQueueService contracts.CallQueueService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) CallUsecase {
	return &callUsecase{
		PatientRepository: patientRepository,
		CallQueueService:  callQueueService,
		InternalConfig:    internalConfig,
		DispatchLimiter:   rate.NewLimiter(rate.Limit(internalConfig.Calls.DispatchRatePerSecond), 1),
		Log:               logger,
	}
}

func (uc *callUsecase) EnqueueCall(ctx context.Context, patientID string) (*responses.CallEnqueued, error) {
	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil || !patient.Active {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	request := uc.buildCallRequest(patient)
	if err := uc.CallQueueService.EnqueueCall(ctx, request); err != nil {
		return nil, err
	}
	return &responses.CallEnqueued{RequestID: request.RequestID, PatientID: patientID}, nil
}

func (uc *callUsecase) DispatchDailyCalls(ctx context.Context) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	cutoff := time.Now().AddDate(0, 0, -uc.InternalConfig.Calls.MonitoringWindowDays)
	patients, err := uc.PatientRepository.FindActiveEnrolledAfter(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for i := range patients {
		if err := uc.DispatchLimiter.Wait(ctx); err != nil {
			return dispatched, err
		}

		request := uc.buildCallRequest(&patients[i])
		if err := uc.CallQueueService.EnqueueCall(ctx, request); err != nil {
			// One broken publish should not starve the rest of the cohort.
			uc.Log.Error("callUsecase.DispatchDailyCalls enqueue failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPatientIDKey, patients[i].ID),
				zap.Error(err),
			)
			continue
		}
		dispatched++
	}

	uc.Log.Info("callUsecase.DispatchDailyCalls finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("dispatched", dispatched),
		zap.Int("eligible", len(patients)),
	)
	return dispatched, nil
}

func (uc *callUsecase) buildCallRequest(patient *models.Patient) *requests.CallRequest {
	return &requests.CallRequest{
		RequestID:   utils.GenerateRequestID(),
		PatientID:   patient.ID,
		PhoneNumber: patient.PhoneNumber,
	}
}
