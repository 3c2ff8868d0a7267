package auth

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
	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	ClinicianRepository contracts.ClinicianRepository
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

func NewAuthUsecase(
	clinicianRepository contracts.ClinicianRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) AuthUsecase {
	return &authUsecase{
		ClinicianRepository: clinicianRepository,
		InternalConfig:      internalConfig,
		Log:                 logger,
	}
}

func (uc *authUsecase) Register(ctx context.Context, request *requests.RegisterClinician) (*responses.RegisterClinician, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	existing, err := uc.ClinicianRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	now := time.Now()
	clinician := &models.Clinician{
		Name:      request.Name,
		Email:     request.Email,
		Password:  string(hashedPassword),
		TimeModel: models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	clinicianID, err := uc.ClinicianRepository.CreateClinician(ctx, clinician)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Register clinician registered",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return &responses.RegisterClinician{ClinicianID: clinicianID}, nil
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginClinician) (*responses.Login, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	clinician, err := uc.ClinicianRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if clinician == nil {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(clinician.Password), []byte(request.Password)); err != nil {
		return nil, exceptions.ErrInvalidUsernameOrPassword(err)
	}

	token, err := utils.GenerateClinicianJWT(clinician.ID, uc.InternalConfig.JWT.Secret, uc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return nil, exceptions.ErrTokenGenerate(err)
	}
	return &responses.Login{Token: token}, nil
}
