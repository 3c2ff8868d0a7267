package auth

import (
	"context"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.RegisterClinician) (*responses.RegisterClinician, error)
	Login(ctx context.Context, request *requests.LoginClinician) (*responses.Login, error)
}
