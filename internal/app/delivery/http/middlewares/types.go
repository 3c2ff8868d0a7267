package middlewares

import (
	"pulsecheck-service/internal/app/config"

	"go.uber.org/zap"
)

// Middlewares bundles the handler chain pieces the router composes.
type Middlewares struct {
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewMiddlewares(internalConfig *config.InternalConfig, logger *zap.Logger) *Middlewares {
	return &Middlewares{InternalConfig: internalConfig, Log: logger}
}
