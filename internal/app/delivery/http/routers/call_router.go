package routers

import (
	"pulsecheck-service/internal/app/delivery/http/middlewares"
	"pulsecheck-service/internal/app/services/core/calls"

	"github.com/go-chi/chi/v5"
)

func attachCallRoutes(router chi.Router, middlewares *middlewares.Middlewares, callController *calls.CallController) {
	router.With(middlewares.Authentication).Post("/{patient_id}", callController.EnqueueCall)
}
