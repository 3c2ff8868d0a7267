package routers

import (
	"pulsecheck-service/internal/app/delivery/http/middlewares"
	"pulsecheck-service/internal/app/services/core/surveys"

	"github.com/go-chi/chi/v5"
)

func attachIVRRoutes(router chi.Router, middlewares *middlewares.Middlewares, ivrController *surveys.IVRController) {
	router.Use(middlewares.IVRAPIKey)
	router.Use(middlewares.IVRRateLimiter)
	router.Post("/voice", ivrController.Voice)
	router.Post("/current", ivrController.Current)
	router.Post("/collect", ivrController.Collect)
}
