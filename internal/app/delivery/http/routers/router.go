package routers

import (
	"fmt"
	"pulsecheck-service/internal/app/config"
	"pulsecheck-service/internal/app/delivery/http/middlewares"
	"pulsecheck-service/internal/app/services/core/auth"
	"pulsecheck-service/internal/app/services/core/calls"
	"pulsecheck-service/internal/app/services/core/patients"
	"pulsecheck-service/internal/app/services/core/surveys"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	authController *auth.AuthController,
	patientController *patients.PatientController,
	surveyController *surveys.SurveyController,
	ivrController *surveys.IVRController,
	callController *calls.CallController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Api-Key", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestID)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				attachAuthRoutes(r, authController)
			})

			r.Route("/patients", func(r chi.Router) {
				attachPatientRoutes(r, middlewares, patientController, surveyController)
			})

			r.Route("/check-ins", func(r chi.Router) {
				attachCheckInRoutes(r, middlewares, surveyController)
			})

			r.Route("/ivr", func(r chi.Router) {
				attachIVRRoutes(r, middlewares, ivrController)
			})

			r.Route("/calls", func(r chi.Router) {
				attachCallRoutes(r, middlewares, callController)
			})
		})
	})
}
