package routers

import (
	"pulsecheck-service/internal/app/delivery/http/middlewares"
	"pulsecheck-service/internal/app/services/core/patients"
	"pulsecheck-service/internal/app/services/core/surveys"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	patientController *patients.PatientController,
	surveyController *surveys.SurveyController,
) {
	router.With(middlewares.Authentication).Post("/", patientController.Enroll)
	router.With(middlewares.Authentication).Get("/", patientController.ListActive)
	router.With(middlewares.Authentication).Get("/{patient_id}", patientController.GetByID)
	router.With(middlewares.Authentication).Delete("/{patient_id}", patientController.Deactivate)
	router.With(middlewares.Authentication).Get("/{patient_id}/check-ins", surveyController.ListCheckIns)
}
