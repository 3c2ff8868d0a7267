package routers

import (
	"pulsecheck-service/internal/app/delivery/http/middlewares"
	"pulsecheck-service/internal/app/services/core/surveys"

	"github.com/go-chi/chi/v5"
)

func attachCheckInRoutes(router chi.Router, middlewares *middlewares.Middlewares, surveyController *surveys.SurveyController) {
	router.With(middlewares.Authentication).Patch("/{checkin_id}/review", surveyController.ReviewCheckIn)
	router.With(middlewares.Authentication).Get("/{checkin_id}/recording", surveyController.GetRecordingURL)
	router.With(middlewares.IVRAPIKey).Post("/{checkin_id}/recording", surveyController.UploadRecording)
}
