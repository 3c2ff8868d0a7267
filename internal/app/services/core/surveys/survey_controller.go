package surveys

import (
	"context"
	"net/http"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/exceptions"
	"pulsecheck-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const maxRecordingUploadBytes = 32 << 20

type SurveyController struct {
	SurveyUsecase SurveyUsecase
	Log           *zap.Logger
}

func NewSurveyController(surveyUsecase SurveyUsecase, logger *zap.Logger) *SurveyController {
	return &SurveyController{SurveyUsecase: surveyUsecase, Log: logger}
}

// ListCheckIns handles GET /patients/{patient_id}/check-ins.
func (c *SurveyController) ListCheckIns(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	patientID := chi.URLParam(r, "patient_id")
	if patientID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamIDValidation(nil, "patient_id"))
		return
	}

	checkIns, err := c.SurveyUsecase.ListCheckIns(ctx, patientID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.CheckInListSuccess, checkIns)
}

// ReviewCheckIn handles PATCH /check-ins/{checkin_id}/review.
func (c *SurveyController) ReviewCheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	checkInID := chi.URLParam(r, "checkin_id")
	if checkInID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamIDValidation(nil, "checkin_id"))
		return
	}

	request := new(requests.ReviewCheckIn)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := c.SurveyUsecase.ReviewCheckIn(ctx, checkInID, request); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.CheckInReviewSuccess, nil)
}

// UploadRecording handles POST /check-ins/{checkin_id}/recording.
func (c *SurveyController) UploadRecording(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	checkInID := chi.URLParam(r, "checkin_id")
	if checkInID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamIDValidation(nil, "checkin_id"))
		return
	}

	if err := r.ParseMultipartForm(maxRecordingUploadBytes); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	file, fileHeader, err := r.FormFile("recording")
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	if err := c.SurveyUsecase.AttachRecording(ctx, checkInID, file, fileHeader); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusCreated, constvars.RecordingUploadSuccess, nil)
}

// GetRecordingURL handles GET /check-ins/{checkin_id}/recording.
func (c *SurveyController) GetRecordingURL(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	checkInID := chi.URLParam(r, "checkin_id")
	if checkInID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamIDValidation(nil, "checkin_id"))
		return
	}

	recording, err := c.SurveyUsecase.RecordingURL(ctx, checkInID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.RecordingURLSuccess, recording)
}
