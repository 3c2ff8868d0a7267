package patients

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

type PatientController struct {
	PatientUsecase PatientUsecase
	Log            *zap.Logger
}

func NewPatientController(patientUsecase PatientUsecase, logger *zap.Logger) *PatientController {
	return &PatientController{PatientUsecase: patientUsecase, Log: logger}
}

// Enroll handles POST /patients. Re-enrolling an active phone number answers 200 with
// the existing patient instead of 201.
func (c *PatientController) Enroll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	request := new(requests.EnrollPatient)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	patient, created, err := c.PatientUsecase.Enroll(ctx, request)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}

	statusCode := http.StatusOK
	if created {
		statusCode = http.StatusCreated
	}
	utils.BuildSuccessResponse(w, statusCode, constvars.PatientEnrolledSuccess, patient)
}

// ListActive handles GET /patients.
func (c *PatientController) ListActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	patients, err := c.PatientUsecase.ListActive(ctx)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.PatientListSuccess, patients)
}

// GetByID handles GET /patients/{patient_id}.
func (c *PatientController) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	patientID := chi.URLParam(r, "patient_id")
	if patientID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamIDValidation(nil, "patient_id"))
		return
	}

	patient, err := c.PatientUsecase.GetByID(ctx, patientID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.PatientDetailSuccess, patient)
}

// Deactivate handles DELETE /patients/{patient_id}.
func (c *PatientController) Deactivate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	patientID := chi.URLParam(r, "patient_id")
	if patientID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamIDValidation(nil, "patient_id"))
		return
	}

	if err := c.PatientUsecase.Deactivate(ctx, patientID); err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.PatientDeactivatedSuccess, nil)
}
