package calls

import (
	"context"
	"net/http"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/exceptions"
	"pulsecheck-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CallController struct {
	CallUsecase CallUsecase
	Log         *zap.Logger
}

func NewCallController(callUsecase CallUsecase, logger *zap.Logger) *CallController {
	return &CallController{CallUsecase: callUsecase, Log: logger}
}

// EnqueueCall handles POST /calls/{patient_id}, a manual dial-out outside the daily
// schedule.
func (c *CallController) EnqueueCall(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	patientID := chi.URLParam(r, "patient_id")
	if patientID == "" {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrURLParamIDValidation(nil, "patient_id"))
		return
	}

	result, err := c.CallUsecase.EnqueueCall(ctx, patientID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusAccepted, constvars.CallEnqueuedSuccess, result)
}
