package surveys

import (
	"context"
	"net/http"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/exceptions"
	"pulsecheck-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// IVRController terminates the telephony vendor's webhooks. Both endpoints answer
// with a SurveyStep the vendor adapter turns into speech and digit collection.
type IVRController struct {
	SurveyUsecase SurveyUsecase
	Log           *zap.Logger
}

func NewIVRController(surveyUsecase SurveyUsecase, logger *zap.Logger) *IVRController {
	return &IVRController{SurveyUsecase: surveyUsecase, Log: logger}
}

// Voice handles POST /ivr/voice, fired when the patient picks up. It opens a fresh
// session and returns the first question of the patient's track.
func (c *IVRController) Voice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	request := new(requests.IVRVoice)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	step, err := c.SurveyUsecase.StartSession(ctx, request.PatientID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.CheckInStartedSuccess, step)
}

// Current handles POST /ivr/current, fired when a digit gather times out and the
// vendor needs the prompt again. It never mutates the session.
func (c *IVRController) Current(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	request := new(requests.IVRVoice)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	step, err := c.SurveyUsecase.CurrentQuestion(ctx, request.PatientID)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.CheckInStepSuccess, step)
}

// Collect handles POST /ivr/collect, fired per keypress. Vendors retry on timeouts,
// so the same digit can arrive more than once; the usecase absorbs the duplicates.
func (c *IVRController) Collect(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	request := new(requests.IVRCollect)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(c.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	step, err := c.SurveyUsecase.SubmitAnswer(ctx, request.PatientID, request.Digits)
	if err != nil {
		utils.BuildErrorResponse(c.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.CheckInStepSuccess, step)
}
