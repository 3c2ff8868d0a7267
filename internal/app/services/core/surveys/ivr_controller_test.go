package surveys

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/dto/responses"
	"pulsecheck-service/internal/pkg/exceptions"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSurveyUsecase struct {
	step *responses.SurveyStep
	err  error

	lastPatientID string
	lastInput     string
}

func (s *stubSurveyUsecase) StartSession(_ context.Context, patientID string) (*responses.SurveyStep, error) {
	s.lastPatientID = patientID
	return s.step, s.err
}

func (s *stubSurveyUsecase) CurrentQuestion(_ context.Context, patientID string) (*responses.SurveyStep, error) {
	s.lastPatientID = patientID
	return s.step, s.err
}

func (s *stubSurveyUsecase) SubmitAnswer(_ context.Context, patientID, rawInput string) (*responses.SurveyStep, error) {
	s.lastPatientID = patientID
	s.lastInput = rawInput
	return s.step, s.err
}

func (s *stubSurveyUsecase) ListCheckIns(_ context.Context, _ string) ([]responses.CheckIn, error) {
	return nil, nil
}

func (s *stubSurveyUsecase) ReviewCheckIn(_ context.Context, _ string, _ *requests.ReviewCheckIn) error {
	return nil
}

func (s *stubSurveyUsecase) AttachRecording(_ context.Context, _ string, _ io.Reader, _ *multipart.FileHeader) error {
	return nil
}

func (s *stubSurveyUsecase) RecordingURL(_ context.Context, _ string) (*responses.RecordingURL, error) {
	return nil, nil
}

func TestIVRController_Voice(t *testing.T) {
	t.Run("answers with the first question", func(t *testing.T) {
		stub := &stubSurveyUsecase{step: &responses.SurveyStep{
			SessionID: "sess-1",
			Result:    responses.StepNextQuestion,
			Question:  &responses.SurveyQuestion{Field: "chest_discomfort", Prompt: "Any chest pain?"},
			Gather:    true,
		}}
		controller := NewIVRController(stub, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/ivr/voice", strings.NewReader(`{"patient_id":"patient-1"}`))
		rec := httptest.NewRecorder()
		controller.Voice(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "patient-1", stub.lastPatientID)

		var envelope struct {
			Success bool                 `json:"success"`
			Data    responses.SurveyStep `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)
		assert.Equal(t, responses.StepNextQuestion, envelope.Data.Result)
		require.NotNil(t, envelope.Data.Question)
		assert.Equal(t, "chest_discomfort", envelope.Data.Question.Field)
	})

	t.Run("missing patient_id fails validation", func(t *testing.T) {
		controller := NewIVRController(&stubSurveyUsecase{}, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/ivr/voice", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		controller.Voice(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("usecase errors keep their status code", func(t *testing.T) {
		stub := &stubSurveyUsecase{err: exceptions.ErrPatientNotFound(nil)}
		controller := NewIVRController(stub, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/ivr/voice", strings.NewReader(`{"patient_id":"missing"}`))
		rec := httptest.NewRecorder()
		controller.Voice(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestIVRController_Collect(t *testing.T) {
	t.Run("forwards the pressed digit", func(t *testing.T) {
		stub := &stubSurveyUsecase{step: &responses.SurveyStep{
			SessionID: "sess-1",
			Result:    responses.StepAwaitingRetry,
			Question:  &responses.SurveyQuestion{Field: "dizziness", Prompt: "Dizzy?"},
			Gather:    true,
		}}
		controller := NewIVRController(stub, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/ivr/collect", strings.NewReader(`{"patient_id":"patient-1","digits":"7"}`))
		rec := httptest.NewRecorder()
		controller.Collect(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "7", stub.lastInput)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		controller := NewIVRController(&stubSurveyUsecase{}, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/ivr/collect", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()
		controller.Collect(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

var _ SurveyUsecase = (*stubSurveyUsecase)(nil)
