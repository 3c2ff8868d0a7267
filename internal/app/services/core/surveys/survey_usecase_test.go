package surveys

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"pulsecheck-service/internal/app/config"
	"pulsecheck-service/internal/app/contracts"
	"pulsecheck-service/internal/app/models"
	"pulsecheck-service/internal/app/services/core/scoring"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/dto/responses"
	"pulsecheck-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessionRepo struct {
	sessions      map[string]*models.SurveySession
	nextID        int
	finalizeCalls int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.SurveySession{}}
}

func (r *fakeSessionRepo) CreateSession(_ context.Context, session *models.SurveySession) (string, error) {
	r.nextID++
	id := fmt.Sprintf("sess-%d", r.nextID)
	stored := *session
	stored.ID = id
	stored.Answers = copyAnswers(session.Answers)
	r.sessions[id] = &stored
	return id, nil
}

func (r *fakeSessionRepo) FindByID(_ context.Context, sessionID string) (*models.SurveySession, error) {
	stored, ok := r.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	out := *stored
	out.Answers = copyAnswers(stored.Answers)
	return &out, nil
}

func (r *fakeSessionRepo) FindLatestByPatientID(_ context.Context, patientID string) (*models.SurveySession, error) {
	var latest *models.SurveySession
	for _, s := range r.sessions {
		if s.PatientID != patientID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	out := *latest
	out.Answers = copyAnswers(latest.Answers)
	return &out, nil
}

func (r *fakeSessionRepo) ListByPatientID(_ context.Context, patientID string) ([]models.SurveySession, error) {
	var out []models.SurveySession
	for _, s := range r.sessions {
		if s.PatientID == patientID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) AdvanceCursor(_ context.Context, sessionID string, fromCursor int, field, answer string) (bool, error) {
	stored, ok := r.sessions[sessionID]
	if !ok || stored.Cursor != fromCursor {
		return false, nil
	}
	if stored.Answers == nil {
		stored.Answers = map[string]string{}
	}
	stored.Answers[field] = answer
	stored.Cursor++
	return true, nil
}

func (r *fakeSessionRepo) FinalizeIfUnscored(_ context.Context, sessionID string, riskScore float64, contributions map[string]float64) (bool, error) {
	stored, ok := r.sessions[sessionID]
	if !ok || stored.RiskScore != nil {
		return false, nil
	}
	r.finalizeCalls++
	score := riskScore
	stored.RiskScore = &score
	stored.Contributions = contributions
	return true, nil
}

func (r *fakeSessionRepo) UpdateReview(_ context.Context, sessionID, status, notes string, reviewedAt time.Time) error {
	stored, ok := r.sessions[sessionID]
	if !ok {
		return exceptions.ErrCheckInNotFound(nil)
	}
	stored.DoctorStatus = status
	stored.DoctorNotes = notes
	at := reviewedAt
	stored.ReviewedAt = &at
	return nil
}

func (r *fakeSessionRepo) SetRecordingObject(_ context.Context, sessionID, objectName string) error {
	stored, ok := r.sessions[sessionID]
	if !ok {
		return exceptions.ErrCheckInNotFound(nil)
	}
	stored.RecordingObject = objectName
	return nil
}

func (r *fakeSessionRepo) DeleteByPatientID(_ context.Context, patientID string) error {
	for id, s := range r.sessions {
		if s.PatientID == patientID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func copyAnswers(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type fakePatientRepo struct {
	patients map[string]*models.Patient
}

func (r *fakePatientRepo) CreatePatient(_ context.Context, _ *models.Patient) (string, error) {
	return "", nil
}

func (r *fakePatientRepo) FindByID(_ context.Context, patientID string) (*models.Patient, error) {
	return r.patients[patientID], nil
}

func (r *fakePatientRepo) FindByPhoneNumber(_ context.Context, _ string) (*models.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) FindActive(_ context.Context) ([]models.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) FindActiveEnrolledAfter(_ context.Context, _ time.Time) ([]models.Patient, error) {
	return nil, nil
}

func (r *fakePatientRepo) Deactivate(_ context.Context, _ string) error { return nil }

type fakeRedis struct {
	values map[string]string
}

func newFakeRedis() *fakeRedis { return &fakeRedis{values: map[string]string{}} }

func (r *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	r.values[key] = fmt.Sprint(value)
	return nil
}

func (r *fakeRedis) Get(_ context.Context, key string) (string, error) {
	return r.values[key], nil
}

func (r *fakeRedis) Delete(_ context.Context, key string) error {
	delete(r.values, key)
	return nil
}

func (r *fakeRedis) TrySetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	if _, exists := r.values[key]; exists {
		return false, nil
	}
	r.values[key] = fmt.Sprint(value)
	return true, nil
}

type fakeLocker struct{}

func (fakeLocker) TryLock(_ context.Context, _ string, _ time.Duration) (bool, string, error) {
	return true, "lock-value", nil
}

func (fakeLocker) Unlock(_ context.Context, _, _ string) error { return nil }

type fakeMailer struct {
	sent []*requests.EmailPayload
}

func (m *fakeMailer) SendEmail(_ context.Context, request *requests.EmailPayload) error {
	m.sent = append(m.sent, request)
	return nil
}

func (m *fakeMailer) SendEmailDirect(_, _, _ string) error { return nil }

type fakeStorage struct {
	uploaded map[string]string
}

func (s *fakeStorage) UploadFile(_ context.Context, _ io.Reader, _ *multipart.FileHeader, bucketName, objectName string) (string, error) {
	if s.uploaded == nil {
		s.uploaded = map[string]string{}
	}
	s.uploaded[objectName] = bucketName
	return objectName, nil
}

func (s *fakeStorage) PresignedURL(_ context.Context, _, objectName string, _ time.Duration) (string, error) {
	return "https://storage.test/" + objectName, nil
}

type emptyCatalog struct{}

func (emptyCatalog) QuestionsFor(_ scoring.DiseaseTrack) []scoring.Question { return nil }

type surveyFixture struct {
	usecase  SurveyUsecase
	sessions *fakeSessionRepo
	patients *fakePatientRepo
	mailer   *fakeMailer
	storage  *fakeStorage
}

func newSurveyFixture(t *testing.T, catalog QuestionCatalog, patients ...*models.Patient) *surveyFixture {
	t.Helper()

	patientRepo := &fakePatientRepo{patients: map[string]*models.Patient{}}
	for _, p := range patients {
		patientRepo.patients[p.ID] = p
	}

	sessionRepo := newFakeSessionRepo()
	mailer := &fakeMailer{}
	storage := &fakeStorage{}
	internalConfig := &config.InternalConfig{
		IVR:      config.IVR{SessionCacheTTLInMinute: 30},
		Alerting: config.Alerting{RiskThreshold: 70, RecipientEmail: "oncall@clinic.test"},
	}

	usecase := NewSurveyUsecase(
		sessionRepo,
		patientRepo,
		newFakeRedis(),
		fakeLocker{},
		mailer,
		storage,
		catalog,
		internalConfig,
		"call-recordings",
		zap.NewNop(),
	)
	return &surveyFixture{
		usecase:  usecase,
		sessions: sessionRepo,
		patients: patientRepo,
		mailer:   mailer,
		storage:  storage,
	}
}

func cardioPatient() *models.Patient {
	return &models.Patient{
		ID:           "patient-1",
		Name:         "Test Patient",
		PhoneNumber:  "+15550001111",
		DiseaseTrack: string(scoring.TrackCardiovascular),
		Active:       true,
	}
}

func TestSurveyUsecase_StartSession(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the first question of the patient's track", func(t *testing.T) {
		f := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())

		step, err := f.usecase.StartSession(ctx, "patient-1")
		require.NoError(t, err)
		assert.Equal(t, responses.StepNextQuestion, step.Result)
		require.NotNil(t, step.Question)
		assert.Equal(t, "chest_discomfort", step.Question.Field)
		assert.True(t, step.Gather)
	})

	t.Run("unknown patient is rejected", func(t *testing.T) {
		f := newSurveyFixture(t, scoring.Catalog{})

		_, err := f.usecase.StartSession(ctx, "missing")
		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
	})

	t.Run("deactivated patient is rejected", func(t *testing.T) {
		patient := cardioPatient()
		patient.Active = false
		f := newSurveyFixture(t, scoring.Catalog{}, patient)

		_, err := f.usecase.StartSession(ctx, "patient-1")
		require.Error(t, err)
	})

	t.Run("empty question sequence completes immediately with a score", func(t *testing.T) {
		f := newSurveyFixture(t, emptyCatalog{}, cardioPatient())

		step, err := f.usecase.StartSession(ctx, "patient-1")
		require.NoError(t, err)
		assert.Equal(t, responses.StepComplete, step.Result)
		assert.False(t, step.Gather)
		require.NotNil(t, step.RiskScore)
		assert.Equal(t, 0.0, *step.RiskScore)
		assert.Equal(t, 1, f.sessions.finalizeCalls)
	})
}

func TestSurveyUsecase_CurrentQuestion(t *testing.T) {
	ctx := context.Background()

	f := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())
	_, err := f.usecase.StartSession(ctx, "patient-1")
	require.NoError(t, err)

	t.Run("repeats the pending question without mutating state", func(t *testing.T) {
		step, err := f.usecase.CurrentQuestion(ctx, "patient-1")
		require.NoError(t, err)
		assert.Equal(t, responses.StepNextQuestion, step.Result)
		assert.Equal(t, "chest_discomfort", step.Question.Field)

		again, err := f.usecase.CurrentQuestion(ctx, "patient-1")
		require.NoError(t, err)
		assert.Equal(t, step.Question.Field, again.Question.Field)
	})

	t.Run("tracks the cursor after an answer", func(t *testing.T) {
		_, err := f.usecase.SubmitAnswer(ctx, "patient-1", constvars.DTMFNo)
		require.NoError(t, err)

		step, err := f.usecase.CurrentQuestion(ctx, "patient-1")
		require.NoError(t, err)
		assert.Equal(t, "dizziness", step.Question.Field)
	})

	t.Run("patient without any session is rejected", func(t *testing.T) {
		g := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())
		_, err := g.usecase.CurrentQuestion(ctx, "patient-1")
		require.Error(t, err)
	})
}

func TestSurveyUsecase_SubmitAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("unrecognized digit re-asks without consuming the question", func(t *testing.T) {
		f := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())
		_, err := f.usecase.StartSession(ctx, "patient-1")
		require.NoError(t, err)

		step, err := f.usecase.SubmitAnswer(ctx, "patient-1", "9")
		require.NoError(t, err)
		assert.Equal(t, responses.StepAwaitingRetry, step.Result)
		require.NotNil(t, step.Question)
		assert.Equal(t, "chest_discomfort", step.Question.Field)

		// The valid answer afterwards still lands on the same question.
		step, err = f.usecase.SubmitAnswer(ctx, "patient-1", constvars.DTMFYes)
		require.NoError(t, err)
		assert.Equal(t, responses.StepNextQuestion, step.Result)
		assert.Equal(t, "dizziness", step.Question.Field)
	})

	t.Run("completing the track scores exactly once", func(t *testing.T) {
		f := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())
		_, err := f.usecase.StartSession(ctx, "patient-1")
		require.NoError(t, err)

		// Yes to chest discomfort and dizziness, No to the remaining four.
		answers := []string{
			constvars.DTMFYes, constvars.DTMFYes,
			constvars.DTMFNo, constvars.DTMFNo, constvars.DTMFNo,
		}
		for _, digit := range answers {
			step, err := f.usecase.SubmitAnswer(ctx, "patient-1", digit)
			require.NoError(t, err)
			assert.Equal(t, responses.StepNextQuestion, step.Result)
		}

		step, err := f.usecase.SubmitAnswer(ctx, "patient-1", constvars.DTMFNo)
		require.NoError(t, err)
		assert.Equal(t, responses.StepComplete, step.Result)
		require.NotNil(t, step.RiskScore)
		assert.Equal(t, 62.0, *step.RiskScore)
		assert.Equal(t, 1, f.sessions.finalizeCalls)

		stored, err := f.sessions.FindByID(ctx, step.SessionID)
		require.NoError(t, err)
		assert.Len(t, stored.Contributions, 6)
		assert.Equal(t, 0.85, stored.Contributions["chest_discomfort"])
		assert.Equal(t, 0.0, stored.Contributions["leg_swelling"])
	})

	t.Run("extra deliveries after completion never re-score", func(t *testing.T) {
		f := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())
		_, err := f.usecase.StartSession(ctx, "patient-1")
		require.NoError(t, err)

		for i := 0; i < 6; i++ {
			_, err := f.usecase.SubmitAnswer(ctx, "patient-1", constvars.DTMFNo)
			require.NoError(t, err)
		}

		step, err := f.usecase.SubmitAnswer(ctx, "patient-1", constvars.DTMFYes)
		require.NoError(t, err)
		assert.Equal(t, responses.StepComplete, step.Result)
		require.NotNil(t, step.RiskScore)
		assert.Equal(t, 0.0, *step.RiskScore)
		assert.Equal(t, 1, f.sessions.finalizeCalls)
	})

	t.Run("high risk completion sends one alert email", func(t *testing.T) {
		f := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())
		_, err := f.usecase.StartSession(ctx, "patient-1")
		require.NoError(t, err)

		var last *responses.SurveyStep
		for i := 0; i < 6; i++ {
			last, err = f.usecase.SubmitAnswer(ctx, "patient-1", constvars.DTMFYes)
			require.NoError(t, err)
		}

		assert.Equal(t, responses.StepComplete, last.Result)
		require.NotNil(t, last.RiskScore)
		assert.Equal(t, 100.0, *last.RiskScore)
		require.Len(t, f.mailer.sent, 1)
		assert.Equal(t, []string{"oncall@clinic.test"}, f.mailer.sent[0].To)
	})

	t.Run("moderate score stays below the alert threshold", func(t *testing.T) {
		f := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())
		_, err := f.usecase.StartSession(ctx, "patient-1")
		require.NoError(t, err)

		digits := []string{
			constvars.DTMFYes, constvars.DTMFYes,
			constvars.DTMFNo, constvars.DTMFNo, constvars.DTMFNo, constvars.DTMFNo,
		}
		for _, digit := range digits {
			_, err := f.usecase.SubmitAnswer(ctx, "patient-1", digit)
			require.NoError(t, err)
		}

		assert.Empty(t, f.mailer.sent)
	})
}

func TestSurveyUsecase_ReviewCheckIn(t *testing.T) {
	ctx := context.Background()

	f := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())
	start, err := f.usecase.StartSession(ctx, "patient-1")
	require.NoError(t, err)

	t.Run("invalid status is rejected", func(t *testing.T) {
		err := f.usecase.ReviewCheckIn(ctx, start.SessionID, &requests.ReviewCheckIn{DoctorStatus: "Bogus"})
		require.Error(t, err)
	})

	t.Run("review is persisted with a timestamp", func(t *testing.T) {
		err := f.usecase.ReviewCheckIn(ctx, start.SessionID, &requests.ReviewCheckIn{
			DoctorStatus: constvars.DoctorStatusReviewed,
			DoctorNotes:  "stable, follow up next week",
		})
		require.NoError(t, err)

		stored, err := f.sessions.FindByID(ctx, start.SessionID)
		require.NoError(t, err)
		assert.Equal(t, constvars.DoctorStatusReviewed, stored.DoctorStatus)
		require.NotNil(t, stored.ReviewedAt)
	})

	t.Run("unknown check-in is rejected", func(t *testing.T) {
		err := f.usecase.ReviewCheckIn(ctx, "missing", &requests.ReviewCheckIn{
			DoctorStatus: constvars.DoctorStatusReviewed,
		})
		require.Error(t, err)
	})
}

func TestSurveyUsecase_Recordings(t *testing.T) {
	ctx := context.Background()

	t.Run("recording attaches only to a finished check-in", func(t *testing.T) {
		f := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())
		start, err := f.usecase.StartSession(ctx, "patient-1")
		require.NoError(t, err)

		header := &multipart.FileHeader{Filename: "call.wav"}
		err = f.usecase.AttachRecording(ctx, start.SessionID, nil, header)
		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, 409, customErr.StatusCode)

		for i := 0; i < 6; i++ {
			_, err := f.usecase.SubmitAnswer(ctx, "patient-1", constvars.DTMFNo)
			require.NoError(t, err)
		}

		err = f.usecase.AttachRecording(ctx, start.SessionID, nil, header)
		require.NoError(t, err)

		recording, err := f.usecase.RecordingURL(ctx, start.SessionID)
		require.NoError(t, err)
		assert.Contains(t, recording.URL, "call.wav")
	})

	t.Run("missing recording yields not found", func(t *testing.T) {
		f := newSurveyFixture(t, scoring.Catalog{}, cardioPatient())
		start, err := f.usecase.StartSession(ctx, "patient-1")
		require.NoError(t, err)

		_, err = f.usecase.RecordingURL(ctx, start.SessionID)
		require.Error(t, err)
	})
}

var _ contracts.SurveySessionRepository = (*fakeSessionRepo)(nil)
var _ contracts.PatientRepository = (*fakePatientRepo)(nil)
var _ contracts.RedisRepository = (*fakeRedis)(nil)
var _ contracts.LockerService = (fakeLocker{})
var _ contracts.MailerService = (*fakeMailer)(nil)
var _ contracts.Storage = (*fakeStorage)(nil)
