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
	"pulsecheck-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const (
	finalizeLockTTL    = 30 * time.Second
	recordingURLExpiry = 15 * time.Minute
)

type surveyUsecase struct {
	SessionRepository contracts.SurveySessionRepository
	PatientRepository contracts.PatientRepository
	RedisRepository   contracts.RedisRepository
	LockerService     contracts.LockerService
	MailerService     contracts.MailerService
	Storage           contracts.Storage
	Catalog           QuestionCatalog
	InternalConfig    *config.InternalConfig
	BucketName        string
	Log               *zap.Logger
}

func NewSurveyUsecase(
	sessionRepository contracts.SurveySessionRepository,
	patientRepository contracts.PatientRepository,
	redisRepository contracts.RedisRepository,
	lockerService contracts.LockerService,
	mailerService contracts.MailerService,
	storage contracts.Storage,
	catalog QuestionCatalog,
	internalConfig *config.InternalConfig,
	bucketName string,
	logger *zap.Logger,
) SurveyUsecase {
	return &surveyUsecase{
		SessionRepository: sessionRepository,
		PatientRepository: patientRepository,
		RedisRepository:   redisRepository,
		LockerService:     lockerService,
		MailerService:     mailerService,
		Storage:           storage,
		Catalog:           catalog,
		InternalConfig:    internalConfig,
		BucketName:        bucketName,
		Log:               logger,
	}
}

func (uc *surveyUsecase) StartSession(ctx context.Context, patientID string) (*responses.SurveyStep, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("surveyUsecase.StartSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	patient, err := uc.PatientRepository.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil || !patient.Active {
		return nil, exceptions.ErrPatientNotFound(nil)
	}

	track, known := scoring.ParseDiseaseTrack(patient.DiseaseTrack)
	if !known {
		uc.Log.Warn("surveyUsecase.StartSession unknown disease track, using fallback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDiseaseTrackKey, patient.DiseaseTrack),
		)
	}
	questions := uc.Catalog.QuestionsFor(track)

	now := time.Now()
	session := &models.SurveySession{
		PatientID:    patientID,
		DiseaseTrack: string(track),
		Answers:      map[string]string{},
		Cursor:       0,
		DoctorStatus: constvars.DoctorStatusPending,
		TimeModel:    models.TimeModel{CreatedAt: now, UpdatedAt: now},
	}
	sessionID, err := uc.SessionRepository.CreateSession(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID
	uc.cacheActiveSession(ctx, patientID, sessionID)

	if len(questions) == 0 {
		return uc.finalizeSession(ctx, track, session)
	}

	return &responses.SurveyStep{
		SessionID: sessionID,
		Result:    responses.StepNextQuestion,
		Question:  questionDTO(questions[0]),
		Gather:    true,
	}, nil
}

func (uc *surveyUsecase) CurrentQuestion(ctx context.Context, patientID string) (*responses.SurveyStep, error) {
	session, err := uc.loadActiveSession(ctx, patientID)
	if err != nil {
		return nil, err
	}

	track, _ := scoring.ParseDiseaseTrack(session.DiseaseTrack)
	questions := uc.Catalog.QuestionsFor(track)
	return uc.stepForState(ctx, track, questions, session)
}

func (uc *surveyUsecase) SubmitAnswer(ctx context.Context, patientID, rawInput string) (*responses.SurveyStep, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	session, err := uc.loadActiveSession(ctx, patientID)
	if err != nil {
		return nil, err
	}

	track, _ := scoring.ParseDiseaseTrack(session.DiseaseTrack)
	questions := uc.Catalog.QuestionsFor(track)

	// Post-completion deliveries never re-score.
	if session.Finalized() || session.Cursor >= len(questions) {
		return uc.stepForState(ctx, track, questions, session)
	}

	answer, valid := parseAnswerToken(rawInput)
	if !valid {
		uc.Log.Info("surveyUsecase.SubmitAnswer unrecognized token, re-asking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Int(constvars.LoggingCursorKey, session.Cursor),
		)
		return &responses.SurveyStep{
			SessionID: session.ID,
			Result:    responses.StepAwaitingRetry,
			Question:  questionDTO(questions[session.Cursor]),
			Gather:    true,
		}, nil
	}

	question := questions[session.Cursor]
	advanced, err := uc.SessionRepository.AdvanceCursor(ctx, session.ID, session.Cursor, question.Field, answer)
	if err != nil {
		return nil, err
	}
	if !advanced {
		// A retried webhook delivered the same step twice; the first delivery won.
		uc.Log.Info("surveyUsecase.SubmitAnswer duplicate step delivery ignored",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Int(constvars.LoggingCursorKey, session.Cursor),
		)
		session, err = uc.SessionRepository.FindByID(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, exceptions.ErrSurveySessionNotFound(nil)
		}
		return uc.stepForState(ctx, track, questions, session)
	}

	session.Answers = withAnswer(session.Answers, question.Field, answer)
	session.Cursor++

	if session.Cursor == len(questions) {
		return uc.finalizeSession(ctx, track, session)
	}

	return &responses.SurveyStep{
		SessionID: session.ID,
		Result:    responses.StepNextQuestion,
		Question:  questionDTO(questions[session.Cursor]),
		Gather:    true,
	}, nil
}

func (uc *surveyUsecase) ListCheckIns(ctx context.Context, patientID string) ([]responses.CheckIn, error) {
	sessions, err := uc.SessionRepository.ListByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	checkIns := make([]responses.CheckIn, 0, len(sessions))
	for i := range sessions {
		checkIns = append(checkIns, toCheckInResponse(&sessions[i]))
	}
	return checkIns, nil
}

func (uc *surveyUsecase) ReviewCheckIn(ctx context.Context, sessionID string, request *requests.ReviewCheckIn) error {
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}

	session, err := uc.SessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return exceptions.ErrCheckInNotFound(nil)
	}

	return uc.SessionRepository.UpdateReview(ctx, sessionID, request.DoctorStatus, request.DoctorNotes, time.Now())
}

func (uc *surveyUsecase) AttachRecording(ctx context.Context, sessionID string, file io.Reader, fileHeader *multipart.FileHeader) error {
	session, err := uc.SessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return exceptions.ErrCheckInNotFound(nil)
	}
	if !session.Finalized() {
		return exceptions.ErrCheckInNotCompleted(nil)
	}

	objectName := fmt.Sprintf("%s/%s", session.ID, fileHeader.Filename)
	if _, err := uc.Storage.UploadFile(ctx, file, fileHeader, uc.BucketName, objectName); err != nil {
		return err
	}

	return uc.SessionRepository.SetRecordingObject(ctx, sessionID, objectName)
}

func (uc *surveyUsecase) RecordingURL(ctx context.Context, sessionID string) (*responses.RecordingURL, error) {
	session, err := uc.SessionRepository.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrCheckInNotFound(nil)
	}
	if session.RecordingObject == "" {
		return nil, exceptions.ErrRecordingNotFound(nil)
	}

	url, err := uc.Storage.PresignedURL(ctx, uc.BucketName, session.RecordingObject, recordingURLExpiry)
	if err != nil {
		return nil, err
	}
	return &responses.RecordingURL{
		URL:       url,
		ExpiresAt: time.Now().Add(recordingURLExpiry),
	}, nil
}

// stepForState rebuilds the step response from persisted state. Sessions whose cursor
// already passed the last question are finalized here as well, covering a crash between
// the cursor advance and the score write.
func (uc *surveyUsecase) stepForState(ctx context.Context, track scoring.DiseaseTrack, questions []scoring.Question, session *models.SurveySession) (*responses.SurveyStep, error) {
	if session.Finalized() {
		return completeStep(session), nil
	}
	if session.Cursor >= len(questions) {
		return uc.finalizeSession(ctx, track, session)
	}
	return &responses.SurveyStep{
		SessionID: session.ID,
		Result:    responses.StepNextQuestion,
		Question:  questionDTO(questions[session.Cursor]),
		Gather:    true,
	}, nil
}

// finalizeSession scores the completed answer set and persists the result at most once.
// The redis lock keeps concurrent deliveries from scoring in parallel; the conditional
// repository write is the authoritative guard, so a lock failure only costs duplicate
// computation, never a duplicate score.
func (uc *surveyUsecase) finalizeSession(ctx context.Context, track scoring.DiseaseTrack, session *models.SurveySession) (*responses.SurveyStep, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	lockKey := fmt.Sprintf(constvars.RedisKeyFinalizeLockFormat, session.ID)
	acquired, lockValue, err := uc.LockerService.TryLock(ctx, lockKey, finalizeLockTTL)
	if err != nil {
		uc.Log.Warn("surveyUsecase.finalizeSession lock unavailable, relying on conditional write",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if acquired {
		defer func() {
			if unlockErr := uc.LockerService.Unlock(ctx, lockKey, lockValue); unlockErr != nil {
				uc.Log.Warn("surveyUsecase.finalizeSession unlock failed",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(unlockErr),
				)
			}
		}()
	}

	riskScore, contributions := scoring.Score(track, session.Answers)
	wrote, err := uc.SessionRepository.FinalizeIfUnscored(ctx, session.ID, riskScore, contributions)
	if err != nil {
		return nil, err
	}

	if wrote {
		session.RiskScore = &riskScore
		session.Contributions = contributions
		uc.Log.Info("surveyUsecase.finalizeSession scored session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.String(constvars.LoggingDiseaseTrackKey, session.DiseaseTrack),
			zap.Float64(constvars.LoggingRiskScoreKey, riskScore),
		)
		uc.alertIfHighRisk(ctx, session, riskScore)
	} else {
		// Another delivery finalized first; report its result untouched.
		stored, err := uc.SessionRepository.FindByID(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			session = stored
		}
	}

	uc.dropActiveSession(ctx, session.PatientID)
	return completeStep(session), nil
}

func (uc *surveyUsecase) alertIfHighRisk(ctx context.Context, session *models.SurveySession, riskScore float64) {
	if riskScore < uc.InternalConfig.Alerting.RiskThreshold || uc.InternalConfig.Alerting.RecipientEmail == "" {
		return
	}

	payload := &requests.EmailPayload{
		To:      []string{uc.InternalConfig.Alerting.RecipientEmail},
		Subject: fmt.Sprintf("High-risk check-in for patient %s", session.PatientID),
		Body: fmt.Sprintf(
			"Patient %s finished a %s check-in with a risk score of %.2f%%. Please review the dashboard.",
			session.PatientID, session.DiseaseTrack, riskScore,
		),
	}
	if err := uc.MailerService.SendEmail(ctx, payload); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("surveyUsecase.alertIfHighRisk failed to enqueue alert email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, session.ID),
			zap.Error(err),
		)
	}
}

// loadActiveSession resolves the session the next answer belongs to: the cached active
// session id when present, otherwise the latest session by creation time.
func (uc *surveyUsecase) loadActiveSession(ctx context.Context, patientID string) (*models.SurveySession, error) {
	cacheKey := fmt.Sprintf(constvars.RedisKeyActiveSessionFormat, patientID)
	cached, err := uc.RedisRepository.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		sessionID := unquote(cached)
		session, err := uc.SessionRepository.FindByID(ctx, sessionID)
		if err == nil && session != nil {
			return session, nil
		}
	}

	session, err := uc.SessionRepository.FindLatestByPatientID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrSurveySessionNotFound(nil)
	}
	return session, nil
}

func (uc *surveyUsecase) cacheActiveSession(ctx context.Context, patientID, sessionID string) {
	cacheKey := fmt.Sprintf(constvars.RedisKeyActiveSessionFormat, patientID)
	ttl := time.Duration(uc.InternalConfig.IVR.SessionCacheTTLInMinute) * time.Minute
	if err := uc.RedisRepository.Set(ctx, cacheKey, sessionID, ttl); err != nil {
		uc.Log.Warn("surveyUsecase.cacheActiveSession failed",
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
}

func (uc *surveyUsecase) dropActiveSession(ctx context.Context, patientID string) {
	cacheKey := fmt.Sprintf(constvars.RedisKeyActiveSessionFormat, patientID)
	if err := uc.RedisRepository.Delete(ctx, cacheKey); err != nil {
		uc.Log.Warn("surveyUsecase.dropActiveSession failed",
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
}

func parseAnswerToken(rawInput string) (string, bool) {
	switch rawInput {
	case constvars.DTMFYes:
		return scoring.AnswerYes, true
	case constvars.DTMFNo:
		return scoring.AnswerNo, true
	default:
		return "", false
	}
}

// withAnswer returns a fresh map so persisted snapshots are never mutated in place.
func withAnswer(answers map[string]string, field, answer string) map[string]string {
	next := make(map[string]string, len(answers)+1)
	for k, v := range answers {
		next[k] = v
	}
	next[field] = answer
	return next
}

func questionDTO(question scoring.Question) *responses.SurveyQuestion {
	return &responses.SurveyQuestion{Field: question.Field, Prompt: question.Prompt}
}

func completeStep(session *models.SurveySession) *responses.SurveyStep {
	return &responses.SurveyStep{
		SessionID: session.ID,
		Result:    responses.StepComplete,
		Gather:    false,
		RiskScore: session.RiskScore,
	}
}

func toCheckInResponse(session *models.SurveySession) responses.CheckIn {
	return responses.CheckIn{
		ID:            session.ID,
		PatientID:     session.PatientID,
		DiseaseTrack:  session.DiseaseTrack,
		Answers:       session.Answers,
		Cursor:        session.Cursor,
		Completed:     session.Finalized(),
		RiskScore:     session.RiskScore,
		Contributions: session.Contributions,
		DoctorStatus:  session.DoctorStatus,
		DoctorNotes:   session.DoctorNotes,
		ReviewedAt:    session.ReviewedAt,
		HasRecording:  session.RecordingObject != "",
		CreatedAt:     session.CreatedAt,
	}
}

// Redis values are stored JSON-encoded, so plain strings come back quoted.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
