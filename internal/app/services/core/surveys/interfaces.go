package surveys

import (
	"context"
	"io"
	"mime/multipart"
	"pulsecheck-service/internal/app/services/core/scoring"
	"pulsecheck-service/internal/pkg/dto/requests"
	"pulsecheck-service/internal/pkg/dto/responses"
)

// QuestionCatalog resolves a disease track to its ordered question sequence.
type QuestionCatalog interface {
	QuestionsFor(track scoring.DiseaseTrack) []scoring.Question
}

type SurveyUsecase interface {
	StartSession(ctx context.Context, patientID string) (*responses.SurveyStep, error)
	CurrentQuestion(ctx context.Context, patientID string) (*responses.SurveyStep, error)
	SubmitAnswer(ctx context.Context, patientID, rawInput string) (*responses.SurveyStep, error)
	ListCheckIns(ctx context.Context, patientID string) ([]responses.CheckIn, error)
	ReviewCheckIn(ctx context.Context, sessionID string, request *requests.ReviewCheckIn) error
	AttachRecording(ctx context.Context, sessionID string, file io.Reader, fileHeader *multipart.FileHeader) error
	RecordingURL(ctx context.Context, sessionID string) (*responses.RecordingURL, error)
}
