package surveys

import (
	"context"
	"pulsecheck-service/internal/app/contracts"
	"pulsecheck-service/internal/app/models"
	"pulsecheck-service/internal/pkg/constvars"
	"pulsecheck-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type surveySessionMongoRepository struct {
	Collection *mongo.Collection
}

func NewSurveySessionMongoRepository(db *mongo.Database) contracts.SurveySessionRepository {
	return &surveySessionMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionSurveySessions),
	}
}

// sessionDocument mirrors models.SurveySession with a native ObjectID so inserts and
// filters go through the driver types, while callers only ever see hex strings.
type sessionDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	PatientID       string             `bson:"patientId"`
	DiseaseTrack    string             `bson:"diseaseTrack"`
	Answers         map[string]string  `bson:"answers"`
	Cursor          int                `bson:"cursor"`
	RiskScore       *float64           `bson:"riskScore,omitempty"`
	Contributions   map[string]float64 `bson:"contributions,omitempty"`
	DoctorStatus    string             `bson:"doctorStatus"`
	DoctorNotes     string             `bson:"doctorNotes,omitempty"`
	ReviewedAt      *time.Time         `bson:"reviewedAt,omitempty"`
	RecordingObject string             `bson:"recordingObject,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func toSessionDocument(session *models.SurveySession) *sessionDocument {
	return &sessionDocument{
		PatientID:       session.PatientID,
		DiseaseTrack:    session.DiseaseTrack,
		Answers:         session.Answers,
		Cursor:          session.Cursor,
		RiskScore:       session.RiskScore,
		Contributions:   session.Contributions,
		DoctorStatus:    session.DoctorStatus,
		DoctorNotes:     session.DoctorNotes,
		ReviewedAt:      session.ReviewedAt,
		RecordingObject: session.RecordingObject,
		CreatedAt:       session.CreatedAt,
		UpdatedAt:       session.UpdatedAt,
	}
}

func (d *sessionDocument) toModel() *models.SurveySession {
	return &models.SurveySession{
		ID:              d.ID.Hex(),
		PatientID:       d.PatientID,
		DiseaseTrack:    d.DiseaseTrack,
		Answers:         d.Answers,
		Cursor:          d.Cursor,
		RiskScore:       d.RiskScore,
		Contributions:   d.Contributions,
		DoctorStatus:    d.DoctorStatus,
		DoctorNotes:     d.DoctorNotes,
		ReviewedAt:      d.ReviewedAt,
		RecordingObject: d.RecordingObject,
		TimeModel:       models.TimeModel{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

func (r *surveySessionMongoRepository) CreateSession(ctx context.Context, session *models.SurveySession) (string, error) {
	result, err := r.Collection.InsertOne(ctx, toSessionDocument(session))
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", exceptions.ErrMongoDBNotObjectID(nil)
	}
	return objectID.Hex(), nil
}

func (r *surveySessionMongoRepository) FindByID(ctx context.Context, sessionID string) (*models.SurveySession, error) {
	objectID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var doc sessionDocument
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return doc.toModel(), nil
}

func (r *surveySessionMongoRepository) FindLatestByPatientID(ctx context.Context, patientID string) (*models.SurveySession, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var doc sessionDocument
	err := r.Collection.FindOne(ctx, bson.M{"patientId": patientID}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return doc.toModel(), nil
}

func (r *surveySessionMongoRepository) ListByPatientID(ctx context.Context, patientID string) ([]models.SurveySession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.Collection.Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	sessions := make([]models.SurveySession, 0)
	for cursor.Next(ctx) {
		var doc sessionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		sessions = append(sessions, *doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return sessions, nil
}

func (r *surveySessionMongoRepository) AdvanceCursor(ctx context.Context, sessionID string, fromCursor int, field, answer string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	// The cursor in the filter makes the advance conditional: a redelivered step
	// matches zero documents and reports advanced=false instead of double-writing.
	filter := bson.M{"_id": objectID, "cursor": fromCursor}
	update := bson.M{
		"$set": bson.M{
			"answers." + field: answer,
			"updatedAt":        time.Now(),
		},
		"$inc": bson.M{"cursor": 1},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (r *surveySessionMongoRepository) FinalizeIfUnscored(ctx context.Context, sessionID string, riskScore float64, contributions map[string]float64) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	// Only an unscored session matches, so the score and its breakdown land exactly
	// once no matter how many deliveries race the final step.
	filter := bson.M{"_id": objectID, "riskScore": bson.M{"$exists": false}}
	update := bson.M{
		"$set": bson.M{
			"riskScore":     riskScore,
			"contributions": contributions,
			"updatedAt":     time.Now(),
		},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (r *surveySessionMongoRepository) UpdateReview(ctx context.Context, sessionID, status, notes string, reviewedAt time.Time) error {
	objectID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$set": bson.M{
			"doctorStatus": status,
			"doctorNotes":  notes,
			"reviewedAt":   reviewedAt,
			"updatedAt":    time.Now(),
		},
	}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrCheckInNotFound(nil)
	}
	return nil
}

func (r *surveySessionMongoRepository) SetRecordingObject(ctx context.Context, sessionID, objectName string) error {
	objectID, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$set": bson.M{
			"recordingObject": objectName,
			"updatedAt":       time.Now(),
		},
	}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrCheckInNotFound(nil)
	}
	return nil
}

func (r *surveySessionMongoRepository) DeleteByPatientID(ctx context.Context, patientID string) error {
	_, err := r.Collection.DeleteMany(ctx, bson.M{"patientId": patientID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
