package patients

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
)

type patientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Database) contracts.PatientRepository {
	return &patientMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionPatients),
	}
}

type patientDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	PhoneNumber    string             `bson:"phoneNumber"`
	DiseaseTrack   string             `bson:"diseaseTrack"`
	EnrolledOn     time.Time          `bson:"enrolledOn"`
	Active         bool               `bson:"active"`
	DoctorOverride bool               `bson:"doctorOverride"`
	OverrideNotes  string             `bson:"overrideNotes,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func toPatientDocument(patient *models.Patient) *patientDocument {
	return &patientDocument{
		Name:           patient.Name,
		PhoneNumber:    patient.PhoneNumber,
		DiseaseTrack:   patient.DiseaseTrack,
		EnrolledOn:     patient.EnrolledOn,
		Active:         patient.Active,
		DoctorOverride: patient.DoctorOverride,
		OverrideNotes:  patient.OverrideNotes,
		CreatedAt:      patient.CreatedAt,
		UpdatedAt:      patient.UpdatedAt,
	}
}

func (d *patientDocument) toModel() *models.Patient {
	return &models.Patient{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		PhoneNumber:    d.PhoneNumber,
		DiseaseTrack:   d.DiseaseTrack,
		EnrolledOn:     d.EnrolledOn,
		Active:         d.Active,
		DoctorOverride: d.DoctorOverride,
		OverrideNotes:  d.OverrideNotes,
		TimeModel:      models.TimeModel{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

func (r *patientMongoRepository) CreatePatient(ctx context.Context, patient *models.Patient) (string, error) {
	result, err := r.Collection.InsertOne(ctx, toPatientDocument(patient))
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", exceptions.ErrMongoDBNotObjectID(nil)
	}
	return objectID.Hex(), nil
}

func (r *patientMongoRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var doc patientDocument
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return doc.toModel(), nil
}

func (r *patientMongoRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Patient, error) {
	var doc patientDocument
	err := r.Collection.FindOne(ctx, bson.M{"phoneNumber": phoneNumber, "active": true}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return doc.toModel(), nil
}

func (r *patientMongoRepository) FindActive(ctx context.Context) ([]models.Patient, error) {
	return r.findAll(ctx, bson.M{"active": true})
}

func (r *patientMongoRepository) FindActiveEnrolledAfter(ctx context.Context, cutoff time.Time) ([]models.Patient, error) {
	return r.findAll(ctx, bson.M{"active": true, "enrolledOn": bson.M{"$gte": cutoff}})
}

func (r *patientMongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.Patient, error) {
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	patients := make([]models.Patient, 0)
	for cursor.Next(ctx) {
		var doc patientDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, exceptions.ErrMongoDBIterateDocuments(err)
		}
		patients = append(patients, *doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return patients, nil
}

func (r *patientMongoRepository) Deactivate(ctx context.Context, patientID string) error {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$set": bson.M{
			"active":    false,
			"updatedAt": time.Now(),
		},
	}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrPatientNotFound(nil)
	}
	return nil
}
