package auth

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

type clinicianMongoRepository struct {
	Collection *mongo.Collection
}

func NewClinicianMongoRepository(db *mongo.Database) contracts.ClinicianRepository {
	return &clinicianMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionClinicians),
	}
}

type clinicianDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *clinicianDocument) toModel() *models.Clinician {
	return &models.Clinician{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		TimeModel: models.TimeModel{CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt},
	}
}

func (r *clinicianMongoRepository) CreateClinician(ctx context.Context, clinician *models.Clinician) (string, error) {
	doc := &clinicianDocument{
		Name:      clinician.Name,
		Email:     clinician.Email,
		Password:  clinician.Password,
		CreatedAt: clinician.CreatedAt,
		UpdatedAt: clinician.UpdatedAt,
	}
	result, err := r.Collection.InsertOne(ctx, doc)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", exceptions.ErrMongoDBNotObjectID(nil)
	}
	return objectID.Hex(), nil
}

func (r *clinicianMongoRepository) FindByEmail(ctx context.Context, email string) (*models.Clinician, error) {
	var doc clinicianDocument
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return doc.toModel(), nil
}

func (r *clinicianMongoRepository) FindByID(ctx context.Context, clinicianID string) (*models.Clinician, error) {
	objectID, err := primitive.ObjectIDFromHex(clinicianID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var doc clinicianDocument
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return doc.toModel(), nil
}
