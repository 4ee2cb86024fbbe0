package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
)

type ServicesRepo struct {
	col *mongo.Collection
}

func NewServicesRepo(db *mongo.Database) *ServicesRepo {
	return &ServicesRepo{col: db.Collection("services")}
}

func (r *ServicesRepo) Create(ctx context.Context, s *models.Service) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, s)
	return err
}

func (r *ServicesRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	var s models.Service
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ServicesRepo) List(ctx context.Context, includeAll bool) ([]models.Service, error) {
	filter := bson.M{"availability": true}
	if includeAll {
		filter = bson.M{}
	}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	services := make([]models.Service, 0)
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}
