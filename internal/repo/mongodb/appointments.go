package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
)

type AppointmentsRepo struct {
	col *mongo.Collection
}

func NewAppointmentsRepo(db *mongo.Database) *AppointmentsRepo {
	return &AppointmentsRepo{col: db.Collection("appointments")}
}

// Create relies on the partial unique index over (doctor, date, time) to
// reject a concurrent booking that slipped past the SlotTaken check.
func (r *AppointmentsRepo) Create(ctx context.Context, a *models.Appointment) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return repo.ErrSlotTaken
	}
	return err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var a models.Appointment
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentsRepo) SlotTaken(ctx context.Context, doctorID primitive.ObjectID, date time.Time, slot string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{
		"doctor": doctorID,
		"date":   date,
		"time":   slot,
		"status": bson.M{"$ne": models.StatusCancelled},
	}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *AppointmentsRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.AppointmentDetail, error) {
	return r.aggregateDetails(ctx, bson.M{"user": userID}, false)
}

func (r *AppointmentsRepo) ListAll(ctx context.Context) ([]models.AppointmentDetail, error) {
	return r.aggregateDetails(ctx, bson.M{}, true)
}

// aggregateDetails joins each appointment with its doctor profile, and for
// admin listings with the owning user as well.
func (r *AppointmentsRepo) aggregateDetails(ctx context.Context, filter bson.M, withUser bool) ([]models.AppointmentDetail, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "doctors",
			"localField":   "doctor",
			"foreignField": "_id",
			"as":           "doctorInfo",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$doctorInfo",
			"preserveNullAndEmptyArrays": true,
		}}},
	}
	if withUser {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.M{
				"from":         "users",
				"localField":   "user",
				"foreignField": "_id",
				"as":           "userInfo",
			}}},
			bson.D{{Key: "$unwind", Value: bson.M{
				"path":                       "$userInfo",
				"preserveNullAndEmptyArrays": true,
			}}},
		)
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := make([]models.AppointmentDetail, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *AppointmentsRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Appointment, error) {
	after := options.After
	var a models.Appointment
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repo.ErrNotFound
	}
	// Leaving cancelled puts the document back under the partial unique
	// index; a rebooked slot surfaces as a duplicate key here.
	if mongo.IsDuplicateKeyError(err) {
		return nil, repo.ErrSlotTaken
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"user": userID})
	return err
}

func (r *AppointmentsRepo) CountActiveByDoctor(ctx context.Context, doctorID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{
		"doctor": doctorID,
		"status": bson.M{"$ne": models.StatusCancelled},
	})
}
