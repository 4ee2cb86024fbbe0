package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
)

type DoctorsRepo struct {
	col *mongo.Collection
}

func NewDoctorsRepo(db *mongo.Database) *DoctorsRepo {
	return &DoctorsRepo{col: db.Collection("doctors")}
}

func (r *DoctorsRepo) Create(ctx context.Context, d *models.Doctor) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, d)
	if mongo.IsDuplicateKeyError(err) {
		return repo.ErrDoctorProfileExists
	}
	return err
}

func (r *DoctorsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	var d models.Doctor
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorsRepo) ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	var d models.Doctor
	err := r.col.FindOne(ctx, bson.M{"user": userID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorsRepo) List(ctx context.Context) ([]models.DoctorWithUser, error) {
	sort := bson.D{{Key: "rating", Value: -1}, {Key: "reviewsCount", Value: -1}}
	return r.aggregateWithUser(ctx, bson.M{}, sort)
}

func (r *DoctorsRepo) BySpecialization(ctx context.Context, specialization string) ([]models.DoctorWithUser, error) {
	filter := bson.M{"specialization": bson.M{
		"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(specialization), Options: "i"},
	}}
	sort := bson.D{{Key: "rating", Value: -1}}
	return r.aggregateWithUser(ctx, filter, sort)
}

// aggregateWithUser joins each profile with its owning user record, mirroring
// the populate('user', 'name email phone') shape the client expects.
func (r *DoctorsRepo) aggregateWithUser(ctx context.Context, filter bson.M, sort bson.D) ([]models.DoctorWithUser, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: sort}},
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
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	doctors := make([]models.DoctorWithUser, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *DoctorsRepo) Update(ctx context.Context, d *models.Doctor) error {
	d.UpdatedAt = time.Now().UTC()

	result, err := r.col.UpdateOne(ctx, bson.M{"_id": d.ID}, bson.M{"$set": bson.M{
		"name":               d.Name,
		"specialization":     d.Specialization,
		"experience":         d.Experience,
		"qualification":      d.Qualification,
		"consultationFee":    d.ConsultationFee,
		"availableDays":      d.AvailableDays,
		"availableTimeSlots": d.AvailableTimeSlots,
		"about":              d.About,
		"rating":             d.Rating,
		"reviewsCount":       d.ReviewsCount,
		"updatedAt":          d.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *DoctorsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}
