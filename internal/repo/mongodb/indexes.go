package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
)

// EnsureIndexes creates the uniqueness constraints the handlers rely on:
// one account per email, one doctor profile per user, and at most one
// non-cancelled appointment per (doctor, date, time) slot. The partial
// filter keeps cancelled bookings from blocking a slot forever.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("doctors").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("appointments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "doctor", Value: 1},
			{Key: "date", Value: 1},
			{Key: "time", Value: 1},
		},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": bson.A{models.StatusPending, models.StatusConfirmed}},
			}),
	})
	return err
}
