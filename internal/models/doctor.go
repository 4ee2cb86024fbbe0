package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Doctor is the public profile attached to exactly one User account.
type Doctor struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID             primitive.ObjectID `bson:"user" json:"user"`
	Name               string             `bson:"name" json:"name"`
	Specialization     string             `bson:"specialization" json:"specialization"`
	Experience         int                `bson:"experience" json:"experience"`
	Qualification      string             `bson:"qualification" json:"qualification"`
	ConsultationFee    float64            `bson:"consultationFee" json:"consultationFee"`
	AvailableDays      []string           `bson:"availableDays" json:"availableDays"`
	AvailableTimeSlots []string           `bson:"availableTimeSlots" json:"availableTimeSlots"`
	About              string             `bson:"about" json:"about"`
	Rating             float64            `bson:"rating" json:"rating"`
	ReviewsCount       int                `bson:"reviewsCount" json:"reviewsCount"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DoctorWithUser is the read-enriched shape returned by listing endpoints:
// the profile plus the owning user's contact fields.
type DoctorWithUser struct {
	Doctor `bson:",inline"`
	User   *UserSummary `bson:"userInfo,omitempty" json:"userInfo,omitempty"`
}

type UserSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Phone string             `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Availability is the days/slots projection of a doctor profile.
type Availability struct {
	AvailableDays      []string `json:"availableDays"`
	AvailableTimeSlots []string `json:"availableTimeSlots"`
}
