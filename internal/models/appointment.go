package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	DoctorID  primitive.ObjectID `bson:"doctor" json:"doctor"`
	Date      time.Time          `bson:"date" json:"date"`
	Time      string             `bson:"time" json:"time"` // slot label, e.g. "10:00 AM"
	Reason    string             `bson:"reason" json:"reason"`
	Reports   []Report           `bson:"reports,omitempty" json:"reports,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Report is an opaque reference to an uploaded document.
type Report struct {
	Filename string `bson:"filename" json:"filename"`
	Path     string `bson:"path" json:"path"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// DoctorSummary carries the booking-relevant slice of a doctor profile that
// gets attached to appointment responses.
type DoctorSummary struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Name            string             `bson:"name,omitempty" json:"name,omitempty"`
	Specialization  string             `bson:"specialization" json:"specialization"`
	ConsultationFee float64            `bson:"consultationFee" json:"consultationFee"`
}

// AppointmentDetail is the read-enriched appointment: the record plus the
// referenced doctor (and, for admin listings, the owning user).
type AppointmentDetail struct {
	Appointment `bson:",inline"`
	Doctor      *DoctorSummary `bson:"doctorInfo,omitempty" json:"doctorInfo,omitempty"`
	User        *UserSummary   `bson:"userInfo,omitempty" json:"userInfo,omitempty"`
}
