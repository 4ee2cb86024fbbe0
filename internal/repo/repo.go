// Package repo defines the storage contracts the handlers depend on.
// Implementations live in repo/mongodb (production) and repo/memory (tests).
package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrEmailTaken          = errors.New("email already exists")
	ErrDoctorProfileExists = errors.New("doctor profile already exists for this user")
	ErrSlotTaken           = errors.New("this time slot is already booked")
	ErrDoctorHasBookings   = errors.New("doctor has active appointments")
)

type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Doctors interface {
	Create(ctx context.Context, d *models.Doctor) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
	// List returns profiles sorted by rating desc, then reviewsCount desc.
	List(ctx context.Context) ([]models.DoctorWithUser, error)
	// BySpecialization matches case-insensitive substrings, rating desc.
	BySpecialization(ctx context.Context, specialization string) ([]models.DoctorWithUser, error)
	ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error)
	Update(ctx context.Context, d *models.Doctor) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type Services interface {
	Create(ctx context.Context, s *models.Service) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error)
	// List returns available services only unless includeAll is set.
	List(ctx context.Context, includeAll bool) ([]models.Service, error)
}

type Appointments interface {
	// Create inserts the appointment, failing with ErrSlotTaken when a
	// non-cancelled appointment already holds (doctor, date, time).
	Create(ctx context.Context, a *models.Appointment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	SlotTaken(ctx context.Context, doctorID primitive.ObjectID, date time.Time, slot string) (bool, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.AppointmentDetail, error)
	ListAll(ctx context.Context) ([]models.AppointmentDetail, error)
	// UpdateStatus sets the status, failing with ErrSlotTaken when moving
	// out of cancelled would put two non-cancelled appointments on one
	// (doctor, date, time).
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Appointment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	CountActiveByDoctor(ctx context.Context, doctorID primitive.ObjectID) (int64, error)
}
