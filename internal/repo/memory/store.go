// Package memory holds mutex-guarded in-memory implementations of the repo
// interfaces. They enforce the same uniqueness invariants as the Mongo
// indexes, so handler tests exercise real conflict behavior.
package memory

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
)

type Store struct {
	mu           sync.Mutex
	users        map[primitive.ObjectID]models.User
	doctors      map[primitive.ObjectID]models.Doctor
	services     map[primitive.ObjectID]models.Service
	appointments map[primitive.ObjectID]models.Appointment
}

func NewStore() *Store {
	return &Store{
		users:        make(map[primitive.ObjectID]models.User),
		doctors:      make(map[primitive.ObjectID]models.Doctor),
		services:     make(map[primitive.ObjectID]models.Service),
		appointments: make(map[primitive.ObjectID]models.Appointment),
	}
}

func (s *Store) Users() repo.Users               { return &usersRepo{s} }
func (s *Store) Doctors() repo.Doctors           { return &doctorsRepo{s} }
func (s *Store) Services() repo.Services         { return &servicesRepo{s} }
func (s *Store) Appointments() repo.Appointments { return &appointmentsRepo{s} }

func (s *Store) userSummary(id primitive.ObjectID) *models.UserSummary {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}
