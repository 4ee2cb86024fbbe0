package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
)

type usersRepo struct {
	s *Store
}

func (r *usersRepo) Create(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repo.ErrEmailTaken
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.ID] = *u
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *usersRepo) Update(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, existing := range r.s.users {
		if id != u.ID && existing.Email == u.Email {
			return repo.ErrEmailTaken
		}
	}
	u.UpdatedAt = time.Now().UTC()
	r.s.users[u.ID] = *u
	return nil
}

func (r *usersRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}
