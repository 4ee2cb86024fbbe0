package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
)

type doctorsRepo struct {
	s *Store
}

func (r *doctorsRepo) Create(ctx context.Context, d *models.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.doctors {
		if existing.UserID == d.UserID {
			return repo.ErrDoctorProfileExists
		}
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	r.s.doctors[d.ID] = *d
	return nil
}

func (r *doctorsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &d, nil
}

func (r *doctorsRepo) ByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, d := range r.s.doctors {
		if d.UserID == userID {
			d := d
			return &d, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *doctorsRepo) List(ctx context.Context) ([]models.DoctorWithUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := r.withUsers(func(models.Doctor) bool { return true })
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ReviewsCount > out[j].ReviewsCount
	})
	return out, nil
}

func (r *doctorsRepo) BySpecialization(ctx context.Context, specialization string) ([]models.DoctorWithUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	needle := strings.ToLower(specialization)
	out := r.withUsers(func(d models.Doctor) bool {
		return strings.Contains(strings.ToLower(d.Specialization), needle)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rating > out[j].Rating
	})
	return out, nil
}

func (r *doctorsRepo) withUsers(keep func(models.Doctor) bool) []models.DoctorWithUser {
	out := make([]models.DoctorWithUser, 0)
	for _, d := range r.s.doctors {
		if !keep(d) {
			continue
		}
		out = append(out, models.DoctorWithUser{
			Doctor: d,
			User:   r.s.userSummary(d.UserID),
		})
	}
	return out
}

func (r *doctorsRepo) Update(ctx context.Context, d *models.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.doctors[d.ID]; !ok {
		return repo.ErrNotFound
	}
	d.UpdatedAt = time.Now().UTC()
	r.s.doctors[d.ID] = *d
	return nil
}

func (r *doctorsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.doctors[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.doctors, id)
	return nil
}
