package memory

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
)

type servicesRepo struct {
	s *Store
}

func (r *servicesRepo) Create(ctx context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if svc.ID.IsZero() {
		svc.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	r.s.services[svc.ID] = *svc
	return nil
}

func (r *servicesRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &svc, nil
}

func (r *servicesRepo) List(ctx context.Context, includeAll bool) ([]models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.Service, 0, len(r.s.services))
	for _, svc := range r.s.services {
		if !includeAll && !svc.Availability {
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}
