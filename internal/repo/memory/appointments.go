package memory

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
)

type appointmentsRepo struct {
	s *Store
}

// Create checks and inserts under one lock, which is the in-memory
// equivalent of the partial unique index on (doctor, date, time).
func (r *appointmentsRepo) Create(ctx context.Context, a *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.slotTakenLocked(a.DoctorID, a.Date, a.Time, primitive.NilObjectID) {
		return repo.ErrSlotTaken
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	r.s.appointments[a.ID] = *a
	return nil
}

// slotTakenLocked reports whether a non-cancelled appointment other than
// exclude already holds (doctor, date, slot).
func (r *appointmentsRepo) slotTakenLocked(doctorID primitive.ObjectID, date time.Time, slot string, exclude primitive.ObjectID) bool {
	for id, a := range r.s.appointments {
		if id == exclude {
			continue
		}
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.Time == slot && a.Status != models.StatusCancelled {
			return true
		}
	}
	return false
}

func (r *appointmentsRepo) SlotTaken(ctx context.Context, doctorID primitive.ObjectID, date time.Time, slot string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.slotTakenLocked(doctorID, date, slot, primitive.NilObjectID), nil
}

func (r *appointmentsRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &a, nil
}

func (r *appointmentsRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.AppointmentDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.detailsLocked(func(a models.Appointment) bool { return a.UserID == userID }, false), nil
}

func (r *appointmentsRepo) ListAll(ctx context.Context) ([]models.AppointmentDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.detailsLocked(func(models.Appointment) bool { return true }, true), nil
}

func (r *appointmentsRepo) detailsLocked(keep func(models.Appointment) bool, withUser bool) []models.AppointmentDetail {
	out := make([]models.AppointmentDetail, 0)
	for _, a := range r.s.appointments {
		if !keep(a) {
			continue
		}
		detail := models.AppointmentDetail{Appointment: a}
		if d, ok := r.s.doctors[a.DoctorID]; ok {
			detail.Doctor = &models.DoctorSummary{
				ID:              d.ID,
				Name:            d.Name,
				Specialization:  d.Specialization,
				ConsultationFee: d.ConsultationFee,
			}
		}
		if withUser {
			detail.User = r.s.userSummary(a.UserID)
		}
		out = append(out, detail)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (r *appointmentsRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	// Re-activating a cancelled appointment re-claims its slot, which may
	// have been rebooked in the meantime.
	if status != models.StatusCancelled && r.slotTakenLocked(a.DoctorID, a.Date, a.Time, id) {
		return nil, repo.ErrSlotTaken
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	r.s.appointments[id] = a
	return &a, nil
}

func (r *appointmentsRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.appointments, id)
	return nil
}

func (r *appointmentsRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, a := range r.s.appointments {
		if a.UserID == userID {
			delete(r.s.appointments, id)
		}
	}
	return nil
}

func (r *appointmentsRepo) CountActiveByDoctor(ctx context.Context, doctorID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, a := range r.s.appointments {
		if a.DoctorID == doctorID && a.Status != models.StatusCancelled {
			n++
		}
	}
	return n, nil
}
