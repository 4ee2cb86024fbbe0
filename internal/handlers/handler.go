package handlers

import (
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/observability"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/services"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/utils"
)

// Handler bundles the dependencies every route handler shares.
type Handler struct {
	Users           repo.Users
	Doctors         repo.Doctors
	Services        repo.Services
	Appointments    repo.Appointments
	Tokens          *utils.TokenService
	NotificationSvc *services.NotificationService
	Metrics         *observability.Prom
}

func NewHandler(
	users repo.Users,
	doctors repo.Doctors,
	servicesRepo repo.Services,
	appointments repo.Appointments,
	tokens *utils.TokenService,
	notificationSvc *services.NotificationService,
	metrics *observability.Prom,
) *Handler {
	return &Handler{
		Users:           users,
		Doctors:         doctors,
		Services:        servicesRepo,
		Appointments:    appointments,
		Tokens:          tokens,
		NotificationSvc: notificationSvc,
		Metrics:         metrics,
	}
}

func (h *Handler) countBooking(outcome string) {
	if h.Metrics != nil {
		h.Metrics.BookingsTotal.WithLabelValues(outcome).Inc()
	}
}
