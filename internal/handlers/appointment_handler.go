package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/middleware"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
)

type BookAppointmentRequest struct {
	Doctor string `json:"doctor" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

// parseAppointmentDate accepts a plain calendar date or a full RFC3339
// timestamp, normalized to midnight UTC so slot comparisons line up.
func parseAppointmentDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// BookAppointment is the booking workflow: validate the doctor reference,
// parse the date, refuse a taken slot, create as pending, respond with the
// doctor's specialization and fee attached.
func (h *Handler) BookAppointment(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req BookAppointmentRequest
	if !BindJSON(c, &req) {
		return
	}

	doctorID, err := primitive.ObjectIDFromHex(req.Doctor)
	if err != nil {
		h.countBooking("rejected")
		RespondBadRequest(c, "Invalid doctor ID format")
		return
	}

	ctx := c.Request.Context()
	doctor, err := h.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		h.countBooking("rejected")
		RespondNotFound(c, "Doctor not found")
		return
	}

	date, err := parseAppointmentDate(req.Date)
	if err != nil {
		h.countBooking("rejected")
		RespondBadRequest(c, "Invalid date format")
		return
	}

	taken, err := h.Appointments.SlotTaken(ctx, doctorID, date, req.Time)
	if err != nil {
		RespondInternal(c, "Failed to check slot availability")
		return
	}
	if taken {
		h.countBooking("conflict")
		RespondBadRequest(c, "This time slot is already booked")
		return
	}

	appointment := &models.Appointment{
		UserID:   identity.ID,
		DoctorID: doctorID,
		Date:     date,
		Time:     req.Time,
		Reason:   req.Reason,
		Status:   models.StatusPending,
	}

	// The storage layer holds the real uniqueness constraint; a concurrent
	// booking that won the race surfaces here as ErrSlotTaken.
	if err := h.Appointments.Create(ctx, appointment); err != nil {
		if errors.Is(err, repo.ErrSlotTaken) {
			h.countBooking("conflict")
			RespondBadRequest(c, "This time slot is already booked")
			return
		}
		RespondInternal(c, "Failed to create appointment")
		return
	}

	h.countBooking("created")
	h.NotificationSvc.SendBookingConfirmationSMS(identity, doctor, appointment)

	RespondData(c, http.StatusCreated, models.AppointmentDetail{
		Appointment: *appointment,
		Doctor: &models.DoctorSummary{
			ID:              doctor.ID,
			Name:            doctor.Name,
			Specialization:  doctor.Specialization,
			ConsultationFee: doctor.ConsultationFee,
		},
	})
}

// ListAppointments returns the acting user's own bookings.
func (h *Handler) ListAppointments(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	appointments, err := h.Appointments.ListByUser(c.Request.Context(), identity.ID)
	if err != nil {
		RespondInternal(c, "Failed to retrieve appointments")
		return
	}
	RespondList(c, len(appointments), appointments)
}

// ListAllAppointments is admin-only.
func (h *Handler) ListAllAppointments(c *gin.Context) {
	appointments, err := h.Appointments.ListAll(c.Request.Context())
	if err != nil {
		RespondInternal(c, "Failed to retrieve appointments")
		return
	}
	RespondList(c, len(appointments), appointments)
}

// UpdateAppointmentStatus sets the status verbatim after an owner-or-admin
// check. No transition graph is enforced, but moving out of cancelled
// re-claims the slot and fails if it was rebooked in the meantime.
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid appointment ID format")
		return
	}

	var req UpdateStatusRequest
	if !BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	appointment, err := h.Appointments.GetByID(ctx, id)
	if err != nil {
		RespondNotFound(c, "Appointment not found")
		return
	}

	if appointment.UserID != identity.ID && identity.Role != models.RoleAdmin {
		RespondForbidden(c, "Not authorized to update this appointment")
		return
	}

	updated, err := h.Appointments.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, repo.ErrSlotTaken) {
			h.countBooking("conflict")
			RespondBadRequest(c, "This time slot is already booked")
			return
		}
		RespondInternal(c, "Failed to update appointment")
		return
	}
	RespondData(c, http.StatusOK, updated)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid appointment ID format")
		return
	}

	ctx := c.Request.Context()
	appointment, err := h.Appointments.GetByID(ctx, id)
	if err != nil {
		RespondNotFound(c, "Appointment not found")
		return
	}

	if appointment.UserID != identity.ID && identity.Role != models.RoleAdmin {
		RespondForbidden(c, "Not authorized to delete this appointment")
		return
	}

	if err := h.Appointments.Delete(ctx, id); err != nil {
		RespondInternal(c, "Failed to delete appointment")
		return
	}
	RespondData(c, http.StatusOK, gin.H{"message": "Appointment removed"})
}
