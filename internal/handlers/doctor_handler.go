package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/middleware"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
)

type CreateDoctorRequest struct {
	User               string   `json:"user" binding:"required"`
	Name               string   `json:"name" binding:"required"`
	Specialization     string   `json:"specialization" binding:"required"`
	Experience         int      `json:"experience" binding:"required,gte=0"`
	Qualification      string   `json:"qualification" binding:"required"`
	ConsultationFee    float64  `json:"consultationFee" binding:"required,gte=0"`
	AvailableDays      []string `json:"availableDays" binding:"required,min=1"`
	AvailableTimeSlots []string `json:"availableTimeSlots" binding:"required,min=1"`
	About              string   `json:"about" binding:"required"`
}

type UpdateDoctorRequest struct {
	Specialization     string   `json:"specialization"`
	Experience         *int     `json:"experience"`
	Qualification      string   `json:"qualification"`
	ConsultationFee    *float64 `json:"consultationFee"`
	AvailableDays      []string `json:"availableDays"`
	AvailableTimeSlots []string `json:"availableTimeSlots"`
	About              string   `json:"about"`
}

type RatingRequest struct {
	Rating float64 `json:"rating" binding:"required,gte=1,lte=5"`
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !BindJSON(c, &req) {
		return
	}

	userID, err := primitive.ObjectIDFromHex(req.User)
	if err != nil {
		RespondBadRequest(c, "Invalid user ID format")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Users.GetByID(ctx, userID); err != nil {
		RespondNotFound(c, "User not found")
		return
	}

	doctor := &models.Doctor{
		UserID:             userID,
		Name:               req.Name,
		Specialization:     req.Specialization,
		Experience:         req.Experience,
		Qualification:      req.Qualification,
		ConsultationFee:    req.ConsultationFee,
		AvailableDays:      req.AvailableDays,
		AvailableTimeSlots: req.AvailableTimeSlots,
		About:              req.About,
	}

	if err := h.Doctors.Create(ctx, doctor); err != nil {
		if errors.Is(err, repo.ErrDoctorProfileExists) {
			RespondBadRequest(c, "Doctor profile already exists for this user")
			return
		}
		RespondInternal(c, "Failed to create doctor")
		return
	}

	RespondData(c, http.StatusCreated, doctor)
}

// ListDoctors is public, ordered by rating then popularity.
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.Doctors.List(c.Request.Context())
	if err != nil {
		RespondInternal(c, "Failed to retrieve doctors")
		return
	}
	RespondList(c, len(doctors), doctors)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid doctor ID format")
		return
	}

	doctor, err := h.Doctors.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondNotFound(c, "Doctor not found")
		return
	}
	RespondData(c, http.StatusOK, doctor)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid doctor ID format")
		return
	}

	ctx := c.Request.Context()
	doctor, err := h.Doctors.GetByID(ctx, id)
	if err != nil {
		RespondNotFound(c, "Doctor not found")
		return
	}

	// Owner-or-admin
	if doctor.UserID != identity.ID && identity.Role != models.RoleAdmin {
		RespondForbidden(c, "Not authorized to update this doctor profile")
		return
	}

	var req UpdateDoctorRequest
	if !BindJSON(c, &req) {
		return
	}

	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}
	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}
	if req.Qualification != "" {
		doctor.Qualification = req.Qualification
	}
	if req.ConsultationFee != nil {
		doctor.ConsultationFee = *req.ConsultationFee
	}
	if req.AvailableDays != nil {
		doctor.AvailableDays = req.AvailableDays
	}
	if req.AvailableTimeSlots != nil {
		doctor.AvailableTimeSlots = req.AvailableTimeSlots
	}
	if req.About != "" {
		doctor.About = req.About
	}

	if err := h.Doctors.Update(ctx, doctor); err != nil {
		RespondInternal(c, "Failed to update doctor")
		return
	}
	RespondData(c, http.StatusOK, doctor)
}

// DeleteDoctor refuses to orphan bookings: a profile with non-cancelled
// appointments cannot be removed.
func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid doctor ID format")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Doctors.GetByID(ctx, id); err != nil {
		RespondNotFound(c, "Doctor not found")
		return
	}

	active, err := h.Appointments.CountActiveByDoctor(ctx, id)
	if err != nil {
		RespondInternal(c, "Failed to check doctor appointments")
		return
	}
	if active > 0 {
		RespondBadRequest(c, "Cannot delete doctor with active appointments")
		return
	}

	if err := h.Doctors.Delete(ctx, id); err != nil {
		RespondInternal(c, "Failed to delete doctor")
		return
	}
	RespondData(c, http.StatusOK, gin.H{"message": "Doctor removed successfully"})
}

func (h *Handler) DoctorsBySpecialization(c *gin.Context) {
	doctors, err := h.Doctors.BySpecialization(c.Request.Context(), c.Param("specialization"))
	if err != nil {
		RespondInternal(c, "Failed to retrieve doctors")
		return
	}
	RespondList(c, len(doctors), doctors)
}

func (h *Handler) GetDoctorAvailability(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid doctor ID format")
		return
	}

	doctor, err := h.Doctors.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondNotFound(c, "Doctor not found")
		return
	}

	RespondData(c, http.StatusOK, models.Availability{
		AvailableDays:      doctor.AvailableDays,
		AvailableTimeSlots: doctor.AvailableTimeSlots,
	})
}

// RateDoctor appends one review to the running average:
// rating' = round1((rating*reviewsCount + new) / (reviewsCount+1)).
// Submitting the same value twice shifts the average twice; the endpoint is
// deliberately not idempotent.
func (h *Handler) RateDoctor(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid doctor ID format")
		return
	}

	var req RatingRequest
	if !BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	doctor, err := h.Doctors.GetByID(ctx, id)
	if err != nil {
		RespondNotFound(c, "Doctor not found")
		return
	}

	total := doctor.Rating * float64(doctor.ReviewsCount)
	doctor.ReviewsCount++
	doctor.Rating = math.Round((total+req.Rating)/float64(doctor.ReviewsCount)*10) / 10

	if err := h.Doctors.Update(ctx, doctor); err != nil {
		RespondInternal(c, "Failed to update doctor rating")
		return
	}
	RespondData(c, http.StatusOK, doctor)
}
