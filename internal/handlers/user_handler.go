package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/middleware"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/utils"
)

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

type AdminUpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
	Role  string `json:"role" binding:"omitempty,oneof=user admin doctor"`
}

// GetProfile returns the authenticated user's own record.
func (h *Handler) GetProfile(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	RespondData(c, http.StatusOK, identity)
}

// UpdateProfile is the self-service profile update.
func (h *Handler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req UpdateProfileRequest
	if !BindJSON(c, &req) {
		return
	}

	if req.Name != "" {
		identity.Name = req.Name
	}
	if req.Email != "" {
		identity.Email = req.Email
	}
	if req.Phone != "" {
		identity.Phone = req.Phone
	}
	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			RespondInternal(c, "Failed to hash password")
			return
		}
		identity.Password = hashed
	}

	if err := h.Users.Update(c.Request.Context(), identity); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			RespondBadRequest(c, "email already exists")
			return
		}
		RespondInternal(c, "Failed to update user profile")
		return
	}

	RespondData(c, http.StatusOK, identity)
}

// ListUsers is admin-only.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		RespondInternal(c, "Failed to retrieve users")
		return
	}
	RespondList(c, len(users), users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid user ID format")
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondNotFound(c, "User not found")
		return
	}
	RespondData(c, http.StatusOK, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid user ID format")
		return
	}

	var req AdminUpdateUserRequest
	if !BindJSON(c, &req) {
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondNotFound(c, "User not found")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	if err := h.Users.Update(c.Request.Context(), user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			RespondBadRequest(c, "email already exists")
			return
		}
		RespondInternal(c, "Failed to update user")
		return
	}

	RespondData(c, http.StatusOK, user)
}

// DeleteUser removes a user and everything that references them: the user's
// appointments and, when no active appointments block it, the user's doctor
// profile. Keeps the store free of dangling references.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid user ID format")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Users.GetByID(ctx, id); err != nil {
		RespondNotFound(c, "User not found")
		return
	}

	if doctor, err := h.Doctors.ByUserID(ctx, id); err == nil {
		active, err := h.Appointments.CountActiveByDoctor(ctx, doctor.ID)
		if err != nil {
			RespondInternal(c, "Failed to check doctor appointments")
			return
		}
		if active > 0 {
			RespondBadRequest(c, "Cannot delete user: their doctor profile has active appointments")
			return
		}
		if err := h.Doctors.Delete(ctx, doctor.ID); err != nil {
			RespondInternal(c, "Failed to delete doctor profile")
			return
		}
	} else if !errors.Is(err, repo.ErrNotFound) {
		RespondInternal(c, "Failed to check doctor profile")
		return
	}

	if err := h.Appointments.DeleteByUser(ctx, id); err != nil {
		RespondInternal(c, "Failed to delete user appointments")
		return
	}

	if err := h.Users.Delete(ctx, id); err != nil {
		RespondInternal(c, "Failed to delete user")
		return
	}

	RespondData(c, http.StatusOK, gin.H{"message": "User removed"})
}
