package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/utils"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the identity+token payload both auth endpoints return.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !BindJSON(c, &req) {
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		RespondInternal(c, "Failed to hash password")
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Phone:    req.Phone,
		Role:     models.RoleUser,
	}

	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			RespondBadRequest(c, "An account with this email already exists")
			return
		}
		RespondInternal(c, "Failed to create user")
		return
	}

	token, err := h.Tokens.IssueToken(user.ID.Hex())
	if err != nil {
		RespondInternal(c, "Could not generate token")
		return
	}

	RespondData(c, http.StatusCreated, AuthResponse{User: user, Token: token})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !BindJSON(c, &req) {
		return
	}

	// One generic message for unknown email and wrong password, so login
	// does not leak whether an account exists.
	user, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.Tokens.IssueToken(user.ID.Hex())
	if err != nil {
		RespondInternal(c, "Could not generate token")
		return
	}

	RespondData(c, http.StatusOK, AuthResponse{User: user, Token: token})
}
