package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
)

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	Image       string  `json:"image"`
	Category    string  `json:"category" binding:"required,oneof=Diagnostic Laboratory Radiology Cardiology Other"`
	Duration    string  `json:"duration" binding:"required"`
}

// ListServices returns available services by default; ?all=true includes
// unavailable catalog entries.
func (h *Handler) ListServices(c *gin.Context) {
	includeAll := c.Query("all") == "true"

	services, err := h.Services.List(c.Request.Context(), includeAll)
	if err != nil {
		RespondInternal(c, "Failed to retrieve services")
		return
	}
	RespondList(c, len(services), services)
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid service ID format")
		return
	}

	service, err := h.Services.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondNotFound(c, "Service not found")
		return
	}
	RespondData(c, http.StatusOK, service)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !BindJSON(c, &req) {
		return
	}

	service := &models.Service{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Image:        req.Image,
		Category:     req.Category,
		Duration:     req.Duration,
		Availability: true,
	}

	if err := h.Services.Create(c.Request.Context(), service); err != nil {
		RespondInternal(c, "Failed to create service")
		return
	}
	RespondData(c, http.StatusCreated, service)
}
