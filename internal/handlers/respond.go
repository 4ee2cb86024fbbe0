package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// All responses use one envelope: {success, data} with an optional count on
// list endpoints, and {success:false, error} on failure where error is a
// string or, for multi-field validation failures, an array of messages.

func RespondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func RespondList(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count, "data": data})
}

func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func RespondValidationErrors(c *gin.Context, messages []string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": messages})
}

func RespondBadRequest(c *gin.Context, message string) {
	RespondError(c, http.StatusBadRequest, message)
}

func RespondNotFound(c *gin.Context, message string) {
	RespondError(c, http.StatusNotFound, message)
}

func RespondForbidden(c *gin.Context, message string) {
	RespondError(c, http.StatusForbidden, message)
}

func RespondInternal(c *gin.Context, message string) {
	RespondError(c, http.StatusInternalServerError, message)
}
