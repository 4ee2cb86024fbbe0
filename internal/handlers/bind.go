package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON binds the request body and, on failure, responds with one message
// per invalid field. Returns false when the request has been answered.
func BindJSON(c *gin.Context, out interface{}) bool {
	err := c.ShouldBindJSON(out)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			messages = append(messages, validationMessage(fieldErr))
		}
		RespondValidationErrors(c, messages)
		return false
	}

	RespondBadRequest(c, "Invalid request body")
	return false
}

func validationMessage(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:]
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("Please add %s", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(fieldErr.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fieldErr.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
