package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/utils"
)

const identityKey = "auth.identity"

// TokenVerifier is kept small so tests can fake it.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

type Auth struct {
	tokens TokenVerifier
	users  repo.Users
}

func NewAuth(tokens TokenVerifier, users repo.Users) *Auth {
	return &Auth{tokens: tokens, users: users}
}

// RequireAuth verifies the bearer token and resolves the acting user. A
// token whose user has since been deleted does not authenticate.
func (a *Auth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Not authorized, no token")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		userIDHex, err := a.tokens.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				abortUnauthorized(c, "Token expired")
			} else {
				abortUnauthorized(c, "Invalid token")
			}
			return
		}

		userID, err := primitive.ObjectIDFromHex(userIDHex)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		user, err := a.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, "Not authorized, user not found")
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			abortUnauthorized(c, "Not authorized, no token")
			return
		}
		if identity.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// Identity returns the authenticated user attached by RequireAuth.
func Identity(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   message,
	})
}
