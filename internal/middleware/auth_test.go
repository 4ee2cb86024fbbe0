package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/middleware"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo/memory"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authFixture struct {
	router *gin.Engine
	store  *memory.Store
	tokens *utils.TokenService
}

func newAuthFixture(expire time.Duration) *authFixture {
	store := memory.NewStore()
	tokens := utils.NewTokenService("test-secret", expire)
	auth := middleware.NewAuth(tokens, store.Users())

	r := gin.New()
	r.GET("/private", auth.RequireAuth(), func(c *gin.Context) {
		user, _ := middleware.Identity(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user.Email})
	})
	r.GET("/admin", auth.RequireAuth(), auth.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return &authFixture{router: r, store: store, tokens: tokens}
}

func (f *authFixture) addUser(t *testing.T, email, role string) (*models.User, string) {
	t.Helper()
	u := &models.User{Name: "Test", Email: email, Password: "x", Phone: "555-0100", Role: role}
	if err := f.store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := f.tokens.IssueToken(u.ID.Hex())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return u, token
}

func (f *authFixture) get(path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func bodyError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v body=%s", err, w.Body.String())
	}
	if body.Success {
		t.Fatalf("expected failure envelope, body=%s", w.Body.String())
	}
	return body.Error
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	f := newAuthFixture(time.Hour)

	w := f.get("/private", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
	if msg := bodyError(t, w); msg != "Not authorized, no token" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRequireAuth_NonBearerScheme(t *testing.T) {
	f := newAuthFixture(time.Hour)
	_, token := f.addUser(t, "pat@example.test", models.RoleUser)

	w := f.get("/private", "Basic "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	f := newAuthFixture(time.Hour)
	_, token := f.addUser(t, "pat@example.test", models.RoleUser)

	w := f.get("/private", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200, body=%s", w.Code, w.Body.String())
	}
}

func TestRequireAuth_ExpiredVsInvalidMessages(t *testing.T) {
	expired := newAuthFixture(-time.Minute)
	_, expiredToken := expired.addUser(t, "pat@example.test", models.RoleUser)

	w := expired.get("/private", "Bearer "+expiredToken)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
	if msg := bodyError(t, w); msg != "Token expired" {
		t.Fatalf("unexpected message %q", msg)
	}

	fresh := newAuthFixture(time.Hour)
	fresh.addUser(t, "pat@example.test", models.RoleUser)

	w = fresh.get("/private", "Bearer not-a-real-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
	if msg := bodyError(t, w); msg != "Invalid token" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	f := newAuthFixture(time.Hour)
	u, token := f.addUser(t, "pat@example.test", models.RoleUser)

	if err := f.store.Users().Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	w := f.get("/private", "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", w.Code)
	}
	if msg := bodyError(t, w); msg != "Not authorized, user not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRequireAdmin(t *testing.T) {
	f := newAuthFixture(time.Hour)
	_, userToken := f.addUser(t, "pat@example.test", models.RoleUser)
	_, adminToken := f.addUser(t, "admin@example.test", models.RoleAdmin)

	w := f.get("/admin", "Bearer "+userToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("got %d, want 403", w.Code)
	}
	if msg := bodyError(t, w); msg != "Admin access required" {
		t.Fatalf("unexpected message %q", msg)
	}

	w = f.get("/admin", "Bearer "+adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200, body=%s", w.Code, w.Body.String())
	}
}
