package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/handlers"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/middleware"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/observability"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/repo/memory"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/services"
	"github.com/ozavishnu24/Doctor-Appointment-app/internal/utils"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	store  *memory.Store
	tokens *utils.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	tokens := utils.NewTokenService("test-secret", time.Hour)
	log := observability.NewLogger("test")
	metrics := observability.NewProm(prometheus.NewRegistry())
	notifications := services.NewNotificationService("", log)

	h := handlers.NewHandler(
		store.Users(), store.Doctors(), store.Services(), store.Appointments(),
		tokens, notifications, metrics,
	)
	auth := middleware.NewAuth(tokens, store.Users())

	r := gin.New()
	api := r.Group("/api")

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	users := api.Group("/users", auth.RequireAuth())
	users.GET("/me", h.GetProfile)
	users.GET("/profile", h.GetProfile)
	users.PUT("/profile", h.UpdateProfile)
	users.GET("", auth.RequireAdmin(), h.ListUsers)
	users.GET("/:id", auth.RequireAdmin(), h.GetUser)
	users.PUT("/:id", auth.RequireAdmin(), h.UpdateUser)
	users.DELETE("/:id", auth.RequireAdmin(), h.DeleteUser)

	doctors := api.Group("/doctors")
	doctors.GET("", h.ListDoctors)
	doctors.GET("/:id", h.GetDoctor)
	doctors.GET("/specialization/:specialization", h.DoctorsBySpecialization)
	doctors.GET("/:id/availability", h.GetDoctorAvailability)
	doctors.POST("", auth.RequireAuth(), auth.RequireAdmin(), h.CreateDoctor)
	doctors.PUT("/:id", auth.RequireAuth(), h.UpdateDoctor)
	doctors.DELETE("/:id", auth.RequireAuth(), auth.RequireAdmin(), h.DeleteDoctor)
	doctors.PUT("/:id/rating", auth.RequireAuth(), h.RateDoctor)

	servicesRoutes := api.Group("/services")
	servicesRoutes.GET("", h.ListServices)
	servicesRoutes.GET("/:id", h.GetService)
	servicesRoutes.POST("", auth.RequireAuth(), auth.RequireAdmin(), h.CreateService)

	appointments := api.Group("/appointments", auth.RequireAuth())
	appointments.POST("", h.BookAppointment)
	appointments.GET("", h.ListAppointments)
	appointments.GET("/all", auth.RequireAdmin(), h.ListAllAppointments)
	appointments.PUT("/:id", h.UpdateAppointmentStatus)
	appointments.DELETE("/:id", h.DeleteAppointment)

	return &testEnv{router: r, store: store, tokens: tokens}
}

// seedUser creates a user directly in the store and returns it with a valid
// bearer token.
func (e *testEnv) seedUser(t *testing.T, name, email, role string) (*models.User, string) {
	t.Helper()

	hashed, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &models.User{Name: name, Email: email, Password: hashed, Phone: "555-0100", Role: role}
	if err := e.store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := e.tokens.IssueToken(u.ID.Hex())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return u, token
}

func (e *testEnv) seedDoctor(t *testing.T, owner *models.User, specialization string, rating float64, reviews int) *models.Doctor {
	t.Helper()

	d := &models.Doctor{
		UserID:             owner.ID,
		Name:               owner.Name,
		Specialization:     specialization,
		Experience:         5,
		Qualification:      "MBBS",
		ConsultationFee:    150,
		AvailableDays:      []string{"Monday", "Wednesday"},
		AvailableTimeSlots: []string{"10:00 AM", "11:00 AM"},
		About:              "about",
		Rating:             rating,
		ReviewsCount:       reviews,
	}
	if err := e.store.Doctors().Create(context.Background(), d); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	return d
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, w.Body.String())
	}
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Fatalf("expected success envelope, got body=%s", w.Body.String())
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("decode data: %v body=%s", err, w.Body.String())
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	env := decodeEnvelope(t, w)
	var msg string
	if err := json.Unmarshal(env.Error, &msg); err != nil {
		t.Fatalf("decode error message: %v body=%s", err, w.Body.String())
	}
	return msg
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, want, w.Body.String())
	}
}
