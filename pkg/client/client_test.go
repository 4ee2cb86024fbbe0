package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/doctors" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"count":   1,
			"data": []map[string]interface{}{
				{
					"_id":            "64a000000000000000000001",
					"specialization": "Cardiology",
					"rating":         4.5,
					"reviewsCount":   9,
					"userInfo":       map[string]string{"name": "Dr. Jane", "email": "jane@clinic.test"},
				},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	doctors, err := c.ListDoctors(context.Background())
	if err != nil {
		t.Fatalf("list doctors: %v", err)
	}
	if len(doctors) != 1 || doctors[0].Specialization != "Cardiology" {
		t.Fatalf("unexpected result %+v", doctors)
	}
	if doctors[0].ID != "64a000000000000000000001" {
		t.Fatalf("id %q", doctors[0].ID)
	}
	if doctors[0].UserInfo == nil || doctors[0].UserInfo.Name != "Dr. Jane" {
		t.Fatalf("missing user enrichment: %+v", doctors[0].UserInfo)
	}
}

func TestClientDecodesStringError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "Doctor not found",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetDoctor(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Fatalf("status %d, want 404", apiErr.Status)
	}
	if len(apiErr.Messages) != 1 || apiErr.Messages[0] != "Doctor not found" {
		t.Fatalf("unexpected messages %v", apiErr.Messages)
	}
}

func TestClientDecodesValidationErrorArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   []string{"Please add name", "Please add a valid email"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Register(context.Background(), RegisterInput{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if len(apiErr.Messages) != 2 || apiErr.Messages[1] != "Please add a valid email" {
		t.Fatalf("unexpected messages %v", apiErr.Messages)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]string{"email": "pat@example.test"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("abc123")
	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("me: %v", err)
	}
	if seen != "Bearer abc123" {
		t.Fatalf("authorization header %q", seen)
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"user":  map[string]string{"email": "pat@example.test"},
					"token": "issued-token",
				},
			})
		case "/api/users/me":
			if r.Header.Get("Authorization") != "Bearer issued-token" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success": false, "error": "Invalid token",
				})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]string{"email": "pat@example.test"},
			})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	session, err := c.Login(context.Background(), "pat@example.test", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token != "issued-token" {
		t.Fatalf("session token %q", session.Token)
	}

	// The token is now attached automatically.
	me, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("me after login: %v", err)
	}
	if me.Email != "pat@example.test" {
		t.Fatalf("unexpected user %+v", me)
	}
}

func TestCreateService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/services" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in ServiceInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if in.Name != "Blood Panel" || in.Category != "Laboratory" {
			t.Errorf("unexpected payload %+v", in)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"_id": "64b000000000000000000001", "name": in.Name,
				"category": in.Category, "price": in.Price, "availability": true,
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	svc, err := c.CreateService(context.Background(), ServiceInput{
		Name: "Blood Panel", Description: "full blood count", Price: 45,
		Category: "Laboratory", Duration: "15 min",
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if svc.ID != "64b000000000000000000001" || !svc.Availability {
		t.Fatalf("unexpected service %+v", svc)
	}
}

func TestCreateDoctor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/doctors" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in DoctorInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if in.User != "64a000000000000000000009" || len(in.AvailableDays) != 2 {
			t.Errorf("unexpected payload %+v", in)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"_id": "64c000000000000000000001", "user": in.User,
				"specialization": in.Specialization,
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	doctor, err := c.CreateDoctor(context.Background(), DoctorInput{
		User: "64a000000000000000000009", Name: "Dr. Jane",
		Specialization: "Cardiology", Experience: 5, Qualification: "MBBS",
		ConsultationFee: 150, AvailableDays: []string{"Monday", "Wednesday"},
		AvailableTimeSlots: []string{"10:00 AM"}, About: "about",
	})
	if err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	if doctor.UserID != "64a000000000000000000009" {
		t.Fatalf("unexpected doctor %+v", doctor)
	}
}

func TestAdminUserOperations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /api/users":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true, "count": 2,
				"data": []map[string]string{
					{"_id": "u1", "email": "a@example.test", "role": RoleUser},
					{"_id": "u2", "email": "b@example.test", "role": RoleAdmin},
				},
			})
		case "GET /api/users/u2":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]string{"_id": "u2", "email": "b@example.test", "role": RoleAdmin},
			})
		case "PUT /api/users/u1":
			var in UserUpdate
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Role != RoleDoctor {
				t.Errorf("unexpected update payload %+v err=%v", in, err)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]string{"_id": "u1", "role": in.Role},
			})
		case "DELETE /api/users/u1":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]string{"message": "User removed"},
			})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	ctx := context.Background()

	users, err := c.ListUsers(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 2 || users[1].Role != RoleAdmin {
		t.Fatalf("unexpected users %+v", users)
	}

	admin, err := c.GetUser(ctx, "u2")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if admin.Email != "b@example.test" {
		t.Fatalf("unexpected user %+v", admin)
	}

	updated, err := c.UpdateUser(ctx, "u1", UserUpdate{Role: RoleDoctor})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Role != RoleDoctor {
		t.Fatalf("unexpected user %+v", updated)
	}

	if err := c.DeleteUser(ctx, "u1"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
}

func TestStoreWithClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    []map[string]string{{"name": "Cleaning"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	services := NewStore[[]Service]()
	services.Run(func() ([]Service, error) {
		return c.ListServices(context.Background())
	})

	if services.Phase() != PhaseFulfilled {
		t.Fatalf("phase %q, want fulfilled; message=%q", services.Phase(), services.Message())
	}
	if got := services.Data(); len(got) != 1 || got[0].Name != "Cleaning" {
		t.Fatalf("unexpected data %+v", got)
	}
}
