package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
)

func TestService_CreateThenFetchRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "Root", "admin@example.test", models.RoleAdmin)

	w := env.request(t, http.MethodPost, "/api/services", adminToken, map[string]interface{}{
		"name":        "Full Blood Count",
		"description": "Complete blood count panel",
		"price":       49.5,
		"category":    "Laboratory",
		"duration":    "30 minutes",
	})
	wantStatus(t, w, http.StatusCreated)
	var created models.Service
	decodeData(t, w, &created)

	w = env.request(t, http.MethodGet, "/api/services/"+created.ID.Hex(), "", nil)
	wantStatus(t, w, http.StatusOK)
	var fetched models.Service
	decodeData(t, w, &fetched)

	if fetched.Name != created.Name ||
		fetched.Description != created.Description ||
		fetched.Price != created.Price ||
		fetched.Category != created.Category ||
		fetched.Duration != created.Duration ||
		fetched.Availability != created.Availability {
		t.Fatalf("round trip mismatch:\ncreated %+v\nfetched %+v", created, fetched)
	}
}

func TestCreateService_RejectsUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedUser(t, "Root", "admin@example.test", models.RoleAdmin)

	w := env.request(t, http.MethodPost, "/api/services", adminToken, map[string]interface{}{
		"name":        "Palm Reading",
		"description": "Not medicine",
		"price":       10,
		"category":    "Divination",
		"duration":    "15 minutes",
	})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestListServices_FiltersUnavailableByDefault(t *testing.T) {
	env := newTestEnv(t)

	ctx := context.Background()
	available := &models.Service{Name: "X-Ray", Description: "d", Price: 80, Category: "Radiology", Duration: "20 minutes", Availability: true}
	hidden := &models.Service{Name: "Legacy Scan", Description: "d", Price: 80, Category: "Radiology", Duration: "20 minutes", Availability: false}
	if err := env.store.Services().Create(ctx, available); err != nil {
		t.Fatal(err)
	}
	if err := env.store.Services().Create(ctx, hidden); err != nil {
		t.Fatal(err)
	}

	w := env.request(t, http.MethodGet, "/api/services", "", nil)
	wantStatus(t, w, http.StatusOK)
	var services []models.Service
	decodeData(t, w, &services)
	if len(services) != 1 || services[0].Name != "X-Ray" {
		t.Fatalf("expected only available services, got %+v", services)
	}

	w = env.request(t, http.MethodGet, "/api/services?all=true", "", nil)
	decodeData(t, w, &services)
	if len(services) != 2 {
		t.Fatalf("expected both services with all=true, got %d", len(services))
	}
}

func TestGetService_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/services/64a000000000000000000001", "", nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestCreateService_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.seedUser(t, "Pat", "pat@example.test", models.RoleUser)

	payload := map[string]interface{}{
		"name":        "MRI",
		"description": "d",
		"price":       500,
		"category":    "Radiology",
		"duration":    "45 minutes",
	}
	wantStatus(t, env.request(t, http.MethodPost, "/api/services", "", payload), http.StatusUnauthorized)
	wantStatus(t, env.request(t, http.MethodPost, "/api/services", userToken, payload), http.StatusForbidden)
}
