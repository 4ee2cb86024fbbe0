// Package client is a typed consumer of the appointment API. It speaks the
// canonical response envelope ({success, data} / {success, error}) and pairs
// with Store for request-phase tracking.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type Client struct {
	baseURL string
	httpc   *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// SetToken attaches the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

// APIError is the decoded failure envelope.
type APIError struct {
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: %s", strings.Join(e.Messages, "; "))
}

// envelope is the single response shape every endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &APIError{Status: resp.StatusCode, Messages: decodeErrorMessages(env.Error)}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding data: %w", err)
		}
	}
	return nil
}

// decodeErrorMessages accepts both error shapes: a single string or an
// array of per-field validation messages.
func decodeErrorMessages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return []string{string(raw)}
}

// --- Auth ---

type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &s); err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &s); err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

// --- Profile ---

type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password,omitempty"`
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &u)
	return u, err
}

func (c *Client) UpdateProfile(ctx context.Context, in ProfileUpdate) (User, error) {
	var u User
	err := c.do(ctx, http.MethodPut, "/api/users/profile", in, &u)
	return u, err
}

// --- Admin user management ---

type UserUpdate struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &out)
	return out, err
}

func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/api/users/"+id, nil, &out)
	return out, err
}

func (c *Client) UpdateUser(ctx context.Context, id string, in UserUpdate) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, "/api/users/"+id, in, &out)
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+id, nil, nil)
}

// --- Doctors ---

type DoctorInput struct {
	User               string   `json:"user"`
	Name               string   `json:"name"`
	Specialization     string   `json:"specialization"`
	Experience         int      `json:"experience"`
	Qualification      string   `json:"qualification"`
	ConsultationFee    float64  `json:"consultationFee"`
	AvailableDays      []string `json:"availableDays"`
	AvailableTimeSlots []string `json:"availableTimeSlots"`
	About              string   `json:"about"`
}

func (c *Client) CreateDoctor(ctx context.Context, in DoctorInput) (Doctor, error) {
	var out Doctor
	err := c.do(ctx, http.MethodPost, "/api/doctors", in, &out)
	return out, err
}

func (c *Client) ListDoctors(ctx context.Context) ([]Doctor, error) {
	var out []Doctor
	err := c.do(ctx, http.MethodGet, "/api/doctors", nil, &out)
	return out, err
}

func (c *Client) GetDoctor(ctx context.Context, id string) (Doctor, error) {
	var out Doctor
	err := c.do(ctx, http.MethodGet, "/api/doctors/"+id, nil, &out)
	return out, err
}

func (c *Client) DoctorsBySpecialization(ctx context.Context, specialization string) ([]Doctor, error) {
	var out []Doctor
	err := c.do(ctx, http.MethodGet, "/api/doctors/specialization/"+specialization, nil, &out)
	return out, err
}

func (c *Client) DoctorAvailability(ctx context.Context, id string) (Availability, error) {
	var out Availability
	err := c.do(ctx, http.MethodGet, "/api/doctors/"+id+"/availability", nil, &out)
	return out, err
}

func (c *Client) RateDoctor(ctx context.Context, id string, rating float64) (Doctor, error) {
	var out Doctor
	err := c.do(ctx, http.MethodPut, "/api/doctors/"+id+"/rating", map[string]float64{"rating": rating}, &out)
	return out, err
}

// --- Services ---

type ServiceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category"`
	Duration    string  `json:"duration"`
}

func (c *Client) CreateService(ctx context.Context, in ServiceInput) (Service, error) {
	var out Service
	err := c.do(ctx, http.MethodPost, "/api/services", in, &out)
	return out, err
}

func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	var out []Service
	err := c.do(ctx, http.MethodGet, "/api/services", nil, &out)
	return out, err
}

func (c *Client) GetService(ctx context.Context, id string) (Service, error) {
	var out Service
	err := c.do(ctx, http.MethodGet, "/api/services/"+id, nil, &out)
	return out, err
}

// --- Appointments ---

type BookingInput struct {
	Doctor string `json:"doctor"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

func (c *Client) BookAppointment(ctx context.Context, in BookingInput) (Appointment, error) {
	var out Appointment
	err := c.do(ctx, http.MethodPost, "/api/appointments", in, &out)
	return out, err
}

func (c *Client) MyAppointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	err := c.do(ctx, http.MethodGet, "/api/appointments", nil, &out)
	return out, err
}

func (c *Client) AllAppointments(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	err := c.do(ctx, http.MethodGet, "/api/appointments/all", nil, &out)
	return out, err
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id, status string) (Appointment, error) {
	var out Appointment
	err := c.do(ctx, http.MethodPut, "/api/appointments/"+id, map[string]string{"status": status}, &out)
	return out, err
}

func (c *Client) CancelAppointment(ctx context.Context, id string) (Appointment, error) {
	return c.UpdateAppointmentStatus(ctx, id, StatusCancelled)
}

func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/appointments/"+id, nil, nil)
}
