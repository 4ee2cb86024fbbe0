package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ozavishnu24/Doctor-Appointment-app/internal/models"
)

// NotificationService sends booking SMS via Textbelt when a key is
// configured, and always records the notification in the log.
type NotificationService struct {
	textbeltKey string
	log         *slog.Logger
}

func NewNotificationService(textbeltKey string, log *slog.Logger) *NotificationService {
	return &NotificationService{textbeltKey: textbeltKey, log: log}
}

func (s *NotificationService) SendBookingConfirmationSMS(patient *models.User, doctor *models.Doctor, apt *models.Appointment) {
	smsBody := fmt.Sprintf(
		"Appointment booked: Dr. %s (%s) on %s at %s.",
		doctor.Name,
		doctor.Specialization,
		apt.Date.Format("Jan 2, 2006"),
		apt.Time,
	)

	s.log.Info("booking notification",
		"user", patient.ID.Hex(),
		"doctor", doctor.ID.Hex(),
		"date", apt.Date.Format("2006-01-02"),
		"time", apt.Time,
	)

	if s.textbeltKey == "" || patient.Phone == "" {
		return
	}

	// Send in a goroutine so it doesn't block the API response
	go s.sendSMS(patient.Phone, smsBody)
}

func (s *NotificationService) sendSMS(phone, message string) {
	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.textbeltKey,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		s.log.Error("textbelt request failed", "phone", phone, "err", err)
		return
	}
	defer resp.Body.Close()

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.log.Error("textbelt response decode failed", "err", err)
		return
	}
	if !result.Success {
		s.log.Error("textbelt rejected SMS", "phone", phone, "reason", result.Error)
		return
	}
	s.log.Info("sent SMS", "phone", phone)
}
