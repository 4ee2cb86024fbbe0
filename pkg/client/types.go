package client

import "time"

// Wire types mirror the API's JSON shapes with string ids, so consumers
// of this package never need the server's storage types.

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
)

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the contact slice attached to enriched listings.
type UserSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Doctor is a profile record. Listing endpoints additionally populate
// UserInfo with the owning account's contact fields.
type Doctor struct {
	ID                 string       `json:"_id"`
	UserID             string       `json:"user"`
	Name               string       `json:"name"`
	Specialization     string       `json:"specialization"`
	Experience         int          `json:"experience"`
	Qualification      string       `json:"qualification"`
	ConsultationFee    float64      `json:"consultationFee"`
	AvailableDays      []string     `json:"availableDays"`
	AvailableTimeSlots []string     `json:"availableTimeSlots"`
	About              string       `json:"about"`
	Rating             float64      `json:"rating"`
	ReviewsCount       int          `json:"reviewsCount"`
	UserInfo           *UserSummary `json:"userInfo,omitempty"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

type DoctorSummary struct {
	ID              string  `json:"_id"`
	Name            string  `json:"name,omitempty"`
	Specialization  string  `json:"specialization"`
	ConsultationFee float64 `json:"consultationFee"`
}

type Availability struct {
	AvailableDays      []string `json:"availableDays"`
	AvailableTimeSlots []string `json:"availableTimeSlots"`
}

type Service struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	Duration     string    `json:"duration"`
	Availability bool      `json:"availability"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Report struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// Appointment is a booking record. Listing and booking responses populate
// DoctorInfo; admin listings also populate UserInfo.
type Appointment struct {
	ID         string         `json:"_id"`
	UserID     string         `json:"user"`
	DoctorID   string         `json:"doctor"`
	Date       time.Time      `json:"date"`
	Time       string         `json:"time"`
	Reason     string         `json:"reason"`
	Reports    []Report       `json:"reports,omitempty"`
	Status     string         `json:"status"`
	DoctorInfo *DoctorSummary `json:"doctorInfo,omitempty"`
	UserInfo   *UserSummary   `json:"userInfo,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
