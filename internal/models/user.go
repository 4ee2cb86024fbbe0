package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser   = "user"
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt digest, never serialized
	Phone     string             `bson:"phone" json:"phone"`
	Role      string             `bson:"role" json:"role"` // "user", "admin" or "doctor"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleDoctor:
		return true
	}
	return false
}
