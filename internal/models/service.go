package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ServiceCategories = []string{"Diagnostic", "Laboratory", "Radiology", "Cardiology", "Other"}

type Service struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Image        string             `bson:"image" json:"image"`
	Category     string             `bson:"category" json:"category"`
	Duration     string             `bson:"duration" json:"duration"`
	Availability bool               `bson:"availability" json:"availability"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidServiceCategory(category string) bool {
	for _, c := range ServiceCategories {
		if c == category {
			return true
		}
	}
	return false
}
