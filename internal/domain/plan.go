package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Plan is a named collection of days/weeks of exercise assignments
// owned by a single user.
type Plan struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name    string             `bson:"name" json:"name"` // e.g., "Strength Block 1"

	// IsCurrent marks the plan the user is actively following.
	// At most one plan per owner has this set.
	IsCurrent bool `bson:"isCurrent" json:"isCurrent"`

	// CurrentDayOrder marks the day the user is on within the current plan.
	// Nil when no day is marked. Only meaningful while IsCurrent is true.
	CurrentDayOrder *int `bson:"currentDayOrder,omitempty" json:"currentDayOrder,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
