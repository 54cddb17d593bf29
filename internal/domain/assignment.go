package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment places one exercise into a (plan, week, day) slot with its
// set/rep/rest parameters. A day with no exercises ("rest day") is stored
// as exactly one row with a nil ExerciseID.
type Assignment struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PlanID  primitive.ObjectID `bson:"planId" json:"planId"`
	OwnerID primitive.ObjectID `bson:"ownerId" json:"ownerId"` // Denormalized for ownership filters

	WeekNumber int    `bson:"weekNumber" json:"weekNumber"` // 1-based
	DayOrder   int    `bson:"dayOrder" json:"dayOrder"`     // 0-based within the week
	DayName    string `bson:"dayName" json:"dayName"`       // Denormalized; all rows of a day carry the same name

	// Nil for a rest-day placeholder row.
	ExerciseID *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`

	Sets        int `bson:"sets" json:"sets"`               // >= 1 when ExerciseID is set
	Reps        int `bson:"reps" json:"reps"`               // >= 1 when ExerciseID is set
	RestSeconds int `bson:"restSeconds" json:"restSeconds"` // >= 0

	// CreatedAt is the within-day ordering key (ascending).
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// IsRestDay reports whether the row is a day placeholder without an exercise.
func (a *Assignment) IsRestDay() bool {
	return a.ExerciseID == nil
}
