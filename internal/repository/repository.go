package repository

import (
	"context"

	"fitplan/planner-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository defines the interface for interacting with the
// exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	// SearchByName returns up to limit exercises whose name contains the
	// query (case-insensitive), ordered alphabetically.
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID, creatorID primitive.ObjectID) error // Ensure creator owns the exercise
}

// PlanRepository defines the interface for interacting with plan data.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Plan, error)
	HasCurrent(ctx context.Context, ownerID primitive.ObjectID) (bool, error)
	UpdateName(ctx context.Context, planID, ownerID primitive.ObjectID, name string) error
	// SetCurrent marks the given plan current and clears the flag on every
	// other plan of the owner, in one transaction.
	SetCurrent(ctx context.Context, planID, ownerID primitive.ObjectID) error
	SetCurrentDay(ctx context.Context, planID, ownerID primitive.ObjectID, dayOrder int) error
}

// AssignmentRepository defines the interface for interacting with the
// plan-day-exercise assignment rows.
type AssignmentRepository interface {
	GetByPlanAndWeek(ctx context.Context, planID primitive.ObjectID, weekNumber int) ([]domain.Assignment, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Assignment, error)
	// ReplaceForPlanWeek deletes all rows of the (plan, week) scope and
	// inserts the given rows in a single transaction.
	ReplaceForPlanWeek(ctx context.Context, planID primitive.ObjectID, weekNumber int, rows []domain.Assignment) error
}

// MediaRepository defines the interface for interacting with exercise
// media metadata.
type MediaRepository interface {
	Create(ctx context.Context, media *domain.ExerciseMedia) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseMedia, error)
	GetLatestByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.ExerciseMedia, error)
}
