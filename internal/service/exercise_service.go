package service

import (
	"context"
	"errors"
	"strings"

	"fitplan/planner-app/internal/domain"
	"fitplan/planner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to modify or delete this exercise")
	ErrExerciseNameTaken    = errors.New("an exercise with this name already exists")
	ErrValidationFailed     = errors.New("exercise validation failed")
)

// SearchResultLimit caps how many exercises a library search returns.
const SearchResultLimit = 10

// ExerciseService manages the shared exercise library.
type ExerciseService interface {
	CreateExercise(ctx context.Context, creatorID primitive.ObjectID, name, description, muscleGroup, difficulty string) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	SearchExercises(ctx context.Context, query string) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, creatorID, exerciseID primitive.ObjectID, name, description, muscleGroup, difficulty string) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, creatorID, exerciseID primitive.ObjectID) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise adds a new exercise to the library.
func (s *exerciseService) CreateExercise(ctx context.Context, creatorID primitive.ObjectID, name, description, muscleGroup, difficulty string) (*domain.Exercise, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrValidationFailed
	}
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required to create an exercise")
	}

	exercise := &domain.Exercise{
		CreatorID:   creatorID,
		Name:        strings.TrimSpace(name),
		Description: description,
		MuscleGroup: muscleGroup,
		Difficulty:  difficulty,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseNameTaken
		}
		return nil, err
	}
	exercise.ID = exerciseID
	// Fetch again so CreatedAt/UpdatedAt come back populated.
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ListExercises retrieves the full library alphabetically.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

// SearchExercises returns up to SearchResultLimit exercises whose name
// contains the query case-insensitively, ordered alphabetically. A blank
// query yields an empty result without touching the repository.
func (s *exerciseService) SearchExercises(ctx context.Context, query string) ([]domain.Exercise, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Exercise{}, nil
	}
	return s.exerciseRepo.SearchByName(ctx, query, SearchResultLimit)
}

// UpdateExercise handles updating an existing exercise, ensuring ownership.
func (s *exerciseService) UpdateExercise(ctx context.Context, creatorID, exerciseID primitive.ObjectID, name, description, muscleGroup, difficulty string) (*domain.Exercise, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrValidationFailed
	}
	if creatorID == primitive.NilObjectID || exerciseID == primitive.NilObjectID {
		return nil, errors.New("creator ID and exercise ID are required")
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if existing.CreatorID != creatorID {
		return nil, ErrExerciseAccessDenied
	}

	existing.Name = strings.TrimSpace(name)
	existing.Description = description
	existing.MuscleGroup = muscleGroup
	existing.Difficulty = difficulty

	err = s.exerciseRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseNameTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise handles deleting an exercise, ensuring ownership.
func (s *exerciseService) DeleteExercise(ctx context.Context, creatorID, exerciseID primitive.ObjectID) error {
	if creatorID == primitive.NilObjectID || exerciseID == primitive.NilObjectID {
		return errors.New("creator ID and exercise ID are required")
	}

	// The repository's Delete filter already includes the creator check, so
	// ownership is enforced at the DB level.
	err := s.exerciseRepo.Delete(ctx, exerciseID, creatorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}
