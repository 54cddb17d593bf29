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
	ErrPlanNotFound     = errors.New("plan not found")
	ErrPlanAccessDenied = errors.New("access denied to this plan")
	ErrPlanNameRequired = errors.New("plan name cannot be empty")
	ErrDayNotFound      = errors.New("the plan has no day with that order")
)

// PlanDay is the grouped read view of one day: its slot, name and exercise
// rows in display order. Placeholder rows collapse into an empty Exercises
// list.
type PlanDay struct {
	DayOrder  int                 `json:"dayOrder"`
	DayName   string              `json:"dayName"`
	Exercises []domain.Assignment `json:"exercises"`
}

// PlanService manages persisted plans and the current-plan/day markers.
type PlanService interface {
	CreatePlan(ctx context.Context, ownerID primitive.ObjectID, name string) (*domain.Plan, error)
	GetPlan(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.Plan, error)
	GetPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Plan, error)
	RenamePlan(ctx context.Context, ownerID, planID primitive.ObjectID, name string) (*domain.Plan, error)
	// SetCurrentPlan makes the given plan the single current one for the
	// owner, clearing the flag everywhere else.
	SetCurrentPlan(ctx context.Context, ownerID, planID primitive.ObjectID) error
	SetCurrentDay(ctx context.Context, ownerID, planID primitive.ObjectID, dayOrder int) error
	GetDays(ctx context.Context, ownerID, planID primitive.ObjectID, weekNumber int) ([]PlanDay, error)
}

// planService implements the PlanService interface.
type planService struct {
	planRepo       repository.PlanRepository
	assignmentRepo repository.AssignmentRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(planRepo repository.PlanRepository, assignmentRepo repository.AssignmentRepository) PlanService {
	return &planService{
		planRepo:       planRepo,
		assignmentRepo: assignmentRepo,
	}
}

// CreatePlan creates an empty plan outside the draft flow. The plan becomes
// current only when the owner has no current plan yet.
func (s *planService) CreatePlan(ctx context.Context, ownerID primitive.ObjectID, name string) (*domain.Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlanNameRequired
	}
	hasCurrent, err := s.planRepo.HasCurrent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	plan := &domain.Plan{
		OwnerID:   ownerID,
		Name:      name,
		IsCurrent: !hasCurrent,
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = planID
	return plan, nil
}

// GetPlan retrieves a plan, enforcing ownership.
func (s *planService) GetPlan(ctx context.Context, ownerID, planID primitive.ObjectID) (*domain.Plan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.OwnerID != ownerID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// GetPlans lists the owner's plans, newest first.
func (s *planService) GetPlans(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Plan, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.planRepo.GetByOwnerID(ctx, ownerID)
}

// RenamePlan updates a plan's name.
func (s *planService) RenamePlan(ctx context.Context, ownerID, planID primitive.ObjectID, name string) (*domain.Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlanNameRequired
	}
	plan, err := s.GetPlan(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}
	if err := s.planRepo.UpdateName(ctx, planID, ownerID, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	plan.Name = name
	return plan, nil
}

// SetCurrentPlan flips the current-plan marker to the given plan. Exactly
// one plan per owner is current afterwards, whatever the prior state.
func (s *planService) SetCurrentPlan(ctx context.Context, ownerID, planID primitive.ObjectID) error {
	if _, err := s.GetPlan(ctx, ownerID, planID); err != nil {
		return err
	}
	if err := s.planRepo.SetCurrent(ctx, planID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// SetCurrentDay marks the day the owner is on within a plan. The day must
// exist as at least one assignment row.
func (s *planService) SetCurrentDay(ctx context.Context, ownerID, planID primitive.ObjectID, dayOrder int) error {
	if _, err := s.GetPlan(ctx, ownerID, planID); err != nil {
		return err
	}
	rows, err := s.assignmentRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return err
	}
	found := false
	for _, row := range rows {
		if row.DayOrder == dayOrder {
			found = true
			break
		}
	}
	if !found {
		return ErrDayNotFound
	}
	if err := s.planRepo.SetCurrentDay(ctx, planID, ownerID, dayOrder); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// GetDays groups a week's assignment rows by day. Rows arrive from the
// repository already in display order (dayOrder asc, createdAt asc), so
// grouping preserves it.
func (s *planService) GetDays(ctx context.Context, ownerID, planID primitive.ObjectID, weekNumber int) ([]PlanDay, error) {
	if _, err := s.GetPlan(ctx, ownerID, planID); err != nil {
		return nil, err
	}
	if weekNumber < 1 {
		weekNumber = 1
	}
	rows, err := s.assignmentRepo.GetByPlanAndWeek(ctx, planID, weekNumber)
	if err != nil {
		return nil, err
	}

	days := []PlanDay{}
	for _, row := range rows {
		if len(days) == 0 || days[len(days)-1].DayOrder != row.DayOrder {
			days = append(days, PlanDay{
				DayOrder:  row.DayOrder,
				DayName:   row.DayName,
				Exercises: []domain.Assignment{},
			})
		}
		if row.IsRestDay() {
			continue
		}
		days[len(days)-1].Exercises = append(days[len(days)-1].Exercises, row)
	}
	return days, nil
}
