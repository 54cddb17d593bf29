package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"fitplan/planner-app/internal/domain"
	"fitplan/planner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests.

type fakeExerciseRepo struct {
	exercises   map[primitive.ObjectID]*domain.Exercise
	searchCalls int
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.Exercise)}
}

func (r *fakeExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	for _, existing := range r.exercises {
		if strings.EqualFold(existing.Name, exercise.Name) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()
	exercise.UpdatedAt = exercise.CreatedAt
	stored := *exercise
	r.exercises[exercise.ID] = &stored
	return exercise.ID, nil
}

func (r *fakeExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *exercise
	return &copied, nil
}

func (r *fakeExerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, 0, len(r.exercises))
	for _, exercise := range r.exercises {
		out = append(out, *exercise)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeExerciseRepo) SearchByName(ctx context.Context, query string, limit int) ([]domain.Exercise, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.searchCalls++
	needle := strings.ToLower(query)
	var out []domain.Exercise
	for _, exercise := range r.exercises {
		if strings.Contains(strings.ToLower(exercise.Name), needle) {
			out = append(out, *exercise)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeExerciseRepo) Update(ctx context.Context, exercise *domain.Exercise) error {
	existing, ok := r.exercises[exercise.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, other := range r.exercises {
		if id != exercise.ID && strings.EqualFold(other.Name, exercise.Name) {
			return repository.ErrDuplicate
		}
	}
	*existing = *exercise
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeExerciseRepo) Delete(ctx context.Context, id, creatorID primitive.ObjectID) error {
	exercise, ok := r.exercises[id]
	if !ok || exercise.CreatorID != creatorID {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

type fakePlanRepo struct {
	plans map[primitive.ObjectID]*domain.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[primitive.ObjectID]*domain.Plan)}
}

func (r *fakePlanRepo) Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	plan.CreatedAt = time.Now().UTC()
	plan.UpdatedAt = plan.CreatedAt
	stored := *plan
	r.plans[plan.ID] = &stored
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *plan
	return &copied, nil
}

func (r *fakePlanRepo) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Plan, error) {
	var out []domain.Plan
	for _, plan := range r.plans {
		if plan.OwnerID == ownerID {
			out = append(out, *plan)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) HasCurrent(ctx context.Context, ownerID primitive.ObjectID) (bool, error) {
	for _, plan := range r.plans {
		if plan.OwnerID == ownerID && plan.IsCurrent {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePlanRepo) UpdateName(ctx context.Context, planID, ownerID primitive.ObjectID, name string) error {
	plan, ok := r.plans[planID]
	if !ok || plan.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	plan.Name = name
	return nil
}

func (r *fakePlanRepo) SetCurrent(ctx context.Context, planID, ownerID primitive.ObjectID) error {
	target, ok := r.plans[planID]
	if !ok || target.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	for _, plan := range r.plans {
		if plan.OwnerID == ownerID {
			plan.IsCurrent = plan.ID == planID
		}
	}
	return nil
}

func (r *fakePlanRepo) SetCurrentDay(ctx context.Context, planID, ownerID primitive.ObjectID, dayOrder int) error {
	plan, ok := r.plans[planID]
	if !ok || plan.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	plan.CurrentDayOrder = &dayOrder
	return nil
}

type fakeAssignmentRepo struct {
	rows []domain.Assignment
}

func (r *fakeAssignmentRepo) GetByPlanAndWeek(ctx context.Context, planID primitive.ObjectID, weekNumber int) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for _, row := range r.rows {
		if row.PlanID == planID && row.WeekNumber == weekNumber {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DayOrder != out[j].DayOrder {
			return out[i].DayOrder < out[j].DayOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeAssignmentRepo) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.Assignment, error) {
	var out []domain.Assignment
	for _, row := range r.rows {
		if row.PlanID == planID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ReplaceForPlanWeek(ctx context.Context, planID primitive.ObjectID, weekNumber int, rows []domain.Assignment) error {
	var kept []domain.Assignment
	for _, row := range r.rows {
		if row.PlanID != planID || row.WeekNumber != weekNumber {
			kept = append(kept, row)
		}
	}
	base := time.Now().UTC()
	for i := range rows {
		rows[i].ID = primitive.NewObjectID()
		rows[i].CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		kept = append(kept, rows[i])
	}
	r.rows = kept
	return nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}
