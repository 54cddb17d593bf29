package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"fitplan/planner-app/internal/domain"
	"fitplan/planner-app/internal/draftstore"
	"fitplan/planner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEmptyPlanName     = errors.New("plan name cannot be empty")
	ErrMissingDayName    = errors.New("every day with exercises needs a name")
	ErrInvalidParameters = errors.New("sets and reps must be positive and rest seconds non-negative")
	ErrPlanNotFound      = errors.New("plan not found")
	ErrPlanAccessDenied  = errors.New("access denied to this plan")
	ErrNoSuchExercise    = errors.New("no exercise at that position in the draft")
)

// Manager mediates between the draft store and the persisted plan rows. It
// is stateless between calls; per-request state lives in the Session.
type Manager struct {
	store       draftstore.Store
	planRepo    repository.PlanRepository
	assignments repository.AssignmentRepository
}

// NewManager creates a new draft manager.
func NewManager(store draftstore.Store, planRepo repository.PlanRepository, assignments repository.AssignmentRepository) *Manager {
	return &Manager{
		store:       store,
		planRepo:    planRepo,
		assignments: assignments,
	}
}

// storedDraft is the JSON blob kept in the draft store: one entry per
// (owner, scope, week), holding the working state and the frozen initial
// snapshot side by side so change detection survives restarts.
type storedDraft struct {
	Name         string             `json:"name"`
	DayNames     map[int]string     `json:"dayNames"`
	DayExercises map[int][]Exercise `json:"dayExercises"`
	Initial      Snapshot           `json:"initial"`
	InitialName  string             `json:"initialName"`
}

func draftKey(ownerID primitive.ObjectID, scope string, week int) string {
	return fmt.Sprintf("draft:%s:plan_%s_week%d", ownerID.Hex(), scope, week)
}

// Load returns the draft session for the given scope. A stored draft wins;
// otherwise an edit session is seeded from the persisted assignment rows
// and the initial snapshot is frozen at that point. If the remote fetch
// fails, an empty session is returned together with the error so the
// caller can report it; the failure is not swallowed.
func (m *Manager) Load(ctx context.Context, ownerID primitive.ObjectID, scope string, week int) (*Session, error) {
	if week < 1 {
		week = 1
	}
	session := newSession(ownerID, scope, week)

	raw, err := m.store.Get(ctx, draftKey(ownerID, scope, week))
	if err == nil {
		var stored storedDraft
		if err := json.Unmarshal(raw, &stored); err == nil {
			session.Name = stored.Name
			if stored.DayNames != nil {
				session.DayNames = stored.DayNames
			}
			if stored.DayExercises != nil {
				session.DayExercises = stored.DayExercises
			}
			session.initial = stored.Initial
			session.initialName = stored.InitialName
			return session, nil
		}
		// A corrupt blob is treated like a miss.
		log.Printf("WARN: discarding unreadable draft blob for scope %s: %v", scope, err)
	} else if !errors.Is(err, draftstore.ErrNotFound) {
		return session, err
	}

	if scope == ScopeCreate {
		return session, nil
	}

	// Edit session without a stored draft: seed from persisted rows.
	planID, err := session.PlanID()
	if err != nil {
		return session, ErrPlanNotFound
	}
	plan, err := m.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return session, ErrPlanNotFound
		}
		return session, err
	}
	if plan.OwnerID != ownerID {
		return session, ErrPlanAccessDenied
	}
	rows, err := m.assignments.GetByPlanAndWeek(ctx, planID, week)
	if err != nil {
		return session, err
	}

	session.Name = plan.Name
	for _, row := range rows {
		session.DayNames[row.DayOrder] = row.DayName
		if row.IsRestDay() {
			continue
		}
		session.DayExercises[row.DayOrder] = append(session.DayExercises[row.DayOrder], Exercise{
			ExerciseID:  *row.ExerciseID,
			Sets:        row.Sets,
			Reps:        row.Reps,
			RestSeconds: row.RestSeconds,
		})
	}
	session.initial = session.Current().Clone()
	session.initialName = plan.Name

	m.persist(ctx, session)
	return session, nil
}

// SetName updates the draft's plan name.
func (m *Manager) SetName(ctx context.Context, s *Session, name string) {
	s.Name = name
	m.persist(ctx, s)
}

// SetDayName names (or renames) a day slot.
func (m *Manager) SetDayName(ctx context.Context, s *Session, dayOrder int, name string) {
	s.DayNames[dayOrder] = name
	m.persist(ctx, s)
}

// AddExercise appends an exercise placement to a day.
func (m *Manager) AddExercise(ctx context.Context, s *Session, dayOrder int, exercise Exercise) error {
	if exercise.Sets < 1 || exercise.Reps < 1 || exercise.RestSeconds < 0 {
		return ErrInvalidParameters
	}
	if exercise.ExerciseID == primitive.NilObjectID {
		return errors.New("exercise reference is required")
	}
	s.DayExercises[dayOrder] = append(s.DayExercises[dayOrder], exercise)
	m.persist(ctx, s)
	return nil
}

// RemoveExercise removes the exercise at the given position within a day.
func (m *Manager) RemoveExercise(ctx context.Context, s *Session, dayOrder, index int) error {
	exercises := s.DayExercises[dayOrder]
	if index < 0 || index >= len(exercises) {
		return ErrNoSuchExercise
	}
	s.DayExercises[dayOrder] = append(exercises[:index], exercises[index+1:]...)
	m.persist(ctx, s)
	return nil
}

// HasPendingChanges compares the working state against the frozen initial
// snapshot.
func (m *Manager) HasPendingChanges(s *Session) bool {
	return Changed(s.Current(), s.initial)
}

// persist writes the session's blob to the draft store. The in-memory
// state stays authoritative: a store failure is logged, not returned, so a
// flaky store never blocks editing.
func (m *Manager) persist(ctx context.Context, s *Session) {
	stored := storedDraft{
		Name:         s.Name,
		DayNames:     s.DayNames,
		DayExercises: s.DayExercises,
		Initial:      s.initial,
		InitialName:  s.initialName,
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		log.Printf("ERROR: failed to encode draft for scope %s: %v", s.Scope, err)
		return
	}
	key := draftKey(s.OwnerID, s.Scope, s.Week)
	if err := m.store.Set(ctx, key, raw); err != nil {
		log.Printf("WARN: failed to persist draft %s: %v", key, err)
	}
}

// Save validates the draft and promotes it to persisted rows: the plan row
// in create mode, then the full assignment set of the (plan, week) scope in
// one transaction. In create mode the draft is re-keyed to the new plan ID
// before any rows are written, so a failed row write retries in edit mode
// against that plan instead of creating a second one. On success the draft
// store entry is removed and the initial snapshot is reset to the
// just-saved state. On any failure the draft is left intact for retry.
func (m *Manager) Save(ctx context.Context, s *Session) (*domain.Plan, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return nil, ErrEmptyPlanName
	}
	rows, err := m.buildRows(s)
	if err != nil {
		return nil, err
	}

	var plan *domain.Plan
	if s.EditMode() {
		planID, err := s.PlanID()
		if err != nil {
			return nil, ErrPlanNotFound
		}
		plan, err = m.planRepo.GetByID(ctx, planID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPlanNotFound
			}
			return nil, err
		}
		if plan.OwnerID != s.OwnerID {
			return nil, ErrPlanAccessDenied
		}
		if plan.Name != name {
			if err := m.planRepo.UpdateName(ctx, planID, s.OwnerID, name); err != nil {
				return nil, err
			}
			plan.Name = name
		}
	} else {
		// A brand-new plan becomes current only when the owner has none.
		hasCurrent, err := m.planRepo.HasCurrent(ctx, s.OwnerID)
		if err != nil {
			return nil, err
		}
		plan = &domain.Plan{
			OwnerID:   s.OwnerID,
			Name:      name,
			IsCurrent: !hasCurrent,
		}
		planID, err := m.planRepo.Create(ctx, plan)
		if err != nil {
			return nil, err
		}
		plan.ID = planID

		// The plan row now exists, so the draft must stop being a create
		// draft. Re-key it to the plan ID before touching any rows; if the
		// row write below fails, a retry runs in edit mode against this
		// plan instead of creating another one.
		createKey := draftKey(s.OwnerID, s.Scope, s.Week)
		s.Scope = plan.ID.Hex()
		m.persist(ctx, s)
		if err := m.store.Remove(ctx, createKey); err != nil {
			log.Printf("WARN: failed to remove draft %s after re-keying: %v", createKey, err)
		}
	}

	for i := range rows {
		rows[i].PlanID = plan.ID
		rows[i].OwnerID = s.OwnerID
	}
	if err := m.assignments.ReplaceForPlanWeek(ctx, plan.ID, s.Week, rows); err != nil {
		return nil, err
	}

	key := draftKey(s.OwnerID, s.Scope, s.Week)
	if err := m.store.Remove(ctx, key); err != nil {
		log.Printf("WARN: failed to remove draft %s after save: %v", key, err)
	}
	s.Name = name
	s.initialName = name
	s.initial = s.Current().Clone()
	return plan, nil
}

// buildRows flattens the draft maps into assignment rows: one placeholder
// per named-but-empty day, one row per (day, exercise) pair, days ascending.
func (m *Manager) buildRows(s *Session) ([]domain.Assignment, error) {
	orders := make(map[int]struct{}, len(s.DayNames)+len(s.DayExercises))
	for day := range s.DayNames {
		orders[day] = struct{}{}
	}
	for day := range s.DayExercises {
		orders[day] = struct{}{}
	}
	days := make([]int, 0, len(orders))
	for day := range orders {
		days = append(days, day)
	}
	sort.Ints(days)

	var rows []domain.Assignment
	for _, day := range days {
		dayName := strings.TrimSpace(s.DayNames[day])
		exercises := s.DayExercises[day]

		if len(exercises) == 0 {
			if dayName == "" {
				continue // neither named nor filled, nothing to store
			}
			rows = append(rows, domain.Assignment{
				WeekNumber: s.Week,
				DayOrder:   day,
				DayName:    dayName,
			})
			continue
		}

		if dayName == "" {
			return nil, ErrMissingDayName
		}
		for _, exercise := range exercises {
			if exercise.Sets < 1 || exercise.Reps < 1 || exercise.RestSeconds < 0 {
				return nil, ErrInvalidParameters
			}
			exerciseID := exercise.ExerciseID
			rows = append(rows, domain.Assignment{
				WeekNumber:  s.Week,
				DayOrder:    day,
				DayName:     dayName,
				ExerciseID:  &exerciseID,
				Sets:        exercise.Sets,
				Reps:        exercise.Reps,
				RestSeconds: exercise.RestSeconds,
			})
		}
	}
	return rows, nil
}

// Discard rolls the draft back: edit sessions return to the initial name
// and snapshot, create sessions are removed outright. Persisted rows are
// never touched.
func (m *Manager) Discard(ctx context.Context, s *Session) error {
	if !s.EditMode() {
		s.Name = ""
		s.initialName = ""
		s.DayNames = make(map[int]string)
		s.DayExercises = make(map[int][]Exercise)
		s.initial = Snapshot{
			DayNames:     make(map[int]string),
			DayExercises: make(map[int][]Exercise),
		}
		return m.store.Remove(ctx, draftKey(s.OwnerID, s.Scope, s.Week))
	}

	restored := s.initial.Clone()
	s.Name = s.initialName
	s.DayNames = restored.DayNames
	s.DayExercises = restored.DayExercises
	m.persist(ctx, s)
	return nil
}
