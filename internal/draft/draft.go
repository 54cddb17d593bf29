// Package draft implements the working state of a plan being authored or
// edited: the uncommitted day/exercise maps, their persistence in the draft
// store, change detection against the last committed state, and the save
// flow that promotes a draft to assignment rows.
package draft

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScopeCreate is the draft scope used while composing a plan that has no
// persisted row yet. Edit-mode scopes are plan ID hex strings.
const ScopeCreate = "new"

// Exercise is one pending exercise placement inside a draft day.
type Exercise struct {
	ExerciseID  primitive.ObjectID `json:"exerciseId"`
	Sets        int                `json:"sets"`
	Reps        int                `json:"reps"`
	RestSeconds int                `json:"restSeconds"`
}

// Snapshot is the comparable shape of a draft: day names and day exercise
// sequences, both keyed by 0-based day order. Integer keys throughout;
// encoding/json renders them as decimal strings on the wire and restores
// ints on decode, so no per-boundary conversion is needed.
type Snapshot struct {
	DayNames     map[int]string     `json:"dayNames"`
	DayExercises map[int][]Exercise `json:"dayExercises"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		DayNames:     make(map[int]string, len(s.DayNames)),
		DayExercises: make(map[int][]Exercise, len(s.DayExercises)),
	}
	for day, name := range s.DayNames {
		out.DayNames[day] = name
	}
	for day, exercises := range s.DayExercises {
		copied := make([]Exercise, len(exercises))
		copy(copied, exercises)
		out.DayExercises[day] = copied
	}
	return out
}

// Session is one loaded draft: the working state plus the frozen initial
// snapshot used for change detection. Sessions are cheap; handlers load one
// per request via Manager.Load.
type Session struct {
	OwnerID primitive.ObjectID
	Scope   string // ScopeCreate or a plan ID hex string
	Week    int    // 1-based

	Name         string
	DayNames     map[int]string
	DayExercises map[int][]Exercise

	initial     Snapshot
	initialName string
}

// EditMode reports whether the session edits an existing plan.
func (s *Session) EditMode() bool {
	return s.Scope != ScopeCreate
}

// PlanID parses the edit-mode scope into a plan ID.
func (s *Session) PlanID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(s.Scope)
}

// Current returns the session's working state as a snapshot.
func (s *Session) Current() Snapshot {
	return Snapshot{DayNames: s.DayNames, DayExercises: s.DayExercises}
}

// Initial returns the frozen snapshot taken when the session was seeded.
func (s *Session) Initial() Snapshot {
	return s.initial
}

func newSession(ownerID primitive.ObjectID, scope string, week int) *Session {
	return &Session{
		OwnerID:      ownerID,
		Scope:        scope,
		Week:         week,
		DayNames:     make(map[int]string),
		DayExercises: make(map[int][]Exercise),
		initial: Snapshot{
			DayNames:     make(map[int]string),
			DayExercises: make(map[int][]Exercise),
		},
	}
}
