package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func snapshotFixture() Snapshot {
	return Snapshot{
		DayNames: map[int]string{0: "Push", 1: "Pull"},
		DayExercises: map[int][]Exercise{
			0: {{ExerciseID: primitive.NewObjectID(), Sets: 3, Reps: 10, RestSeconds: 60}},
		},
	}
}

func TestChangedReflexivity(t *testing.T) {
	s := snapshotFixture()
	assert.False(t, Changed(s, s))
	assert.False(t, Changed(s.Clone(), s))
}

func TestChangedEmptyListEqualsAbsent(t *testing.T) {
	// {dayOrder: []} and {} both mean "no exercises" and must compare equal.
	withEmpty := Snapshot{
		DayNames:     map[int]string{0: "Rest"},
		DayExercises: map[int][]Exercise{0: {}},
	}
	withAbsent := Snapshot{
		DayNames:     map[int]string{0: "Rest"},
		DayExercises: map[int][]Exercise{},
	}
	assert.False(t, Changed(withEmpty, withAbsent))
	assert.False(t, Changed(withAbsent, withEmpty))
}

func TestChangedDetectsDayNameDifference(t *testing.T) {
	current := snapshotFixture()
	initial := snapshotFixture()
	current.DayNames[1] = "Legs"
	assert.True(t, Changed(current, initial))
}

func TestChangedDetectsMissingDayName(t *testing.T) {
	current := snapshotFixture()
	initial := snapshotFixture()
	delete(current.DayNames, 1)
	assert.True(t, Changed(current, initial))
	// Symmetric: a key only present in current also counts.
	assert.True(t, Changed(initial, current))
}

func TestChangedDetectsExerciseDifference(t *testing.T) {
	initial := snapshotFixture()
	current := initial.Clone()
	current.DayExercises[0][0].Sets = 5
	assert.True(t, Changed(current, initial))
}

func TestChangedDetectsExerciseOrder(t *testing.T) {
	a := Exercise{ExerciseID: primitive.NewObjectID(), Sets: 3, Reps: 10, RestSeconds: 60}
	b := Exercise{ExerciseID: primitive.NewObjectID(), Sets: 4, Reps: 8, RestSeconds: 90}

	initial := Snapshot{
		DayNames:     map[int]string{0: "Push"},
		DayExercises: map[int][]Exercise{0: {a, b}},
	}
	current := Snapshot{
		DayNames:     map[int]string{0: "Push"},
		DayExercises: map[int][]Exercise{0: {b, a}},
	}
	assert.True(t, Changed(current, initial))
}

func TestNormalizeDaysDropsEmptyLists(t *testing.T) {
	days := map[int][]Exercise{
		0: {},
		1: {{ExerciseID: primitive.NewObjectID(), Sets: 3, Reps: 10}},
		2: nil,
	}
	normalized := normalizeDays(days)
	assert.Len(t, normalized, 1)
	assert.Contains(t, normalized, 1)
}
