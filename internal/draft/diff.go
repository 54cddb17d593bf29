package draft

// Changed reports whether the current draft state differs structurally from
// the initial snapshot. Day-exercise maps are normalized first: a day
// present with an empty exercise list counts the same as the day being
// absent, since both mean "no exercises".
func Changed(current, initial Snapshot) bool {
	if !equalDayNames(current.DayNames, initial.DayNames) {
		return true
	}
	return !equalDayExercises(
		normalizeDays(current.DayExercises),
		normalizeDays(initial.DayExercises),
	)
}

// normalizeDays drops empty-exercise-list days so `{3: []}` and `{}`
// compare equal.
func normalizeDays(days map[int][]Exercise) map[int][]Exercise {
	out := make(map[int][]Exercise, len(days))
	for day, exercises := range days {
		if len(exercises) == 0 {
			continue
		}
		out[day] = exercises
	}
	return out
}

func equalDayNames(a, b map[int]string) bool {
	if len(a) != len(b) {
		return false
	}
	for day, name := range a {
		other, ok := b[day]
		if !ok || other != name {
			return false
		}
	}
	return true
}

func equalDayExercises(a, b map[int][]Exercise) bool {
	if len(a) != len(b) {
		return false
	}
	for day, exercises := range a {
		others, ok := b[day]
		if !ok || len(others) != len(exercises) {
			return false
		}
		// Order-sensitive: reordering exercises within a day is a change.
		for i := range exercises {
			if exercises[i] != others[i] {
				return false
			}
		}
	}
	return true
}
