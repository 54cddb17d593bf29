package service

import (
	"context"
	"testing"
	"time"

	"fitplan/planner-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type pickerResult struct {
	query   string
	results []domain.Exercise
}

func pickerFixture(t *testing.T) (*ExercisePicker, *fakeExerciseRepo, chan pickerResult) {
	t.Helper()
	repo := newFakeExerciseRepo()
	seedLibrary(t, repo, primitive.NewObjectID(), "Bench Press", "Back Squat", "Deadlift")

	delivered := make(chan pickerResult, 8)
	picker := NewExercisePicker(NewExerciseService(repo),
		func(query string, results []domain.Exercise) {
			delivered <- pickerResult{query: query, results: results}
		},
		nil,
	)
	picker.SetDebounce(10 * time.Millisecond)
	return picker, repo, delivered
}

func waitForResult(t *testing.T, delivered chan pickerResult) pickerResult {
	t.Helper()
	select {
	case r := <-delivered:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no picker result delivered")
		return pickerResult{}
	}
}

func TestPickerDeliversAfterDebounce(t *testing.T) {
	picker, _, delivered := pickerFixture(t)

	picker.SetQuery(context.Background(), "bench")
	result := waitForResult(t, delivered)
	assert.Equal(t, "bench", result.query)
	require.Len(t, result.results, 1)
	assert.Equal(t, "Bench Press", result.results[0].Name)
}

func TestPickerSupersededQueryIsDropped(t *testing.T) {
	picker, _, delivered := pickerFixture(t)
	ctx := context.Background()

	// Rapid typing: only the last query survives the debounce window.
	picker.SetQuery(ctx, "b")
	picker.SetQuery(ctx, "ba")
	picker.SetQuery(ctx, "back")

	result := waitForResult(t, delivered)
	assert.Equal(t, "back", result.query)
	require.Len(t, result.results, 1)
	assert.Equal(t, "Back Squat", result.results[0].Name)

	select {
	case stale := <-delivered:
		t.Fatalf("superseded query %q still delivered", stale.query)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPickerBlankQueryResolvesImmediately(t *testing.T) {
	picker, repo, delivered := pickerFixture(t)
	searchesBefore := repo.searchCalls

	picker.SetQuery(context.Background(), "   ")
	result := waitForResult(t, delivered)
	assert.Empty(t, result.results)
	assert.Equal(t, searchesBefore, repo.searchCalls, "blank query must not hit the repository")
}

func TestPickerSurvivesCallerContextCancel(t *testing.T) {
	picker, _, delivered := pickerFixture(t)

	// The debounced search outlives the request that scheduled it.
	ctx, cancel := context.WithCancel(context.Background())
	picker.SetQuery(ctx, "bench")
	cancel()

	result := waitForResult(t, delivered)
	assert.Equal(t, "bench", result.query)
	require.Len(t, result.results, 1)
	assert.Equal(t, "Bench Press", result.results[0].Name)
}

func TestPickerCancelDropsPendingSearch(t *testing.T) {
	picker, _, delivered := pickerFixture(t)

	picker.SetQuery(context.Background(), "dead")
	picker.Cancel()

	select {
	case result := <-delivered:
		t.Fatalf("cancelled query %q still delivered", result.query)
	case <-time.After(100 * time.Millisecond):
	}
}
