package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedLibrary(t *testing.T, repo *fakeExerciseRepo, creator primitive.ObjectID, names ...string) {
	t.Helper()
	ctx := context.Background()
	svc := NewExerciseService(repo)
	for _, name := range names {
		_, err := svc.CreateExercise(ctx, creator, name, "", "", "")
		require.NoError(t, err)
	}
}

func TestSearchExercisesMatchesSubstring(t *testing.T) {
	ctx := context.Background()
	repo := newFakeExerciseRepo()
	creator := primitive.NewObjectID()
	seedLibrary(t, repo, creator, "Bench Press", "Back Squat", "Deadlift")
	svc := NewExerciseService(repo)

	results, err := svc.SearchExercises(ctx, "ben")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Bench Press", results[0].Name)
}

func TestSearchExercisesBlankQuerySkipsRepository(t *testing.T) {
	ctx := context.Background()
	repo := newFakeExerciseRepo()
	seedLibrary(t, repo, primitive.NewObjectID(), "Bench Press")
	svc := NewExerciseService(repo)

	for _, query := range []string{"", "   "} {
		results, err := svc.SearchExercises(ctx, query)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
	assert.Equal(t, 0, repo.searchCalls)
}

func TestSearchExercisesCapsResults(t *testing.T) {
	ctx := context.Background()
	repo := newFakeExerciseRepo()
	creator := primitive.NewObjectID()
	names := []string{
		"Squat A", "Squat B", "Squat C", "Squat D", "Squat E", "Squat F",
		"Squat G", "Squat H", "Squat I", "Squat J", "Squat K", "Squat L",
	}
	seedLibrary(t, repo, creator, names...)
	svc := NewExerciseService(repo)

	results, err := svc.SearchExercises(ctx, "squat")
	require.NoError(t, err)
	assert.Len(t, results, SearchResultLimit)
	// Alphabetical order, so the cap keeps the first ten names.
	assert.Equal(t, "Squat A", results[0].Name)
	assert.Equal(t, "Squat J", results[len(results)-1].Name)
}

func TestCreateExerciseRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo)
	creator := primitive.NewObjectID()

	_, err := svc.CreateExercise(ctx, creator, "Bench Press", "", "Chest", "Medium")
	require.NoError(t, err)

	// Names are globally unique, even across creators.
	_, err = svc.CreateExercise(ctx, primitive.NewObjectID(), "Bench Press", "", "", "")
	assert.ErrorIs(t, err, ErrExerciseNameTaken)
}

func TestCreateExerciseRejectsBlankName(t *testing.T) {
	ctx := context.Background()
	svc := NewExerciseService(newFakeExerciseRepo())

	_, err := svc.CreateExercise(ctx, primitive.NewObjectID(), "   ", "", "", "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestUpdateExerciseEnforcesCreator(t *testing.T) {
	ctx := context.Background()
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo)
	creator := primitive.NewObjectID()

	created, err := svc.CreateExercise(ctx, creator, "Bench Press", "", "Chest", "Medium")
	require.NoError(t, err)

	_, err = svc.UpdateExercise(ctx, primitive.NewObjectID(), created.ID, "Incline Bench", "", "Chest", "Medium")
	assert.ErrorIs(t, err, ErrExerciseAccessDenied)

	updated, err := svc.UpdateExercise(ctx, creator, created.ID, "Incline Bench", "desc", "Chest", "Hard")
	require.NoError(t, err)
	assert.Equal(t, "Incline Bench", updated.Name)
	assert.Equal(t, "Hard", updated.Difficulty)
}

func TestDeleteExerciseEnforcesCreator(t *testing.T) {
	ctx := context.Background()
	repo := newFakeExerciseRepo()
	svc := NewExerciseService(repo)
	creator := primitive.NewObjectID()

	created, err := svc.CreateExercise(ctx, creator, "Bench Press", "", "", "")
	require.NoError(t, err)

	// The creator filter makes a foreign delete look like a missing row.
	err = svc.DeleteExercise(ctx, primitive.NewObjectID(), created.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	require.NoError(t, svc.DeleteExercise(ctx, creator, created.ID))
	_, err = svc.GetExerciseByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}
