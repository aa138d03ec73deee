package repositories

import (
	"context"
	"testing"

	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalRepository_CreateAndGet(t *testing.T) {
	repo := NewSQLiteGoalRepository(openTestStore(t))
	ctx := context.Background()

	g := &models.Goal{Title: "Vacances", TargetAmount: 250000}
	require.NoError(t, repo.Create(ctx, g))
	require.NotZero(t, g.ID)

	got, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vacances", got.Title)
	assert.Zero(t, got.StartAmount)
	assert.Zero(t, got.Archived)
	assert.Nil(t, got.Deadline)
}

func TestGoalRepository_Update_NoteNullHandling(t *testing.T) {
	repo := NewSQLiteGoalRepository(openTestStore(t))
	ctx := context.Background()

	note := "une note"
	g := &models.Goal{Title: "Vacances", TargetAmount: 250000, Note: &note}
	require.NoError(t, repo.Create(ctx, g))

	// Omitting note keeps the stored value.
	amount := int64(300000)
	updated, err := repo.Update(ctx, g.ID, UpdateGoalParams{TargetAmount: &amount})
	require.NoError(t, err)
	require.NotNil(t, updated.Note)
	assert.Equal(t, "une note", *updated.Note)
	assert.Equal(t, int64(300000), updated.TargetAmount)

	// An explicit null clears it.
	updated, err = repo.Update(ctx, g.ID, UpdateGoalParams{Note: nil, NoteSet: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Note)
}

func TestGoalRepository_Update_NotFound(t *testing.T) {
	repo := NewSQLiteGoalRepository(openTestStore(t))

	_, err := repo.Update(context.Background(), 99, UpdateGoalParams{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoalRepository_SoftDelete(t *testing.T) {
	repo := NewSQLiteGoalRepository(openTestStore(t))
	ctx := context.Background()

	g := &models.Goal{Title: "Vacances", TargetAmount: 250000}
	require.NoError(t, repo.Create(ctx, g))

	require.NoError(t, repo.SoftDelete(ctx, g.ID))

	_, err := repo.GetByID(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	goals, err := repo.List(ctx, GoalFilter{})
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalContribRepository_ListByGoal(t *testing.T) {
	store := openTestStore(t)
	goals := NewSQLiteGoalRepository(store)
	contribs := NewSQLiteGoalContribRepository(store)
	ctx := context.Background()

	g1 := &models.Goal{Title: "Moto", TargetAmount: 800000}
	g2 := &models.Goal{Title: "Toit", TargetAmount: 400000}
	require.NoError(t, goals.Create(ctx, g1))
	require.NoError(t, goals.Create(ctx, g2))

	require.NoError(t, contribs.Create(ctx, &models.GoalContrib{GoalID: g1.ID, Amount: 10000}))
	require.NoError(t, contribs.Create(ctx, &models.GoalContrib{GoalID: g1.ID, Amount: 20000}))
	require.NoError(t, contribs.Create(ctx, &models.GoalContrib{GoalID: g2.ID, Amount: 5000}))

	forG1, err := contribs.List(ctx, GoalContribFilter{GoalID: g1.ID})
	require.NoError(t, err)
	assert.Len(t, forG1, 2)

	all, err := contribs.List(ctx, GoalContribFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	firstOnly, err := contribs.List(ctx, GoalContribFilter{GoalID: g1.ID, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, firstOnly, 1)
}

func TestGoalRepository_List_ArchivedFilter(t *testing.T) {
	repo := NewSQLiteGoalRepository(openTestStore(t))
	ctx := context.Background()

	active := &models.Goal{Title: "Moto", TargetAmount: 800000}
	archived := &models.Goal{Title: "Toit", TargetAmount: 400000, Archived: 1}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, archived))

	flag := int64(1)
	got, err := repo.List(ctx, GoalFilter{Archived: &flag})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Toit", got[0].Title)

	flag = 0
	got, err = repo.List(ctx, GoalFilter{Archived: &flag})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Moto", got[0].Title)

	all, err := repo.List(ctx, GoalFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGoalContribRepository_Create_UnknownGoal(t *testing.T) {
	repo := NewSQLiteGoalContribRepository(openTestStore(t))

	err := repo.Create(context.Background(), &models.GoalContrib{GoalID: 99, Amount: 10000})
	assert.ErrorIs(t, err, ErrMissingReference)
}
