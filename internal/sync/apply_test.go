package sync

import (
	"context"
	"database/sql"
	"testing"

	"github.com/nkoudou/fastcompta/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entityByName(t *testing.T, name string) Descriptor {
	t.Helper()
	for _, d := range Entities {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("unknown entity %s", name)
	return Descriptor{}
}

func fetchGoal(t *testing.T, store *database.Store, id int64) (title string, updatedAt int64, deletedAt *int64) {
	t.Helper()
	var deleted sql.NullInt64
	err := store.DB().QueryRow(
		"SELECT title, updated_at, deleted_at FROM "+database.TableGoals+" WHERE id = ?", id,
	).Scan(&title, &updatedAt, &deleted)
	require.NoError(t, err)
	if deleted.Valid {
		deletedAt = &deleted.Int64
	}
	return title, updatedAt, deletedAt
}

func TestApplyUpsert_InsertsNewRow(t *testing.T) {
	store := openTestStore(t)
	d := entityByName(t, "goals")
	ctx := context.Background()

	res, err := applyUpsert(ctx, store.DB(), d, Row{
		"id":            float64(7),
		"title":         "Vacances",
		"target_amount": float64(250000),
		"created_at":    float64(1500),
	}, 1000, 2000)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.False(t, res.Conflict)

	title, updatedAt, deletedAt := fetchGoal(t, store, 7)
	assert.Equal(t, "Vacances", title)
	assert.Equal(t, int64(2000), updatedAt)
	assert.Nil(t, deletedAt)

	var createdAt int64
	err = store.DB().QueryRow(
		"SELECT created_at FROM " + database.TableGoals + " WHERE id = 7").Scan(&createdAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), createdAt, "client-supplied created_at is preserved")
}

func TestApplyUpsert_DefaultsAbsentFields(t *testing.T) {
	store := openTestStore(t)
	d := entityByName(t, "accountings")
	ctx := context.Background()

	res, err := applyUpsert(ctx, store.DB(), d, Row{
		"code": "ACC-1",
		"name": "Compte courant",
		"type": "standalone",
	}, 0, 2000)
	require.NoError(t, err)
	assert.True(t, res.Applied)

	var currency string
	var openingBalance int64
	err = store.DB().QueryRow(
		"SELECT currency, opening_balance FROM "+database.TableAccountings+" WHERE code = 'ACC-1'",
	).Scan(&currency, &openingBalance)
	require.NoError(t, err)
	assert.Equal(t, "XAF", currency)
	assert.Equal(t, int64(0), openingBalance)
}

func TestApplyUpsert_UpdateAtCursorIsNotAConflict(t *testing.T) {
	store := openTestStore(t)
	d := entityByName(t, "goals")
	ctx := context.Background()
	const since = int64(1000)

	insertGoal(t, store, 1, "old title", 500, since, nil)

	res, err := applyUpsert(ctx, store.DB(), d, Row{
		"id":            float64(1),
		"title":         "new title",
		"target_amount": float64(1000),
	}, since, 2000)
	require.NoError(t, err)
	assert.True(t, res.Applied)

	title, updatedAt, _ := fetchGoal(t, store, 1)
	assert.Equal(t, "new title", title)
	assert.Equal(t, int64(2000), updatedAt)
}

func TestApplyUpsert_ConflictWhenServerIsNewer(t *testing.T) {
	store := openTestStore(t)
	d := entityByName(t, "goals")
	ctx := context.Background()
	const since = int64(1000)

	insertGoal(t, store, 1, "server title", 500, since+1, nil)

	res, err := applyUpsert(ctx, store.DB(), d, Row{
		"id":            float64(1),
		"title":         "client title",
		"target_amount": float64(1000),
	}, since, 2000)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.True(t, res.Conflict)

	title, updatedAt, _ := fetchGoal(t, store, 1)
	assert.Equal(t, "server title", title, "conflicting change must not be written")
	assert.Equal(t, since+1, updatedAt)
}

func TestApplyUpsert_ReactivatesTombstone(t *testing.T) {
	store := openTestStore(t)
	d := entityByName(t, "goals")
	ctx := context.Background()

	deleted := int64(900)
	insertGoal(t, store, 1, "buried", 500, 900, &deleted)

	res, err := applyUpsert(ctx, store.DB(), d, Row{
		"id":            float64(1),
		"title":         "revived",
		"target_amount": float64(1000),
	}, 1000, 2000)
	require.NoError(t, err)
	assert.True(t, res.Applied)

	title, _, deletedAt := fetchGoal(t, store, 1)
	assert.Equal(t, "revived", title)
	assert.Nil(t, deletedAt, "upsert clears the tombstone")
}

func TestApplyUpsert_MissingKey(t *testing.T) {
	store := openTestStore(t)
	d := entityByName(t, "goals")

	_, err := applyUpsert(context.Background(), store.DB(), d, Row{
		"title": "no id",
	}, 0, 2000)
	assert.Error(t, err)
}

func TestApplyDelete_SetsTombstone(t *testing.T) {
	store := openTestStore(t)
	d := entityByName(t, "goals")
	ctx := context.Background()

	insertGoal(t, store, 1, "doomed", 500, 500, nil)

	res, err := applyDelete(ctx, store.DB(), d, float64(1), 1000, 2000)
	require.NoError(t, err)
	assert.True(t, res.Applied)

	_, updatedAt, deletedAt := fetchGoal(t, store, 1)
	require.NotNil(t, deletedAt)
	assert.Equal(t, int64(2000), *deletedAt)
	assert.Equal(t, int64(2000), updatedAt)
}

func TestApplyDelete_AbsentKeyIsANoOp(t *testing.T) {
	store := openTestStore(t)
	d := entityByName(t, "goals")

	res, err := applyDelete(context.Background(), store.DB(), d, float64(99), 1000, 2000)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.False(t, res.Conflict)
}

func TestApplyDelete_ConflictWhenServerIsNewer(t *testing.T) {
	store := openTestStore(t)
	d := entityByName(t, "goals")
	const since = int64(1000)

	insertGoal(t, store, 1, "survivor", 500, since+1, nil)

	res, err := applyDelete(context.Background(), store.DB(), d, float64(1), since, 2000)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.True(t, res.Conflict)

	_, _, deletedAt := fetchGoal(t, store, 1)
	assert.Nil(t, deletedAt)
}

func TestApplyDelete_MasterAccountingIsGuarded(t *testing.T) {
	store := openTestStore(t)
	d := entityByName(t, "accountings")

	_, err := applyDelete(context.Background(), store.DB(), d, database.MasterAccountingCode, 0, 2000)
	assert.ErrorIs(t, err, errMasterDelete)

	var deleted sql.NullInt64
	scanErr := store.DB().QueryRow(
		"SELECT deleted_at FROM "+database.TableAccountings+" WHERE code = ?",
		database.MasterAccountingCode,
	).Scan(&deleted)
	require.NoError(t, scanErr)
	assert.False(t, deleted.Valid)
}
