package repositories

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nkoudou/fastcompta/internal/database"
	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "compta.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAccountingRepository_Create(t *testing.T) {
	repo := NewSQLiteAccountingRepository(openTestStore(t))
	ctx := context.Background()

	a := &models.Accounting{
		Code:     "PERSO",
		Name:     "Compte perso",
		Type:     models.AccountingTypeStandalone,
		Currency: "XAF",
	}
	err := repo.Create(ctx, a)
	require.NoError(t, err)

	assert.NotZero(t, a.ID, "Create reloads the stored row")
	assert.NotZero(t, a.CreatedAt)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestAccountingRepository_Create_DuplicateCode(t *testing.T) {
	repo := NewSQLiteAccountingRepository(openTestStore(t))
	ctx := context.Background()

	err := repo.Create(ctx, &models.Accounting{
		Code:     database.MasterAccountingCode,
		Name:     "Imposteur",
		Type:     models.AccountingTypeStandalone,
		Currency: "XAF",
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestAccountingRepository_GetByCode_NotFound(t *testing.T) {
	repo := NewSQLiteAccountingRepository(openTestStore(t))

	_, err := repo.GetByCode(context.Background(), "GHOST")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountingRepository_Update_KeepsOmittedFields(t *testing.T) {
	repo := NewSQLiteAccountingRepository(openTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Accounting{
		Code:     "PERSO",
		Name:     "Compte perso",
		Type:     models.AccountingTypeStandalone,
		Currency: "XAF",
	}))

	newName := "Compte renommé"
	updated, err := repo.Update(ctx, "PERSO", UpdateAccountingParams{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Compte renommé", updated.Name)
	assert.Equal(t, models.AccountingTypeStandalone, updated.Type)
	assert.Equal(t, "XAF", updated.Currency)
}

func TestAccountingRepository_Update_ClearsParentCode(t *testing.T) {
	repo := NewSQLiteAccountingRepository(openTestStore(t))
	ctx := context.Background()

	parent := database.MasterAccountingCode
	require.NoError(t, repo.Create(ctx, &models.Accounting{
		Code:       "CHILD",
		Name:       "Sous-compte",
		Type:       models.AccountingTypeLinked,
		ParentCode: &parent,
		Currency:   "XAF",
	}))

	updated, err := repo.Update(ctx, "CHILD", UpdateAccountingParams{
		ParentCode:    nil,
		ParentCodeSet: true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ParentCode)
}

func TestAccountingRepository_SoftDelete(t *testing.T) {
	repo := NewSQLiteAccountingRepository(openTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Accounting{
		Code:     "TEMP",
		Name:     "Éphémère",
		Type:     models.AccountingTypeStandalone,
		Currency: "XAF",
	}))

	require.NoError(t, repo.SoftDelete(ctx, "TEMP"))

	_, err := repo.GetByCode(ctx, "TEMP")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an already-deleted row reports not found.
	assert.ErrorIs(t, repo.SoftDelete(ctx, "TEMP"), ErrNotFound)
}

func TestAccountingRepository_SoftDelete_MasterIsProtected(t *testing.T) {
	repo := NewSQLiteAccountingRepository(openTestStore(t))

	err := repo.SoftDelete(context.Background(), database.MasterAccountingCode)
	assert.ErrorIs(t, err, ErrProtected)

	_, getErr := repo.GetByCode(context.Background(), database.MasterAccountingCode)
	assert.NoError(t, getErr)
}

func TestAccountingRepository_List_ExcludesDeleted(t *testing.T) {
	repo := NewSQLiteAccountingRepository(openTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Accounting{
		Code: "A1", Name: "Un", Type: models.AccountingTypeStandalone, Currency: "XAF",
	}))
	require.NoError(t, repo.Create(ctx, &models.Accounting{
		Code: "A2", Name: "Deux", Type: models.AccountingTypeStandalone, Currency: "XAF",
	}))
	require.NoError(t, repo.SoftDelete(ctx, "A1"))

	accountings, err := repo.List(ctx)
	require.NoError(t, err)

	codes := make([]string, 0, len(accountings))
	for _, a := range accountings {
		codes = append(codes, a.Code)
	}
	assert.Contains(t, codes, "A2")
	assert.Contains(t, codes, database.MasterAccountingCode)
	assert.NotContains(t, codes, "A1")
}
