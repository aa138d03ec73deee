package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "compta.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen_SeedsMasterAccounting(t *testing.T) {
	store := openTestStore(t)

	var name, accType string
	err := store.DB().QueryRow(
		"SELECT name, type FROM "+TableAccountings+" WHERE code = ?",
		MasterAccountingCode,
	).Scan(&name, &accType)
	require.NoError(t, err)
	assert.Equal(t, "Comptabilité principale", name)
	assert.Equal(t, "master", accType)
}

func TestOpen_SeedsDefaultSettings(t *testing.T) {
	store := openTestStore(t)

	var count int
	err := store.DB().QueryRow("SELECT COUNT(*) FROM " + TableAppSettings).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, len(defaultSettings), count)

	var currency string
	err = store.DB().QueryRow(
		"SELECT value FROM " + TableAppSettings + " WHERE key = 'default_currency'",
	).Scan(&currency)
	require.NoError(t, err)
	assert.Equal(t, "XAF", currency)
}

func TestOpen_ReopenDoesNotReseed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "compta.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)

	// Mutate a seeded value, then reopen the same file.
	_, err = store.DB().Exec(
		"UPDATE " + TableAppSettings + " SET value = 'EUR' WHERE key = 'default_currency'")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()

	var currency string
	err = store.DB().QueryRow(
		"SELECT value FROM " + TableAppSettings + " WHERE key = 'default_currency'",
	).Scan(&currency)
	require.NoError(t, err)
	assert.Equal(t, "EUR", currency, "reopening must not overwrite existing settings")

	var masters int
	err = store.DB().QueryRow(
		"SELECT COUNT(*) FROM "+TableAccountings+" WHERE code = ?",
		MasterAccountingCode,
	).Scan(&masters)
	require.NoError(t, err)
	assert.Equal(t, 1, masters)
}

func TestCreateSchema_AddsSyncColumns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, table := range []string{
		TableAccountings, TableTransactions, TableGoals, TableGoalContribs,
		TableDebts, TableDebtPayments, TableSavings, TableSavingMoves,
		TableAutoSaves, TableFinanceEvents, TableAppSettings,
	} {
		cols, err := TableColumns(ctx, store.DB(), table)
		require.NoError(t, err)
		assert.True(t, cols["deleted_at"], "%s should carry deleted_at", table)
		assert.True(t, cols["updated_at"], "%s should carry updated_at", table)
		assert.True(t, cols["created_at"], "%s should carry created_at", table)
	}
}

func TestTableColumns_UnknownTable(t *testing.T) {
	store := openTestStore(t)

	cols, err := TableColumns(context.Background(), store.DB(), "no_such_table")
	require.NoError(t, err)
	assert.Empty(t, cols)
}
