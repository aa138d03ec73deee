package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/nkoudou/fastcompta/internal/database"
	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(code, kind string, amount int64) *models.Transaction {
	return &models.Transaction{
		TxCode:         code,
		AccountingCode: database.MasterAccountingCode,
		Kind:           kind,
		Amount:         amount,
		Label:          "ligne " + code,
	}
}

func TestTransactionRepository_Create(t *testing.T) {
	repo := NewSQLiteTransactionRepository(openTestStore(t))
	ctx := context.Background()

	tx := newTestTransaction("TX-1", models.TransactionKindExpense, 2500)
	require.NoError(t, repo.Create(ctx, tx))

	assert.NotZero(t, tx.ID)
	assert.NotZero(t, tx.TxDate, "tx_date defaults to now")
	assert.NotZero(t, tx.CreatedAt)
}

func TestTransactionRepository_Create_DuplicateCode(t *testing.T) {
	repo := NewSQLiteTransactionRepository(openTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestTransaction("TX-1", models.TransactionKindExpense, 100)))
	err := repo.Create(ctx, newTestTransaction("TX-1", models.TransactionKindIncome, 200))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestTransactionRepository_Create_UnknownAccounting(t *testing.T) {
	repo := NewSQLiteTransactionRepository(openTestStore(t))

	tx := newTestTransaction("TX-1", models.TransactionKindExpense, 100)
	tx.AccountingCode = "GHOST"
	err := repo.Create(context.Background(), tx)
	assert.ErrorIs(t, err, ErrMissingReference)
}

func TestTransactionRepository_List_Filters(t *testing.T) {
	repo := NewSQLiteTransactionRepository(openTestStore(t))
	ctx := context.Background()

	kinds := []string{
		models.TransactionKindIncome,
		models.TransactionKindExpense,
		models.TransactionKindExpense,
	}
	for i, kind := range kinds {
		require.NoError(t, repo.Create(ctx, newTestTransaction(fmt.Sprintf("TX-%d", i), kind, 100)))
	}

	expenses, err := repo.List(ctx, TransactionFilter{Kind: models.TransactionKindExpense})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	paged, err := repo.List(ctx, TransactionFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 1)

	none, err := repo.List(ctx, TransactionFilter{AccountingCode: "GHOST"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTransactionRepository_SoftDelete(t *testing.T) {
	repo := NewSQLiteTransactionRepository(openTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestTransaction("TX-1", models.TransactionKindExpense, 100)))
	require.NoError(t, repo.SoftDelete(ctx, "TX-1"))

	_, err := repo.GetByCode(ctx, "TX-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.SoftDelete(ctx, "TX-1"), ErrNotFound)
}
