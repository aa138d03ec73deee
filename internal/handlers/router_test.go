package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nkoudou/fastcompta/internal/database"
	"github.com/nkoudou/fastcompta/internal/repositories"
	syncer "github.com/nkoudou/fastcompta/internal/sync"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	store, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "compta.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewRouter(&Handlers{
		Sync:          NewSyncHandler(syncer.NewService(store)),
		Accountings:   NewAccountingHandler(repositories.NewSQLiteAccountingRepository(store)),
		Transactions:  NewTransactionHandler(repositories.NewSQLiteTransactionRepository(store)),
		Settings:      NewSettingHandler(repositories.NewSQLiteSettingRepository(store)),
		Goals:         NewGoalHandler(repositories.NewSQLiteGoalRepository(store)),
		GoalContribs:  NewGoalContribHandler(repositories.NewSQLiteGoalContribRepository(store)),
		Debts:         NewDebtHandler(repositories.NewSQLiteDebtRepository(store)),
		DebtPayments:  NewDebtPaymentHandler(repositories.NewSQLiteDebtPaymentRepository(store)),
		Savings:       NewSavingHandler(repositories.NewSQLiteSavingRepository(store)),
		SavingMoves:   NewSavingMoveHandler(repositories.NewSQLiteSavingMoveRepository(store)),
		AutoSaves:     NewAutoSaveHandler(repositories.NewSQLiteAutoSaveRepository(store)),
		FinanceEvents: NewFinanceEventHandler(repositories.NewSQLiteFinanceEventRepository(store)),
	})
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jsonDecode(rec *httptest.ResponseRecorder, v any) error {
	return json.NewDecoder(rec.Body).Decode(v)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestUID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/uid", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	uid, ok := decodeBody(t, rec)["uid"].(string)
	require.True(t, ok)
	require.Len(t, uid, 36)
}
