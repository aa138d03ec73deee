package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFinanceEvent(t *testing.T, router http.Handler, body map[string]any) map[string]any {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/finance-events", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody(t, rec)
}

func TestFinanceEvents_Create_StringMeta(t *testing.T) {
	router := newTestRouter(t)

	created := createFinanceEvent(t, router, map[string]any{
		"type":  "reminder",
		"title": "Échéance loyer",
		"meta":  "texte libre",
	})
	assert.Equal(t, "texte libre", created["meta"])
}

func TestFinanceEvents_Create_ObjectMeta(t *testing.T) {
	router := newTestRouter(t)

	// Structured metas are stored as their JSON text, not dropped.
	created := createFinanceEvent(t, router, map[string]any{
		"type":  "reminder",
		"title": "Échéance loyer",
		"meta":  map[string]any{"channel": "sms", "days_before": 3},
	})
	assert.Equal(t, `{"channel":"sms","days_before":3}`, created["meta"])
}

func TestFinanceEvents_Update(t *testing.T) {
	router := newTestRouter(t)

	created := createFinanceEvent(t, router, map[string]any{
		"type":        "reminder",
		"title":       "Échéance loyer",
		"amount":      150000,
		"occurred_at": 1700000000000,
	})
	id := int64(created["id"].(float64))

	// Omitted fields keep their stored value.
	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/finance-events/%d", id), map[string]any{
		"title": "Échéance loyer (relance)",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Échéance loyer (relance)", body["title"])
	assert.Equal(t, "reminder", body["type"])
	assert.Equal(t, float64(150000), body["amount"])
	assert.Equal(t, float64(1700000000000), body["occurred_at"])

	// An explicit null clears a nullable field and object metas stay JSON text.
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/finance-events/%d", id), map[string]any{
		"amount": nil,
		"meta":   map[string]any{"channel": "email"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body = decodeBody(t, rec)
	assert.Nil(t, body["amount"])
	assert.Equal(t, `{"channel":"email"}`, body["meta"])
}

func TestFinanceEvents_Update_NotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/finance-events/99", map[string]any{
		"title": "fantôme",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFinanceEvents_List_Filters(t *testing.T) {
	router := newTestRouter(t)

	createFinanceEvent(t, router, map[string]any{
		"type": "reminder", "title": "Loyer", "ref_id": 7, "occurred_at": 1000,
	})
	createFinanceEvent(t, router, map[string]any{
		"type": "reminder", "title": "Eau", "occurred_at": 2000,
	})
	createFinanceEvent(t, router, map[string]any{
		"type": "alert", "title": "Découvert", "occurred_at": 3000,
	})

	var events []map[string]any
	rec := doJSON(t, router, http.MethodGet, "/api/finance-events?ref_id=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, jsonDecode(rec, &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Loyer", events[0]["title"])

	rec = doJSON(t, router, http.MethodGet, "/api/finance-events?from_date=2000&to_date=3000", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, jsonDecode(rec, &events))
	require.Len(t, events, 2)
	assert.Equal(t, "Découvert", events[0]["title"], "newest first")

	rec = doJSON(t, router, http.MethodGet, "/api/finance-events?type=reminder&limit=1&offset=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, jsonDecode(rec, &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Loyer", events[0]["title"])
}
