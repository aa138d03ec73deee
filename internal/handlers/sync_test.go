package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncPull_RequiresSince(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/sync", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/sync?since=not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncPull_Envelope(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/sync?since=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.EqualValues(t, 0, body["since"])
	assert.NotZero(t, body["server_time"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	for _, entity := range []string{
		"transactions", "accountings", "goals", "goalContribs", "debts",
		"debtPayments", "savings", "savingMoves", "autoSaves",
		"financeEvents", "settings",
	} {
		assert.Contains(t, data, entity)
	}

	// Seeds are visible from a zero cursor.
	accountings := data["accountings"].(map[string]any)
	created := accountings["created"].([]any)
	require.Len(t, created, 1)
	assert.Equal(t, "MASTER", created[0].(map[string]any)["code"])
}

func TestSyncPull_AcceptsISOCursor(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/sync?since=2024-03-01T10:30:00Z", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSyncPush_RejectsMalformedRequests(t *testing.T) {
	router := newTestRouter(t)

	req := httpPushBody("", 0, nil, nil)
	rec := doJSON(t, router, http.MethodPost, "/api/sync", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/sync", map[string]any{
		"device_id":   "device-1",
		"client_time": time.Now().UnixMilli(),
		"since":       "not-a-date",
		"changes":     map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncPush_AppliesChanges(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/sync", httpPushBody(
		"device-1", time.Now().UnixMilli(), 0,
		map[string]any{
			"goals": map[string]any{
				"upserts": []any{map[string]any{
					"id":            1,
					"title":         "Fonds d'urgence",
					"target_amount": 300000,
				}},
			},
		},
	))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "device-1", body["device_id"])

	results := body["results"].(map[string]any)
	applied := results["applied"].(map[string]any)
	goals := applied["goals"].(map[string]any)
	assert.EqualValues(t, 1, goals["upserted"])

	summary := body["summary"].(map[string]any)
	assert.EqualValues(t, 0, summary["conflictsCount"])
	assert.EqualValues(t, 0, summary["errorsCount"])
}

func httpPushBody(deviceID string, clientTime int64, since any, changes map[string]any) map[string]any {
	body := map[string]any{}
	if deviceID != "" {
		body["device_id"] = deviceID
	}
	if clientTime != 0 {
		body["client_time"] = clientTime
	}
	if since != nil {
		body["since"] = since
	}
	if changes != nil {
		body["changes"] = changes
	}
	return body
}
