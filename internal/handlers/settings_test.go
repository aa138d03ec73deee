package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_ListDefaults(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "XAF", body["default_currency"])
	assert.Equal(t, "fr", body["language"])
	assert.Len(t, body, 9)
}

func TestSettings_Get(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/settings/language", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"key": "language", "value": "fr"}, decodeBody(t, rec))

	rec = doJSON(t, router, http.MethodGet, "/api/settings/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettings_CreateDuplicate(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/settings", map[string]any{
		"key":   "language",
		"value": "en",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSettings_UpdateUpserts(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/settings/language", map[string]any{
		"value": "en",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/settings/language", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "en", decodeBody(t, rec)["value"])

	// PUT on an unknown key creates it.
	rec = doJSON(t, router, http.MethodPut, "/api/settings/theme", map[string]any{
		"value": "dark",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/settings/theme", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dark", decodeBody(t, rec)["value"])
}

func TestSettings_Delete(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodDelete, "/api/settings/auto_backup", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/settings/auto_backup", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
