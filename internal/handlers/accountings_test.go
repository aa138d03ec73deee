package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountings_Create(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/accountings", map[string]any{
		"code": "PERSO",
		"name": "Compte perso",
		"type": "standalone",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "PERSO", body["code"])
	assert.Equal(t, "XAF", body["currency"], "currency defaults to XAF")
	assert.NotZero(t, body["created_at"])
}

func TestAccountings_Create_Validation(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/accountings", map[string]any{
		"code": "PERSO",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/accountings", map[string]any{
		"code": "PERSO",
		"name": "Compte perso",
		"type": "bogus",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountings_Create_DuplicateCode(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/accountings", map[string]any{
		"code": "MASTER",
		"name": "Imposteur",
		"type": "standalone",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAccountings_Get(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/accountings/MASTER", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "master", decodeBody(t, rec)["type"])

	rec = doJSON(t, router, http.MethodGet, "/api/accountings/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountings_Delete(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/accountings", map[string]any{
		"code": "TEMP",
		"name": "Éphémère",
		"type": "standalone",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/accountings/TEMP", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Soft-deleted rows disappear from reads.
	rec = doJSON(t, router, http.MethodGet, "/api/accountings/TEMP", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/accountings/TEMP", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccountings_Delete_MasterIsProtected(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodDelete, "/api/accountings/MASTER", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAccountings_Update(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/accountings", map[string]any{
		"code": "PERSO",
		"name": "Compte perso",
		"type": "standalone",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/accountings/PERSO", map[string]any{
		"name": "Compte renommé",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Compte renommé", body["name"])
	assert.Equal(t, "standalone", body["type"], "omitted fields keep their value")
}
