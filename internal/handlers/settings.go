package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type SettingHandler struct {
	repo repositories.SettingRepository
}

func NewSettingHandler(repo repositories.SettingRepository) *SettingHandler {
	return &SettingHandler{repo: repo}
}

// List returns all settings flattened to a key/value object.
func (h *SettingHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repo.All(r.Context())
	if err != nil {
		log.Printf("error fetching settings: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *SettingHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.Get(r.Context(), chi.URLParam(r, "key"))
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "setting not found")
		return
	}
	if err != nil {
		log.Printf("error fetching setting: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch setting")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": s.Key, "value": s.Value})
}

func (h *SettingHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	key, value := body.str("key"), body.str("value")
	if key == nil || *key == "" || value == nil {
		writeError(w, http.StatusBadRequest, "key and value are required")
		return
	}

	s := &models.Setting{Key: *key, Value: *value}
	err = h.repo.Create(r.Context(), s)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		writeError(w, http.StatusConflict, "this setting already exists")
		return
	}
	if err != nil {
		log.Printf("error creating setting: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create setting")
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *SettingHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	value := body.str("value")
	if value == nil {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	s, err := h.repo.Set(r.Context(), chi.URLParam(r, "key"), *value)
	if err != nil {
		log.Printf("error updating setting: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update setting")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SettingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.SoftDelete(r.Context(), chi.URLParam(r, "key"))
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "setting not found")
	case err != nil:
		log.Printf("error deleting setting: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete setting")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
