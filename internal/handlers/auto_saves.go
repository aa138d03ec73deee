package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type AutoSaveHandler struct {
	repo repositories.AutoSaveRepository
}

func NewAutoSaveHandler(repo repositories.AutoSaveRepository) *AutoSaveHandler {
	return &AutoSaveHandler{repo: repo}
}

func (h *AutoSaveHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.AutoSaveFilter{
		Enabled:        boolFlag(q, "enabled"),
		AccountingCode: q.Get("accounting_code"),
	}
	filter.Limit, filter.Offset = pageParams(q)

	rules, err := h.repo.List(r.Context(), filter)
	if err != nil {
		log.Printf("error fetching auto-save rules: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch auto-save rules")
		return
	}
	if rules == nil {
		rules = []*models.AutoSave{}
	}
	writeJSON(w, http.StatusOK, rules)
}

func (h *AutoSaveHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	a, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "auto-save rule not found")
		return
	}
	if err != nil {
		log.Printf("error fetching auto-save rule: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch auto-save rule")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AutoSaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	title, amount, cadence := body.str("title"), body.i64("amount"), body.str("cadence")
	if title == nil || *title == "" || amount == nil || cadence == nil || *cadence == "" {
		writeError(w, http.StatusBadRequest, "title, amount and cadence are required")
		return
	}
	if !models.ValidCadence(*cadence) {
		writeError(w, http.StatusBadRequest, "cadence must be: daily, weekly or monthly")
		return
	}
	if *amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be >= 0")
		return
	}

	a := &models.AutoSave{
		Title:          *title,
		Note:           body.str("note"),
		Amount:         *amount,
		Cadence:        *cadence,
		Enabled:        1,
		StartAt:        body.i64("start_at"),
		LastRunAt:      body.i64("last_run_at"),
		AccountingCode: body.str("accounting_code"),
	}
	if e := body.i64("enabled"); e != nil {
		a.Enabled = *e
	}

	err = h.repo.Create(r.Context(), a)
	if errors.Is(err, repositories.ErrMissingReference) {
		writeError(w, http.StatusBadRequest, "accounting not found")
		return
	}
	if err != nil {
		log.Printf("error creating auto-save rule: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create auto-save rule")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AutoSaveHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if c := body.str("cadence"); c != nil && !models.ValidCadence(*c) {
		writeError(w, http.StatusBadRequest, "cadence must be: daily, weekly or monthly")
		return
	}
	if a := body.i64("amount"); a != nil && *a < 0 {
		writeError(w, http.StatusBadRequest, "amount must be >= 0")
		return
	}

	params := repositories.UpdateAutoSaveParams{
		Title:             body.str("title"),
		Note:              body.str("note"),
		NoteSet:           body.has("note"),
		Amount:            body.i64("amount"),
		Cadence:           body.str("cadence"),
		Enabled:           body.i64("enabled"),
		StartAt:           body.i64("start_at"),
		StartAtSet:        body.has("start_at"),
		LastRunAt:         body.i64("last_run_at"),
		LastRunAtSet:      body.has("last_run_at"),
		AccountingCode:    body.str("accounting_code"),
		AccountingCodeSet: body.has("accounting_code"),
	}

	a, err := h.repo.Update(r.Context(), id, params)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "auto-save rule not found")
		return
	}
	if errors.Is(err, repositories.ErrMissingReference) {
		writeError(w, http.StatusBadRequest, "accounting not found")
		return
	}
	if err != nil {
		log.Printf("error updating auto-save rule: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update auto-save rule")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AutoSaveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err := h.repo.SoftDelete(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "auto-save rule not found")
	case err != nil:
		log.Printf("error deleting auto-save rule: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete auto-save rule")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
