package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type SavingHandler struct {
	repo repositories.SavingRepository
}

func NewSavingHandler(repo repositories.SavingRepository) *SavingHandler {
	return &SavingHandler{repo: repo}
}

func (h *SavingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.SavingFilter{
		Archived:       boolFlag(q, "archived"),
		AccountingCode: q.Get("accounting_code"),
	}
	filter.Limit, filter.Offset = pageParams(q)

	savings, err := h.repo.List(r.Context(), filter)
	if err != nil {
		log.Printf("error fetching savings: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch savings")
		return
	}
	if savings == nil {
		savings = []*models.Saving{}
	}
	writeJSON(w, http.StatusOK, savings)
}

func (h *SavingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "saving not found")
		return
	}
	if err != nil {
		log.Printf("error fetching saving: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch saving")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SavingHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	title := body.str("title")
	if title == nil || *title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	s := &models.Saving{
		Title:          *title,
		Note:           body.str("note"),
		AccountingCode: body.str("accounting_code"),
	}
	if a := body.i64("archived"); a != nil {
		s.Archived = *a
	}

	err = h.repo.Create(r.Context(), s)
	if errors.Is(err, repositories.ErrMissingReference) {
		writeError(w, http.StatusBadRequest, "accounting not found")
		return
	}
	if err != nil {
		log.Printf("error creating saving: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create saving")
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *SavingHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	params := repositories.UpdateSavingParams{
		Title:             body.str("title"),
		Note:              body.str("note"),
		NoteSet:           body.has("note"),
		AccountingCode:    body.str("accounting_code"),
		AccountingCodeSet: body.has("accounting_code"),
		Archived:          body.i64("archived"),
	}

	s, err := h.repo.Update(r.Context(), id, params)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "saving not found")
		return
	}
	if errors.Is(err, repositories.ErrMissingReference) {
		writeError(w, http.StatusBadRequest, "accounting not found")
		return
	}
	if err != nil {
		log.Printf("error updating saving: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update saving")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *SavingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err := h.repo.SoftDelete(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "saving not found")
	case err != nil:
		log.Printf("error deleting saving: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete saving")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
