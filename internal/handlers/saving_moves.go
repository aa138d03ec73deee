package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type SavingMoveHandler struct {
	repo repositories.SavingMoveRepository
}

func NewSavingMoveHandler(repo repositories.SavingMoveRepository) *SavingMoveHandler {
	return &SavingMoveHandler{repo: repo}
}

func (h *SavingMoveHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.SavingMoveFilter{Direction: q.Get("direction")}
	if v := q.Get("saving_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid saving_id")
			return
		}
		filter.SavingID = id
	}
	filter.Limit, filter.Offset = pageParams(q)

	moves, err := h.repo.List(r.Context(), filter)
	if err != nil {
		log.Printf("error fetching saving moves: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch saving moves")
		return
	}
	if moves == nil {
		moves = []*models.SavingMove{}
	}
	writeJSON(w, http.StatusOK, moves)
}

func (h *SavingMoveHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	m, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "saving move not found")
		return
	}
	if err != nil {
		log.Printf("error fetching saving move: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch saving move")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *SavingMoveHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	savingID, direction, amount := body.i64("saving_id"), body.str("direction"), body.i64("amount")
	if savingID == nil || *savingID == 0 || direction == nil || *direction == "" || amount == nil {
		writeError(w, http.StatusBadRequest, "saving_id, direction and amount are required")
		return
	}
	if !models.ValidSavingMoveDirection(*direction) {
		writeError(w, http.StatusBadRequest, "direction must be: in or out")
		return
	}
	if *amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be >= 0")
		return
	}

	m := &models.SavingMove{
		SavingID:  *savingID,
		Direction: *direction,
		Amount:    *amount,
		Note:      body.str("note"),
	}
	if at := body.i64("occurred_at"); at != nil {
		m.OccurredAt = *at
	}

	err = h.repo.Create(r.Context(), m)
	if errors.Is(err, repositories.ErrMissingReference) {
		writeError(w, http.StatusBadRequest, "saving not found")
		return
	}
	if err != nil {
		log.Printf("error creating saving move: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create saving move")
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *SavingMoveHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	if d := body.str("direction"); d != nil && !models.ValidSavingMoveDirection(*d) {
		writeError(w, http.StatusBadRequest, "direction must be: in or out")
		return
	}
	if a := body.i64("amount"); a != nil && *a < 0 {
		writeError(w, http.StatusBadRequest, "amount must be >= 0")
		return
	}

	params := repositories.UpdateSavingMoveParams{
		Direction:  body.str("direction"),
		Amount:     body.i64("amount"),
		Note:       body.str("note"),
		NoteSet:    body.has("note"),
		OccurredAt: body.i64("occurred_at"),
	}

	m, err := h.repo.Update(r.Context(), id, params)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "saving move not found")
		return
	}
	if err != nil {
		log.Printf("error updating saving move: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update saving move")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *SavingMoveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err := h.repo.SoftDelete(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "saving move not found")
	case err != nil:
		log.Printf("error deleting saving move: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete saving move")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
