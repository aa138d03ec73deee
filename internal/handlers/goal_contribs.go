package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type GoalContribHandler struct {
	repo repositories.GoalContribRepository
}

func NewGoalContribHandler(repo repositories.GoalContribRepository) *GoalContribHandler {
	return &GoalContribHandler{repo: repo}
}

func (h *GoalContribHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter repositories.GoalContribFilter
	if v := q.Get("goal_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid goal_id")
			return
		}
		filter.GoalID = id
	}
	filter.Limit, filter.Offset = pageParams(q)

	contribs, err := h.repo.List(r.Context(), filter)
	if err != nil {
		log.Printf("error fetching goal contributions: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch goal contributions")
		return
	}
	if contribs == nil {
		contribs = []*models.GoalContrib{}
	}
	writeJSON(w, http.StatusOK, contribs)
}

func (h *GoalContribHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "goal contribution not found")
		return
	}
	if err != nil {
		log.Printf("error fetching goal contribution: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch goal contribution")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *GoalContribHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	goalID, amount := body.i64("goal_id"), body.i64("amount")
	if goalID == nil || *goalID == 0 || amount == nil {
		writeError(w, http.StatusBadRequest, "goal_id and amount are required")
		return
	}
	if *amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be >= 0")
		return
	}

	c := &models.GoalContrib{
		GoalID: *goalID,
		Amount: *amount,
		Note:   body.str("note"),
	}
	if at := body.i64("occurred_at"); at != nil {
		c.OccurredAt = *at
	}

	err = h.repo.Create(r.Context(), c)
	if errors.Is(err, repositories.ErrMissingReference) {
		writeError(w, http.StatusBadRequest, "goal not found")
		return
	}
	if err != nil {
		log.Printf("error creating goal contribution: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create goal contribution")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *GoalContribHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	if a := body.i64("amount"); a != nil && *a < 0 {
		writeError(w, http.StatusBadRequest, "amount must be >= 0")
		return
	}

	params := repositories.UpdateGoalContribParams{
		Amount:     body.i64("amount"),
		Note:       body.str("note"),
		NoteSet:    body.has("note"),
		OccurredAt: body.i64("occurred_at"),
	}

	c, err := h.repo.Update(r.Context(), id, params)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "goal contribution not found")
		return
	}
	if err != nil {
		log.Printf("error updating goal contribution: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update goal contribution")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *GoalContribHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err := h.repo.SoftDelete(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "goal contribution not found")
	case err != nil:
		log.Printf("error deleting goal contribution: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete goal contribution")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
