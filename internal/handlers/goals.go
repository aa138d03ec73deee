package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type GoalHandler struct {
	repo repositories.GoalRepository
}

func NewGoalHandler(repo repositories.GoalRepository) *GoalHandler {
	return &GoalHandler{repo: repo}
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// boolFlag reads a true/false query parameter as the 0/1 integer the schema
// stores; nil when the parameter is absent.
func boolFlag(q url.Values, key string) *int64 {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	n := int64(0)
	if v == "true" {
		n = 1
	}
	return &n
}

// pageParams reads limit and offset from the query string; malformed or
// negative values are ignored.
func pageParams(q url.Values) (limit, offset int) {
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		limit = n
	}
	if n, err := strconv.Atoi(q.Get("offset")); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.GoalFilter{Archived: boolFlag(q, "archived")}
	filter.Limit, filter.Offset = pageParams(q)

	goals, err := h.repo.List(r.Context(), filter)
	if err != nil {
		log.Printf("error fetching goals: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch goals")
		return
	}
	if goals == nil {
		goals = []*models.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	g, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		log.Printf("error fetching goal: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch goal")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	title, targetAmount := body.str("title"), body.i64("target_amount")
	if title == nil || *title == "" || targetAmount == nil {
		writeError(w, http.StatusBadRequest, "title and target_amount are required")
		return
	}
	if *targetAmount < 0 {
		writeError(w, http.StatusBadRequest, "target_amount must be >= 0")
		return
	}

	g := &models.Goal{
		Title:        *title,
		Note:         body.str("note"),
		TargetAmount: *targetAmount,
		Deadline:     body.i64("deadline"),
	}
	if sa := body.i64("start_amount"); sa != nil {
		g.StartAmount = *sa
	}
	if a := body.i64("archived"); a != nil {
		g.Archived = *a
	}

	if err := h.repo.Create(r.Context(), g); err != nil {
		log.Printf("error creating goal: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create goal")
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	params := repositories.UpdateGoalParams{
		Title:        body.str("title"),
		Note:         body.str("note"),
		NoteSet:      body.has("note"),
		StartAmount:  body.i64("start_amount"),
		TargetAmount: body.i64("target_amount"),
		Deadline:     body.i64("deadline"),
		DeadlineSet:  body.has("deadline"),
		Archived:     body.i64("archived"),
	}

	g, err := h.repo.Update(r.Context(), id, params)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	if err != nil {
		log.Printf("error updating goal: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update goal")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err := h.repo.SoftDelete(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "goal not found")
	case err != nil:
		log.Printf("error deleting goal: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete goal")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
