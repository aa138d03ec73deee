package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type FinanceEventHandler struct {
	repo repositories.FinanceEventRepository
}

func NewFinanceEventHandler(repo repositories.FinanceEventRepository) *FinanceEventHandler {
	return &FinanceEventHandler{repo: repo}
}

func (h *FinanceEventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.FinanceEventFilter{Type: q.Get("type")}
	if v := q.Get("ref_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid ref_id")
			return
		}
		filter.RefID = &id
	}
	if v := q.Get("from_date"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from_date")
			return
		}
		filter.FromDate = ms
	}
	if v := q.Get("to_date"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to_date")
			return
		}
		filter.ToDate = ms
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	events, err := h.repo.List(r.Context(), filter)
	if err != nil {
		log.Printf("error fetching finance events: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch finance events")
		return
	}
	if events == nil {
		events = []*models.FinanceEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *FinanceEventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	e, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "finance event not found")
		return
	}
	if err != nil {
		log.Printf("error fetching finance event: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch finance event")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *FinanceEventHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	eventType, title := body.str("type"), body.str("title")
	if eventType == nil || *eventType == "" || title == nil || *title == "" {
		writeError(w, http.StatusBadRequest, "type and title are required")
		return
	}

	e := &models.FinanceEvent{
		Type:   *eventType,
		RefID:  body.i64("ref_id"),
		Title:  *title,
		Amount: body.i64("amount"),
		Meta:   body.jsonText("meta"),
	}
	if at := body.i64("occurred_at"); at != nil {
		e.OccurredAt = *at
	}

	if err := h.repo.Create(r.Context(), e); err != nil {
		log.Printf("error creating finance event: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create finance event")
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *FinanceEventHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	params := repositories.UpdateFinanceEventParams{
		Type:       body.str("type"),
		RefID:      body.i64("ref_id"),
		RefIDSet:   body.has("ref_id"),
		Title:      body.str("title"),
		Amount:     body.i64("amount"),
		AmountSet:  body.has("amount"),
		Meta:       body.jsonText("meta"),
		MetaSet:    body.has("meta"),
		OccurredAt: body.i64("occurred_at"),
	}

	e, err := h.repo.Update(r.Context(), id, params)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "finance event not found")
		return
	}
	if err != nil {
		log.Printf("error updating finance event: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update finance event")
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *FinanceEventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err := h.repo.SoftDelete(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "finance event not found")
	case err != nil:
		log.Printf("error deleting finance event: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete finance event")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
