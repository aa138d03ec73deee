package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type DebtPaymentHandler struct {
	repo repositories.DebtPaymentRepository
}

func NewDebtPaymentHandler(repo repositories.DebtPaymentRepository) *DebtPaymentHandler {
	return &DebtPaymentHandler{repo: repo}
}

func (h *DebtPaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter repositories.DebtPaymentFilter
	if v := q.Get("debt_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid debt_id")
			return
		}
		filter.DebtID = id
	}
	filter.Limit, filter.Offset = pageParams(q)

	payments, err := h.repo.List(r.Context(), filter)
	if err != nil {
		log.Printf("error fetching debt payments: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch debt payments")
		return
	}
	if payments == nil {
		payments = []*models.DebtPayment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *DebtPaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "debt payment not found")
		return
	}
	if err != nil {
		log.Printf("error fetching debt payment: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch debt payment")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *DebtPaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	debtID, amount := body.i64("debt_id"), body.i64("amount")
	if debtID == nil || *debtID == 0 || amount == nil {
		writeError(w, http.StatusBadRequest, "debt_id and amount are required")
		return
	}
	if *amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be >= 0")
		return
	}

	p := &models.DebtPayment{
		DebtID: *debtID,
		Amount: *amount,
		Note:   body.str("note"),
	}
	if at := body.i64("occurred_at"); at != nil {
		p.OccurredAt = *at
	}

	err = h.repo.Create(r.Context(), p)
	if errors.Is(err, repositories.ErrMissingReference) {
		writeError(w, http.StatusBadRequest, "debt not found")
		return
	}
	if err != nil {
		log.Printf("error creating debt payment: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create debt payment")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *DebtPaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	params := repositories.UpdateDebtPaymentParams{
		Amount:     body.i64("amount"),
		Note:       body.str("note"),
		NoteSet:    body.has("note"),
		OccurredAt: body.i64("occurred_at"),
	}

	p, err := h.repo.Update(r.Context(), id, params)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "debt payment not found")
		return
	}
	if err != nil {
		log.Printf("error updating debt payment: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update debt payment")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *DebtPaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err := h.repo.SoftDelete(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "debt payment not found")
	case err != nil:
		log.Printf("error deleting debt payment: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete debt payment")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
