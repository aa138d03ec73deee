package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type DebtHandler struct {
	repo repositories.DebtRepository
}

func NewDebtHandler(repo repositories.DebtRepository) *DebtHandler {
	return &DebtHandler{repo: repo}
}

func (h *DebtHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.DebtFilter{
		Type:   q.Get("type"),
		Closed: boolFlag(q, "closed"),
	}
	filter.Limit, filter.Offset = pageParams(q)

	debts, err := h.repo.List(r.Context(), filter)
	if err != nil {
		log.Printf("error fetching debts: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch debts")
		return
	}
	if debts == nil {
		debts = []*models.Debt{}
	}
	writeJSON(w, http.StatusOK, debts)
}

func (h *DebtHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	d, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "debt not found")
		return
	}
	if err != nil {
		log.Printf("error fetching debt: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch debt")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DebtHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	name := body.str("name")
	principal, remaining := body.i64("principal_amount"), body.i64("remaining_amount")
	if name == nil || *name == "" || principal == nil || remaining == nil {
		writeError(w, http.StatusBadRequest, "name, principal_amount and remaining_amount are required")
		return
	}
	if *principal < 0 || *remaining < 0 {
		writeError(w, http.StatusBadRequest, "amounts must be >= 0")
		return
	}
	if *remaining > *principal {
		writeError(w, http.StatusBadRequest, "remaining_amount cannot exceed principal_amount")
		return
	}

	d := &models.Debt{
		Type:            models.DebtTypeDebt,
		Name:            *name,
		Lender:          body.str("lender"),
		Note:            body.str("note"),
		PrincipalAmount: *principal,
		RemainingAmount: *remaining,
		DueDate:         body.i64("due_date"),
	}
	if t := body.str("type"); t != nil {
		if !models.ValidDebtType(*t) {
			writeError(w, http.StatusBadRequest, "type must be: debt or credit")
			return
		}
		d.Type = *t
	}
	if c := body.i64("closed"); c != nil {
		d.Closed = *c
	}

	if err := h.repo.Create(r.Context(), d); err != nil {
		log.Printf("error creating debt: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create debt")
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DebtHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	if t := body.str("type"); t != nil && !models.ValidDebtType(*t) {
		writeError(w, http.StatusBadRequest, "type must be: debt or credit")
		return
	}
	if p := body.i64("principal_amount"); p != nil && *p < 0 {
		writeError(w, http.StatusBadRequest, "principal_amount must be >= 0")
		return
	}
	if rm := body.i64("remaining_amount"); rm != nil && *rm < 0 {
		writeError(w, http.StatusBadRequest, "remaining_amount must be >= 0")
		return
	}

	params := repositories.UpdateDebtParams{
		Type:            body.str("type"),
		Name:            body.str("name"),
		Lender:          body.str("lender"),
		LenderSet:       body.has("lender"),
		Note:            body.str("note"),
		NoteSet:         body.has("note"),
		PrincipalAmount: body.i64("principal_amount"),
		RemainingAmount: body.i64("remaining_amount"),
		DueDate:         body.i64("due_date"),
		DueDateSet:      body.has("due_date"),
		Closed:          body.i64("closed"),
	}

	d, err := h.repo.Update(r.Context(), id, params)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "debt not found")
		return
	}
	if err != nil {
		log.Printf("error updating debt: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update debt")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DebtHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	err := h.repo.SoftDelete(r.Context(), id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "debt not found")
	case err != nil:
		log.Printf("error deleting debt: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete debt")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
