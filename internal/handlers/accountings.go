package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type AccountingHandler struct {
	repo repositories.AccountingRepository
}

func NewAccountingHandler(repo repositories.AccountingRepository) *AccountingHandler {
	return &AccountingHandler{repo: repo}
}

func (h *AccountingHandler) List(w http.ResponseWriter, r *http.Request) {
	accountings, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("error fetching accountings: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch accountings")
		return
	}
	if accountings == nil {
		accountings = []*models.Accounting{}
	}
	writeJSON(w, http.StatusOK, accountings)
}

func (h *AccountingHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.repo.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "accounting not found")
		return
	}
	if err != nil {
		log.Printf("error fetching accounting: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch accounting")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AccountingHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	code, name, accType := body.str("code"), body.str("name"), body.str("type")
	if code == nil || *code == "" || name == nil || *name == "" || accType == nil || *accType == "" {
		writeError(w, http.StatusBadRequest, "code, name and type are required")
		return
	}
	if !models.ValidAccountingType(*accType) {
		writeError(w, http.StatusBadRequest, "type must be: linked, standalone or master")
		return
	}

	a := &models.Accounting{
		Code:       *code,
		Name:       *name,
		Type:       *accType,
		ParentCode: body.str("parent_code"),
		Currency:   "XAF",
	}
	if c := body.str("currency"); c != nil && *c != "" {
		a.Currency = *c
	}
	if ob := body.i64("opening_balance"); ob != nil {
		a.OpeningBalance = *ob
	}

	err = h.repo.Create(r.Context(), a)
	if errors.Is(err, repositories.ErrDuplicateKey) {
		writeError(w, http.StatusConflict, "this accounting code already exists")
		return
	}
	if err != nil {
		log.Printf("error creating accounting: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create accounting")
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AccountingHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if t := body.str("type"); t != nil && !models.ValidAccountingType(*t) {
		writeError(w, http.StatusBadRequest, "type must be: linked, standalone or master")
		return
	}

	params := repositories.UpdateAccountingParams{
		Name:           body.str("name"),
		Type:           body.str("type"),
		ParentCode:     body.str("parent_code"),
		ParentCodeSet:  body.has("parent_code"),
		Currency:       body.str("currency"),
		OpeningBalance: body.i64("opening_balance"),
	}

	a, err := h.repo.Update(r.Context(), chi.URLParam(r, "code"), params)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "accounting not found")
		return
	}
	if err != nil {
		log.Printf("error updating accounting: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update accounting")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AccountingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.SoftDelete(r.Context(), chi.URLParam(r, "code"))
	switch {
	case errors.Is(err, repositories.ErrProtected):
		writeError(w, http.StatusForbidden, "the MASTER accounting cannot be deleted")
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "accounting not found")
	case err != nil:
		log.Printf("error deleting accounting: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete accounting")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
