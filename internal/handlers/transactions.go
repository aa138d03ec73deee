package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nkoudou/fastcompta/internal/models"
	"github.com/nkoudou/fastcompta/internal/repositories"
)

type TransactionHandler struct {
	repo repositories.TransactionRepository
}

func NewTransactionHandler(repo repositories.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{repo: repo}
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.TransactionFilter{
		AccountingCode: q.Get("accounting_code"),
		Kind:           q.Get("kind"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = offset
	}

	transactions, err := h.repo.List(r.Context(), filter)
	if err != nil {
		log.Printf("error fetching transactions: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch transactions")
		return
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.repo.GetByCode(r.Context(), chi.URLParam(r, "tx_code"))
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		log.Printf("error fetching transaction: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch transaction")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// newTxCode mints a unique transaction code for server-created rows; offline
// clients mint their own and submit them through the sync path.
func newTxCode() string {
	return fmt.Sprintf("TX-%d-%s", time.Now().UnixMilli(),
		strings.ToUpper(uuid.NewString()[:8]))
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	accountingCode, kind, label := body.str("accounting_code"), body.str("kind"), body.str("label")
	amount := body.i64("amount")
	if accountingCode == nil || *accountingCode == "" || kind == nil || *kind == "" ||
		amount == nil || label == nil || *label == "" {
		writeError(w, http.StatusBadRequest, "accounting_code, kind, amount and label are required")
		return
	}
	if !models.ValidTransactionKind(*kind) {
		writeError(w, http.StatusBadRequest, "kind must be: income, expense or transfer")
		return
	}
	if *amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be >= 0")
		return
	}

	t := &models.Transaction{
		TxCode:         newTxCode(),
		AccountingCode: *accountingCode,
		Kind:           *kind,
		Amount:         *amount,
		Label:          *label,
		Note:           body.str("note"),
		Category:       body.str("category"),
	}
	if d := body.i64("tx_date"); d != nil {
		t.TxDate = *d
	}

	err = h.repo.Create(r.Context(), t)
	switch {
	case errors.Is(err, repositories.ErrDuplicateKey):
		writeError(w, http.StatusConflict, "this transaction code already exists")
	case errors.Is(err, repositories.ErrMissingReference):
		writeError(w, http.StatusBadRequest, "accounting not found")
	case err != nil:
		log.Printf("error creating transaction: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create transaction")
	default:
		writeJSON(w, http.StatusCreated, t)
	}
}

func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decodePartial(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if k := body.str("kind"); k != nil && !models.ValidTransactionKind(*k) {
		writeError(w, http.StatusBadRequest, "kind must be: income, expense or transfer")
		return
	}
	if a := body.i64("amount"); a != nil && *a < 0 {
		writeError(w, http.StatusBadRequest, "amount must be >= 0")
		return
	}

	params := repositories.UpdateTransactionParams{
		Kind:        body.str("kind"),
		Amount:      body.i64("amount"),
		Label:       body.str("label"),
		Note:        body.str("note"),
		NoteSet:     body.has("note"),
		Category:    body.str("category"),
		CategorySet: body.has("category"),
		TxDate:      body.i64("tx_date"),
	}

	t, err := h.repo.Update(r.Context(), chi.URLParam(r, "tx_code"), params)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	if err != nil {
		log.Printf("error updating transaction: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update transaction")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.repo.SoftDelete(r.Context(), chi.URLParam(r, "tx_code"))
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
	case err != nil:
		log.Printf("error deleting transaction: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete transaction")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}
