package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Handlers groups every HTTP handler mounted under /api.
type Handlers struct {
	Sync          *SyncHandler
	Accountings   *AccountingHandler
	Transactions  *TransactionHandler
	Settings      *SettingHandler
	Goals         *GoalHandler
	GoalContribs  *GoalContribHandler
	Debts         *DebtHandler
	DebtPayments  *DebtPaymentHandler
	Savings       *SavingHandler
	SavingMoves   *SavingMoveHandler
	AutoSaves     *AutoSaveHandler
	FinanceEvents *FinanceEventHandler
}

func NewRouter(h *Handlers) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"status":  "ok",
				"message": "API Fast Compta is running",
			})
		})

		r.Post("/uid", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"uid": uuid.NewString()})
		})

		r.Get("/sync", h.Sync.Pull)
		r.Post("/sync", h.Sync.Push)

		r.Route("/accountings", func(r chi.Router) {
			r.Get("/", h.Accountings.List)
			r.Post("/", h.Accountings.Create)
			r.Get("/{code}", h.Accountings.Get)
			r.Put("/{code}", h.Accountings.Update)
			r.Delete("/{code}", h.Accountings.Delete)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.Transactions.List)
			r.Post("/", h.Transactions.Create)
			r.Get("/{tx_code}", h.Transactions.Get)
			r.Put("/{tx_code}", h.Transactions.Update)
			r.Delete("/{tx_code}", h.Transactions.Delete)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.Settings.List)
			r.Post("/", h.Settings.Create)
			r.Get("/{key}", h.Settings.Get)
			r.Put("/{key}", h.Settings.Update)
			r.Delete("/{key}", h.Settings.Delete)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", h.Goals.List)
			r.Post("/", h.Goals.Create)
			r.Get("/{id}", h.Goals.Get)
			r.Put("/{id}", h.Goals.Update)
			r.Delete("/{id}", h.Goals.Delete)
		})

		r.Route("/goal-contribs", func(r chi.Router) {
			r.Get("/", h.GoalContribs.List)
			r.Post("/", h.GoalContribs.Create)
			r.Get("/{id}", h.GoalContribs.Get)
			r.Put("/{id}", h.GoalContribs.Update)
			r.Delete("/{id}", h.GoalContribs.Delete)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Get("/", h.Debts.List)
			r.Post("/", h.Debts.Create)
			r.Get("/{id}", h.Debts.Get)
			r.Put("/{id}", h.Debts.Update)
			r.Delete("/{id}", h.Debts.Delete)
		})

		r.Route("/debt-payments", func(r chi.Router) {
			r.Get("/", h.DebtPayments.List)
			r.Post("/", h.DebtPayments.Create)
			r.Get("/{id}", h.DebtPayments.Get)
			r.Put("/{id}", h.DebtPayments.Update)
			r.Delete("/{id}", h.DebtPayments.Delete)
		})

		r.Route("/savings", func(r chi.Router) {
			r.Get("/", h.Savings.List)
			r.Post("/", h.Savings.Create)
			r.Get("/{id}", h.Savings.Get)
			r.Put("/{id}", h.Savings.Update)
			r.Delete("/{id}", h.Savings.Delete)
		})

		r.Route("/saving-moves", func(r chi.Router) {
			r.Get("/", h.SavingMoves.List)
			r.Post("/", h.SavingMoves.Create)
			r.Get("/{id}", h.SavingMoves.Get)
			r.Put("/{id}", h.SavingMoves.Update)
			r.Delete("/{id}", h.SavingMoves.Delete)
		})

		r.Route("/auto-saves", func(r chi.Router) {
			r.Get("/", h.AutoSaves.List)
			r.Post("/", h.AutoSaves.Create)
			r.Get("/{id}", h.AutoSaves.Get)
			r.Put("/{id}", h.AutoSaves.Update)
			r.Delete("/{id}", h.AutoSaves.Delete)
		})

		r.Route("/finance-events", func(r chi.Router) {
			r.Get("/", h.FinanceEvents.List)
			r.Post("/", h.FinanceEvents.Create)
			r.Get("/{id}", h.FinanceEvents.Get)
			r.Put("/{id}", h.FinanceEvents.Update)
			r.Delete("/{id}", h.FinanceEvents.Delete)
		})
	})

	return router
}
