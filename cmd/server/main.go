package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nkoudou/fastcompta/internal/config"
	"github.com/nkoudou/fastcompta/internal/database"
	"github.com/nkoudou/fastcompta/internal/handlers"
	"github.com/nkoudou/fastcompta/internal/repositories"
	syncer "github.com/nkoudou/fastcompta/internal/sync"
)

func main() {
	ctx := context.Background()

	godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	syncService := syncer.NewService(store)

	router := handlers.NewRouter(&handlers.Handlers{
		Sync:          handlers.NewSyncHandler(syncService),
		Accountings:   handlers.NewAccountingHandler(repositories.NewSQLiteAccountingRepository(store)),
		Transactions:  handlers.NewTransactionHandler(repositories.NewSQLiteTransactionRepository(store)),
		Settings:      handlers.NewSettingHandler(repositories.NewSQLiteSettingRepository(store)),
		Goals:         handlers.NewGoalHandler(repositories.NewSQLiteGoalRepository(store)),
		GoalContribs:  handlers.NewGoalContribHandler(repositories.NewSQLiteGoalContribRepository(store)),
		Debts:         handlers.NewDebtHandler(repositories.NewSQLiteDebtRepository(store)),
		DebtPayments:  handlers.NewDebtPaymentHandler(repositories.NewSQLiteDebtPaymentRepository(store)),
		Savings:       handlers.NewSavingHandler(repositories.NewSQLiteSavingRepository(store)),
		SavingMoves:   handlers.NewSavingMoveHandler(repositories.NewSQLiteSavingMoveRepository(store)),
		AutoSaves:     handlers.NewAutoSaveHandler(repositories.NewSQLiteAutoSaveRepository(store)),
		FinanceEvents: handlers.NewFinanceEventHandler(repositories.NewSQLiteFinanceEventRepository(store)),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	// graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("Starting server on port %s (database %s)", cfg.ServerPort, store.Path())
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped gracefully")
}
