package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Table names, one per synchronizable entity.
const (
	TableAccountings   = "accountings"
	TableTransactions  = "transactions"
	TableAppSettings   = "app_settings"
	TableGoals         = "goals"
	TableGoalContribs  = "goal_contribs"
	TableDebts         = "debts"
	TableDebtPayments  = "debt_payments"
	TableSavings       = "savings"
	TableSavingMoves   = "saving_moves"
	TableAutoSaves     = "auto_saves"
	TableFinanceEvents = "finance_events"
)

// MasterAccountingCode is the distinguished root accounting. It is seeded at
// startup and can never be deleted.
const MasterAccountingCode = "MASTER"

var tableDDL = []string{
	`CREATE TABLE IF NOT EXISTS ` + TableAccountings + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		type TEXT NOT NULL CHECK(type IN ('linked','standalone','master')),
		parent_code TEXT NULL,
		currency TEXT NOT NULL DEFAULT 'XAF',
		opening_balance INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_accountings_parent ON ` + TableAccountings + `(parent_code)`,

	`CREATE TABLE IF NOT EXISTS ` + TableTransactions + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tx_code TEXT NOT NULL UNIQUE,
		accounting_code TEXT NOT NULL,
		kind TEXT NOT NULL CHECK(kind IN ('income','expense','transfer')),
		amount INTEGER NOT NULL CHECK(amount >= 0),
		label TEXT NOT NULL,
		note TEXT NULL,
		category TEXT NULL,
		tx_date INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY(accounting_code) REFERENCES ` + TableAccountings + `(code)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_accounting_date ON ` + TableTransactions + `(accounting_code, tx_date)`,
	`CREATE INDEX IF NOT EXISTS idx_tx_kind ON ` + TableTransactions + `(kind)`,

	`CREATE TABLE IF NOT EXISTS ` + TableAppSettings + ` (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS ` + TableGoals + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		note TEXT NULL,
		start_amount INTEGER NOT NULL DEFAULT 0 CHECK(start_amount >= 0),
		target_amount INTEGER NOT NULL CHECK(target_amount >= 0),
		deadline INTEGER NULL,
		archived INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_goal_deadline ON ` + TableGoals + `(deadline)`,

	`CREATE TABLE IF NOT EXISTS ` + TableGoalContribs + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		goal_id INTEGER NOT NULL,
		amount INTEGER NOT NULL CHECK(amount >= 0),
		note TEXT NULL,
		occurred_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY(goal_id) REFERENCES ` + TableGoals + `(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_goal_contrib_goal ON ` + TableGoalContribs + `(goal_id)`,

	`CREATE TABLE IF NOT EXISTS ` + TableDebts + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL CHECK(type IN ('debt','credit')) DEFAULT 'debt',
		name TEXT NOT NULL,
		lender TEXT NULL,
		note TEXT NULL,
		principal_amount INTEGER NOT NULL CHECK(principal_amount >= 0),
		remaining_amount INTEGER NOT NULL CHECK(remaining_amount >= 0),
		due_date INTEGER NULL,
		closed INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_debt_due ON ` + TableDebts + `(due_date)`,

	`CREATE TABLE IF NOT EXISTS ` + TableDebtPayments + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		debt_id INTEGER NOT NULL,
		amount INTEGER NOT NULL CHECK(amount >= 0),
		note TEXT NULL,
		occurred_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY(debt_id) REFERENCES ` + TableDebts + `(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_debt_payment_debt ON ` + TableDebtPayments + `(debt_id)`,

	`CREATE TABLE IF NOT EXISTS ` + TableSavings + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		note TEXT NULL,
		accounting_code TEXT NULL,
		archived INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY(accounting_code) REFERENCES ` + TableAccountings + `(code)
			ON UPDATE CASCADE
			ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_savings_accounting ON ` + TableSavings + `(accounting_code)`,

	`CREATE TABLE IF NOT EXISTS ` + TableSavingMoves + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		saving_id INTEGER NOT NULL,
		direction TEXT NOT NULL CHECK(direction IN ('in','out')),
		amount INTEGER NOT NULL CHECK(amount >= 0),
		note TEXT NULL,
		occurred_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY(saving_id) REFERENCES ` + TableSavings + `(id)
			ON UPDATE CASCADE
			ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_saving_moves_saving ON ` + TableSavingMoves + `(saving_id)`,
	`CREATE INDEX IF NOT EXISTS idx_saving_moves_date ON ` + TableSavingMoves + `(occurred_at)`,

	`CREATE TABLE IF NOT EXISTS ` + TableAutoSaves + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		note TEXT NULL,
		amount INTEGER NOT NULL CHECK(amount >= 0),
		cadence TEXT NOT NULL CHECK(cadence IN ('daily','weekly','monthly')),
		enabled INTEGER NOT NULL DEFAULT 1,
		start_at INTEGER NULL,
		last_run_at INTEGER NULL,
		accounting_code TEXT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		FOREIGN KEY(accounting_code) REFERENCES ` + TableAccountings + `(code)
			ON UPDATE CASCADE
			ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_autosaves_accounting ON ` + TableAutoSaves + `(accounting_code)`,

	`CREATE TABLE IF NOT EXISTS ` + TableFinanceEvents + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		ref_id INTEGER NULL,
		title TEXT NOT NULL,
		amount INTEGER NULL,
		meta TEXT NULL,
		occurred_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_finance_events_date ON ` + TableFinanceEvents + `(occurred_at)`,
}

// Columns retrofitted onto tables created by earlier schema versions. The
// sync protocol needs deleted_at everywhere a tombstone can originate, and
// app_settings rows gain create/update/delete tracking through the sync path.
var columnMigrations = []struct {
	table  string
	column string
	ddl    string
}{
	{TableAccountings, "deleted_at", "deleted_at INTEGER"},
	{TableTransactions, "deleted_at", "deleted_at INTEGER"},
	{TableGoals, "deleted_at", "deleted_at INTEGER"},
	{TableGoalContribs, "updated_at", "updated_at INTEGER"},
	{TableGoalContribs, "deleted_at", "deleted_at INTEGER"},
	{TableDebts, "deleted_at", "deleted_at INTEGER"},
	{TableDebtPayments, "updated_at", "updated_at INTEGER"},
	{TableDebtPayments, "deleted_at", "deleted_at INTEGER"},
	{TableSavings, "deleted_at", "deleted_at INTEGER"},
	{TableSavingMoves, "updated_at", "updated_at INTEGER"},
	{TableSavingMoves, "deleted_at", "deleted_at INTEGER"},
	{TableAutoSaves, "deleted_at", "deleted_at INTEGER"},
	{TableFinanceEvents, "updated_at", "updated_at INTEGER"},
	{TableFinanceEvents, "deleted_at", "deleted_at INTEGER"},
	{TableAppSettings, "created_at", "created_at INTEGER"},
	{TableAppSettings, "deleted_at", "deleted_at INTEGER"},
}

var defaultSettings = map[string]string{
	"default_currency":    "XAF",
	"language":            "fr",
	"date_format":         "JJ/MM/AAAA",
	"notif_general":       "1",
	"notif_reminders":     "1",
	"notif_debt_due":      "1",
	"notif_goal_progress": "0",
	"auto_backup":         "0",
	"wifi_only_backup":    "1",
}

func createSchema(ctx context.Context, conn *sql.DB) error {
	for _, ddl := range tableDDL {
		if _, err := conn.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	for _, m := range columnMigrations {
		cols, err := TableColumns(ctx, conn, m.table)
		if err != nil {
			return err
		}
		if cols[m.column] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", m.table, m.ddl)
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to add %s.%s: %w", m.table, m.column, err)
		}
	}

	return seed(ctx, conn)
}

// seed inserts the MASTER accounting and the default settings when absent.
func seed(ctx context.Context, conn *sql.DB) error {
	now := time.Now().UnixMilli()

	var count int
	err := conn.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+TableAccountings+" WHERE code = ?",
		MasterAccountingCode,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check master accounting: %w", err)
	}
	if count == 0 {
		_, err = conn.ExecContext(ctx, `
			INSERT INTO `+TableAccountings+`
			(code, name, type, parent_code, currency, opening_balance, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			MasterAccountingCode, "Comptabilité principale", "master", nil, "XAF", 0, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed master accounting: %w", err)
		}
	}

	for key, value := range defaultSettings {
		_, err := conn.ExecContext(ctx, `
			INSERT OR IGNORE INTO `+TableAppSettings+` (key, value, created_at, updated_at)
			VALUES (?, ?, ?, ?)`,
			key, value, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
	}

	return nil
}
