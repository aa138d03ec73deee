package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nkoudou/fastcompta/internal/database"
	"github.com/nkoudou/fastcompta/internal/models"
)

type SQLiteTransactionRepository struct {
	store *database.Store
}

func NewSQLiteTransactionRepository(store *database.Store) *SQLiteTransactionRepository {
	return &SQLiteTransactionRepository{store: store}
}

const transactionColumns = `id, tx_code, accounting_code, kind, amount, label, note, category, tx_date, created_at, updated_at, deleted_at`

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.TxCode,
		&t.AccountingCode,
		&t.Kind,
		&t.Amount,
		&t.Label,
		&t.Note,
		&t.Category,
		&t.TxDate,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// TransactionFilter narrows List the way the query string does.
type TransactionFilter struct {
	AccountingCode string
	Kind           string
	Limit          int
	Offset         int
}

func (r *SQLiteTransactionRepository) List(ctx context.Context, f TransactionFilter) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
	          FROM ` + database.TableTransactions + `
	          WHERE deleted_at IS NULL`
	var args []any

	if f.AccountingCode != "" {
		query += " AND accounting_code = ?"
		args = append(args, f.AccountingCode)
	}
	if f.Kind != "" {
		query += " AND kind = ?"
		args = append(args, f.Kind)
	}

	query += " ORDER BY tx_date DESC, created_at DESC"

	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
		if f.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, f.Offset)
		}
	}

	rows, err := r.store.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

func (r *SQLiteTransactionRepository) GetByCode(ctx context.Context, txCode string) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
	          FROM ` + database.TableTransactions + `
	          WHERE tx_code = ? AND deleted_at IS NULL`

	t, err := scanTransaction(r.store.DB().QueryRowContext(ctx, query, txCode))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction by code: %w", err)
	}
	return t, nil
}

func (r *SQLiteTransactionRepository) Create(ctx context.Context, t *models.Transaction) error {
	now := time.Now().UnixMilli()
	if t.TxDate == 0 {
		t.TxDate = now
	}

	_, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableTransactions+`
		(tx_code, accounting_code, kind, amount, label, note, category, tx_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TxCode, t.AccountingCode, t.Kind, t.Amount, t.Label, t.Note, t.Category, t.TxDate, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	created, err := r.GetByCode(ctx, t.TxCode)
	if err != nil {
		return fmt.Errorf("failed to reload transaction: %w", err)
	}
	*t = *created
	return nil
}

type UpdateTransactionParams struct {
	Kind        *string
	Amount      *int64
	Label       *string
	Note        *string
	NoteSet     bool
	Category    *string
	CategorySet bool
	TxDate      *int64
}

func (r *SQLiteTransactionRepository) Update(ctx context.Context, txCode string, p UpdateTransactionParams) (*models.Transaction, error) {
	existing, err := r.GetByCode(ctx, txCode)
	if err != nil {
		return nil, err
	}

	note := existing.Note
	if p.NoteSet {
		note = p.Note
	}
	category := existing.Category
	if p.CategorySet {
		category = p.Category
	}

	now := time.Now().UnixMilli()
	_, err = r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableTransactions+`
		SET kind = COALESCE(?, kind),
		    amount = COALESCE(?, amount),
		    label = COALESCE(?, label),
		    note = ?,
		    category = ?,
		    tx_date = COALESCE(?, tx_date),
		    updated_at = ?
		WHERE tx_code = ?`,
		p.Kind, p.Amount, p.Label, note, category, p.TxDate, now, txCode,
	)
	if err != nil {
		return nil, translateConstraint(err)
	}

	return r.GetByCode(ctx, txCode)
}

func (r *SQLiteTransactionRepository) SoftDelete(ctx context.Context, txCode string) error {
	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableTransactions+`
		SET deleted_at = ?, updated_at = ?
		WHERE tx_code = ? AND deleted_at IS NULL`,
		now, now, txCode,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
