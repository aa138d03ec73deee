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

type SQLiteDebtPaymentRepository struct {
	store *database.Store
}

func NewSQLiteDebtPaymentRepository(store *database.Store) *SQLiteDebtPaymentRepository {
	return &SQLiteDebtPaymentRepository{store: store}
}

const debtPaymentColumns = `id, debt_id, amount, note, occurred_at, created_at, updated_at, deleted_at`

func scanDebtPayment(row interface{ Scan(...any) error }) (*models.DebtPayment, error) {
	var p models.DebtPayment
	err := row.Scan(
		&p.ID,
		&p.DebtID,
		&p.Amount,
		&p.Note,
		&p.OccurredAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DebtPaymentFilter narrows List; zero values mean no filter.
type DebtPaymentFilter struct {
	DebtID int64
	Limit  int
	Offset int
}

func (r *SQLiteDebtPaymentRepository) List(ctx context.Context, f DebtPaymentFilter) ([]*models.DebtPayment, error) {
	query := `SELECT ` + debtPaymentColumns + `
	          FROM ` + database.TableDebtPayments + `
	          WHERE deleted_at IS NULL`
	var args []any

	if f.DebtID > 0 {
		query += " AND debt_id = ?"
		args = append(args, f.DebtID)
	}
	query += " ORDER BY occurred_at DESC, created_at DESC"

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
		return nil, fmt.Errorf("failed to query debt payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.DebtPayment
	for rows.Next() {
		p, err := scanDebtPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debt payments: %w", err)
	}
	return payments, nil
}

func (r *SQLiteDebtPaymentRepository) GetByID(ctx context.Context, id int64) (*models.DebtPayment, error) {
	query := `SELECT ` + debtPaymentColumns + `
	          FROM ` + database.TableDebtPayments + `
	          WHERE id = ? AND deleted_at IS NULL`

	p, err := scanDebtPayment(r.store.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt payment by id: %w", err)
	}
	return p, nil
}

func (r *SQLiteDebtPaymentRepository) Create(ctx context.Context, p *models.DebtPayment) error {
	now := time.Now().UnixMilli()
	if p.OccurredAt == 0 {
		p.OccurredAt = now
	}

	res, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableDebtPayments+`
		(debt_id, amount, note, occurred_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.DebtID, p.Amount, p.Note, p.OccurredAt, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted payment id: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload debt payment: %w", err)
	}
	*p = *created
	return nil
}

type UpdateDebtPaymentParams struct {
	Amount     *int64
	Note       *string
	NoteSet    bool
	OccurredAt *int64
}

func (r *SQLiteDebtPaymentRepository) Update(ctx context.Context, id int64, p UpdateDebtPaymentParams) (*models.DebtPayment, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	note := existing.Note
	if p.NoteSet {
		note = p.Note
	}

	now := time.Now().UnixMilli()
	_, err = r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableDebtPayments+`
		SET amount = COALESCE(?, amount),
		    note = ?,
		    occurred_at = COALESCE(?, occurred_at),
		    updated_at = ?
		WHERE id = ?`,
		p.Amount, note, p.OccurredAt, now, id,
	)
	if err != nil {
		return nil, translateConstraint(err)
	}

	return r.GetByID(ctx, id)
}

func (r *SQLiteDebtPaymentRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableDebtPayments+`
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete debt payment: %w", err)
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
