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

type SQLiteDebtRepository struct {
	store *database.Store
}

func NewSQLiteDebtRepository(store *database.Store) *SQLiteDebtRepository {
	return &SQLiteDebtRepository{store: store}
}

const debtColumns = `id, type, name, lender, note, principal_amount, remaining_amount, due_date, closed, created_at, updated_at, deleted_at`

func scanDebt(row interface{ Scan(...any) error }) (*models.Debt, error) {
	var d models.Debt
	err := row.Scan(
		&d.ID,
		&d.Type,
		&d.Name,
		&d.Lender,
		&d.Note,
		&d.PrincipalAmount,
		&d.RemainingAmount,
		&d.DueDate,
		&d.Closed,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// DebtFilter narrows List; nil and zero values mean no filter.
type DebtFilter struct {
	Type   string
	Closed *int64
	Limit  int
	Offset int
}

func (r *SQLiteDebtRepository) List(ctx context.Context, f DebtFilter) ([]*models.Debt, error) {
	query := `SELECT ` + debtColumns + `
	          FROM ` + database.TableDebts + `
	          WHERE deleted_at IS NULL`
	var args []any

	if f.Type != "" {
		query += " AND type = ?"
		args = append(args, f.Type)
	}
	if f.Closed != nil {
		query += " AND closed = ?"
		args = append(args, *f.Closed)
	}

	query += " ORDER BY created_at DESC"

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
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	var debts []*models.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}
	return debts, nil
}

func (r *SQLiteDebtRepository) GetByID(ctx context.Context, id int64) (*models.Debt, error) {
	query := `SELECT ` + debtColumns + `
	          FROM ` + database.TableDebts + `
	          WHERE id = ? AND deleted_at IS NULL`

	d, err := scanDebt(r.store.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt by id: %w", err)
	}
	return d, nil
}

func (r *SQLiteDebtRepository) Create(ctx context.Context, d *models.Debt) error {
	now := time.Now().UnixMilli()
	if d.Type == "" {
		d.Type = models.DebtTypeDebt
	}

	res, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableDebts+`
		(type, name, lender, note, principal_amount, remaining_amount, due_date, closed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Type, d.Name, d.Lender, d.Note, d.PrincipalAmount, d.RemainingAmount, d.DueDate, d.Closed, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted debt id: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload debt: %w", err)
	}
	*d = *created
	return nil
}

type UpdateDebtParams struct {
	Type            *string
	Name            *string
	Lender          *string
	LenderSet       bool
	Note            *string
	NoteSet         bool
	PrincipalAmount *int64
	RemainingAmount *int64
	DueDate         *int64
	DueDateSet      bool
	Closed          *int64
}

func (r *SQLiteDebtRepository) Update(ctx context.Context, id int64, p UpdateDebtParams) (*models.Debt, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lender := existing.Lender
	if p.LenderSet {
		lender = p.Lender
	}
	note := existing.Note
	if p.NoteSet {
		note = p.Note
	}
	dueDate := existing.DueDate
	if p.DueDateSet {
		dueDate = p.DueDate
	}

	now := time.Now().UnixMilli()
	_, err = r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableDebts+`
		SET type = COALESCE(?, type),
		    name = COALESCE(?, name),
		    lender = ?,
		    note = ?,
		    principal_amount = COALESCE(?, principal_amount),
		    remaining_amount = COALESCE(?, remaining_amount),
		    due_date = ?,
		    closed = COALESCE(?, closed),
		    updated_at = ?
		WHERE id = ?`,
		p.Type, p.Name, lender, note, p.PrincipalAmount, p.RemainingAmount, dueDate, p.Closed, now, id,
	)
	if err != nil {
		return nil, translateConstraint(err)
	}

	return r.GetByID(ctx, id)
}

func (r *SQLiteDebtRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableDebts+`
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
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
