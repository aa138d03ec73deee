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

type SQLiteAccountingRepository struct {
	store *database.Store
}

func NewSQLiteAccountingRepository(store *database.Store) *SQLiteAccountingRepository {
	return &SQLiteAccountingRepository{store: store}
}

const accountingColumns = `id, code, name, type, parent_code, currency, opening_balance, created_at, updated_at, deleted_at`

func scanAccounting(row interface{ Scan(...any) error }) (*models.Accounting, error) {
	var a models.Accounting
	err := row.Scan(
		&a.ID,
		&a.Code,
		&a.Name,
		&a.Type,
		&a.ParentCode,
		&a.Currency,
		&a.OpeningBalance,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteAccountingRepository) List(ctx context.Context) ([]*models.Accounting, error) {
	query := `SELECT ` + accountingColumns + `
	          FROM ` + database.TableAccountings + `
	          WHERE deleted_at IS NULL
	          ORDER BY created_at DESC`

	rows, err := r.store.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accountings: %w", err)
	}
	defer rows.Close()

	var accountings []*models.Accounting
	for rows.Next() {
		a, err := scanAccounting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan accounting: %w", err)
		}
		accountings = append(accountings, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accountings: %w", err)
	}
	return accountings, nil
}

func (r *SQLiteAccountingRepository) GetByCode(ctx context.Context, code string) (*models.Accounting, error) {
	query := `SELECT ` + accountingColumns + `
	          FROM ` + database.TableAccountings + `
	          WHERE code = ? AND deleted_at IS NULL`

	a, err := scanAccounting(r.store.DB().QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get accounting by code: %w", err)
	}
	return a, nil
}

func (r *SQLiteAccountingRepository) Create(ctx context.Context, a *models.Accounting) error {
	now := time.Now().UnixMilli()

	_, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableAccountings+`
		(code, name, type, parent_code, currency, opening_balance, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Code, a.Name, a.Type, a.ParentCode, a.Currency, a.OpeningBalance, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	created, err := r.GetByCode(ctx, a.Code)
	if err != nil {
		return fmt.Errorf("failed to reload accounting: %w", err)
	}
	*a = *created
	return nil
}

type UpdateAccountingParams struct {
	Name           *string
	Type           *string
	ParentCode     *string
	ParentCodeSet  bool
	Currency       *string
	OpeningBalance *int64
}

func (r *SQLiteAccountingRepository) Update(ctx context.Context, code string, p UpdateAccountingParams) (*models.Accounting, error) {
	existing, err := r.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	parentCode := existing.ParentCode
	if p.ParentCodeSet {
		parentCode = p.ParentCode
	}

	now := time.Now().UnixMilli()
	_, err = r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableAccountings+`
		SET name = COALESCE(?, name),
		    type = COALESCE(?, type),
		    parent_code = ?,
		    currency = COALESCE(?, currency),
		    opening_balance = COALESCE(?, opening_balance),
		    updated_at = ?
		WHERE code = ?`,
		p.Name, p.Type, parentCode, p.Currency, p.OpeningBalance, now, code,
	)
	if err != nil {
		return nil, translateConstraint(err)
	}

	return r.GetByCode(ctx, code)
}

// SoftDelete marks an accounting deleted so sync clients receive a tombstone.
// The MASTER accounting is never deletable.
func (r *SQLiteAccountingRepository) SoftDelete(ctx context.Context, code string) error {
	if code == database.MasterAccountingCode {
		return ErrProtected
	}

	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableAccountings+`
		SET deleted_at = ?, updated_at = ?
		WHERE code = ? AND deleted_at IS NULL`,
		now, now, code,
	)
	if err != nil {
		return fmt.Errorf("failed to delete accounting: %w", err)
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
