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

type SQLiteAutoSaveRepository struct {
	store *database.Store
}

func NewSQLiteAutoSaveRepository(store *database.Store) *SQLiteAutoSaveRepository {
	return &SQLiteAutoSaveRepository{store: store}
}

const autoSaveColumns = `id, title, note, amount, cadence, enabled, start_at, last_run_at, accounting_code, created_at, updated_at, deleted_at`

func scanAutoSave(row interface{ Scan(...any) error }) (*models.AutoSave, error) {
	var a models.AutoSave
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Note,
		&a.Amount,
		&a.Cadence,
		&a.Enabled,
		&a.StartAt,
		&a.LastRunAt,
		&a.AccountingCode,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AutoSaveFilter narrows List; nil and zero values mean no filter.
type AutoSaveFilter struct {
	Enabled        *int64
	AccountingCode string
	Limit          int
	Offset         int
}

func (r *SQLiteAutoSaveRepository) List(ctx context.Context, f AutoSaveFilter) ([]*models.AutoSave, error) {
	query := `SELECT ` + autoSaveColumns + `
	          FROM ` + database.TableAutoSaves + `
	          WHERE deleted_at IS NULL`
	var args []any

	if f.Enabled != nil {
		query += " AND enabled = ?"
		args = append(args, *f.Enabled)
	}
	if f.AccountingCode != "" {
		query += " AND accounting_code = ?"
		args = append(args, f.AccountingCode)
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
		return nil, fmt.Errorf("failed to query auto-saves: %w", err)
	}
	defer rows.Close()

	var autoSaves []*models.AutoSave
	for rows.Next() {
		a, err := scanAutoSave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auto-save: %w", err)
		}
		autoSaves = append(autoSaves, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating auto-saves: %w", err)
	}
	return autoSaves, nil
}

func (r *SQLiteAutoSaveRepository) GetByID(ctx context.Context, id int64) (*models.AutoSave, error) {
	query := `SELECT ` + autoSaveColumns + `
	          FROM ` + database.TableAutoSaves + `
	          WHERE id = ? AND deleted_at IS NULL`

	a, err := scanAutoSave(r.store.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auto-save by id: %w", err)
	}
	return a, nil
}

func (r *SQLiteAutoSaveRepository) Create(ctx context.Context, a *models.AutoSave) error {
	now := time.Now().UnixMilli()
	if a.StartAt == nil {
		a.StartAt = &now
	}

	res, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableAutoSaves+`
		(title, note, amount, cadence, enabled, start_at, last_run_at, accounting_code, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Title, a.Note, a.Amount, a.Cadence, a.Enabled, a.StartAt, a.LastRunAt, a.AccountingCode, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted auto-save id: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload auto-save: %w", err)
	}
	*a = *created
	return nil
}

type UpdateAutoSaveParams struct {
	Title             *string
	Note              *string
	NoteSet           bool
	Amount            *int64
	Cadence           *string
	Enabled           *int64
	StartAt           *int64
	StartAtSet        bool
	LastRunAt         *int64
	LastRunAtSet      bool
	AccountingCode    *string
	AccountingCodeSet bool
}

func (r *SQLiteAutoSaveRepository) Update(ctx context.Context, id int64, p UpdateAutoSaveParams) (*models.AutoSave, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	note := existing.Note
	if p.NoteSet {
		note = p.Note
	}
	startAt := existing.StartAt
	if p.StartAtSet {
		startAt = p.StartAt
	}
	lastRunAt := existing.LastRunAt
	if p.LastRunAtSet {
		lastRunAt = p.LastRunAt
	}
	accountingCode := existing.AccountingCode
	if p.AccountingCodeSet {
		accountingCode = p.AccountingCode
	}

	now := time.Now().UnixMilli()
	_, err = r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableAutoSaves+`
		SET title = COALESCE(?, title),
		    note = ?,
		    amount = COALESCE(?, amount),
		    cadence = COALESCE(?, cadence),
		    enabled = COALESCE(?, enabled),
		    start_at = ?,
		    last_run_at = ?,
		    accounting_code = ?,
		    updated_at = ?
		WHERE id = ?`,
		p.Title, note, p.Amount, p.Cadence, p.Enabled, startAt, lastRunAt, accountingCode, now, id,
	)
	if err != nil {
		return nil, translateConstraint(err)
	}

	return r.GetByID(ctx, id)
}

func (r *SQLiteAutoSaveRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableAutoSaves+`
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete auto-save: %w", err)
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
