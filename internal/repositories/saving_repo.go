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

type SQLiteSavingRepository struct {
	store *database.Store
}

func NewSQLiteSavingRepository(store *database.Store) *SQLiteSavingRepository {
	return &SQLiteSavingRepository{store: store}
}

const savingColumns = `id, title, note, accounting_code, archived, created_at, updated_at, deleted_at`

func scanSaving(row interface{ Scan(...any) error }) (*models.Saving, error) {
	var s models.Saving
	err := row.Scan(
		&s.ID,
		&s.Title,
		&s.Note,
		&s.AccountingCode,
		&s.Archived,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SavingFilter narrows List; nil and zero values mean no filter.
type SavingFilter struct {
	Archived       *int64
	AccountingCode string
	Limit          int
	Offset         int
}

func (r *SQLiteSavingRepository) List(ctx context.Context, f SavingFilter) ([]*models.Saving, error) {
	query := `SELECT ` + savingColumns + `
	          FROM ` + database.TableSavings + `
	          WHERE deleted_at IS NULL`
	var args []any

	if f.Archived != nil {
		query += " AND archived = ?"
		args = append(args, *f.Archived)
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
		return nil, fmt.Errorf("failed to query savings: %w", err)
	}
	defer rows.Close()

	var savings []*models.Saving
	for rows.Next() {
		s, err := scanSaving(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saving: %w", err)
		}
		savings = append(savings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings: %w", err)
	}
	return savings, nil
}

func (r *SQLiteSavingRepository) GetByID(ctx context.Context, id int64) (*models.Saving, error) {
	query := `SELECT ` + savingColumns + `
	          FROM ` + database.TableSavings + `
	          WHERE id = ? AND deleted_at IS NULL`

	s, err := scanSaving(r.store.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saving by id: %w", err)
	}
	return s, nil
}

func (r *SQLiteSavingRepository) Create(ctx context.Context, s *models.Saving) error {
	now := time.Now().UnixMilli()

	res, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableSavings+`
		(title, note, accounting_code, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.Title, s.Note, s.AccountingCode, s.Archived, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted saving id: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload saving: %w", err)
	}
	*s = *created
	return nil
}

type UpdateSavingParams struct {
	Title             *string
	Note              *string
	NoteSet           bool
	AccountingCode    *string
	AccountingCodeSet bool
	Archived          *int64
}

func (r *SQLiteSavingRepository) Update(ctx context.Context, id int64, p UpdateSavingParams) (*models.Saving, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	note := existing.Note
	if p.NoteSet {
		note = p.Note
	}
	accountingCode := existing.AccountingCode
	if p.AccountingCodeSet {
		accountingCode = p.AccountingCode
	}

	now := time.Now().UnixMilli()
	_, err = r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableSavings+`
		SET title = COALESCE(?, title),
		    note = ?,
		    accounting_code = ?,
		    archived = COALESCE(?, archived),
		    updated_at = ?
		WHERE id = ?`,
		p.Title, note, accountingCode, p.Archived, now, id,
	)
	if err != nil {
		return nil, translateConstraint(err)
	}

	return r.GetByID(ctx, id)
}

func (r *SQLiteSavingRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableSavings+`
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete saving: %w", err)
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
