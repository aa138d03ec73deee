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

type SQLiteFinanceEventRepository struct {
	store *database.Store
}

func NewSQLiteFinanceEventRepository(store *database.Store) *SQLiteFinanceEventRepository {
	return &SQLiteFinanceEventRepository{store: store}
}

const financeEventColumns = `id, type, ref_id, title, amount, meta, occurred_at, created_at, updated_at, deleted_at`

func scanFinanceEvent(row interface{ Scan(...any) error }) (*models.FinanceEvent, error) {
	var e models.FinanceEvent
	err := row.Scan(
		&e.ID,
		&e.Type,
		&e.RefID,
		&e.Title,
		&e.Amount,
		&e.Meta,
		&e.OccurredAt,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FinanceEventFilter narrows List; nil and zero values mean no filter.
// FromDate and ToDate bound occurred_at inclusively.
type FinanceEventFilter struct {
	Type     string
	RefID    *int64
	FromDate int64
	ToDate   int64
	Limit    int
	Offset   int
}

func (r *SQLiteFinanceEventRepository) List(ctx context.Context, f FinanceEventFilter) ([]*models.FinanceEvent, error) {
	query := `SELECT ` + financeEventColumns + `
	          FROM ` + database.TableFinanceEvents + `
	          WHERE deleted_at IS NULL`
	var args []any

	if f.Type != "" {
		query += " AND type = ?"
		args = append(args, f.Type)
	}
	if f.RefID != nil {
		query += " AND ref_id = ?"
		args = append(args, *f.RefID)
	}
	if f.FromDate > 0 {
		query += " AND occurred_at >= ?"
		args = append(args, f.FromDate)
	}
	if f.ToDate > 0 {
		query += " AND occurred_at <= ?"
		args = append(args, f.ToDate)
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
		return nil, fmt.Errorf("failed to query finance events: %w", err)
	}
	defer rows.Close()

	var events []*models.FinanceEvent
	for rows.Next() {
		e, err := scanFinanceEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan finance event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating finance events: %w", err)
	}
	return events, nil
}

func (r *SQLiteFinanceEventRepository) GetByID(ctx context.Context, id int64) (*models.FinanceEvent, error) {
	query := `SELECT ` + financeEventColumns + `
	          FROM ` + database.TableFinanceEvents + `
	          WHERE id = ? AND deleted_at IS NULL`

	e, err := scanFinanceEvent(r.store.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get finance event by id: %w", err)
	}
	return e, nil
}

func (r *SQLiteFinanceEventRepository) Create(ctx context.Context, e *models.FinanceEvent) error {
	now := time.Now().UnixMilli()
	if e.OccurredAt == 0 {
		e.OccurredAt = now
	}

	res, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableFinanceEvents+`
		(type, ref_id, title, amount, meta, occurred_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Type, e.RefID, e.Title, e.Amount, e.Meta, e.OccurredAt, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted event id: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload finance event: %w", err)
	}
	*e = *created
	return nil
}

type UpdateFinanceEventParams struct {
	Type       *string
	RefID      *int64
	RefIDSet   bool
	Title      *string
	Amount     *int64
	AmountSet  bool
	Meta       *string
	MetaSet    bool
	OccurredAt *int64
}

func (r *SQLiteFinanceEventRepository) Update(ctx context.Context, id int64, p UpdateFinanceEventParams) (*models.FinanceEvent, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	refID := existing.RefID
	if p.RefIDSet {
		refID = p.RefID
	}
	amount := existing.Amount
	if p.AmountSet {
		amount = p.Amount
	}
	meta := existing.Meta
	if p.MetaSet {
		meta = p.Meta
	}

	now := time.Now().UnixMilli()
	_, err = r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableFinanceEvents+`
		SET type = COALESCE(?, type),
		    ref_id = ?,
		    title = COALESCE(?, title),
		    amount = ?,
		    meta = ?,
		    occurred_at = COALESCE(?, occurred_at),
		    updated_at = ?
		WHERE id = ?`,
		p.Type, refID, p.Title, amount, meta, p.OccurredAt, now, id,
	)
	if err != nil {
		return nil, translateConstraint(err)
	}

	return r.GetByID(ctx, id)
}

func (r *SQLiteFinanceEventRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableFinanceEvents+`
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete finance event: %w", err)
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
