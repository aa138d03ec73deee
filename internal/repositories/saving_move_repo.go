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

type SQLiteSavingMoveRepository struct {
	store *database.Store
}

func NewSQLiteSavingMoveRepository(store *database.Store) *SQLiteSavingMoveRepository {
	return &SQLiteSavingMoveRepository{store: store}
}

const savingMoveColumns = `id, saving_id, direction, amount, note, occurred_at, created_at, updated_at, deleted_at`

func scanSavingMove(row interface{ Scan(...any) error }) (*models.SavingMove, error) {
	var m models.SavingMove
	err := row.Scan(
		&m.ID,
		&m.SavingID,
		&m.Direction,
		&m.Amount,
		&m.Note,
		&m.OccurredAt,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavingMoveFilter narrows List; zero values mean no filter.
type SavingMoveFilter struct {
	SavingID  int64
	Direction string
	Limit     int
	Offset    int
}

func (r *SQLiteSavingMoveRepository) List(ctx context.Context, f SavingMoveFilter) ([]*models.SavingMove, error) {
	query := `SELECT ` + savingMoveColumns + `
	          FROM ` + database.TableSavingMoves + `
	          WHERE deleted_at IS NULL`
	var args []any

	if f.SavingID > 0 {
		query += " AND saving_id = ?"
		args = append(args, f.SavingID)
	}
	if f.Direction != "" {
		query += " AND direction = ?"
		args = append(args, f.Direction)
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
		return nil, fmt.Errorf("failed to query saving moves: %w", err)
	}
	defer rows.Close()

	var moves []*models.SavingMove
	for rows.Next() {
		m, err := scanSavingMove(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saving move: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saving moves: %w", err)
	}
	return moves, nil
}

func (r *SQLiteSavingMoveRepository) GetByID(ctx context.Context, id int64) (*models.SavingMove, error) {
	query := `SELECT ` + savingMoveColumns + `
	          FROM ` + database.TableSavingMoves + `
	          WHERE id = ? AND deleted_at IS NULL`

	m, err := scanSavingMove(r.store.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saving move by id: %w", err)
	}
	return m, nil
}

func (r *SQLiteSavingMoveRepository) Create(ctx context.Context, m *models.SavingMove) error {
	now := time.Now().UnixMilli()
	if m.OccurredAt == 0 {
		m.OccurredAt = now
	}

	res, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableSavingMoves+`
		(saving_id, direction, amount, note, occurred_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.SavingID, m.Direction, m.Amount, m.Note, m.OccurredAt, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted move id: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload saving move: %w", err)
	}
	*m = *created
	return nil
}

type UpdateSavingMoveParams struct {
	Direction  *string
	Amount     *int64
	Note       *string
	NoteSet    bool
	OccurredAt *int64
}

func (r *SQLiteSavingMoveRepository) Update(ctx context.Context, id int64, p UpdateSavingMoveParams) (*models.SavingMove, error) {
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
		UPDATE `+database.TableSavingMoves+`
		SET direction = COALESCE(?, direction),
		    amount = COALESCE(?, amount),
		    note = ?,
		    occurred_at = COALESCE(?, occurred_at),
		    updated_at = ?
		WHERE id = ?`,
		p.Direction, p.Amount, note, p.OccurredAt, now, id,
	)
	if err != nil {
		return nil, translateConstraint(err)
	}

	return r.GetByID(ctx, id)
}

func (r *SQLiteSavingMoveRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableSavingMoves+`
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete saving move: %w", err)
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
