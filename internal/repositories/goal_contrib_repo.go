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

type SQLiteGoalContribRepository struct {
	store *database.Store
}

func NewSQLiteGoalContribRepository(store *database.Store) *SQLiteGoalContribRepository {
	return &SQLiteGoalContribRepository{store: store}
}

const goalContribColumns = `id, goal_id, amount, note, occurred_at, created_at, updated_at, deleted_at`

func scanGoalContrib(row interface{ Scan(...any) error }) (*models.GoalContrib, error) {
	var c models.GoalContrib
	err := row.Scan(
		&c.ID,
		&c.GoalID,
		&c.Amount,
		&c.Note,
		&c.OccurredAt,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GoalContribFilter narrows List; zero values mean no filter.
type GoalContribFilter struct {
	GoalID int64
	Limit  int
	Offset int
}

func (r *SQLiteGoalContribRepository) List(ctx context.Context, f GoalContribFilter) ([]*models.GoalContrib, error) {
	query := `SELECT ` + goalContribColumns + `
	          FROM ` + database.TableGoalContribs + `
	          WHERE deleted_at IS NULL`
	var args []any

	if f.GoalID > 0 {
		query += " AND goal_id = ?"
		args = append(args, f.GoalID)
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
		return nil, fmt.Errorf("failed to query goal contributions: %w", err)
	}
	defer rows.Close()

	var contribs []*models.GoalContrib
	for rows.Next() {
		c, err := scanGoalContrib(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal contribution: %w", err)
		}
		contribs = append(contribs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal contributions: %w", err)
	}
	return contribs, nil
}

func (r *SQLiteGoalContribRepository) GetByID(ctx context.Context, id int64) (*models.GoalContrib, error) {
	query := `SELECT ` + goalContribColumns + `
	          FROM ` + database.TableGoalContribs + `
	          WHERE id = ? AND deleted_at IS NULL`

	c, err := scanGoalContrib(r.store.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal contribution by id: %w", err)
	}
	return c, nil
}

func (r *SQLiteGoalContribRepository) Create(ctx context.Context, c *models.GoalContrib) error {
	now := time.Now().UnixMilli()
	if c.OccurredAt == 0 {
		c.OccurredAt = now
	}

	res, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableGoalContribs+`
		(goal_id, amount, note, occurred_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.GoalID, c.Amount, c.Note, c.OccurredAt, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted contribution id: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload goal contribution: %w", err)
	}
	*c = *created
	return nil
}

type UpdateGoalContribParams struct {
	Amount     *int64
	Note       *string
	NoteSet    bool
	OccurredAt *int64
}

func (r *SQLiteGoalContribRepository) Update(ctx context.Context, id int64, p UpdateGoalContribParams) (*models.GoalContrib, error) {
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
		UPDATE `+database.TableGoalContribs+`
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

func (r *SQLiteGoalContribRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableGoalContribs+`
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete goal contribution: %w", err)
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
