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

type SQLiteGoalRepository struct {
	store *database.Store
}

func NewSQLiteGoalRepository(store *database.Store) *SQLiteGoalRepository {
	return &SQLiteGoalRepository{store: store}
}

const goalColumns = `id, title, note, start_amount, target_amount, deadline, archived, created_at, updated_at, deleted_at`

func scanGoal(row interface{ Scan(...any) error }) (*models.Goal, error) {
	var g models.Goal
	err := row.Scan(
		&g.ID,
		&g.Title,
		&g.Note,
		&g.StartAmount,
		&g.TargetAmount,
		&g.Deadline,
		&g.Archived,
		&g.CreatedAt,
		&g.UpdatedAt,
		&g.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// GoalFilter narrows List; nil and zero values mean no filter.
type GoalFilter struct {
	Archived *int64
	Limit    int
	Offset   int
}

func (r *SQLiteGoalRepository) List(ctx context.Context, f GoalFilter) ([]*models.Goal, error) {
	query := `SELECT ` + goalColumns + `
	          FROM ` + database.TableGoals + `
	          WHERE deleted_at IS NULL`
	var args []any

	if f.Archived != nil {
		query += " AND archived = ?"
		args = append(args, *f.Archived)
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
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

func (r *SQLiteGoalRepository) GetByID(ctx context.Context, id int64) (*models.Goal, error) {
	query := `SELECT ` + goalColumns + `
	          FROM ` + database.TableGoals + `
	          WHERE id = ? AND deleted_at IS NULL`

	g, err := scanGoal(r.store.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal by id: %w", err)
	}
	return g, nil
}

func (r *SQLiteGoalRepository) Create(ctx context.Context, g *models.Goal) error {
	now := time.Now().UnixMilli()

	res, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableGoals+`
		(title, note, start_amount, target_amount, deadline, archived, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Title, g.Note, g.StartAmount, g.TargetAmount, g.Deadline, g.Archived, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted goal id: %w", err)
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to reload goal: %w", err)
	}
	*g = *created
	return nil
}

type UpdateGoalParams struct {
	Title        *string
	Note         *string
	NoteSet      bool
	StartAmount  *int64
	TargetAmount *int64
	Deadline     *int64
	DeadlineSet  bool
	Archived     *int64
}

func (r *SQLiteGoalRepository) Update(ctx context.Context, id int64, p UpdateGoalParams) (*models.Goal, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	note := existing.Note
	if p.NoteSet {
		note = p.Note
	}
	deadline := existing.Deadline
	if p.DeadlineSet {
		deadline = p.Deadline
	}

	now := time.Now().UnixMilli()
	_, err = r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableGoals+`
		SET title = COALESCE(?, title),
		    note = ?,
		    start_amount = COALESCE(?, start_amount),
		    target_amount = COALESCE(?, target_amount),
		    deadline = ?,
		    archived = COALESCE(?, archived),
		    updated_at = ?
		WHERE id = ?`,
		p.Title, note, p.StartAmount, p.TargetAmount, deadline, p.Archived, now, id,
	)
	if err != nil {
		return nil, translateConstraint(err)
	}

	return r.GetByID(ctx, id)
}

func (r *SQLiteGoalRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableGoals+`
		SET deleted_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
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
