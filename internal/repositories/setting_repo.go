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

type SQLiteSettingRepository struct {
	store *database.Store
}

func NewSQLiteSettingRepository(store *database.Store) *SQLiteSettingRepository {
	return &SQLiteSettingRepository{store: store}
}

// All returns every active setting as a key/value map.
func (r *SQLiteSettingRepository) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.store.DB().QueryContext(ctx,
		`SELECT key, value FROM `+database.TableAppSettings+` WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}
	return settings, nil
}

func (r *SQLiteSettingRepository) Get(ctx context.Context, key string) (*models.Setting, error) {
	var s models.Setting
	err := r.store.DB().QueryRowContext(ctx, `
		SELECT key, value, created_at, updated_at, deleted_at
		FROM `+database.TableAppSettings+`
		WHERE key = ? AND deleted_at IS NULL`, key,
	).Scan(&s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &s, nil
}

func (r *SQLiteSettingRepository) Create(ctx context.Context, s *models.Setting) error {
	now := time.Now().UnixMilli()

	_, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableAppSettings+` (key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		s.Key, s.Value, now, now,
	)
	if err != nil {
		return translateConstraint(err)
	}

	created, err := r.Get(ctx, s.Key)
	if err != nil {
		return fmt.Errorf("failed to reload setting: %w", err)
	}
	*s = *created
	return nil
}

// Set upserts a setting value, reactivating it if it was soft-deleted.
func (r *SQLiteSettingRepository) Set(ctx context.Context, key, value string) (*models.Setting, error) {
	now := time.Now().UnixMilli()

	_, err := r.store.DB().ExecContext(ctx, `
		INSERT INTO `+database.TableAppSettings+` (key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at, deleted_at = NULL`,
		key, value, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set setting: %w", err)
	}

	return r.Get(ctx, key)
}

func (r *SQLiteSettingRepository) SoftDelete(ctx context.Context, key string) error {
	now := time.Now().UnixMilli()
	res, err := r.store.DB().ExecContext(ctx, `
		UPDATE `+database.TableAppSettings+`
		SET deleted_at = ?, updated_at = ?
		WHERE key = ? AND deleted_at IS NULL`,
		now, now, key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
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
