package sync

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/nkoudou/fastcompta/internal/database"
)

// ApplyResult reports the outcome of a single change. A conflict means the
// server row was modified after the client's cursor and nothing was written.
type ApplyResult struct {
	Applied  bool
	Conflict bool
}

// applyUpsert writes one client-submitted row, insert-or-update by natural
// key. Last-write-wins: an existing row updated strictly after the cursor
// rejects the change. Upserting always reactivates the row — any deleted_at
// the client carries is discarded and the stored one cleared.
func applyUpsert(ctx context.Context, q database.Querier, d Descriptor, row Row, since, now int64) (ApplyResult, error) {
	idVal := normalize(row[d.Key])
	if idVal == nil {
		return ApplyResult{}, fmt.Errorf("missing %s", d.Key)
	}

	existing, exists, err := lookupUpdatedAt(ctx, q, d, idVal)
	if err != nil {
		return ApplyResult{}, err
	}
	if exists && existing > since {
		return ApplyResult{Conflict: true}, nil
	}

	values := make([]any, 0, len(d.Fields)+3)
	for _, f := range d.Fields {
		v, err := fieldValue(f, row, now)
		if err != nil {
			return ApplyResult{}, err
		}
		values = append(values, v)
	}

	if exists {
		var sets []string
		for _, f := range d.Fields {
			sets = append(sets, f.Name+" = ?")
		}
		sets = append(sets, "updated_at = ?", "deleted_at = NULL")
		query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", d.Table, strings.Join(sets, ", "), d.Key)
		args := append(values, now, idVal)
		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return ApplyResult{}, fmt.Errorf("failed to update %s %v: %w", d.Singular, idVal, err)
		}
		return ApplyResult{Applied: true}, nil
	}

	createdAt := now
	if v, ok := asInt64(row["created_at"]); ok {
		createdAt = v
	}

	names := []string{d.Key}
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	names = append(names, "created_at", "updated_at", "deleted_at")

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(names)-2), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (?, %s, NULL)",
		d.Table, strings.Join(names, ", "), placeholders)

	args := append([]any{idVal}, values...)
	args = append(args, createdAt, now)
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return ApplyResult{}, fmt.Errorf("failed to insert %s %v: %w", d.Singular, idVal, err)
	}
	return ApplyResult{Applied: true}, nil
}

// applyDelete soft-deletes one row by natural key. Deleting an absent key is
// a no-op, so offline clients can safely replay delete queues. The same
// conflict rule as upserts applies, and guarded rows (the MASTER accounting)
// are refused outright.
func applyDelete(ctx context.Context, q database.Querier, d Descriptor, idVal any, since, now int64) (ApplyResult, error) {
	idVal = normalize(idVal)
	if idVal == nil {
		return ApplyResult{}, nil
	}

	if d.GuardDelete != nil {
		if err := d.GuardDelete(idVal); err != nil {
			return ApplyResult{}, err
		}
	}

	existing, exists, err := lookupUpdatedAt(ctx, q, d, idVal)
	if err != nil {
		return ApplyResult{}, err
	}
	if !exists {
		return ApplyResult{}, nil
	}
	if existing > since {
		return ApplyResult{Conflict: true}, nil
	}

	query := fmt.Sprintf("UPDATE %s SET deleted_at = ?, updated_at = ? WHERE %s = ?", d.Table, d.Key)
	if _, err := q.ExecContext(ctx, query, now, now, idVal); err != nil {
		return ApplyResult{}, fmt.Errorf("failed to soft-delete %s %v: %w", d.Singular, idVal, err)
	}
	return ApplyResult{Applied: true}, nil
}

// lookupUpdatedAt fetches the server-side updated_at of a row, reporting
// whether the row exists at all. A NULL updated_at counts as zero, which can
// never postdate a cursor.
func lookupUpdatedAt(ctx context.Context, q database.Querier, d Descriptor, idVal any) (int64, bool, error) {
	var updatedAt sql.NullInt64
	query := fmt.Sprintf("SELECT updated_at FROM %s WHERE %s = ?", d.Table, d.Key)
	err := q.QueryRowContext(ctx, query, idVal).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up %s %v: %w", d.Singular, idVal, err)
	}
	return updatedAt.Int64, true, nil
}

// fieldValue resolves one column value from the client row, applying the
// field's default when absent and serializing structured JSON columns.
func fieldValue(f Field, row Row, now int64) (any, error) {
	v, ok := row[f.Name]
	if !ok || v == nil {
		if f.NowDefault {
			return now, nil
		}
		return f.Default, nil
	}

	v = normalize(v)

	if f.JSON {
		if _, isString := v.(string); !isString {
			b, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("failed to serialize %s: %w", f.Name, err)
			}
			v = string(b)
		}
	}
	return v, nil
}

// normalize collapses JSON-decoded numbers to int64 when they are integral,
// so INTEGER columns store integers rather than REAL values.
func normalize(v any) any {
	if f, ok := v.(float64); ok && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return int64(f)
	}
	return v
}
