package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/nkoudou/fastcompta/internal/database"
)

// Row is a table row keyed by column name, as it travels in sync payloads.
type Row map[string]any

// Tombstone is the minimal record a client needs to drop a soft-deleted row.
type Tombstone struct {
	ID        any   `json:"id"`
	DeletedAt int64 `json:"deleted_at"`
}

// Delta partitions every row of a table touched at or after the cursor.
// A row lands in exactly one bucket; soft-deleted rows whose tombstone
// predates the cursor are excluded entirely.
type Delta struct {
	Created []Row       `json:"created"`
	Updated []Row       `json:"updated"`
	Deleted []Tombstone `json:"deleted"`
}

func emptyDelta() Delta {
	return Delta{Created: []Row{}, Updated: []Row{}, Deleted: []Tombstone{}}
}

// BuildTableDelta computes the created/updated/deleted partition of one table
// for a given cursor. Timestamp columns are discovered by introspection: a
// table carrying none of them is treated as not syncable and yields an empty
// delta rather than an error.
//
// Classification priority: tombstone, then creation, then update. Creation
// wins over update on purpose — the client has never seen a row created after
// its cursor, so it must arrive as new even if it was edited since.
func BuildTableDelta(ctx context.Context, q database.Querier, table, idCol string, since int64) (Delta, error) {
	delta := emptyDelta()

	cols, err := database.TableColumns(ctx, q, table)
	if err != nil {
		return delta, err
	}

	hasCreatedAt := cols["created_at"]
	hasUpdatedAt := cols["updated_at"]
	hasDeletedAt := cols["deleted_at"]

	if !hasCreatedAt && !hasUpdatedAt && !hasDeletedAt {
		return delta, nil
	}

	var whereParts []string
	var args []any

	if hasCreatedAt {
		whereParts = append(whereParts, "created_at >= ?")
		args = append(args, since)
	}
	if hasUpdatedAt {
		whereParts = append(whereParts, "updated_at >= ?")
		args = append(args, since)
	}
	if hasDeletedAt {
		whereParts = append(whereParts, "(deleted_at IS NOT NULL AND deleted_at >= ?)")
		args = append(args, since)
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s", table, strings.Join(whereParts, " OR "))
	rows, err := scanRows(ctx, q, query, args...)
	if err != nil {
		return delta, err
	}

	for _, r := range rows {
		if hasDeletedAt {
			if deletedAt, ok := asInt64(r["deleted_at"]); ok {
				if deletedAt >= since {
					delta.Deleted = append(delta.Deleted, Tombstone{ID: r[idCol], DeletedAt: deletedAt})
				}
				// stale tombstone, the client already knows
				continue
			}
		}

		if hasCreatedAt {
			if createdAt, ok := asInt64(r["created_at"]); ok && createdAt >= since {
				delta.Created = append(delta.Created, r)
				continue
			}
		}

		if hasUpdatedAt {
			if updatedAt, ok := asInt64(r["updated_at"]); ok && updatedAt >= since {
				delta.Updated = append(delta.Updated, r)
			}
		}
	}

	return delta, nil
}

// scanRows runs a query and materializes every row as a column-keyed map,
// without assuming a column set.
func scanRows(ctx context.Context, q database.Querier, query string, args ...any) ([]Row, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		r := make(Row, len(cols))
		for i, name := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			r[name] = v
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
