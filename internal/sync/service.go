// Package sync implements the offline delta-synchronization engine: a
// bidirectional protocol reconciling disconnected clients with the server
// store using last-write-wins conflicts, soft deletion and tombstones.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/nkoudou/fastcompta/internal/database"
)

const conflictReason = "entity modified on the server after the last synchronization"

// Service orchestrates pull and push-pull requests across every
// synchronizable entity.
type Service struct {
	store *database.Store
}

func NewService(store *database.Store) *Service {
	return &Service{store: store}
}

// Pull computes the per-entity deltas the client is missing since its cursor.
func (s *Service) Pull(ctx context.Context, since int64) (*PullResponse, error) {
	now := time.Now().UnixMilli()

	data, err := s.buildSyncData(ctx, since)
	if err != nil {
		return nil, err
	}

	return &PullResponse{
		Since:      since,
		ServerTime: now,
		Data:       data,
		Summary:    summarize(data),
	}, nil
}

// Push applies a device's change envelope inside a single transaction, then
// pulls the server deltas from the same cursor so the response carries both
// the outcome of the push and whatever the client is still missing.
//
// Entities are processed in the fixed Entities order; within an entity,
// upserts before deletes, both in submission order. Conflicts and item-level
// storage faults are recorded and skipped — the transaction commits the union
// of everything that did apply.
func (s *Service) Push(ctx context.Context, req *PushRequest, since int64) (*PushResponse, error) {
	now := time.Now().UnixMilli()
	results := newPushResults()

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin push transaction: %w", err)
	}
	defer tx.Rollback()

	for _, d := range Entities {
		cs, ok := req.Changes[d.Name]
		if !ok {
			continue
		}

		for _, row := range cs.Upserts {
			res, err := applyUpsert(ctx, tx, d, row, since, now)
			switch {
			case err != nil:
				results.Errors = append(results.Errors, ItemError{
					Entity: d.Singular,
					ID:     idOrUnknown(row[d.Key]),
					Error:  err.Error(),
				})
			case res.Conflict:
				results.Conflicts = append(results.Conflicts, Conflict{
					Entity: d.Singular,
					ID:     normalize(row[d.Key]),
					Reason: conflictReason,
				})
			case res.Applied:
				results.Applied[d.Name].Upserted++
			}
		}

		for _, del := range cs.Deletes {
			res, err := applyDelete(ctx, tx, d, del[d.Key], since, now)
			switch {
			case err != nil:
				results.Errors = append(results.Errors, ItemError{
					Entity: d.Singular,
					ID:     idOrUnknown(del[d.Key]),
					Error:  err.Error(),
				})
			case res.Conflict:
				results.Conflicts = append(results.Conflicts, Conflict{
					Entity: d.Singular,
					ID:     normalize(del[d.Key]),
					Reason: conflictReason,
				})
			case res.Applied:
				results.Applied[d.Name].Deleted++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit push transaction: %w", err)
	}

	// Deltas are computed after the commit so the client sees the effect of
	// its own push alongside everything else it is missing.
	data, err := s.buildSyncData(ctx, since)
	if err != nil {
		return nil, err
	}

	return &PushResponse{
		DeviceID:   req.DeviceID,
		ClientTime: req.ClientTime,
		Since:      since,
		ServerTime: now,
		Results:    results,
		Data:       data,
		Summary: PushSummary{
			Summary:        summarize(data),
			ConflictsCount: len(results.Conflicts),
			ErrorsCount:    len(results.Errors),
		},
	}, nil
}

func (s *Service) buildSyncData(ctx context.Context, since int64) (SyncData, error) {
	data := make(SyncData, len(Entities))
	for _, d := range Entities {
		delta, err := BuildTableDelta(ctx, s.store.DB(), d.Table, d.Key, since)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s delta: %w", d.Name, err)
		}
		data[d.Name] = delta
	}
	return data, nil
}

func idOrUnknown(v any) any {
	if v == nil {
		return "unknown"
	}
	return normalize(v)
}
