package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidSyncOperationType = errors.New("model: invalid sync operation type")

type SyncOperationType string

const (
	SyncOpUpsertEvent SyncOperationType = "upsert-event"
	SyncOpDeleteEvent SyncOperationType = "delete-event"
)

func (t SyncOperationType) IsValid() bool {
	switch t {
	case SyncOpUpsertEvent, SyncOpDeleteEvent:
		return true
	default:
		return false
	}
}

// PendingSyncOperation is a queued local mutation awaiting confirmation by
// the remote service. At most one operation per entity id is queued; a newer
// enqueue for the same entity replaces the older one.
type PendingSyncOperation struct {
	Type          SyncOperationType `json:"type"`
	EntityID      string            `json:"entity_id"`
	Event         *WeekendEvent     `json:"event,omitempty"`
	CalendarID    string            `json:"calendar_id,omitempty"`
	Attempts      int               `json:"attempts"`
	NextAttemptAt *time.Time        `json:"next_attempt_at,omitempty"`
}

func (op PendingSyncOperation) Validate() error {
	if !op.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSyncOperationType, op.Type)
	}
	if strings.TrimSpace(op.EntityID) == "" {
		return errors.New("model: sync operation entity id is required")
	}
	if op.Type == SyncOpUpsertEvent && op.Event == nil {
		return errors.New("model: upsert operation requires an event payload")
	}
	if op.Attempts < 0 {
		return errors.New("model: sync operation attempts must not be negative")
	}
	return nil
}

// Due reports whether the operation is eligible for an attempt at now.
func (op PendingSyncOperation) Due(now time.Time) bool {
	return op.NextAttemptAt == nil || !op.NextAttemptAt.After(now)
}

// SyncState is derived from queue contents, never stored independently.
type SyncState string

const (
	SyncStateSynced   SyncState = "synced"
	SyncStatePending  SyncState = "pending"
	SyncStateRetrying SyncState = "retrying"
)

// StateOf derives the per-entity sync state from a queued operation, or
// synced when op is nil.
func StateOf(op *PendingSyncOperation, now time.Time) SyncState {
	if op == nil {
		return SyncStateSynced
	}
	if op.Attempts > 0 && op.NextAttemptAt != nil && op.NextAttemptAt.After(now) {
		return SyncStateRetrying
	}
	return SyncStatePending
}
