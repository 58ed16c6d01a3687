package syncer

import (
	"sync"
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/cache"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
)

// QueueDocument is the cache file the pending queue persists to.
const QueueDocument = "pending_sync_queue"

// queueDocumentBody is written as one unit so the operation list and the
// per-entity state map can never diverge on disk.
type queueDocumentBody struct {
	Operations []model.PendingSyncOperation `json:"operations"`
	States     map[string]model.SyncState   `json:"states"`
}

// Queue holds the pending local mutations awaiting remote confirmation. At
// most one operation is queued per entity id; a newer enqueue replaces the
// older operation for that entity. Every mutation persists immediately (never
// debounced), so the queue survives a crash right after the call returns.
type Queue struct {
	mu    sync.Mutex
	coord *cache.Coordinator
	ops   []model.PendingSyncOperation
}

// NewQueue restores the queue from the cache store, treating a missing or
// malformed document as empty.
func NewQueue(store *cache.Store, coord *cache.Coordinator) *Queue {
	q := &Queue{coord: coord}
	var body queueDocumentBody
	if store.Load(QueueDocument, &body) {
		q.ops = body.Operations
	}
	return q
}

// Enqueue inserts op, replacing any queued operation for the same entity id.
func (q *Queue) Enqueue(op model.PendingSyncOperation) error {
	if err := op.Validate(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	replaced := false
	for i := range q.ops {
		if q.ops[i].EntityID == op.EntityID {
			q.ops[i] = op
			replaced = true
			break
		}
	}
	if !replaced {
		q.ops = append(q.ops, op)
	}
	return q.persistLocked()
}

// Remove drops the operation for an entity, normally on confirmed success.
func (q *Queue) Remove(entityID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.ops[:0]
	for _, op := range q.ops {
		if op.EntityID != entityID {
			kept = append(kept, op)
		}
	}
	if len(kept) == len(q.ops) {
		return nil
	}
	q.ops = kept
	return q.persistLocked()
}

// MarkFailed records a failed attempt for an entity and schedules the next
// one at next.
func (q *Queue) MarkFailed(entityID string, next time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.ops {
		if q.ops[i].EntityID == entityID {
			q.ops[i].Attempts++
			at := next
			q.ops[i].NextAttemptAt = &at
			return q.persistLocked()
		}
	}
	return nil
}

// ForceRetryAll makes every queued operation immediately eligible again,
// clearing accumulated backoff.
func (q *Queue) ForceRetryAll(now time.Time) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ops) == 0 {
		return nil
	}
	for i := range q.ops {
		q.ops[i].Attempts = 0
		at := now
		q.ops[i].NextAttemptAt = &at
	}
	return q.persistLocked()
}

// Operations returns a copy of the queue in enqueue order.
func (q *Queue) Operations() []model.PendingSyncOperation {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.PendingSyncOperation, len(q.ops))
	copy(out, q.ops)
	return out
}

// OperationFor returns the queued operation for an entity, if any.
func (q *Queue) OperationFor(entityID string) (model.PendingSyncOperation, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, op := range q.ops {
		if op.EntityID == entityID {
			return op, true
		}
	}
	return model.PendingSyncOperation{}, false
}

// StateFor derives the per-entity sync state from queue contents.
func (q *Queue) StateFor(entityID string, now time.Time) model.SyncState {
	op, ok := q.OperationFor(entityID)
	if !ok {
		return model.SyncStateSynced
	}
	return model.StateOf(&op, now)
}

// DueOperations returns the operations eligible for an attempt at now.
func (q *Queue) DueOperations(now time.Time) []model.PendingSyncOperation {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]model.PendingSyncOperation, 0, len(q.ops))
	for _, op := range q.ops {
		if op.Due(now) {
			out = append(out, op)
		}
	}
	return out
}

// NextAttemptTime returns the earliest time any queued operation becomes
// eligible, or false when the queue is empty. An operation with no scheduled
// time is eligible immediately.
func (q *Queue) NextAttemptTime(now time.Time) (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ops) == 0 {
		return time.Time{}, false
	}
	earliest := time.Time{}
	for _, op := range q.ops {
		at := now
		if op.NextAttemptAt != nil && op.NextAttemptAt.After(now) {
			at = *op.NextAttemptAt
		}
		if earliest.IsZero() || at.Before(earliest) {
			earliest = at
		}
	}
	return earliest, true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ops)
}

// Clear empties the queue, used when the session ends.
func (q *Queue) Clear() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ops) == 0 {
		return nil
	}
	q.ops = nil
	return q.persistLocked()
}

func (q *Queue) persistLocked() error {
	now := time.Now().UTC()
	body := queueDocumentBody{
		Operations: q.ops,
		States:     make(map[string]model.SyncState, len(q.ops)),
	}
	if body.Operations == nil {
		body.Operations = []model.PendingSyncOperation{}
	}
	for i := range q.ops {
		body.States[q.ops[i].EntityID] = model.StateOf(&q.ops[i], now)
	}
	return q.coord.SaveImmediate(QueueDocument, body)
}
