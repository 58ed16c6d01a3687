package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MazharElstub/The-Weekend-sub002/internal/log"
	"github.com/MazharElstub/The-Weekend-sub002/internal/model"
	"github.com/MazharElstub/The-Weekend-sub002/internal/remote"
)

// Backoff schedule: the delay doubles per failed attempt, starting at 5s and
// capped at 10m. Operations are never abandoned; they stay queued until
// success or explicit replacement.
const (
	DefaultBackoffBase = 5 * time.Second
	DefaultBackoffMax  = 10 * time.Minute
)

// BackoffDelay returns the wait before the next attempt given the number of
// failed attempts so far.
func BackoffDelay(attempts int, base, max time.Duration) time.Duration {
	if attempts < 0 {
		attempts = 0
	}
	d := base
	for i := 0; i < attempts; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	if d > max {
		return max
	}
	return d
}

// Engine drains the pending queue against the remote service. A single
// background loop waits for the earliest eligible operation, attempts every
// due one, and reschedules failures with exponential backoff.
type Engine struct {
	queue  *Queue
	remote remote.Service

	backoffBase time.Duration
	backoffMax  time.Duration

	mu      sync.Mutex
	started bool
	stopped bool
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewEngine(queue *Queue, svc remote.Service) *Engine {
	return &Engine{
		queue:       queue,
		remote:      svc,
		backoffBase: DefaultBackoffBase,
		backoffMax:  DefaultBackoffMax,
		wakeup:      make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// SetBackoff overrides the retry backoff bounds. Calls after Start are
// ignored.
func (e *Engine) SetBackoff(base, max time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || base <= 0 || max < base {
		return
	}
	e.backoffBase = base
	e.backoffMax = max
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Notify wakes the loop after an enqueue so a fresh operation is attempted
// without waiting out a timer.
func (e *Engine) Notify() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

// ForceRetry clears accumulated backoff on every queued operation and
// triggers an immediate pass. Used for manual "retry now" and
// connectivity-restored triggers.
func (e *Engine) ForceRetry(reason string) error {
	if err := e.queue.ForceRetryAll(time.Now().UTC()); err != nil {
		return err
	}
	log.Info("sync: forced retry", "reason", reason, "queued", e.queue.Len())
	e.Notify()
	return nil
}

func (e *Engine) loop() {
	defer close(e.doneCh)

	var timer *time.Timer
	for {
		next, hasNext := e.queue.NextAttemptTime(time.Now().UTC())
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			e.attemptDue(time.Now().UTC())
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) attemptDue(now time.Time) {
	for _, op := range e.queue.DueOperations(now) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := e.attempt(ctx, op)
		cancel()
		if err == nil {
			if rmErr := e.queue.Remove(op.EntityID); rmErr != nil {
				log.Error("sync: drop confirmed operation", rmErr, "entity", op.EntityID)
			}
			log.Debug("sync: confirmed", "type", op.Type, "entity", op.EntityID)
			continue
		}
		delay := BackoffDelay(op.Attempts, e.backoffBase, e.backoffMax)
		if mfErr := e.queue.MarkFailed(op.EntityID, now.Add(delay)); mfErr != nil {
			log.Error("sync: record failed attempt", mfErr, "entity", op.EntityID)
		}
		log.Error("sync: attempt failed", err,
			"type", op.Type, "entity", op.EntityID,
			"attempts", op.Attempts+1, "retry_in", delay)
	}
}

func (e *Engine) attempt(ctx context.Context, op model.PendingSyncOperation) error {
	switch op.Type {
	case model.SyncOpUpsertEvent:
		if op.Event == nil {
			return errors.New("syncer: upsert operation without payload")
		}
		return e.remote.UpsertEvent(ctx, *op.Event)
	case model.SyncOpDeleteEvent:
		return e.remote.DeleteEvent(ctx, op.EntityID)
	default:
		return errors.New("syncer: unknown operation type " + string(op.Type))
	}
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
