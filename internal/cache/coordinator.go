package cache

import (
	"encoding/json"
	"sync"
	"time"
)

// DefaultDebounce collapses bursts of scheduled saves into a single write.
const DefaultDebounce = 500 * time.Millisecond

type writeJob struct {
	name    string
	payload json.RawMessage
	done    chan error
}

// Coordinator funnels every cache write through one worker goroutine, so
// writes to a given file land in call order and no two writes interleave.
// Two policies exist: immediate (the call returns once the file is on disk)
// and debounced (calls within the window collapse to one write of the latest
// value; superseded values never reach disk).
type Coordinator struct {
	store    *Store
	debounce time.Duration

	jobs   chan writeJob
	doneCh chan struct{}

	mu      sync.Mutex
	pending map[string]*pendingSave
	closed  bool
}

type pendingSave struct {
	payload json.RawMessage
	timer   *time.Timer
}

func NewCoordinator(store *Store, debounce time.Duration) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	c := &Coordinator{
		store:    store,
		debounce: debounce,
		jobs:     make(chan writeJob, 32),
		doneCh:   make(chan struct{}),
		pending:  make(map[string]*pendingSave),
	}
	go c.loop()
	return c
}

func (c *Coordinator) loop() {
	defer close(c.doneCh)
	for job := range c.jobs {
		err := c.store.write(job.name, job.payload)
		if job.done != nil {
			job.done <- err
		}
	}
}

// SaveImmediate serializes v and blocks until the named document is durable.
// No other file is touched.
func (c *Coordinator) SaveImmediate(name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	done := make(chan error, 1)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return c.store.write(name, json.RawMessage(payload))
	}
	c.jobs <- writeJob{name: name, payload: payload, done: done}
	c.mu.Unlock()
	return <-done
}

// ScheduleSave records v as the latest value for the named document and arms
// the debounce window. A newer call for the same name supersedes the value
// and re-arms the window; only the value in force when the window fires is
// written.
func (c *Coordinator) ScheduleSave(name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.store.write(name, json.RawMessage(payload))
	}
	if p, ok := c.pending[name]; ok {
		p.payload = payload
		p.timer.Stop()
		p.timer.Reset(c.debounce)
		return nil
	}
	p := &pendingSave{payload: payload}
	p.timer = time.AfterFunc(c.debounce, func() { c.fire(name) })
	c.pending[name] = p
	return nil
}

// fire moves a debounced value onto the write queue when its window elapses.
func (c *Coordinator) fire(name string) {
	c.mu.Lock()
	p, ok := c.pending[name]
	if !ok {
		c.mu.Unlock()
		return
	}
	delete(c.pending, name)
	payload := p.payload
	closed := c.closed
	c.mu.Unlock()
	if closed {
		_ = c.store.write(name, json.RawMessage(payload))
		return
	}
	c.jobs <- writeJob{name: name, payload: payload}
}

// Flush writes every pending debounced value now and waits for the worker to
// drain; tests use it instead of sleeping through debounce windows.
func (c *Coordinator) Flush() error {
	c.mu.Lock()
	names := make([]string, 0, len(c.pending))
	payloads := make([]json.RawMessage, 0, len(c.pending))
	for name, p := range c.pending {
		p.timer.Stop()
		names = append(names, name)
		payloads = append(payloads, p.payload)
		delete(c.pending, name)
	}
	closed := c.closed
	c.mu.Unlock()

	var firstErr error
	for i, name := range names {
		if closed {
			if err := c.store.write(name, payloads[i]); err != nil && firstErr == nil {
				firstErr = err
			}
			continue
		}
		done := make(chan error, 1)
		c.jobs <- writeJob{name: name, payload: payloads[i], done: done}
		if err := <-done; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close flushes pending saves and stops the worker.
func (c *Coordinator) Close() error {
	err := c.Flush()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return err
	}
	c.closed = true
	close(c.jobs)
	c.mu.Unlock()
	<-c.doneCh
	return err
}
