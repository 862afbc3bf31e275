// Package progress implements the pipeline's progress sink: a small
// interface the orchestrator calls as it advances through towers, slices
// and passes, a no-op default (NopSink) and a lock-free counter-based
// implementation (Counter).
package progress

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Sink receives progress notifications from a running pipeline. Every
// method must be safe to call concurrently, since per-object work runs
// across a worker pool.
type Sink interface {
	// SetTask announces the named stage a pipeline run has entered, e.g.
	// "slicing", "walls", "support".
	SetTask(name string)
	// Advance reports that one unit of the current task's work completed.
	Advance()
	// Total sets the number of units the current task comprises, before
	// any Advance calls for it arrive.
	Total(n uint64)
}

// NopSink discards every notification. It is the default when a caller
// doesn't need progress reporting.
type NopSink struct{}

func (NopSink) SetTask(string) {}
func (NopSink) Advance()       {}
func (NopSink) Total(uint64)   {}

// Counter is a Sink backed by atomic counters, safe for concurrent
// Advance calls from a worker pool. Each run is tagged with a random
// run ID so external log correlation can distinguish overlapping runs.
type Counter struct {
	RunID string

	task  atomic.Pointer[string]
	total atomic.Uint64
	done  atomic.Uint64
}

// NewCounter creates a Counter tagged with a fresh run ID.
func NewCounter() *Counter {
	return &Counter{RunID: uuid.NewString()}
}

func (c *Counter) SetTask(name string) {
	c.task.Store(&name)
	c.total.Store(0)
	c.done.Store(0)
}

func (c *Counter) Total(n uint64) { c.total.Store(n) }

func (c *Counter) Advance() { c.done.Add(1) }

// Task returns the most recently set task name, or "" before the first
// SetTask call.
func (c *Counter) Task() string {
	if p := c.task.Load(); p != nil {
		return *p
	}
	return ""
}

// Snapshot returns the current (done, total) pair for the active task.
func (c *Counter) Snapshot() (done, total uint64) {
	return c.done.Load(), c.total.Load()
}
