// Package scheduler batches path recomputation into per-frame chunks. Work
// is keyed: enqueuing for a key that is already pending replaces its payload
// (last write wins), so an invalidation storm during a drag collapses to one
// computation per connection per frame.
package scheduler

import "github.com/flowcraft/edgeroute/lib/go2"

const DefaultBatchSize = 50

// Frame abstracts the host's paint-frame callback registrar
// (requestAnimationFrame or equivalent). ScheduleOnce runs fn on the next
// frame and returns a cancel func. Implementations need not be concurrent;
// the engine is single-threaded.
type Frame interface {
	ScheduleOnce(fn func()) (cancel func())
}

// Queue coalesces keyed work and flushes it in bounded chunks, yielding back
// to the frame source between chunks.
type Queue struct {
	frame     Frame
	batchSize int

	pending map[string]func()
	order   []string

	scheduled bool
	flushing  bool
	cancel    func()
}

func NewQueue(frame Frame, batchSize int) *Queue {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Queue{
		frame:     frame,
		batchSize: batchSize,
		pending:   make(map[string]func()),
	}
}

// Enqueue registers work for the key. A pending entry for the same key is
// silently superseded; its position in the flush order is kept.
func (q *Queue) Enqueue(key string, work func()) {
	if _, exists := q.pending[key]; !exists {
		q.order = append(q.order, key)
	}
	q.pending[key] = work
	q.schedule()
}

func (q *Queue) schedule() {
	if q.scheduled || len(q.pending) == 0 {
		return
	}
	q.scheduled = true
	q.cancel = q.frame.ScheduleOnce(q.flush)
}

// flush processes one chunk. Work enqueued while flushing lands in the
// pending map and is picked up by the next scheduled flush, never
// recursively within this one.
func (q *Queue) flush() {
	q.scheduled = false
	q.flushing = true

	n := go2.Min(q.batchSize, len(q.order))
	chunk := q.order[:n]
	q.order = q.order[n:]

	for _, key := range chunk {
		work, ok := q.pending[key]
		if !ok {
			continue
		}
		delete(q.pending, key)
		work()
	}

	q.flushing = false
	q.schedule()
}

func (q *Queue) Pending() int {
	return len(q.pending)
}

func (q *Queue) Flushing() bool {
	return q.flushing
}

// Stop cancels the scheduled flush and drops all pending work.
func (q *Queue) Stop() {
	if q.scheduled && q.cancel != nil {
		q.cancel()
	}
	q.scheduled = false
	q.pending = make(map[string]func())
	q.order = nil
}

// ManualFrame is a stepped frame source for tests and headless hosts: Step
// runs the scheduled callback synchronously.
type ManualFrame struct {
	callback func()
}

func (m *ManualFrame) ScheduleOnce(fn func()) (cancel func()) {
	m.callback = fn
	return func() {
		m.callback = nil
	}
}

// Step runs the pending frame callback, if any. Returns whether one ran.
func (m *ManualFrame) Step() bool {
	if m.callback == nil {
		return false
	}
	fn := m.callback
	m.callback = nil
	fn()
	return true
}
