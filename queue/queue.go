// Package queue implements the execution queue: a stable, three-band
// priority FIFO that the orchestrator enqueues admitted requests into and
// the drainer dequeues from.
package queue

import (
	"sync"

	"github.com/c360/musicalconductor/errors"
	"github.com/c360/musicalconductor/sequence"
)

// ExecutionQueue is a stable priority FIFO over three bands: HIGH, NORMAL,
// and CHAINED. HIGH always dequeues before NORMAL and CHAINED. CHAINED is
// placed at the head of NORMAL, so it runs immediately after whatever is
// currently executing without needing a separate band.
type ExecutionQueue struct {
	mu       sync.Mutex
	high     []*sequence.Request
	normal   []*sequence.Request
	capacity int // 0 means unbounded, applies per band
}

// New creates an empty queue. capacity bounds each band; 0 means unbounded.
func New(capacity int) *ExecutionQueue {
	return &ExecutionQueue{capacity: capacity}
}

// Enqueue appends req to the band matching its priority, preserving arrival
// order within the band. CHAINED requests are pushed to the front of the
// NORMAL band instead of its back.
func (q *ExecutionQueue) Enqueue(req *sequence.Request) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch req.Priority {
	case sequence.PriorityHigh:
		if q.capacity > 0 && len(q.high) >= q.capacity {
			return errors.WrapFatal(errors.ErrResourceExhausted, "ExecutionQueue", "Enqueue", "HIGH band full")
		}
		q.high = append(q.high, req)
	case sequence.PriorityChained:
		if q.capacity > 0 && len(q.normal) >= q.capacity {
			return errors.WrapFatal(errors.ErrResourceExhausted, "ExecutionQueue", "Enqueue", "NORMAL band full")
		}
		q.normal = append([]*sequence.Request{req}, q.normal...)
	default:
		if q.capacity > 0 && len(q.normal) >= q.capacity {
			return errors.WrapFatal(errors.ErrResourceExhausted, "ExecutionQueue", "Enqueue", "NORMAL band full")
		}
		q.normal = append(q.normal, req)
	}
	return nil
}

// Dequeue removes and returns the head of the highest non-empty band. It
// returns nil, false if the queue is empty.
func (q *ExecutionQueue) Dequeue() (*sequence.Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.high) > 0 {
		req := q.high[0]
		q.high = q.high[1:]
		return req, true
	}
	if len(q.normal) > 0 {
		req := q.normal[0]
		q.normal = q.normal[1:]
		return req, true
	}
	return nil, false
}

// Size returns the total number of requests across both bands.
func (q *ExecutionQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.high) + len(q.normal)
}

// IsEmpty reports whether the queue currently holds no requests.
func (q *ExecutionQueue) IsEmpty() bool {
	return q.Size() == 0
}

// Peek returns the request Dequeue would return next, without removing it.
func (q *ExecutionQueue) Peek() (*sequence.Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.high) > 0 {
		return q.high[0], true
	}
	if len(q.normal) > 0 {
		return q.normal[0], true
	}
	return nil, false
}

// Snapshot returns a point-in-time copy of the queue contents, HIGH band
// first, for introspection. Mutating the returned slice does not affect the
// queue.
func (q *ExecutionQueue) Snapshot() []*sequence.Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]*sequence.Request, 0, len(q.high)+len(q.normal))
	out = append(out, q.high...)
	out = append(out, q.normal...)
	return out
}
