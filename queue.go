package runlog

import (
	"sync"
	"sync/atomic"
	"time"
)

// recordQueue is an unbounded FIFO between producers and the worker.
// Producers never block on it; the notify channel carries the "has items" signal.
type recordQueue struct {
	mu     sync.Mutex
	items  []logRecord
	head   int
	notify chan struct{}

	peak     atomic.Int64
	enqueued atomic.Uint64
}

// newRecordQueue creates an empty queue
func newRecordQueue() *recordQueue {
	return &recordQueue{
		items:  make([]logRecord, 0, 64),
		notify: make(chan struct{}, 1),
	}
}

// push appends a record at the tail and wakes the worker
func (q *recordQueue) push(r logRecord) {
	q.mu.Lock()
	q.items = append(q.items, r)
	depth := int64(len(q.items) - q.head)
	q.mu.Unlock()

	q.enqueued.Add(1)
	for {
		peak := q.peak.Load()
		if depth <= peak || q.peak.CompareAndSwap(peak, depth) {
			break
		}
	}

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// pop removes the head record, reporting false if the queue is empty
func (q *recordQueue) pop() (logRecord, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head >= len(q.items) {
		return logRecord{}, false
	}

	r := q.items[q.head]
	q.items[q.head] = logRecord{}
	q.head++

	// Reclaim the backing array once drained, or compact when the consumed prefix dominates
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 1024 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	return r, true
}

// next returns the head record, waiting up to timeout for one to arrive.
// It returns false on timeout or when done is closed with the queue empty.
func (q *recordQueue) next(timeout time.Duration, done <-chan struct{}) (logRecord, bool) {
	if r, ok := q.pop(); ok {
		return r, true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-q.notify:
	case <-timer.C:
	case <-done:
	}

	return q.pop()
}

// depth returns the number of queued records
func (q *recordQueue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}
