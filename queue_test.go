package runlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordQueueFIFO(t *testing.T) {
	q := newRecordQueue()
	for _, text := range []string{"a", "b", "c"} {
		q.push(logRecord{Text: text})
	}
	assert.Equal(t, 3, q.depth())
	assert.Equal(t, int64(3), q.peak.Load())

	for _, want := range []string{"a", "b", "c"} {
		r, ok := q.pop()
		require.True(t, ok)
		assert.Equal(t, want, r.Text)
	}

	_, ok := q.pop()
	assert.False(t, ok)
	assert.Zero(t, q.depth())
	assert.Equal(t, uint64(3), q.enqueued.Load())
}

func TestRecordQueueCompaction(t *testing.T) {
	q := newRecordQueue()
	for i := 0; i < 3000; i++ {
		q.push(logRecord{Level: int64(i)})
	}
	for i := 0; i < 3000; i++ {
		r, ok := q.pop()
		require.True(t, ok)
		require.Equal(t, int64(i), r.Level)
	}
	assert.Zero(t, q.head)
	assert.Empty(t, q.items)
}

func TestRecordQueueNextTimeout(t *testing.T) {
	q := newRecordQueue()
	done := make(chan struct{})

	start := time.Now()
	_, ok := q.next(20*time.Millisecond, done)
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestRecordQueueNextWakesOnPush(t *testing.T) {
	q := newRecordQueue()
	done := make(chan struct{})

	go func() {
		time.Sleep(10 * time.Millisecond)
		q.push(logRecord{Text: "late"})
	}()

	r, ok := q.next(5*time.Second, done)
	require.True(t, ok)
	assert.Equal(t, "late", r.Text)
}

func TestRecordQueueNextDone(t *testing.T) {
	q := newRecordQueue()
	done := make(chan struct{})
	close(done)

	start := time.Now()
	_, ok := q.next(5*time.Second, done)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}
