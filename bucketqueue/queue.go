package bucketqueue

import (
	"errors"
	"math"
	"runtime"
	"sync/atomic"
)

// Sentinel errors for Queue construction and use.
var (
	// ErrRingTooSmall is returned by New when bMax does not satisfy
	// bMax >= maxDelta + minDelta + 1.
	ErrRingTooSmall = errors.New("bucketqueue: bucket ring too small for minDelta/maxDelta")

	// ErrOrderValueBehindFloor is returned by Add when orderValue is
	// less than the queue's current floor — a caller bug, since
	// callers must only ever add non-decreasing values.
	ErrOrderValueBehindFloor = errors.New("bucketqueue: order value is behind the current floor")
)

// Queue is BucketPriorityQueue.
type Queue struct {
	bMax     int64
	minDelta int64
	maxDelta int64

	buckets []bucket

	minimumOrderValue  atomic.Int64
	currentlyProcessed []atomic.Int64
	outstandingCount   atomic.Int64
	stopped            atomic.Bool
}

// New creates a Queue with a ring of bMax buckets, the given
// minDelta/maxDelta step-size bounds, and one "currently processed"
// slot per worker. workerCount must match the number of distinct
// threadID values RemoveFirst will be called with.
func New(bMax, minDelta, maxDelta int64, workerCount int) (*Queue, error) {
	if bMax < maxDelta+minDelta+1 {
		return nil, ErrRingTooSmall
	}
	q := &Queue{
		bMax:               bMax,
		minDelta:           minDelta,
		maxDelta:           maxDelta,
		buckets:            make([]bucket, bMax),
		currentlyProcessed: make([]atomic.Int64, workerCount),
	}
	return q, nil
}

// Add inserts payload at order value ov. Callers must arrange
// ov >= the queue's current floor (e.g. by deriving it from a
// monotone expansion step); this is not re-derivable internally.
func (q *Queue) Add(ov int64, payload uint64) error {
	if ov < q.minimumOrderValue.Load() {
		return ErrOrderValueBehindFloor
	}
	idx := ov % q.bMax
	q.buckets[idx].push(payload)
	q.outstandingCount.Add(1)
	return nil
}

// Pending returns the number of payloads added but not yet removed.
func (q *Queue) Pending() int {
	n := q.outstandingCount.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Stop causes every future and in-flight RemoveFirst call to return
// promptly with ok=false.
func (q *Queue) Stop() {
	q.stopped.Store(true)
}

// RemoveFirst returns a payload with the smallest order value
// currently in the queue, or ok=false if the queue is drained or
// Stop has been called. threadID selects this caller's slot in the
// per-worker currentlyProcessed table and must be stable and unique
// per goroutine for the lifetime of the queue.
func (q *Queue) RemoveFirst(threadID int) (payload uint64, ok bool) {
	for {
		if q.stopped.Load() {
			return 0, false
		}
		if q.outstandingCount.Load() <= 0 {
			return 0, false
		}

		cursor := q.minimumOrderValue.Load()
		q.currentlyProcessed[threadID].Store(cursor)

		idx := cursor % q.bMax
		if p, found := q.buckets[idx].pop(); found {
			q.outstandingCount.Add(-1)
			return p, true
		}

		floor := q.floorExcluding(threadID)
		if cursor < floor+q.minDelta {
			// No live producer can still target bucket idx: advance.
			q.minimumOrderValue.CompareAndSwap(cursor, cursor+1)
			continue
		}
		// A producer working min_delta ahead of some other thread
		// could still emit into this bucket; don't busy-spin hard.
		q.currentlyProcessed[threadID].Store(q.minimumOrderValue.Load())
		runtime.Gosched()
	}
}

// floorExcluding returns the minimum currentlyProcessed value across
// every worker other than threadID. With no other active worker it
// returns the current minimumOrderValue, imposing no extra
// constraint on advancing the floor.
func (q *Queue) floorExcluding(threadID int) int64 {
	min := int64(math.MaxInt64)
	for i := range q.currentlyProcessed {
		if i == threadID {
			continue
		}
		if v := q.currentlyProcessed[i].Load(); v < min {
			min = v
		}
	}
	if min == math.MaxInt64 {
		return q.minimumOrderValue.Load()
	}
	return min
}
