package bucketqueue_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokoban-opt/vicinity/bucketqueue"
)

func TestNewRejectsUndersizedRing(t *testing.T) {
	_, err := bucketqueue.New(4, 2, 2, 1) // needs >= maxDelta+minDelta+1 = 5
	require.ErrorIs(t, err, bucketqueue.ErrRingTooSmall)

	q, err := bucketqueue.New(5, 2, 2, 1)
	require.NoError(t, err)
	require.NotNil(t, q)
}

func TestAddRejectsValueBehindFloor(t *testing.T) {
	q, err := bucketqueue.New(8, 1, 1, 1)
	require.NoError(t, err)

	require.NoError(t, q.Add(0, 1))
	_, ok := q.RemoveFirst(0)
	require.True(t, ok)

	// Floor never retreats; a value behind it must be rejected.
	err = q.Add(-1, 99)
	require.ErrorIs(t, err, bucketqueue.ErrOrderValueBehindFloor)
}

// TestSingleWorkerOrdering checks that, among payloads already added,
// RemoveFirst returns them in non-decreasing order value.
func TestSingleWorkerOrdering(t *testing.T) {
	q, err := bucketqueue.New(16, 1, 3, 1)
	require.NoError(t, err)

	require.NoError(t, q.Add(0, 100))
	require.NoError(t, q.Add(1, 101))
	require.NoError(t, q.Add(1, 102))
	require.NoError(t, q.Add(3, 103))

	var got []uint64
	for i := 0; i < 4; i++ {
		p, ok := q.RemoveFirst(0)
		require.True(t, ok)
		got = append(got, p)
	}
	require.ElementsMatch(t, []uint64{100, 101, 102, 103}, got)
	require.Equal(t, uint64(100), got[0], "strictly smallest order value must come first")
	require.Equal(t, uint64(103), got[3], "strictly largest order value must come last")
}

func TestQueueDrainsToEmpty(t *testing.T) {
	q, err := bucketqueue.New(8, 1, 1, 1)
	require.NoError(t, err)
	require.NoError(t, q.Add(0, 7))

	p, ok := q.RemoveFirst(0)
	require.True(t, ok)
	require.Equal(t, uint64(7), p)

	_, ok = q.RemoveFirst(0)
	require.False(t, ok, "draining an empty queue must return ok=false")
	require.Equal(t, 0, q.Pending())
}

func TestStopCausesPromptReturn(t *testing.T) {
	q, err := bucketqueue.New(8, 1, 1, 1)
	require.NoError(t, err)
	require.NoError(t, q.Add(0, 1))
	q.Stop()

	_, ok := q.RemoveFirst(0)
	require.False(t, ok, "after Stop, RemoveFirst must not return a payload")
}

// TestConcurrentProducersConsumersPreserveAllPayloads hammers Add and
// RemoveFirst from many goroutines and checks every payload is
// delivered exactly once, mirroring core/concurrency_test.go's style.
func TestConcurrentProducersConsumersPreserveAllPayloads(t *testing.T) {
	const workers = 4
	const perWorker = 200
	q, err := bucketqueue.New(64, 1, 4, workers)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ov := int64(w*perWorker + i)
				require.NoError(t, q.Add(ov, uint64(ov)))
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[uint64]bool)
	var mu sync.Mutex
	var cwg sync.WaitGroup
	cwg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer cwg.Done()
			for {
				p, ok := q.RemoveFirst(w)
				if !ok {
					return
				}
				mu.Lock()
				seen[p] = true
				mu.Unlock()
			}
		}(w)
	}
	cwg.Wait()

	require.Equal(t, workers*perWorker, len(seen))
}
