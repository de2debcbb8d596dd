package boardstore_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokoban-opt/vicinity/boardstore"
)

func TestOrderValueRoundTrip(t *testing.T) {
	s := boardstore.New(1, 1, 1, 100)
	ov, err := s.OrderValue(7, 42)
	require.NoError(t, err)
	p, sec := s.DecodeOrderValue(ov)
	require.Equal(t, 7, p)
	require.Equal(t, 42, sec)
}

func TestOrderValueOverflow(t *testing.T) {
	s := boardstore.New(1, 1, 1, 100)
	_, err := s.OrderValue(1<<28, 99)
	require.ErrorIs(t, err, boardstore.ErrOrderValueOverflow)
}

func TestAddIfBetterFirstWriteSucceeds(t *testing.T) {
	s := boardstore.New(2, 4, 1, 10)
	v, err := s.AddIfBetter(boardstore.Forward, 3, 2, 0, 1, 0)
	require.NoError(t, err)
	slot, rendez, improved := boardstore.DecodeSlot(v)
	require.True(t, improved)
	require.False(t, rendez)

	primary, secondary, processed, ok := s.Get(boardstore.Forward, slot)
	require.True(t, ok)
	require.False(t, processed)
	require.Equal(t, 3, primary)
	require.Equal(t, 2, secondary)
}

// TestStorageMonotonicity checks that the stored (primary, secondary)
// only ever improves, and worse candidates are rejected.
func TestStorageMonotonicity(t *testing.T) {
	s := boardstore.New(1, 1, 1, 1000)

	v, err := s.AddIfBetter(boardstore.Forward, 10, 0, 0, 0, 0)
	require.NoError(t, err)
	_, _, improved := boardstore.DecodeSlot(v)
	require.True(t, improved)

	// Worse candidate must be rejected.
	v, err = s.AddIfBetter(boardstore.Forward, 12, 0, 0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, boardstore.NoImprovement, v)
	primary, _, _, _ := s.Get(boardstore.Forward, 0)
	require.Equal(t, 10, primary)

	// Strictly better candidate must win and reset processed=false.
	s.MarkProcessed(boardstore.Forward, 0)
	v, err = s.AddIfBetter(boardstore.Forward, 4, 0, 0, 0, 0)
	require.NoError(t, err)
	_, _, improved = boardstore.DecodeSlot(v)
	require.True(t, improved)
	primary, _, processed, _ := s.Get(boardstore.Forward, 0)
	require.Equal(t, 4, primary)
	require.False(t, processed, "a better write must clear the processed flag")
}

func TestAddIfBetterDetectsRendezvousWithoutErasingOppositeDirection(t *testing.T) {
	s := boardstore.New(1, 1, 1, 1000)

	_, err := s.AddIfBetter(boardstore.Forward, 5, 1, 0, 0, 0)
	require.NoError(t, err)

	v, err := s.AddIfBetter(boardstore.Backward, 9, 2, 0, 0, 0)
	require.NoError(t, err)
	slot, rendez, improved := boardstore.DecodeSlot(v)
	require.True(t, improved)
	require.True(t, rendez)

	// Both planes must remain readable post-rendezvous.
	fp, fs, _, fok := s.Get(boardstore.Forward, slot)
	require.True(t, fok)
	require.Equal(t, 5, fp)
	require.Equal(t, 1, fs)

	bp, bs, _, bok := s.Get(boardstore.Backward, slot)
	require.True(t, bok)
	require.Equal(t, 9, bp)
	require.Equal(t, 2, bs)
}

func TestConcurrentAddIfBetterKeepsBestValue(t *testing.T) {
	s := boardstore.New(1, 1, 1, 10000)
	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			_, _ = s.AddIfBetter(boardstore.Forward, 1000-i, 0, 0, 0, 0)
		}(i)
	}
	wg.Wait()

	primary, _, _, ok := s.Get(boardstore.Forward, 0)
	require.True(t, ok)
	require.Equal(t, 1000-(goroutines-1), primary, "the smallest primary written by any goroutine must win")
}
