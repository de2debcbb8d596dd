package boxcfg_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokoban-opt/vicinity/boxcfg"
)

func cfgWithBoxes(boxCount int, boxes ...int) boxcfg.BoxConfiguration {
	c := boxcfg.New(boxCount)
	for _, b := range boxes {
		c.SetBox(b)
	}
	return c
}

// TestSetDeterminism checks that a == b iff index_of(a) == index_of(b),
// and that indices never change once assigned.
func TestSetDeterminism(t *testing.T) {
	s := boxcfg.NewBoxConfigurationSet(16, 6)

	a := cfgWithBoxes(6, 0, 2, 4)
	b := cfgWithBoxes(6, 0, 2, 4) // equal, distinct instance
	c := cfgWithBoxes(6, 1, 3, 5)

	idxA, ok := s.Insert(a)
	require.True(t, ok)
	idxB, ok := s.Insert(b)
	require.True(t, ok)
	require.Equal(t, idxA, idxB)

	idxC, ok := s.Insert(c)
	require.True(t, ok)
	require.NotEqual(t, idxA, idxC)

	// Re-insert must return the same stable index.
	idxA2, ok := s.Insert(a)
	require.True(t, ok)
	require.Equal(t, idxA, idxA2)

	gotA, ok := s.IndexOf(a)
	require.True(t, ok)
	require.Equal(t, idxA, gotA)

	_, ok = s.IndexOf(cfgWithBoxes(6, 1, 1)) // box 1 only, never inserted
	require.False(t, ok)
}

func TestInsertFailsWhenFull(t *testing.T) {
	s := boxcfg.NewBoxConfigurationSet(2, 4)
	_, ok := s.Insert(cfgWithBoxes(4, 0))
	require.True(t, ok)
	_, ok = s.Insert(cfgWithBoxes(4, 1))
	require.True(t, ok)
	_, ok = s.Insert(cfgWithBoxes(4, 2))
	require.False(t, ok, "third distinct configuration must be rejected at capacity 2")

	// A duplicate of an already-inserted configuration still succeeds.
	_, ok = s.Insert(cfgWithBoxes(4, 0))
	require.True(t, ok)
}

func TestCopyIntoRoundTrip(t *testing.T) {
	s := boxcfg.NewBoxConfigurationSet(4, 5)
	idx, ok := s.Insert(cfgWithBoxes(5, 1, 3))
	require.True(t, ok)

	out := boxcfg.New(5)
	s.CopyInto(idx, out)
	require.True(t, out.HasBox(1))
	require.True(t, out.HasBox(3))
	require.False(t, out.HasBox(2))

	require.True(t, s.HasBox(idx, 1))
	require.False(t, s.HasBox(idx, 2))
}

// TestConcurrentInsertSameConfiguration mirrors core/concurrency_test.go's
// style of hammering a shared structure from many goroutines and
// checking the result is exactly what a serial run would produce.
func TestConcurrentInsertSameConfiguration(t *testing.T) {
	s := boxcfg.NewBoxConfigurationSet(64, 10)
	const goroutines = 64
	target := cfgWithBoxes(10, 2, 5, 8)

	indices := make([]uint32, goroutines)
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(g int) {
			defer wg.Done()
			idx, ok := s.Insert(cfgWithBoxes(10, 2, 5, 8))
			require.True(t, ok)
			indices[g] = idx
			_ = target
		}(g)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		require.Equal(t, indices[0], indices[i])
	}
	require.Equal(t, 1, s.Len())
}

func TestConcurrentInsertDistinctConfigurations(t *testing.T) {
	s := boxcfg.NewBoxConfigurationSet(200, 12)
	const n = 150
	seen := make(chan uint32, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			idx, ok := s.Insert(cfgWithBoxes(12, i%12, (i+1)%12))
			require.True(t, ok)
			seen <- idx
		}(i)
	}
	wg.Wait()
	close(seen)

	unique := make(map[uint32]bool)
	for idx := range seen {
		unique[idx] = true
	}
	require.LessOrEqual(t, len(unique), 12, "indices must stay within the distinct-configuration count")
	require.Equal(t, s.Len(), len(unique))
}
