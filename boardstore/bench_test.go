package boardstore_test

import (
	"testing"

	"github.com/sokoban-opt/vicinity/boardstore"
)

// BenchmarkAddIfBetterContended measures CAS-retry overhead when many
// goroutines race to improve the same slot.
func BenchmarkAddIfBetterContended(b *testing.B) {
	s := boardstore.New(1, 1, 1, 1<<20)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		primary := 0
		for pb.Next() {
			_, _ = s.AddIfBetter(boardstore.Forward, primary, 0, 0, 0, 0)
			primary++
		}
	})
}
