package bucketqueue_test

import (
	"testing"

	"github.com/sokoban-opt/vicinity/bucketqueue"
)

// BenchmarkAddRemoveSingleWorker measures the steady-state cost of one
// add followed by one remove, the pattern a lone search worker
// repeats in its expansion loop.
func BenchmarkAddRemoveSingleWorker(b *testing.B) {
	q, err := bucketqueue.New(1024, 1, 8, 1)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = q.Add(int64(i), uint64(i))
		_, _ = q.RemoveFirst(0)
	}
}
