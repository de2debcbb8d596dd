// Package bucketqueue implements BucketPriorityQueue: a concurrent,
// multi-producer/multi-consumer priority queue over a bounded ring of
// buckets, keyed by a monotone integer order value. It is the
// concurrency centerpiece of the vicinity search: worker goroutines
// both add expanded states to it and drain it for
// their next expansion, and the ring's floor (minimumOrderValue) only
// ever advances, never retreats.
//
// Correctness rests on two constants fixed at construction:
//
//   - minDelta: the smallest order-value increase any expansion step
//     can produce.
//   - maxDelta: the largest.
//
// and on BMax >= maxDelta + minDelta + 1, which keeps a producer that
// is still up to minDelta ahead of the slowest consumer from wrapping
// around the ring into the bucket that consumer is currently
// draining.
package bucketqueue
