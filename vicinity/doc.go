// Package vicinity runs the bidirectional best-first search at the
// core of the optimizer: forward workers hold the board position
// after a push, backward workers hold it before a pull, and both
// directions drive a shared boardstore.Storage, each from its own
// bucketqueue.Queue, until every rendezvous — a (cfg, pos) coordinate both directions
// have reached — has been recorded.
//
// One Search instance exists per optimization objective; Objective
// selects which metrics are primary/secondary and whether the search
// runs one direction only.
package vicinity
