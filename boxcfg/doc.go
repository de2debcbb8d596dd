// Package boxcfg implements BoxConfiguration (a packed bit vector over
// the dense box-position space from geometry.Tables) and
// BoxConfigurationSet, a fixed-capacity, concurrency-safe hash set
// that assigns each distinct configuration a stable dense uint32
// index.
//
// BoxConfiguration wraps github.com/bits-and-blooms/bitset so that
// equality, hashing, and single-box moves stay O(1)-ish bit
// operations instead of a hand-rolled word array — a packed
// bitset representation built on a real bitset library rather than
// reinvented.
package boxcfg
