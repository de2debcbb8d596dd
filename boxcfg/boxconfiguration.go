package boxcfg

import (
	"github.com/bits-and-blooms/bitset"
)

// BoxConfiguration is a bit vector of length B (the dense box-position
// count from geometry.Tables): bit i is set iff a box occupies box
// position i. Mutation is exclusive — callers must not share a
// BoxConfiguration across goroutines without external synchronization
// (BoxConfigurationSet itself only ever reads the configurations
// passed to Insert, via Clone).
type BoxConfiguration struct {
	bits *bitset.BitSet
}

// New returns an empty BoxConfiguration over boxCount box positions.
func New(boxCount int) BoxConfiguration {
	return BoxConfiguration{bits: bitset.New(uint(boxCount))}
}

// SetBox marks box position i as occupied.
func (c BoxConfiguration) SetBox(i int) {
	c.bits.Set(uint(i))
}

// ClearBox marks box position i as unoccupied.
func (c BoxConfiguration) ClearBox(i int) {
	c.bits.Clear(uint(i))
}

// HasBox reports whether box position i is occupied.
func (c BoxConfiguration) HasBox(i int) bool {
	return c.bits.Test(uint(i))
}

// MoveBox relocates a box from `from` to `to`. The caller guarantees
// `from` is occupied and `to` is not.
func (c BoxConfiguration) MoveBox(from, to int) {
	c.bits.Clear(uint(from))
	c.bits.Set(uint(to))
}

// Clone returns a deep, independent copy of c.
func (c BoxConfiguration) Clone() BoxConfiguration {
	return BoxConfiguration{bits: c.bits.Clone()}
}

// Equal reports bit-identical equality between c and other.
func (c BoxConfiguration) Equal(other BoxConfiguration) bool {
	return c.bits.Equal(other.bits)
}

// CopyInto overwrites dst's bits with c's, without allocating — used
// by BoxConfigurationSet.CopyInto to unpack a stored configuration
// into caller-owned scratch space.
func (c BoxConfiguration) CopyInto(dst BoxConfiguration) {
	dst.bits.ClearAll()
	dst.bits.InPlaceUnion(c.bits)
}

// Hash returns a 64-bit, bit-identical hash of c: equal configurations
// always hash equal, and (collisions aside) unequal configurations
// hash differently. It is computed by folding the indices of set bits
// with an FNV-1a-style mix, so it never needs to reach into the
// bitset's internal word representation.
func (c BoxConfiguration) Hash() uint64 {
	const (
		offset64 = uint64(14695981039346656037)
		prime64  = uint64(1099511628211)
	)
	h := offset64
	for i, ok := c.bits.NextSet(0); ok; i, ok = c.bits.NextSet(i + 1) {
		h ^= uint64(i)
		h *= prime64
	}
	return h
}

// Len returns the box-position space size this configuration was
// constructed over.
func (c BoxConfiguration) Len() int {
	return int(c.bits.Len())
}

// Positions returns the box positions currently occupied, in
// ascending order. Used by the generator to enumerate which boxes are
// eligible to move from a given configuration.
func (c BoxConfiguration) Positions() []int {
	out := make([]int, 0, c.bits.Count())
	for i, ok := c.bits.NextSet(0); ok; i, ok = c.bits.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
