// Package boardstore implements BoardPositionStorage: a flat,
// CAS-guarded array mapping (box configuration index, player
// position, push axis) to the best (primary, secondary) metrics any
// worker has observed there, separately for the forward and backward
// search directions.
//
// Every slot is a single atomic uint32: bit 31 is an occupied flag
// (0 means never written), bit 30 a processed flag, and bits 29..0 an
// order value (primary*secondaryMax + secondary), so that
// lexicographic (primary, secondary) comparison reduces to plain
// integer comparison, so the bucket priority queue can key on one
// integer.
//
// Each direction writes only its own plane. A write whose slot is
// already occupied in the opposite plane is a rendezvous: both
// directions have reached the same (configuration, player position,
// axis) coordinate.
package boardstore
