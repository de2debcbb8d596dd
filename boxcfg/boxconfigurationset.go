package boxcfg

import (
	"runtime"
	"sync/atomic"
)

// slotState values for a BoxConfigurationSet table slot.
const (
	slotEmpty uint32 = iota
	slotWriting
	slotFilled
)

// slotHeader is one open-addressed table slot. hash and index are
// only meaningful once state has observably reached slotFilled; a
// reader must not trust them before that.
type slotHeader struct {
	state atomic.Uint32
	hash  uint64
	index uint32
}

// BoxConfigurationSet assigns each distinct BoxConfiguration inserted
// into it a stable, dense uint32 index in [0, capacity), in insertion
// order, and never reuses an index. It is safe for concurrent
// Insert/IndexOf calls from any number of generator workers.
//
// The table is open-addressed with linear probing over a fixed-size
// array of atomic slot headers; the dense index
// assignment itself is a single atomic counter, so two goroutines
// racing to insert the same new configuration either both land on the
// same slot (one wins the CAS, the other observes slotFilled and
// reads back the winner's index) or land on different slots for
// different configurations without contending at all.
type BoxConfigurationSet struct {
	boxCount  int
	capacity  int
	tableMask uint64
	table     []slotHeader
	configs   []BoxConfiguration
	nextIndex atomic.Uint32
}

// NewBoxConfigurationSet creates a set that can hold up to capacity
// distinct configurations over boxCount box positions. The backing
// table is sized to keep the load factor under 50% at full capacity.
func NewBoxConfigurationSet(capacity, boxCount int) *BoxConfigurationSet {
	tableSize := nextPowerOfTwo(uint64(capacity)*2 + 1)
	return &BoxConfigurationSet{
		boxCount:  boxCount,
		capacity:  capacity,
		tableMask: tableSize - 1,
		table:     make([]slotHeader, tableSize),
		configs:   make([]BoxConfiguration, capacity),
	}
}

// Insert assigns cfg a dense index if it is new, or returns its
// existing index if already present. ok is false only when the set is
// full and cfg is genuinely new — the generator must treat that as a
// stop signal for the current step.
func (s *BoxConfigurationSet) Insert(cfg BoxConfiguration) (index uint32, ok bool) {
	h := cfg.Hash()
	tableSize := uint64(len(s.table))
	for probe := uint64(0); probe < tableSize; probe++ {
		slotIdx := (h + probe) & s.tableMask
		hdr := &s.table[slotIdx]

	spin:
		switch hdr.state.Load() {
		case slotFilled:
			if hdr.hash == h && s.configs[hdr.index].Equal(cfg) {
				return hdr.index, true
			}
			// distinct configuration hashed to this slot; keep probing.
		case slotWriting:
			runtime.Gosched()
			goto spin
		default: // slotEmpty
			if !hdr.state.CompareAndSwap(slotEmpty, slotWriting) {
				goto spin
			}
			idx := s.nextIndex.Add(1) - 1
			if idx >= uint32(s.capacity) {
				hdr.state.Store(slotEmpty)
				return 0, false
			}
			s.configs[idx] = cfg.Clone()
			hdr.hash = h
			hdr.index = idx
			hdr.state.Store(slotFilled)
			return idx, true
		}
	}
	return 0, false
}

// IndexOf returns the index assigned to cfg, or (0, false) if cfg has
// never been inserted.
func (s *BoxConfigurationSet) IndexOf(cfg BoxConfiguration) (index uint32, ok bool) {
	h := cfg.Hash()
	tableSize := uint64(len(s.table))
	for probe := uint64(0); probe < tableSize; probe++ {
		slotIdx := (h + probe) & s.tableMask
		hdr := &s.table[slotIdx]
		switch hdr.state.Load() {
		case slotFilled:
			if hdr.hash == h && s.configs[hdr.index].Equal(cfg) {
				return hdr.index, true
			}
		case slotEmpty:
			return 0, false
		default: // slotWriting: another insert is in flight for some key; keep probing, it will settle.
			runtime.Gosched()
		}
	}
	return 0, false
}

// HasBox reports whether the configuration stored at idx occupies box
// position pos.
func (s *BoxConfigurationSet) HasBox(idx uint32, pos int) bool {
	return s.configs[idx].HasBox(pos)
}

// CopyInto unpacks the configuration stored at idx into out, which
// must have been constructed with the same box count.
func (s *BoxConfigurationSet) CopyInto(idx uint32, out BoxConfiguration) {
	s.configs[idx].CopyInto(out)
}

// Len returns the number of distinct configurations inserted so far.
func (s *BoxConfigurationSet) Len() int {
	n := s.nextIndex.Load()
	if n > uint32(s.capacity) {
		return s.capacity
	}
	return int(n)
}

// Capacity returns the maximum number of distinct configurations this
// set can hold.
func (s *BoxConfigurationSet) Capacity() int {
	return s.capacity
}

// ShrinkToFit is a documented no-op: the backing arrays are
// fixed-size by construction (capacity is known up front from the
// controller's estimate), so there is nothing to compact. It is kept
// only so callers need no special case around a variable-size set.
func (s *BoxConfigurationSet) ShrinkToFit() {}

func nextPowerOfTwo(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
