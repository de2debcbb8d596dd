package vicinity

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sokoban-opt/vicinity/boardstore"
	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/bucketqueue"
	"github.com/sokoban-opt/vicinity/geometry"
	"github.com/sokoban-opt/vicinity/sokoboard"
)

// Search runs one bidirectional (or forward-only) best-first search
// over a fixed universe of box configurations. Each direction keeps
// its own bucketqueue.Queue — sharing one queue between directions
// would let a forward worker pop a payload meant for the backward
// plane — but both queues are sized from the same (BMax, minDelta,
// maxDelta) bounds since either direction can produce the same
// range of order-value steps.
type Search struct {
	Tables    *geometry.Tables
	Set       *boxcfg.BoxConfigurationSet
	Store     *boardstore.Storage
	Forward   *bucketqueue.Queue
	Backward  *bucketqueue.Queue
	Objective Objective
	MaxCPUs   int

	meetings *meetingPoints
}

// Result is what a completed (or canceled) Run produced.
type Result struct {
	Meetings []MeetingPoint
}

// New constructs a Search. store must have been created with
// objective.storageAxes() as its D dimension. backward may be nil for
// a forward-only objective.
func New(tables *geometry.Tables, set *boxcfg.BoxConfigurationSet, store *boardstore.Storage, forward, backward *bucketqueue.Queue, objective Objective, maxCPUs int) *Search {
	if maxCPUs < 1 {
		maxCPUs = 1
	}
	return &Search{
		Tables: tables, Set: set, Store: store,
		Forward: forward, Backward: backward,
		Objective: objective, MaxCPUs: maxCPUs,
		meetings: newMeetingPoints(),
	}
}

// Run seeds the forward direction at (startCfg, startPlayerPos) and
// the backward direction at (endCfg, p) for every p in
// endPlayerPositions, then drives worker goroutines until both queues
// drain or ctx is canceled. Forward-only objectives still seed the
// backward plane — as a terminal marker only, never expanded — so
// rendezvous detection fires uniformly in both modes.
func (s *Search) Run(ctx context.Context, startCfg uint32, startPlayerPos int32, endCfg uint32, endPlayerPositions []int32) (*Result, error) {
	if err := s.seed(boardstore.Forward, startCfg, startPlayerPos, 0); err != nil {
		return nil, err
	}
	for _, p := range endPlayerPositions {
		if err := s.seed(boardstore.Backward, endCfg, p, 0); err != nil {
			return nil, err
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.MaxCPUs)
	for w := 0; w < s.MaxCPUs; w++ {
		w := w
		eg.Go(func() error { return s.worker(ctx, boardstore.Forward, w) })
	}
	if s.Objective.Bidirectional {
		for w := 0; w < s.MaxCPUs; w++ {
			w := w
			eg.Go(func() error { return s.worker(ctx, boardstore.Backward, w) })
		}
	}
	err := eg.Wait()
	if err != nil && ctx.Err() == nil {
		return &Result{Meetings: s.meetings.list()}, err
	}
	return &Result{Meetings: s.meetings.list()}, nil
}

func (s *Search) queueFor(dir boardstore.SearchDirection) *bucketqueue.Queue {
	if dir == boardstore.Forward {
		return s.Forward
	}
	return s.Backward
}

func (s *Search) seed(dir boardstore.SearchDirection, cfgIdx uint32, playerPos int32, axisBit int) error {
	slot, err := s.Store.AddIfBetter(dir, 0, 0, int(cfgIdx), int(playerPos), axisBit)
	if err != nil {
		return err
	}
	if slot == boardstore.NoImprovement {
		return nil
	}
	s.enqueueOrRecord(dir, slot, cfgIdx, playerPos, axisBit)
	return nil
}

// worker repeatedly pops a slot for its direction, expands it by
// pushing (forward) or pulling (backward) from every player-reachable
// square, and writes improvements back into Store. Forward and
// backward workers share this same frame, differing only in which
// direction they expand.
func (s *Search) worker(ctx context.Context, dir boardstore.SearchDirection, threadID int) error {
	queue := s.queueFor(dir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		payload, ok := queue.RemoveFirst(threadID)
		if !ok {
			return nil
		}
		cfgIdx, playerPos, axisBit := decodePayload(payload)
		slot := s.Store.SlotIndex(int(cfgIdx), int(playerPos), axisBit)
		s.Store.MarkProcessed(dir, slot)

		primary, secondary, _, ok := s.Store.Get(dir, slot)
		if !ok {
			continue
		}

		cfg := boxcfg.New(s.Tables.BoxCount)
		s.Set.CopyInto(cfgIdx, cfg)

		reach := playerReachability(s.Tables, cfg, playerPos)
		for p := int32(0); p < int32(s.Tables.PlayerCount); p++ {
			if !reach.reached(p) {
				continue
			}
			dist := reach.distance(p)
			for d := 0; d < sokoboard.NumDirections; d++ {
				s.tryExpand(dir, cfg, p, dist, sokoboard.Direction(d), axisBit, primary, secondary)
			}
		}
	}
}

// tryExpand attempts one push (forward direction) or pull (backward
// direction) from player position p in direction d, writing the
// result into Store on improvement.
func (s *Search) tryExpand(dir boardstore.SearchDirection, cfg boxcfg.BoxConfiguration, p int32, dist int, d sokoboard.Direction, prevAxisBit, primary, secondary int) {
	t := s.Tables

	var movedBox, destBox int32
	var newPlayerPos int32
	if dir == boardstore.Forward {
		// Push: the box sits ahead of the player; it lands one further
		// cell on, and the player steps into its old cell.
		ahead := t.PlayerNeighbor[d][p]
		if ahead == geometry.None {
			return
		}
		movedBox = t.PlayerToBox[ahead]
		if movedBox == geometry.None || !cfg.HasBox(int(movedBox)) {
			return
		}
		destBox = t.BoxNeighbor[d][movedBox]
		if destBox == geometry.None || cfg.HasBox(int(destBox)) {
			return
		}
		newPlayerPos = ahead
	} else {
		// Pull: the box sits behind the player (opposite of d); it
		// follows the player into the cell being vacated, with the
		// player stepping to the cell ahead.
		behind := t.PlayerNeighbor[d.Opposite()][p]
		if behind == geometry.None {
			return
		}
		movedBox = t.PlayerToBox[behind]
		if movedBox == geometry.None || !cfg.HasBox(int(movedBox)) {
			return
		}
		ahead := t.PlayerNeighbor[d][p]
		if ahead == geometry.None {
			return
		}
		destBox = t.PlayerToBox[p]
		if destBox == geometry.None || cfg.HasBox(int(destBox)) {
			return
		}
		newPlayerPos = ahead
	}

	newCfg := cfg.Clone()
	newCfg.MoveBox(int(movedBox), int(destBox))
	newIdx, ok := s.Set.IndexOf(newCfg)
	if !ok {
		return // outside the generated vicinity universe
	}

	axis := geometry.AxisOf(d)
	continuedSameBox := dist == 0 && axis == prevAxisBit
	boxChanged := !continuedSameBox
	lineChanged := boxChanged || dist > 0

	newPrimary, newSecondary := s.Objective.NextMetrics(primary, secondary, dist, boxChanged, lineChanged)

	newAxisBit := 0
	if s.Objective.AxisSensitive {
		newAxisBit = axis
	}

	slot, err := s.Store.AddIfBetter(dir, newPrimary, newSecondary, int(newIdx), int(newPlayerPos), newAxisBit)
	if err != nil || slot == boardstore.NoImprovement {
		return
	}
	s.enqueueOrRecord(dir, slot, newIdx, newPlayerPos, newAxisBit)
}

// enqueueOrRecord interprets AddIfBetter's return: a negative slot is
// a rendezvous (recorded, never enqueued — the opposite direction has
// already fully expanded from here or is a terminal marker); a
// non-negative slot is re-read and re-enqueued at its fresh order
// value.
func (s *Search) enqueueOrRecord(dir boardstore.SearchDirection, slot int64, cfgIdx uint32, playerPos int32, axisBit int) {
	if slot < 0 {
		realSlot := int(-(slot + 1))
		s.meetings.record(MeetingPoint{CfgIndex: cfgIdx, PlayerPos: playerPos, AxisBit: axisBit, Slot: realSlot})
		return
	}
	primary, secondary, _, ok := s.Store.Get(dir, int(slot))
	if !ok {
		return
	}
	orderValue, err := s.Store.OrderValue(primary, secondary)
	if err != nil {
		return
	}
	queue := s.queueFor(dir)
	if queue == nil {
		// Forward-only objective: the backward plane exists purely as a
		// terminal marker for rendezvous detection and is never expanded.
		return
	}
	_ = queue.Add(int64(orderValue), encodePayload(cfgIdx, playerPos, axisBit))
}

func encodePayload(cfgIdx uint32, playerPos int32, axisBit int) uint64 {
	return uint64(cfgIdx)<<32 | uint64(uint32(playerPos))<<2 | uint64(axisBit&1)<<1
}

func decodePayload(payload uint64) (cfgIdx uint32, playerPos int32, axisBit int) {
	cfgIdx = uint32(payload >> 32)
	playerPos = int32((payload >> 2) & 0x3FFFFFFF)
	axisBit = int((payload >> 1) & 1)
	return
}
