package reconstruct

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/sokoban-opt/vicinity/boardstore"
	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/geometry"
	"github.com/sokoban-opt/vicinity/sokoboard"
	"github.com/sokoban-opt/vicinity/vicinity"
)

// ErrNoPath is returned when a rendezvous point's stored metrics
// cannot be walked back to a seeded boundary in either direction.
var ErrNoPath = errors.New("reconstruct: no consistent path from rendezvous to a boundary")

// hop is one push edge of the reconstructed chain, always named
// earlier-state-to-later-state regardless of which half it came from:
// cfgIdx/playerPos/axisBit identify the earlier state, direction is
// the literal push direction, and walkDist is the player's walk
// within the earlier state before pushing.
type hop struct {
	cfgIdx      uint32
	playerPos   int32
	axisBit     int
	direction   sokoboard.Direction
	walkDist    int
	boxChanged  bool
	lineChanged bool
}

// boundary is the (cfgIdx, playerPos, axisBit) triple a walk stopped
// at because its stored metrics were (0, 0) — either the search's
// original seed or, for forward-only objectives, the backward
// terminal marker.
type boundary struct {
	cfgIdx    uint32
	playerPos int32
	axisBit   int
}

func axisCandidates(o vicinity.Objective) []int {
	if o.AxisSensitive {
		return []int{0, 1}
	}
	return []int{0}
}

// walkForwardHalf walks from the rendezvous toward the search's end
// boundary, checking each step's target against the backward-plane
// metrics the backward worker recorded. Because the rendezvous state
// is fully known (configuration and exact player position), ordinary
// pushCandidates — the same expansion vicinity.Search's forward
// worker performs — finds every viable successor; no inversion is
// needed. Hops come back in rendezvous-to-end order.
func walkForwardHalf(tables *geometry.Tables, set *boxcfg.BoxConfigurationSet, store *boardstore.Storage, objective vicinity.Objective, cfgIdx uint32, playerPos int32, axisBit int) ([]hop, boundary, error) {
	var hops []hop
	curCfg, curPos, curAxis := cfgIdx, playerPos, axisBit

	for {
		curSlot := store.SlotIndex(int(curCfg), int(curPos), curAxis)
		curPrimary, curSecondary, _, ok := store.Get(boardstore.Backward, curSlot)
		if !ok {
			return nil, boundary{}, ErrNoPath
		}
		if curPrimary == 0 && curSecondary == 0 {
			return hops, boundary{cfgIdx: curCfg, playerPos: curPos, axisBit: curAxis}, nil
		}

		cfg := boxcfg.New(tables.BoxCount)
		set.CopyInto(curCfg, cfg)

		var chosen *candidate
		var chosenIdx uint32
		for _, c := range pushCandidates(tables, cfg, curPos, curAxis) {
			idx, ok := set.IndexOf(c.newCfg)
			if !ok {
				continue
			}
			newAxis := 0
			if objective.AxisSensitive {
				newAxis = geometry.AxisOf(c.direction)
			}
			slot := store.SlotIndex(int(idx), int(c.newPlayerPos), newAxis)
			primary, secondary, _, ok := store.Get(boardstore.Backward, slot)
			if !ok {
				continue
			}
			if matchesObjectiveStep(objective, primary, secondary, c, curPrimary, curSecondary) {
				cc := c
				chosen = &cc
				chosenIdx = idx
				break
			}
		}
		if chosen == nil {
			return nil, boundary{}, ErrNoPath
		}

		hops = append(hops, hop{
			cfgIdx: curCfg, playerPos: curPos, axisBit: curAxis,
			direction: chosen.direction, walkDist: chosen.walkDist,
			boxChanged: chosen.boxChanged, lineChanged: chosen.lineChanged,
		})

		newAxis := 0
		if objective.AxisSensitive {
			newAxis = geometry.AxisOf(chosen.direction)
		}
		curCfg, curPos, curAxis = chosenIdx, chosen.newPlayerPos, newAxis
	}
}

// walkBackwardHalf walks from the rendezvous toward the search's
// start boundary, checking each step's predecessor against the
// forward-plane metrics the forward worker recorded.
//
// Unlike the forward half, the predecessor's exact player position is
// not determined by the current state alone: the pushed box's
// pre-push cell is fixed (it is wherever the player now stands), but
// the predecessor could have walked in from any position in its own
// configuration's reachable region. So this scans every stored player
// position (and, for axis-sensitive objectives, every stored axis
// bit) for the undone configuration, accepting the first one whose
// recorded metrics plus this push's delta reproduce the current
// state's metrics exactly. Edges are discovered rendezvous-adjacent
// first; the returned hops are reversed into chronological
// (start-to-rendezvous) order before this returns, and the boundary
// value returned is the rendezvous state itself, since the predecessor
// boundary (metrics (0,0)) is already the first entry in hops.
func walkBackwardHalf(tables *geometry.Tables, set *boxcfg.BoxConfigurationSet, store *boardstore.Storage, objective vicinity.Objective, cfgIdx uint32, playerPos int32, axisBit int) ([]hop, boundary, error) {
	rendezvous := boundary{cfgIdx: cfgIdx, playerPos: playerPos, axisBit: axisBit}
	var hops []hop // discovery order: rendezvous-adjacent first, reversed to chronological order below
	curCfg, curPos, curAxis := cfgIdx, playerPos, axisBit

	for {
		curSlot := store.SlotIndex(int(curCfg), int(curPos), curAxis)
		curPrimary, curSecondary, _, ok := store.Get(boardstore.Forward, curSlot)
		if !ok {
			return nil, boundary{}, ErrNoPath
		}
		if curPrimary == 0 && curSecondary == 0 {
			slices.Reverse(hops)
			return hops, rendezvous, nil
		}

		cfg := boxcfg.New(tables.BoxCount)
		set.CopyInto(curCfg, cfg)

		found := false
		var foundHop hop
		var foundIdx uint32
		var foundPos int32
		var foundAxis int

		for d := 0; d < sokoboard.NumDirections && !found; d++ {
			dir := sokoboard.Direction(d)
			// The box this push moved now sits ahead of the player in
			// direction dir; before the push it sat where the player is
			// now standing.
			postBoxPos := tables.PlayerNeighbor[dir][curPos]
			if postBoxPos == geometry.None || !cfg.HasBox(int(postBoxPos)) {
				continue
			}
			pushFrom := tables.PlayerNeighbor[dir.Opposite()][curPos]
			if pushFrom == geometry.None {
				continue
			}

			predCfg := cfg.Clone()
			predCfg.MoveBox(int(postBoxPos), int(curPos))
			predIdx, ok := set.IndexOf(predCfg)
			if !ok {
				continue
			}

			reachFromPushCell := newPathBFS(tables, predCfg, pushFrom)
			axis := geometry.AxisOf(dir)

			for p := int32(0); p < int32(tables.PlayerCount) && !found; p++ {
				if !reachFromPushCell.reached(p) {
					continue
				}
				dist := int(reachFromPushCell.depth[p])
				for _, predAxis := range axisCandidates(objective) {
					predSlot := store.SlotIndex(int(predIdx), int(p), predAxis)
					predPrimary, predSecondary, _, ok := store.Get(boardstore.Forward, predSlot)
					if !ok {
						continue
					}
					continuedSameBox := dist == 0 && axis == predAxis
					c := candidate{
						direction:   dir,
						walkDist:    dist,
						boxChanged:  !continuedSameBox,
						lineChanged: !continuedSameBox || dist > 0,
					}
					if matchesObjectiveStep(objective, predPrimary, predSecondary, c, curPrimary, curSecondary) {
						found = true
						foundIdx, foundPos, foundAxis = predIdx, p, predAxis
						foundHop = hop{
							cfgIdx: predIdx, playerPos: p, axisBit: predAxis,
							direction: dir, walkDist: dist,
							boxChanged: c.boxChanged, lineChanged: c.lineChanged,
						}
						break
					}
				}
			}
		}

		if !found {
			return nil, boundary{}, ErrNoPath
		}
		hops = append(hops, foundHop)
		curCfg, curPos, curAxis = foundIdx, foundPos, foundAxis
	}
}

// halfMoves renders hops (named earlier-to-later, in chronological
// order) into concrete moves: a walk from the earlier state's own
// player position to the cell the push was made from, then the push
// itself. Each hop's later player position comes from the next hop in
// the same chain, or from terminal for the last hop.
func halfMoves(tables *geometry.Tables, set *boxcfg.BoxConfigurationSet, hops []hop, terminal boundary) []sokoboard.Direction {
	var moves []sokoboard.Direction
	for i, h := range hops {
		laterPos := terminal.playerPos
		if i+1 < len(hops) {
			laterPos = hops[i+1].playerPos
		}
		earlierCfg := boxcfg.New(tables.BoxCount)
		set.CopyInto(h.cfgIdx, earlierCfg)

		pushFrom := tables.PlayerNeighbor[h.direction.Opposite()][laterPos]
		walk := newPathBFS(tables, earlierCfg, h.playerPos).movesTo(pushFrom)
		moves = append(moves, walk...)
		moves = append(moves, h.direction)
	}
	return moves
}
