package reconstruct

import (
	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/geometry"
	"github.com/sokoban-opt/vicinity/sokoboard"
	"github.com/sokoban-opt/vicinity/vicinity"
)

// candidate is one push reachable from a chain entry, mirroring
// vicinity.Search's own expansion rule so reconstruction rediscovers
// exactly the edges the search could have taken.
type candidate struct {
	direction    sokoboard.Direction
	walkDist     int
	newCfg       boxcfg.BoxConfiguration
	newPlayerPos int32
	boxChanged   bool
	lineChanged  bool
}

// pushCandidates enumerates every push reachable from (cfg, playerPos),
// exactly as vicinity.Search's forward worker would.
func pushCandidates(tables *geometry.Tables, cfg boxcfg.BoxConfiguration, playerPos int32, prevAxisBit int) []candidate {
	reach := newPathBFS(tables, cfg, playerPos)
	var out []candidate
	for p := int32(0); p < int32(tables.PlayerCount); p++ {
		if !reach.reached(p) {
			continue
		}
		dist := int(reach.depth[p])
		for d := 0; d < sokoboard.NumDirections; d++ {
			dir := sokoboard.Direction(d)
			ahead := tables.PlayerNeighbor[dir][p]
			if ahead == geometry.None {
				continue
			}
			movedBox := tables.PlayerToBox[ahead]
			if movedBox == geometry.None || !cfg.HasBox(int(movedBox)) {
				continue
			}
			destBox := tables.BoxNeighbor[dir][movedBox]
			if destBox == geometry.None || cfg.HasBox(int(destBox)) {
				continue
			}

			newCfg := cfg.Clone()
			newCfg.MoveBox(int(movedBox), int(destBox))

			axis := geometry.AxisOf(dir)
			continuedSameBox := dist == 0 && axis == prevAxisBit
			out = append(out, candidate{
				direction:    dir,
				walkDist:     dist,
				newCfg:       newCfg,
				newPlayerPos: ahead,
				boxChanged:   !continuedSameBox,
				lineChanged:  !continuedSameBox || dist > 0,
			})
		}
	}
	return out
}

// matchesObjectiveStep reports whether taking candidate c from a state
// at (curPrimary, curSecondary) produces exactly (wantPrimary,
// wantSecondary) under objective — the consistency check that lets
// reconstruction trust a candidate as the genuine successor the search
// actually wrote to storage.
func matchesObjectiveStep(o vicinity.Objective, curPrimary, curSecondary int, c candidate, wantPrimary, wantSecondary int) bool {
	gotPrimary, gotSecondary := o.NextMetrics(curPrimary, curSecondary, c.walkDist, c.boxChanged, c.lineChanged)
	return gotPrimary == wantPrimary && gotSecondary == wantSecondary
}
