package reconstruct

import (
	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/geometry"
	"github.com/sokoban-opt/vicinity/sokoboard"
)

// pathBFS is a player-reachability BFS that additionally records, for
// every reached cell, the direction that led to it and its parent —
// enough to walk the shortest path back to the origin as a concrete
// move sequence, unlike vicinity's depth-only reachability.
type pathBFS struct {
	depth  []int32
	parent []int32
	via    []sokoboard.Direction
}

func newPathBFS(tables *geometry.Tables, cfg boxcfg.BoxConfiguration, origin int32) pathBFS {
	p := pathBFS{
		depth:  make([]int32, tables.PlayerCount),
		parent: make([]int32, tables.PlayerCount),
	}
	p.via = make([]sokoboard.Direction, tables.PlayerCount)
	for i := range p.depth {
		p.depth[i] = -1
		p.parent[i] = geometry.None
	}
	p.depth[origin] = 0

	queue := make([]int32, 0, tables.PlayerCount)
	queue = append(queue, origin)
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for d := 0; d < sokoboard.NumDirections; d++ {
			next := tables.PlayerNeighbor[d][cur]
			if next == geometry.None || p.depth[next] >= 0 {
				continue
			}
			if b := tables.PlayerToBox[next]; b != geometry.None && cfg.HasBox(int(b)) {
				continue
			}
			p.depth[next] = p.depth[cur] + 1
			p.parent[next] = cur
			p.via[next] = sokoboard.Direction(d)
			queue = append(queue, next)
		}
	}
	return p
}

func (p pathBFS) reached(pos int32) bool { return p.depth[pos] >= 0 }

// movesTo reconstructs the shortest sequence of plain moves from the
// BFS origin to dest.
func (p pathBFS) movesTo(dest int32) []sokoboard.Direction {
	if !p.reached(dest) {
		return nil
	}
	var rev []sokoboard.Direction
	for cur := dest; p.parent[cur] != geometry.None; cur = p.parent[cur] {
		rev = append(rev, p.via[cur])
	}
	out := make([]sokoboard.Direction, len(rev))
	for i, d := range rev {
		out[len(rev)-1-i] = d
	}
	return out
}
