package vicinity

import "github.com/sokoban-opt/vicinity/geometry"

// playerReach is the result of a PlayerReachability BFS from one
// origin: for every player position reached, the number of plain
// moves needed to get there, or -1 if unreached.
type playerReach struct {
	depth []int32
}

func newPlayerReach(n int) playerReach {
	d := make([]int32, n)
	for i := range d {
		d[i] = -1
	}
	return playerReach{depth: d}
}

func (r playerReach) reached(pos int32) bool { return r.depth[pos] >= 0 }
func (r playerReach) distance(pos int32) int { return int(r.depth[pos]) }

// playerReachability runs a BFS over PlayerNeighbor from origin,
// skipping any cell a box occupies (the player can walk through empty
// squares only), tracking move depth per reached cell. Grounded on
// bfs.walker's plain-slice queue, here specialized to a fixed-size
// int32 depth array instead of a map since P is known up front.
func playerReachability(tables *geometry.Tables, cfg boxOccupancy, origin int32) playerReach {
	r := newPlayerReach(tables.PlayerCount)
	r.depth[origin] = 0

	queue := make([]int32, 0, tables.PlayerCount)
	queue = append(queue, origin)
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		d := r.depth[cur]
		for dir := 0; dir < 4; dir++ {
			next := tables.PlayerNeighbor[dir][cur]
			if next == geometry.None || r.reached(next) {
				continue
			}
			if b := tables.PlayerToBox[next]; b != geometry.None && cfg.HasBox(int(b)) {
				continue
			}
			r.depth[next] = d + 1
			queue = append(queue, next)
		}
	}
	return r
}

// boxOccupancy is the subset of boxcfg.BoxConfiguration's contract
// playerReachability needs, kept narrow so tests can supply fakes
// without a geometry.Tables-sized bitset.
type boxOccupancy interface {
	HasBox(i int) bool
}
