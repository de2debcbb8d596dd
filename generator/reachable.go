package generator

import "github.com/sokoban-opt/vicinity/geometry"

// reachableWithinK returns every box position reachable from origin by
// following BoxNeighbor edges, in non-decreasing BFS-depth order,
// stopping once depth exceeds maxDepth. origin itself is never
// included. Styled after bfs.walker's plain-slice queue plus a
// visited []bool sized to the box-position space, traded for a map for
// speed since B is known and small relative to a full board.
func reachableWithinK(tables *geometry.Tables, origin int32, maxDepth int) []int32 {
	if maxDepth <= 0 {
		return nil
	}

	visited := make([]bool, tables.BoxCount)
	visited[origin] = true

	type item struct {
		pos   int32
		depth int
	}
	queue := make([]item, 0, tables.BoxCount)
	queue = append(queue, item{pos: origin, depth: 0})

	var out []int32
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur.depth == maxDepth {
			continue
		}
		for d := 0; d < 4; d++ {
			next := tables.BoxNeighbor[d][cur.pos]
			if next == geometry.None || visited[next] {
				continue
			}
			visited[next] = true
			out = append(out, next)
			queue = append(queue, item{pos: next, depth: cur.depth + 1})
		}
	}
	return out
}
