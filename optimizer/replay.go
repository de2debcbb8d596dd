package optimizer

import (
	"errors"

	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/generator"
	"github.com/sokoban-opt/vicinity/geometry"
	"github.com/sokoban-opt/vicinity/sokoboard"
)

// ErrIllegalMove is returned when a seed solution's recorded moves
// cannot actually be played out on the board it was paired with — a
// wall, an off-board step, or a push into an occupied cell.
var ErrIllegalMove = errors.New("optimizer: seed solution move is illegal on the initial board")

// replayResult is what replaying one seed solution over a board's
// initial occupancy produces: every push-state the generator should
// seed from, the configuration and player position the solution ends
// at, and how many pushes it made in total.
type replayResult struct {
	pushStates  []generator.PlayerBoxState
	finalBoxes  boxcfg.BoxConfiguration
	finalPlayer int32
	pushes      int
}

// boxesFromBoard converts board's Occupied mask into a
// boxcfg.BoxConfiguration over tables' dense box-position space.
func boxesFromBoard(tables *geometry.Tables, board sokoboard.Board) (boxcfg.BoxConfiguration, error) {
	cfg := boxcfg.New(tables.BoxCount)
	for full, occ := range board.Occupied {
		if !occ {
			continue
		}
		b := tables.BoxOf(full)
		if b == geometry.None {
			return cfg, ErrEndBoardMismatch
		}
		cfg.SetBox(int(b))
	}
	return cfg, nil
}

// replaySolution walks sol.Moves from board's recorded occupancy and
// player start, recording one generator.PlayerBoxState per push
// (including the starting state, at zero pushes) so the generator can
// seed its vicinity search from every push-state the solution visits.
func replaySolution(tables *geometry.Tables, board sokoboard.Board, sol sokoboard.Solution) (replayResult, error) {
	cfg, err := boxesFromBoard(tables, board)
	if err != nil {
		return replayResult{}, err
	}
	player := tables.PlayerOf(board.PlayerAt)
	if player == geometry.None {
		return replayResult{}, ErrIllegalMove
	}

	res := replayResult{
		pushStates: []generator.PlayerBoxState{{PlayerPos: player, Boxes: cfg.Clone()}},
	}

	for _, dir := range sol.Moves {
		ahead := tables.PlayerNeighbor[dir][player]
		if ahead == geometry.None {
			return replayResult{}, ErrIllegalMove
		}
		if movedBox := tables.PlayerToBox[ahead]; movedBox != geometry.None && cfg.HasBox(int(movedBox)) {
			destBox := tables.BoxNeighbor[dir][movedBox]
			if destBox == geometry.None || cfg.HasBox(int(destBox)) {
				return replayResult{}, ErrIllegalMove
			}
			cfg = cfg.Clone()
			cfg.MoveBox(int(movedBox), int(destBox))
			res.pushes++
			res.pushStates = append(res.pushStates, generator.PlayerBoxState{PlayerPos: ahead, Boxes: cfg.Clone()})
		}
		player = ahead
	}

	res.finalBoxes = cfg
	res.finalPlayer = player
	return res, nil
}

// reachablePlayerPositions runs a plain BFS over PlayerNeighbor from
// origin, skipping cells cfg occupies with a box, and returns every
// position reached. Grounded on vicinity.playerReachability's same
// plain-slice-queue shape, duplicated here rather than exported from
// vicinity since it is a generic geometry walk with no dependency on
// search state.
func reachablePlayerPositions(tables *geometry.Tables, cfg boxcfg.BoxConfiguration, origin int32) []int32 {
	visited := make([]bool, tables.PlayerCount)
	visited[origin] = true

	queue := make([]int32, 0, tables.PlayerCount)
	queue = append(queue, origin)
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for d := 0; d < sokoboard.NumDirections; d++ {
			next := tables.PlayerNeighbor[d][cur]
			if next == geometry.None || visited[next] {
				continue
			}
			if b := tables.PlayerToBox[next]; b != geometry.None && cfg.HasBox(int(b)) {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return queue
}
