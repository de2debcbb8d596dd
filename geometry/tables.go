package geometry

import (
	"errors"

	"github.com/sokoban-opt/vicinity/sokoboard"
)

// None is the sentinel used throughout this module's dense tables in
// place of a missing neighbor or a cell with no box/player mapping.
const None int32 = -1

// Sentinel errors for Tables construction.
var (
	// ErrEmptyBoard is returned when the board has zero width or height.
	ErrEmptyBoard = errors.New("geometry: board has zero width or height")

	// ErrNoPlayerCells is returned when the board declares no reachable
	// player cells at all.
	ErrNoPlayerCells = errors.New("geometry: board has no player-reachable cells")

	// ErrBoxNotPlayerCell is returned when a box cell is not also
	// marked as a player cell, violating the invariant that a box can
	// never reside on a cell the player could not otherwise stand on.
	ErrBoxNotPlayerCell = errors.New("geometry: box cell is not a player cell")
)

// Tables holds the dense player/box coordinate spaces and their
// precomputed neighbor relationships for one level. It is immutable
// once built and safe for concurrent read access by any number of
// generator or vicinity workers.
type Tables struct {
	Board sokoboard.Board

	// PlayerCount (P) and BoxCount (B) are the sizes of the two dense
	// index spaces.
	PlayerCount int
	BoxCount    int

	// playerFull/boxFull map a dense index back to the full board
	// cell index; fullToPlayer/fullToBoxIdx are the reverse lookups.
	playerFull    []int32
	boxFull       []int32
	fullToPlayer  []int32
	fullToBoxIdx  []int32

	// PlayerToBox[p] is the box index occupying player-position p, or
	// None if p cannot ever hold a box.
	PlayerToBox []int32

	// BoxToPlayer[b] is the player-position index of box-position b.
	BoxToPlayer []int32

	// PlayerNeighbor[d][p] is the neighboring player position in
	// direction d, or None if off-board/blocked.
	PlayerNeighbor [sokoboard.NumDirections][]int32

	// BoxNeighbor[d][b] is the neighboring box position in direction
	// d, or None if that cell can never hold a box.
	BoxNeighbor [sokoboard.NumDirections][]int32
}

// NewTables builds the dense coordinate spaces and neighbor tables for
// board. Complexity: O(Width*Height) time and memory, computed once
// per level and shared read-only thereafter.
func NewTables(board sokoboard.Board) (*Tables, error) {
	if board.Width <= 0 || board.Height <= 0 {
		return nil, ErrEmptyBoard
	}
	n := board.Width * board.Height

	t := &Tables{
		Board:        board,
		fullToPlayer: make([]int32, n),
		fullToBoxIdx: make([]int32, n),
	}
	for i := range t.fullToPlayer {
		t.fullToPlayer[i] = None
		t.fullToBoxIdx[i] = None
	}

	for full := 0; full < n; full++ {
		if isSet(board.PlayerCells, full) && !isSet(board.Walls, full) {
			t.fullToPlayer[full] = int32(len(t.playerFull))
			t.playerFull = append(t.playerFull, int32(full))
		}
	}
	if len(t.playerFull) == 0 {
		return nil, ErrNoPlayerCells
	}
	for full := 0; full < n; full++ {
		if isSet(board.BoxCells, full) {
			if t.fullToPlayer[full] == None {
				return nil, ErrBoxNotPlayerCell
			}
			t.fullToBoxIdx[full] = int32(len(t.boxFull))
			t.boxFull = append(t.boxFull, int32(full))
		}
	}

	t.PlayerCount = len(t.playerFull)
	t.BoxCount = len(t.boxFull)

	t.PlayerToBox = make([]int32, t.PlayerCount)
	for p, full := range t.playerFull {
		t.PlayerToBox[p] = t.fullToBoxIdx[full]
	}
	t.BoxToPlayer = make([]int32, t.BoxCount)
	for b, full := range t.boxFull {
		t.BoxToPlayer[b] = t.fullToPlayer[full]
	}

	for d := sokoboard.Direction(0); d < sokoboard.NumDirections; d++ {
		t.PlayerNeighbor[d] = t.buildPlayerNeighbor(d)
		t.BoxNeighbor[d] = t.buildBoxNeighbor(d)
	}

	return t, nil
}

func (t *Tables) buildPlayerNeighbor(d sokoboard.Direction) []int32 {
	out := make([]int32, t.PlayerCount)
	dx, dy := d.Delta()
	for p, full := range t.playerFull {
		x, y := t.Board.Coord(int(full))
		nx, ny := x+dx, y+dy
		out[p] = None
		if t.Board.InBounds(nx, ny) {
			if np := t.fullToPlayer[t.Board.Index(nx, ny)]; np != None {
				out[p] = np
			}
		}
	}
	return out
}

func (t *Tables) buildBoxNeighbor(d sokoboard.Direction) []int32 {
	out := make([]int32, t.BoxCount)
	dx, dy := d.Delta()
	for b, full := range t.boxFull {
		x, y := t.Board.Coord(int(full))
		nx, ny := x+dx, y+dy
		out[b] = None
		if t.Board.InBounds(nx, ny) {
			if nb := t.fullToBoxIdx[t.Board.Index(nx, ny)]; nb != None {
				out[b] = nb
			}
		}
	}
	return out
}

// FullOfPlayer returns the full-board cell index of player position p.
func (t *Tables) FullOfPlayer(p int) int {
	return int(t.playerFull[p])
}

// FullOfBox returns the full-board cell index of box position b.
func (t *Tables) FullOfBox(b int) int {
	return int(t.boxFull[b])
}

// PlayerOf returns the dense player-position index of a full-board
// cell, or None if that cell is not player-reachable.
func (t *Tables) PlayerOf(full int) int32 {
	return t.fullToPlayer[full]
}

// BoxOf returns the dense box-position index of a full-board cell, or
// None if a box can never occupy it.
func (t *Tables) BoxOf(full int) int32 {
	return t.fullToBoxIdx[full]
}

// AxisOf returns 0 for vertical directions (Up, Down) and 1 for
// horizontal ones (Left, Right).
func AxisOf(d sokoboard.Direction) int { return d.Axis() }

// Opposite returns the reverse of d.
func Opposite(d sokoboard.Direction) sokoboard.Direction { return d.Opposite() }

func isSet(mask []bool, i int) bool {
	return i >= 0 && i < len(mask) && mask[i]
}
