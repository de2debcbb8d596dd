package sokoboard

import "fmt"

// Direction is one of the four axis-aligned push/pull directions.
// The two low bits double as an index into per-direction tables
// throughout geometry, generator, and vicinity.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// NumDirections is the size of any [4]T or []T table indexed by Direction.
const NumDirections = 4

// Axis returns 0 for vertical directions (Up, Down) and 1 for
// horizontal ones (Left, Right): the direction's value shifted right
// by one.
func (d Direction) Axis() int {
	return int(d >> 1)
}

// Opposite returns the reverse of d (Up<->Down, Left<->Right).
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Delta returns the (dx, dy) unit offset for d on a row-major grid.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Board is the minimal geometric description a caller supplies: which
// cells are walls, which may hold the player, and which may hold a
// box. Width/Height describe the full (dense) grid; Walls, PlayerCells
// and BoxCells are row-major boolean masks of length Width*Height
// describing legal squares, independent of where anything actually
// sits right now.
//
// Occupied is the occupancy snapshot this particular Board value
// represents: PlayerAt is the player's cell index (or -1 when not
// applicable, e.g. an end board used only for its box placement), and
// Occupied is a row-major mask of which legal box cells currently hold
// a box. A level's static geometry (Walls/PlayerCells/BoxCells) is
// normally shared between an initial and an end Board; only
// PlayerAt/Occupied differ between them.
//
// Level parsing, rendering, and move playback are not this module's
// concern — a caller builds Board from whatever source format it
// already has.
type Board struct {
	Width, Height int
	Walls         []bool
	PlayerCells   []bool
	BoxCells      []bool

	PlayerAt int
	Occupied []bool
}

// Index converts (x,y) to the row-major cell index.
func (b Board) Index(x, y int) int {
	return y*b.Width + x
}

// Coord converts a row-major cell index back to (x,y).
func (b Board) Coord(idx int) (x, y int) {
	return idx % b.Width, idx / b.Width
}

// InBounds reports whether (x,y) lies within the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Solution is a completed move sequence plus the five metrics the
// optimizer compares solutions by.
type Solution struct {
	Moves []Direction

	MovesCount      int
	PushesCount     int
	BoxLines        int
	BoxChanges      int
	PushingSessions int
}

// Clone returns a deep copy of s.
func (s Solution) Clone() Solution {
	out := s
	out.Moves = append([]Direction(nil), s.Moves...)
	return out
}

// MoveBytes renders Moves as a wire-level byte sequence
// (UP=0, DOWN=1, LEFT=2, RIGHT=3).
func (s Solution) MoveBytes() []byte {
	out := make([]byte, len(s.Moves))
	for i, d := range s.Moves {
		out[i] = byte(d)
	}
	return out
}
