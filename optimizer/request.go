package optimizer

import (
	"errors"

	"github.com/sokoban-opt/vicinity/generator"
	"github.com/sokoban-opt/vicinity/sokoboard"
)

// Sentinel errors. ErrEmptySeedSolutions, ErrInvalidVicinity and
// ErrEndBoardMismatch reject a Request before any worker starts.
// ErrOutOfMemory comes from AUTO capacity estimation and is handled
// inside the controller as an out-of-memory round; ErrCapacityTooSmall
// is returned once memory back-off cannot shrink the capacity further.
var (
	ErrEmptySeedSolutions = errors.New("optimizer: no seed solutions provided")
	ErrInvalidVicinity    = errors.New("optimizer: vicinity vector must be non-empty and non-negative")
	ErrEndBoardMismatch   = errors.New("optimizer: end board does not match initial board dimensions")
	ErrOutOfMemory        = errors.New("optimizer: insufficient capacity for vicinity search")
	ErrCapacityTooSmall   = errors.New("optimizer: capacity would be less than 2x seed pushes count")
)

// Request describes one Optimize call: the level's initial and target
// occupancy, the solutions already known to reach that target, and
// the vicinity-search parameters to explore around them.
type Request struct {
	InitialBoard sokoboard.Board
	EndBoard     sokoboard.Board

	SeedSolutions []sokoboard.Solution

	// Vicinity is the per-depth displacement budget: the i-th box
	// chosen for relocation may move up to Vicinity[i] box-reachable
	// steps, and at most len(Vicinity) boxes are relocated.
	Vicinity []int

	// RelevantBoxSquares restricts candidate box destinations to cells
	// it marks true; a nil map imposes no restriction.
	RelevantBoxSquares map[int]bool

	Method OptimizationMethod
	Oracle generator.DeadlockOracle
}

func (r Request) validate() error {
	if len(r.SeedSolutions) == 0 {
		return ErrEmptySeedSolutions
	}
	if len(r.Vicinity) == 0 {
		return ErrInvalidVicinity
	}
	for _, k := range r.Vicinity {
		if k < 0 {
			return ErrInvalidVicinity
		}
	}
	if r.EndBoard.Width != r.InitialBoard.Width || r.EndBoard.Height != r.InitialBoard.Height {
		return ErrEndBoardMismatch
	}
	return nil
}
