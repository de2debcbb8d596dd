package optimizer

import (
	"errors"

	"github.com/sokoban-opt/vicinity/vicinity"
)

// ErrInvalidMethod is returned when a Request names an
// OptimizationMethod value outside the declared range.
var ErrInvalidMethod = errors.New("optimizer: unrecognized optimization method")

// OptimizationMethod selects which metric pair a search round
// optimizes. The "*All" variants run both orderings of the
// pushes/moves pair in one round and keep whichever result is better
// overall; every other method drives exactly one vicinity.Search.
type OptimizationMethod int

const (
	MovesPushes OptimizationMethod = iota
	PushesMoves
	MovesPushesAll
	PushesMovesAll
	MovesHighestPushes
	BoxLinesMoves
	BoxLinesPushes
	BoxLinesOnly
	BoxChangesMoves
	BoxChangesPushes
	BoxChangesOnly
)

func (m OptimizationMethod) String() string {
	switch m {
	case MovesPushes:
		return "moves/pushes"
	case PushesMoves:
		return "pushes/moves"
	case MovesPushesAll:
		return "moves/pushes (all)"
	case PushesMovesAll:
		return "pushes/moves (all)"
	case MovesHighestPushes:
		return "moves/highest-pushes"
	case BoxLinesMoves:
		return "box-lines/moves"
	case BoxLinesPushes:
		return "box-lines/pushes"
	case BoxLinesOnly:
		return "box-lines-only"
	case BoxChangesMoves:
		return "box-changes/moves"
	case BoxChangesPushes:
		return "box-changes/pushes"
	case BoxChangesOnly:
		return "box-changes-only"
	default:
		return "optimizer.OptimizationMethod(invalid)"
	}
}

// ParseMethod maps a CLI-friendly token (hyphenated, e.g.
// "pushes-moves" or "box-lines-only") to an OptimizationMethod.
func ParseMethod(s string) (OptimizationMethod, error) {
	switch s {
	case "moves-pushes":
		return MovesPushes, nil
	case "pushes-moves":
		return PushesMoves, nil
	case "moves-pushes-all":
		return MovesPushesAll, nil
	case "pushes-moves-all":
		return PushesMovesAll, nil
	case "moves-highest-pushes":
		return MovesHighestPushes, nil
	case "box-lines-moves":
		return BoxLinesMoves, nil
	case "box-lines-pushes":
		return BoxLinesPushes, nil
	case "box-lines-only":
		return BoxLinesOnly, nil
	case "box-changes-moves":
		return BoxChangesMoves, nil
	case "box-changes-pushes":
		return BoxChangesPushes, nil
	case "box-changes-only":
		return BoxChangesOnly, nil
	default:
		return 0, ErrInvalidMethod
	}
}

// objectives returns the one or two vicinity.Objective values this
// method drives a search round with, in priority order: the first
// entry is also the one strict-improvement checks and seed selection
// key on. ceiling only matters for MovesHighestPushes, where it caps
// the inverted pushes counter the storage packs as the secondary
// metric.
func (m OptimizationMethod) objectives(ceiling int) ([]vicinity.Objective, error) {
	switch m {
	case MovesPushes:
		return []vicinity.Objective{vicinity.MovesPushes}, nil
	case PushesMoves:
		return []vicinity.Objective{vicinity.PushesMoves}, nil
	case MovesPushesAll:
		return []vicinity.Objective{vicinity.MovesPushes, vicinity.PushesMoves}, nil
	case PushesMovesAll:
		return []vicinity.Objective{vicinity.PushesMoves, vicinity.MovesPushes}, nil
	case MovesHighestPushes:
		return []vicinity.Objective{vicinity.MovesHighestPushes(ceiling)}, nil
	case BoxLinesMoves:
		return []vicinity.Objective{vicinity.BoxLinesMoves}, nil
	case BoxLinesPushes:
		return []vicinity.Objective{vicinity.BoxLinesPushes}, nil
	case BoxLinesOnly:
		return []vicinity.Objective{vicinity.BoxLinesOnly}, nil
	case BoxChangesMoves:
		return []vicinity.Objective{vicinity.BoxChangesMoves}, nil
	case BoxChangesPushes:
		return []vicinity.Objective{vicinity.BoxChangesPushes}, nil
	case BoxChangesOnly:
		return []vicinity.Objective{vicinity.BoxChangesOnly}, nil
	default:
		return nil, ErrInvalidMethod
	}
}
