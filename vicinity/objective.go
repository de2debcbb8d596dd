package vicinity

// PrimaryKind selects which metric an Objective treats as primary
// (the one the bucket queue orders on first).
type PrimaryKind uint8

const (
	PrimaryPushes PrimaryKind = iota
	PrimaryMoves
	PrimaryBoxLines
	PrimaryBoxChanges
)

// SecondaryKind selects which metric an Objective treats as
// secondary (the tiebreaker packed into the low bits of the order
// value).
type SecondaryKind uint8

const (
	SecondaryMoves SecondaryKind = iota
	SecondaryPushes
	SecondaryHighestPushes
	// SecondaryNone is used by the box-lines-only/box-changes-only
	// objectives: the search orders on the primary metric alone and
	// the secondary slot is always zero.
	SecondaryNone
)

// Objective configures one of the supported optimization methods.
// Bidirectional objectives run both a forward and a backward worker
// pool against the same storage; the rest are forward-only.
type Objective struct {
	Name          string
	Primary       PrimaryKind
	Secondary     SecondaryKind
	Bidirectional bool

	// AxisSensitive selects D=2 storage: player position is encoded
	// together with the axis of the push that most recently moved a
	// box, so box-line/box-change bookkeeping can tell whether the
	// next push continues the same line.
	AxisSensitive bool

	// Ceiling is only consulted when Secondary == SecondaryHighestPushes:
	// the stored secondary metric is Ceiling-pushes, so a search that
	// minimizes order value also maximizes raw pushes.
	Ceiling int
}

var (
	PushesMoves = Objective{Name: "pushes/moves", Primary: PrimaryPushes, Secondary: SecondaryMoves, Bidirectional: true}
	MovesPushes = Objective{Name: "moves/pushes", Primary: PrimaryMoves, Secondary: SecondaryPushes, Bidirectional: true}

	BoxLinesMoves    = Objective{Name: "box-lines/moves", Primary: PrimaryBoxLines, Secondary: SecondaryMoves, AxisSensitive: true}
	BoxLinesPushes   = Objective{Name: "box-lines/pushes", Primary: PrimaryBoxLines, Secondary: SecondaryPushes, AxisSensitive: true}
	BoxChangesMoves  = Objective{Name: "box-changes/moves", Primary: PrimaryBoxChanges, Secondary: SecondaryMoves, AxisSensitive: true}
	BoxChangesPushes = Objective{Name: "box-changes/pushes", Primary: PrimaryBoxChanges, Secondary: SecondaryPushes, AxisSensitive: true}

	// BoxLinesOnly and BoxChangesOnly order purely on the primary
	// metric; no secondary tiebreaker is tracked.
	BoxLinesOnly   = Objective{Name: "box-lines-only", Primary: PrimaryBoxLines, Secondary: SecondaryNone, AxisSensitive: true}
	BoxChangesOnly = Objective{Name: "box-changes-only", Primary: PrimaryBoxChanges, Secondary: SecondaryNone, AxisSensitive: true}
)

// MovesHighestPushes builds the forward-only moves/ceiling-pushes
// objective. ceiling must be at least the highest push count any
// reachable configuration could need.
func MovesHighestPushes(ceiling int) Objective {
	return Objective{Name: "moves/highest-pushes", Primary: PrimaryMoves, Secondary: SecondaryHighestPushes, Ceiling: ceiling}
}

// storageAxes returns the D dimension (1 or 2) this objective needs.
func (o Objective) storageAxes() int {
	if o.AxisSensitive {
		return 2
	}
	return 1
}

// NextMetrics computes the (primary, secondary) pair a push/pull
// produces from a state currently at (curPrimary, curSecondary), given
// the player's walk distance to reach the pushing position and whether
// this push changed the box identity (boxChanged) or broke the current
// box line (lineChanged).
func (o Objective) NextMetrics(curPrimary, curSecondary, dist int, boxChanged, lineChanged bool) (int, int) {
	primaryDelta := 0
	switch o.Primary {
	case PrimaryPushes:
		primaryDelta = 1
	case PrimaryMoves:
		primaryDelta = dist + 1
	case PrimaryBoxLines:
		if lineChanged {
			primaryDelta = 1
		}
	case PrimaryBoxChanges:
		if boxChanged {
			primaryDelta = 1
		}
	}
	newPrimary := curPrimary + primaryDelta

	var newSecondary int
	switch o.Secondary {
	case SecondaryMoves:
		newSecondary = curSecondary + dist + 1
	case SecondaryPushes:
		newSecondary = curSecondary + 1
	case SecondaryHighestPushes:
		pushesSoFar := o.Ceiling - curSecondary
		newSecondary = o.Ceiling - (pushesSoFar + 1)
	case SecondaryNone:
		newSecondary = 0
	}
	return newPrimary, newSecondary
}

// OrderDeltaBounds returns the (minDelta, maxDelta) order-value step
// bounds the controller must hand to bucketqueue.New, given the
// storage's secondaryMax and an upper bound on any single player walk
// distance between pushes.
func (o Objective) OrderDeltaBounds(secondaryMax, maxMoveDistance int) (minDelta, maxDelta int64) {
	minPrimary, maxPrimary := 0, 1
	if o.Primary == PrimaryMoves {
		minPrimary, maxPrimary = 1, maxMoveDistance+1
	}
	minSecondary, maxSecondary := 0, 1
	switch o.Secondary {
	case SecondaryMoves:
		minSecondary, maxSecondary = 1, maxMoveDistance+1
	case SecondaryPushes, SecondaryHighestPushes:
		minSecondary, maxSecondary = 1, 1
	case SecondaryNone:
		minSecondary, maxSecondary = 0, 0
	}
	min := int64(minPrimary)*int64(secondaryMax) + int64(minSecondary)
	max := int64(maxPrimary)*int64(secondaryMax) + int64(maxSecondary)
	if min < 1 {
		min = 1
	}
	return min, max
}
