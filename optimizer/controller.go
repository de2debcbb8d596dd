package optimizer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/sokoban-opt/vicinity/boardstore"
	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/bucketqueue"
	"github.com/sokoban-opt/vicinity/generator"
	"github.com/sokoban-opt/vicinity/geometry"
	"github.com/sokoban-opt/vicinity/progress"
	"github.com/sokoban-opt/vicinity/reconstruct"
	"github.com/sokoban-opt/vicinity/sokoboard"
	"github.com/sokoban-opt/vicinity/vicinity"
)

// Controller drives one Optimize call. It owns the run's Status and
// lets a caller request cooperative cancellation via Stop while Run is
// in flight on another goroutine.
type Controller struct {
	cfg    Config
	status atomic.Int32
}

// New builds a Controller from opts. A Controller is single-use: call
// Run once per instance.
func New(opts ...Option) *Controller {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Controller{cfg: cfg}
	c.status.Store(int32(StatusRunning))
	return c
}

// Optimize is the package's single entry point: build a Controller
// from opts and run it against req.
func Optimize(ctx context.Context, req Request, opts ...Option) (*sokoboard.Solution, error) {
	return New(opts...).Run(ctx, req)
}

// Stop requests cooperative cancellation. Safe to call concurrently
// with Run, any number of times; only the first call has an effect.
func (c *Controller) Stop() {
	c.status.CompareAndSwap(int32(StatusRunning), int32(StatusStoppedByUser))
}

// CurrentStatus reports the controller's status as of the last time it
// was checked or updated.
func (c *Controller) CurrentStatus() Status {
	return Status(c.status.Load())
}

// debugCheckDepth compares the primary metric a rendezvous slot had
// recorded against the primary metric the winning reconstruction
// actually reached. The two may legitimately disagree: reconstruction races every
// rendezvous and keeps the best result overall, which need not be the
// one this particular slot belonged to. This never corrects or
// rejects anything — it only makes the discrepancy observable as a
// log line — and returns at once when Config.debug is false.
func (c *Controller) debugCheckDepth(sink progress.ProgressSink, slotPrimary, wonPrimary int) {
	if !c.cfg.debug {
		return
	}
	if slotPrimary != wonPrimary {
		sink.AddLog(fmt.Sprintf("debug: rendezvous slot recorded primary metric %d, winning reconstruction used %d", slotPrimary, wonPrimary))
	}
}

// Run validates req, then runs search rounds — one per WithIterate
// iteration — until no round strictly improves, the user stops, or a
// fixed point is reached. It never panics or returns a partial
// Solution silently: every early exit carries its own Status and, for
// failures, an error.
func (c *Controller) Run(ctx context.Context, req Request) (*sokoboard.Solution, error) {
	if c.cfg.err != nil {
		return nil, c.cfg.err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	tables, err := geometry.NewTables(req.InitialBoard)
	if err != nil {
		return nil, err
	}
	endCfg, err := boxesFromBoard(tables, req.EndBoard)
	if err != nil {
		return nil, err
	}

	sink := c.cfg.sink
	best := bestSeed(req.SeedSolutions)
	maxConfigs := c.cfg.maxBoxConfigurations
	improvedAny := false
	ended := func(s *sokoboard.Solution) *sokoboard.Solution {
		if !improvedAny {
			return nil
		}
		return s
	}

	for {
		if c.CurrentStatus() == StatusStoppedByUser {
			final := applyBrackets(best, c.cfg)
			sink.OptimizerEnded(ended(&final))
			return &final, nil
		}

		sink.SetInfoText(fmt.Sprintf("optimizing via %s", req.Method))
		sol, status, err := c.runRound(ctx, tables, req, endCfg, best, maxConfigs, sink)
		if err != nil {
			c.status.Store(int32(StatusStoppedDueToFailure))
			return nil, err
		}

		switch status {
		case StatusStoppedDueToOutOfMemory:
			next, ok := backOff(maxConfigs, best)
			if !ok {
				c.status.Store(int32(StatusStoppedDueToOutOfMemory))
				sink.OptimizerEnded(nil)
				return nil, ErrCapacityTooSmall
			}
			maxConfigs = next
			sink.AddLog(fmt.Sprintf("out of memory, backing off to %d box configurations", maxConfigs))
			continue
		case StatusStoppedByUser:
			c.status.Store(int32(StatusStoppedByUser))
			final := applyBrackets(best, c.cfg)
			sink.OptimizerEnded(ended(&final))
			return &final, nil
		}

		improved := solutionBetter(sol, best, firstObjective(req.Method, sol.PushesCount))
		if improved {
			sink.NewFoundSolution(sol, req.SeedSolutions)
			best = sol
			improvedAny = true
		}

		if !c.cfg.iterate || !improved {
			break
		}
		if ctx.Err() != nil {
			c.status.Store(int32(StatusStoppedByUser))
			break
		}
	}

	final := applyBrackets(best, c.cfg)
	c.status.CompareAndSwap(int32(StatusRunning), int32(StatusEnded))
	sink.OptimizerEnded(ended(&final))
	return &final, nil
}

// runRound replays seed over req.InitialBoard, sizes one pass's
// capacity, and runs every objective req.Method calls for, keeping
// whichever of their results is best.
func (c *Controller) runRound(ctx context.Context, tables *geometry.Tables, req Request, endCfg boxcfg.BoxConfiguration, seed sokoboard.Solution, maxConfigs int, sink progress.ProgressSink) (sokoboard.Solution, Status, error) {
	replay, err := replaySolution(tables, req.InitialBoard, seed)
	if err != nil {
		return sokoboard.Solution{}, StatusStoppedDueToFailure, err
	}

	ceiling := replay.pushes*2 + tables.BoxCount + 1
	objectives, err := req.Method.objectives(ceiling)
	if err != nil {
		return sokoboard.Solution{}, StatusStoppedDueToFailure, err
	}

	capacity := maxConfigs
	if capacity <= 0 {
		estimated, err := estimateMaxBoxConfigurations(objectives, tables.PlayerCount)
		if err != nil {
			return sokoboard.Solution{}, StatusStoppedDueToOutOfMemory, nil
		}
		capacity = estimated
	}
	if capacity < 2*replay.pushes {
		return sokoboard.Solution{}, StatusStoppedDueToOutOfMemory, nil
	}

	var best sokoboard.Solution
	haveBest := false
	for _, objective := range objectives {
		sol, status, err := c.runObjective(ctx, tables, req, endCfg, replay, seed, objective, capacity, sink)
		if err != nil {
			return sokoboard.Solution{}, StatusStoppedDueToFailure, err
		}
		if status != StatusEnded {
			return sokoboard.Solution{}, status, nil
		}
		if !haveBest || solutionBetter(sol, best, objective) {
			best = sol
			haveBest = true
		}
	}
	return best, StatusEnded, nil
}

// runObjective performs the generate → search → reconstruct pipeline
// for a single vicinity.Objective.
func (c *Controller) runObjective(ctx context.Context, tables *geometry.Tables, req Request, endCfg boxcfg.BoxConfiguration, replay replayResult, seed sokoboard.Solution, objective vicinity.Objective, capacity int, sink progress.ProgressSink) (sokoboard.Solution, Status, error) {
	set := boxcfg.NewBoxConfigurationSet(capacity, tables.BoxCount)

	gen := generator.New(tables, c.cfg.maxCPUs)
	if err := gen.Generate(ctx, replay.pushStates, req.Vicinity, req.RelevantBoxSquares, req.Oracle, set); err != nil {
		if errors.Is(err, generator.ErrSetFull) {
			return sokoboard.Solution{}, StatusStoppedDueToOutOfMemory, nil
		}
		if ctx.Err() != nil {
			return sokoboard.Solution{}, StatusStoppedByUser, nil
		}
		return sokoboard.Solution{}, StatusStoppedDueToFailure, err
	}
	if _, ok := set.Insert(endCfg); !ok {
		return sokoboard.Solution{}, StatusStoppedDueToOutOfMemory, nil
	}
	set.ShrinkToFit()

	startIdx, ok := set.IndexOf(replay.pushStates[0].Boxes)
	if !ok {
		return sokoboard.Solution{}, StatusStoppedDueToFailure, ErrCapacityTooSmall
	}
	endIdx, ok := set.IndexOf(endCfg)
	if !ok {
		return sokoboard.Solution{}, StatusStoppedDueToFailure, ErrCapacityTooSmall
	}

	axes := 1
	if objective.AxisSensitive {
		axes = 2
	}
	secondaryMax := secondaryMaxFor(objective, tables.PlayerCount)
	store := boardstore.New(set.Capacity(), tables.PlayerCount, axes, secondaryMax)

	minDelta, maxDelta := objective.OrderDeltaBounds(secondaryMax, tables.PlayerCount)
	bMax := maxDelta + minDelta + 1
	forward, err := bucketqueue.New(bMax, minDelta, maxDelta, c.cfg.maxCPUs)
	if err != nil {
		return sokoboard.Solution{}, StatusStoppedDueToFailure, err
	}

	var backward *bucketqueue.Queue
	if objective.Bidirectional {
		backward, err = bucketqueue.New(bMax, minDelta, maxDelta, c.cfg.maxCPUs)
		if err != nil {
			return sokoboard.Solution{}, StatusStoppedDueToFailure, err
		}
	}

	search := vicinity.New(tables, set, store, forward, backward, objective, c.cfg.maxCPUs)
	endPositions := c.endPlayerPositions(tables, endCfg, req.EndBoard)

	result, err := search.Run(ctx, startIdx, replay.pushStates[0].PlayerPos, endIdx, endPositions)
	if err != nil {
		if ctx.Err() != nil {
			return sokoboard.Solution{}, StatusStoppedByUser, nil
		}
		return sokoboard.Solution{}, StatusStoppedDueToFailure, err
	}

	rec := reconstruct.New(tables, set, store, objective, c.cfg.maxCPUs)
	sol, err := rec.Reconstruct(ctx, result.Meetings, seed)
	if err != nil {
		return sokoboard.Solution{}, StatusStoppedDueToFailure, err
	}

	if len(result.Meetings) > 0 {
		slotPrimary, _, _, ok := store.Get(boardstore.Forward, result.Meetings[0].Slot)
		if ok {
			wonPrimary, _ := solutionMetrics(objective, sol)
			c.debugCheckDepth(sink, slotPrimary, wonPrimary)
		}
	}
	return sol, StatusEnded, nil
}

// endPlayerPositions returns the backward search's seed positions:
// just the end board's recorded player position when
// WithPreservePlayerEnd is set, otherwise every position reachable
// from it around the end box configuration. When the end board
// records no player position (PlayerAt < 0, or a cell that is not a
// player cell), player position 0 is used in its place.
func (c *Controller) endPlayerPositions(tables *geometry.Tables, endCfg boxcfg.BoxConfiguration, endBoard sokoboard.Board) []int32 {
	var origin int32
	if endBoard.PlayerAt >= 0 {
		if p := tables.PlayerOf(endBoard.PlayerAt); p != geometry.None {
			origin = p
		}
	}
	if c.cfg.preservePlayerEnd {
		return []int32{origin}
	}
	return reachablePlayerPositions(tables, endCfg, origin)
}

// backOff reduces maxConfigs to 70% of its last value. When no
// override is set (maxConfigs <= 0, AUTO), it starts from a fixed
// 1<<20 rather than from the AUTO estimate the failed round used. It fails
// once the reduced capacity would fall below 2x the seed's push count
// (ErrCapacityTooSmall's condition).
func backOff(maxConfigs int, best sokoboard.Solution) (int, bool) {
	if maxConfigs <= 0 {
		maxConfigs = 1 << 20
	}
	next := maxConfigs * 7 / 10
	if next >= maxConfigs {
		next = maxConfigs - 1
	}
	if next < 2*best.PushesCount {
		return 0, false
	}
	return next, true
}

func bestSeed(seeds []sokoboard.Solution) sokoboard.Solution {
	best := seeds[0]
	for _, s := range seeds[1:] {
		if s.PushesCount < best.PushesCount || (s.PushesCount == best.PushesCount && s.MovesCount < best.MovesCount) {
			best = s
		}
	}
	return best
}

// firstObjective resolves method's primary objective for comparison
// purposes only (ceiling is irrelevant once an Objective only needs
// its Primary/Secondary kind inspected).
func firstObjective(method OptimizationMethod, ceiling int) vicinity.Objective {
	objectives, err := method.objectives(ceiling)
	if err != nil || len(objectives) == 0 {
		return vicinity.PushesMoves
	}
	return objectives[0]
}

// solutionBetter reports whether a strictly improves on b under
// objective's (primary, secondary) ordering.
func solutionBetter(a, b sokoboard.Solution, objective vicinity.Objective) bool {
	ap, as := solutionMetrics(objective, a)
	bp, bs := solutionMetrics(objective, b)
	if ap != bp {
		return ap < bp
	}
	return as < bs
}

func solutionMetrics(o vicinity.Objective, s sokoboard.Solution) (primary, secondary int) {
	switch o.Primary {
	case vicinity.PrimaryPushes:
		primary = s.PushesCount
	case vicinity.PrimaryMoves:
		primary = s.MovesCount
	case vicinity.PrimaryBoxLines:
		primary = s.BoxLines
	case vicinity.PrimaryBoxChanges:
		primary = s.BoxChanges
	}
	switch o.Secondary {
	case vicinity.SecondaryMoves:
		secondary = s.MovesCount
	case vicinity.SecondaryPushes:
		secondary = s.PushesCount
	case vicinity.SecondaryHighestPushes:
		secondary = -s.PushesCount
	case vicinity.SecondaryNone:
		secondary = 0
	}
	return primary, secondary
}

// secondaryMaxFor bounds the packed order-value's low field: large
// enough that no walk distance within a vicinity-bounded search can
// overflow it, while staying well under boardstore.MaxOrderValue.
func secondaryMaxFor(o vicinity.Objective, playerCount int) int {
	if o.Secondary == vicinity.SecondaryNone {
		return 1
	}
	return playerCount*playerCount + 1
}

// applyBrackets folds the configured prefix/suffix move and push
// counts into sol's totals, representing portions of a larger
// solution outside the vicinity-search window.
func applyBrackets(sol sokoboard.Solution, cfg Config) sokoboard.Solution {
	out := sol.Clone()
	out.MovesCount += cfg.prefix.moves + cfg.suffix.moves
	out.PushesCount += cfg.prefix.pushes + cfg.suffix.pushes
	return out
}
