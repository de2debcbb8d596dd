package reconstruct

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/sokoban-opt/vicinity/boardstore"
	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/geometry"
	"github.com/sokoban-opt/vicinity/sokoboard"
	"github.com/sokoban-opt/vicinity/vicinity"
)

// Reconstructor turns the rendezvous points a vicinity.Search found
// into a concrete sokoboard.Solution. Each rendezvous is walked
// independently and in parallel; the best complete result wins a
// lock-free race, mirroring how the search itself lets many
// goroutines improve a shared best-so-far without a central lock.
type Reconstructor struct {
	Tables    *geometry.Tables
	Set       *boxcfg.BoxConfigurationSet
	Store     *boardstore.Storage
	Objective vicinity.Objective
	MaxCPUs   int
}

// New constructs a Reconstructor bound to the same tables, set, store
// and objective a vicinity.Search was run with.
func New(tables *geometry.Tables, set *boxcfg.BoxConfigurationSet, store *boardstore.Storage, objective vicinity.Objective, maxCPUs int) *Reconstructor {
	if maxCPUs < 1 {
		maxCPUs = 1
	}
	return &Reconstructor{Tables: tables, Set: set, Store: store, Objective: objective, MaxCPUs: maxCPUs}
}

// Reconstruct walks every rendezvous point back to the search's start
// and forward to its end, keeping the best resulting solution under
// the controller's comparison rule. When no rendezvous yields a
// complete, consistent path — which can happen since the walk's
// per-step consistency check is a sound but not complete predecessor
// filter — it falls back to returning a clone of seed unmodified, the
// same solution the search started improving on.
func (r *Reconstructor) Reconstruct(ctx context.Context, rendezvous []vicinity.MeetingPoint, seed sokoboard.Solution) (sokoboard.Solution, error) {
	if len(rendezvous) == 0 {
		return seed.Clone(), nil
	}

	var best atomic.Pointer[sokoboard.Solution]
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.MaxCPUs)

	for _, mp := range rendezvous {
		mp := mp
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			sol, ok := r.reconstructOne(mp)
			if !ok {
				return nil
			}
			for {
				cur := best.Load()
				if cur != nil && !better(sol, *cur) {
					return nil
				}
				if best.CompareAndSwap(cur, &sol) {
					return nil
				}
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return sokoboard.Solution{}, err
	}

	if got := best.Load(); got != nil {
		return *got, nil
	}
	return seed.Clone(), nil
}

func (r *Reconstructor) reconstructOne(mp vicinity.MeetingPoint) (sokoboard.Solution, bool) {
	backHops, rendezvousBound, err := walkBackwardHalf(r.Tables, r.Set, r.Store, r.Objective, mp.CfgIndex, mp.PlayerPos, mp.AxisBit)
	if err != nil {
		return sokoboard.Solution{}, false
	}
	fwdHops, endBound, err := walkForwardHalf(r.Tables, r.Set, r.Store, r.Objective, mp.CfgIndex, mp.PlayerPos, mp.AxisBit)
	if err != nil {
		return sokoboard.Solution{}, false
	}

	moves := halfMoves(r.Tables, r.Set, backHops, rendezvousBound)
	moves = append(moves, halfMoves(r.Tables, r.Set, fwdHops, endBound)...)

	sol := sokoboard.Solution{Moves: moves, MovesCount: len(moves)}
	sol.PushesCount = len(backHops) + len(fwdHops)

	first := true
	countHop := func(h hop) {
		if h.boxChanged {
			sol.BoxChanges++
		}
		if h.lineChanged {
			sol.BoxLines++
		}
		if first || h.walkDist > 0 {
			sol.PushingSessions++
		}
		first = false
	}
	for _, h := range backHops {
		countHop(h)
	}
	for _, h := range fwdHops {
		countHop(h)
	}
	return sol, true
}

// better implements the controller's solution ordering: fewer pushes
// wins, ties broken by fewer moves. Callers that reconstruct under a
// different primary objective are expected to resort afterward —
// Reconstruct itself only needs a total order to pick one winner among
// otherwise-equivalent rendezvous.
func better(a, b sokoboard.Solution) bool {
	if a.PushesCount != b.PushesCount {
		return a.PushesCount < b.PushesCount
	}
	return a.MovesCount < b.MovesCount
}
