package generator

import (
	"context"
	"errors"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/geometry"
)

// ErrSetFull is returned when the BoxConfigurationSet reaches capacity
// mid-generation. The current step aborts; the controller is
// responsible for retrying the pass with a smaller capacity or fewer
// seeds.
var ErrSetFull = errors.New("generator: box configuration set is full")

// DeadlockOracle flags box configurations that can never lead to a
// solved board (e.g. a box wedged in a corner with no goal there).
// The generator never implements detection itself — deadlock analysis
// is an external collaborator.
type DeadlockOracle interface {
	IsDeadlock(cfg boxcfg.BoxConfiguration) bool
}

// PlayerBoxState is one push-state of a seed solution: the box
// configuration after some push, together with the player's resting
// position, used as the origin of one generation task.
type PlayerBoxState struct {
	PlayerPos int32
	Boxes     boxcfg.BoxConfiguration
}

// Generator enumerates the vicinity of a set of seed push-states.
type Generator struct {
	Tables  *geometry.Tables
	MaxCPUs int
}

// New returns a Generator bound to tables, dispatching at most maxCPUs
// concurrent seed tasks. maxCPUs < 1 is treated as 1.
func New(tables *geometry.Tables, maxCPUs int) *Generator {
	if maxCPUs < 1 {
		maxCPUs = 1
	}
	return &Generator{Tables: tables, MaxCPUs: maxCPUs}
}

// Generate enumerates every configuration reachable from each of
// pushStates by relocating up to len(vicinity) boxes, each within its
// own per-box BFS horizon vicinity[depth], and inserts every generated
// (and seed) configuration into set. relevant, when non-nil, restricts
// candidate target positions to squares relevant[pos] marks true — a
// caller-supplied pruning hint; a nil map imposes no restriction.
// oracle, when non-nil, is consulted before every insert and skips any
// configuration it flags as a deadlock.
//
// One task runs per seed on an errgroup.Group bounded by g.MaxCPUs, so
// a context cancellation or the first ErrSetFull stops every other
// in-flight task as soon as it next checks ctx.
func (g *Generator) Generate(
	ctx context.Context,
	pushStates []PlayerBoxState,
	vicinity []int,
	relevant map[int]bool,
	oracle DeadlockOracle,
	set *boxcfg.BoxConfigurationSet,
) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.MaxCPUs)

	for _, ps := range pushStates {
		ps := ps
		eg.Go(func() error {
			return g.generateFromSeed(ctx, ps.Boxes, vicinity, relevant, oracle, set)
		})
	}
	return eg.Wait()
}

func (g *Generator) generateFromSeed(
	ctx context.Context,
	seed boxcfg.BoxConfiguration,
	vicinity []int,
	relevant map[int]bool,
	oracle DeadlockOracle,
	set *boxcfg.BoxConfigurationSet,
) error {
	if _, ok := set.Insert(seed); !ok {
		return ErrSetFull
	}
	return g.expand(ctx, seed, nil, 0, vicinity, relevant, oracle, set)
}

// expand recursively relocates the (depth+1)-th chosen box, for every
// box not already chosen on this branch, over its horizon
// vicinity[depth], inserting and recursing into each resulting
// configuration until depth reaches len(vicinity).
func (g *Generator) expand(
	ctx context.Context,
	cfg boxcfg.BoxConfiguration,
	chosen []int32,
	depth int,
	vicinity []int,
	relevant map[int]bool,
	oracle DeadlockOracle,
	set *boxcfg.BoxConfigurationSet,
) error {
	if depth >= len(vicinity) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	horizon := vicinity[depth]
	for _, box := range cfg.Positions() {
		if slices.Contains(chosen, int32(box)) {
			continue
		}
		for _, target := range reachableWithinK(g.Tables, int32(box), horizon) {
			if cfg.HasBox(int(target)) {
				continue
			}
			if relevant != nil && !relevant[int(target)] {
				continue
			}

			next := cfg.Clone()
			next.MoveBox(box, int(target))
			if oracle != nil && oracle.IsDeadlock(next) {
				continue
			}

			if _, ok := set.Insert(next); !ok {
				return ErrSetFull
			}
			if err := g.expand(ctx, next, append(chosen, int32(box)), depth+1, vicinity, relevant, oracle, set); err != nil {
				return err
			}
		}
	}
	return nil
}

