package generator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/generator"
	"github.com/sokoban-opt/vicinity/geometry"
	"github.com/sokoban-opt/vicinity/sokoboard"
)

// boardFromRows builds a sokoboard.Board from an ASCII layout: '#'
// wall, '.' player+box reachable floor, blank not reachable at all.
func boardFromRows(rows []string) sokoboard.Board {
	h := len(rows)
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	b := sokoboard.Board{
		Width: w, Height: h,
		Walls:       make([]bool, w*h),
		PlayerCells: make([]bool, w*h),
		BoxCells:    make([]bool, w*h),
	}
	for y, row := range rows {
		for x, c := range row {
			idx := b.Index(x, y)
			switch c {
			case '#':
				b.Walls[idx] = true
			case '.':
				b.PlayerCells[idx] = true
				b.BoxCells[idx] = true
			case 'p':
				b.PlayerCells[idx] = true
			}
		}
	}
	return b
}

// a 1x5 corridor: a single box can shuffle freely along it.
func corridorTables(t *testing.T) *geometry.Tables {
	t.Helper()
	board := boardFromRows([]string{".....", })
	tables, err := geometry.NewTables(board)
	require.NoError(t, err)
	return tables
}

func TestGenerateInsertsSeedEvenWithEmptyVicinity(t *testing.T) {
	tables := corridorTables(t)
	g := generator.New(tables, 2)

	seed := boxcfg.New(tables.BoxCount)
	seed.SetBox(0)
	set := boxcfg.NewBoxConfigurationSet(16, tables.BoxCount)

	err := g.Generate(context.Background(), []generator.PlayerBoxState{{Boxes: seed}}, nil, nil, nil, set)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
}

func TestGenerateExploresCorridorWithinHorizon(t *testing.T) {
	tables := corridorTables(t)
	g := generator.New(tables, 2)

	seed := boxcfg.New(tables.BoxCount)
	seed.SetBox(0) // leftmost cell
	set := boxcfg.NewBoxConfigurationSet(16, tables.BoxCount)

	err := g.Generate(context.Background(), []generator.PlayerBoxState{{Boxes: seed}}, []int{2}, nil, nil, set)
	require.NoError(t, err)

	// Box can reach positions 0 (seed), 1, 2 within two box-neighbor
	// steps of position 0 in a 5-cell corridor.
	require.Equal(t, 3, set.Len())

	for _, pos := range []int{0, 1, 2} {
		cfg := boxcfg.New(tables.BoxCount)
		cfg.SetBox(pos)
		_, ok := set.IndexOf(cfg)
		require.True(t, ok, "position %d should be reachable", pos)
	}
}

// deadlockAll flags every configuration as a deadlock, so nothing
// beyond the seed should ever be inserted.
type deadlockAll struct{}

func (deadlockAll) IsDeadlock(boxcfg.BoxConfiguration) bool { return true }

func TestGenerateSkipsOracleFlaggedConfigurations(t *testing.T) {
	tables := corridorTables(t)
	g := generator.New(tables, 1)

	seed := boxcfg.New(tables.BoxCount)
	seed.SetBox(0)
	set := boxcfg.NewBoxConfigurationSet(16, tables.BoxCount)

	err := g.Generate(context.Background(), []generator.PlayerBoxState{{Boxes: seed}}, []int{2}, nil, deadlockAll{}, set)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len(), "only the seed, inserted before the oracle is consulted, should remain")
}

func TestGenerateReturnsErrSetFullWhenCapacityExhausted(t *testing.T) {
	tables := corridorTables(t)
	g := generator.New(tables, 1)

	seed := boxcfg.New(tables.BoxCount)
	seed.SetBox(0)
	set := boxcfg.NewBoxConfigurationSet(1, tables.BoxCount) // room for the seed only

	err := g.Generate(context.Background(), []generator.PlayerBoxState{{Boxes: seed}}, []int{2}, nil, nil, set)
	require.ErrorIs(t, err, generator.ErrSetFull)
}

func TestGenerateHonorsCancellation(t *testing.T) {
	tables := corridorTables(t)
	g := generator.New(tables, 1)

	seed := boxcfg.New(tables.BoxCount)
	seed.SetBox(0)
	set := boxcfg.NewBoxConfigurationSet(16, tables.BoxCount)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Generate(ctx, []generator.PlayerBoxState{{Boxes: seed}}, []int{2}, nil, nil, set)
	require.Error(t, err)
}
