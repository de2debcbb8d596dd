package vicinity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokoban-opt/vicinity/boardstore"
	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/bucketqueue"
	"github.com/sokoban-opt/vicinity/generator"
	"github.com/sokoban-opt/vicinity/geometry"
	"github.com/sokoban-opt/vicinity/sokoboard"
	"github.com/sokoban-opt/vicinity/vicinity"
)

func corridorTables(t *testing.T) *geometry.Tables {
	t.Helper()
	const width = 5
	board := sokoboard.Board{
		Width: width, Height: 1,
		Walls:       make([]bool, width),
		PlayerCells: make([]bool, width),
		BoxCells:    make([]bool, width),
	}
	for i := range board.PlayerCells {
		board.PlayerCells[i] = true
		board.BoxCells[i] = true
	}
	tables, err := geometry.NewTables(board)
	require.NoError(t, err)
	return tables
}

// TestRunFindsRendezvousOnOneBoxSidestep builds a 5-cell corridor,
// generates the vicinity of a single-box side-step, and seeds the
// backward direction exactly where the forward push lands — rendezvous
// soundness in its simplest form.
func TestRunFindsRendezvousOnOneBoxSidestep(t *testing.T) {
	tables := corridorTables(t)
	ctx := context.Background()

	seed := boxcfg.New(tables.BoxCount)
	seed.SetBox(2)
	set := boxcfg.NewBoxConfigurationSet(32, tables.BoxCount)

	gen := generator.New(tables, 1)
	require.NoError(t, gen.Generate(ctx, []generator.PlayerBoxState{{Boxes: seed}}, []int{2}, nil, nil, set))

	startIdx, ok := set.IndexOf(seed)
	require.True(t, ok)

	end := boxcfg.New(tables.BoxCount)
	end.SetBox(3)
	endIdx, ok := set.IndexOf(end)
	require.True(t, ok, "pushing the box one cell right must be within the generated vicinity")

	const secondaryMax = 64
	store := boardstore.New(set.Capacity(), tables.PlayerCount, 1, secondaryMax)

	minDelta, maxDelta := vicinity.PushesMoves.OrderDeltaBounds(secondaryMax, tables.PlayerCount)
	fq, err := bucketqueue.New(256, minDelta, maxDelta, 1)
	require.NoError(t, err)
	bq, err := bucketqueue.New(256, minDelta, maxDelta, 1)
	require.NoError(t, err)

	search := vicinity.New(tables, set, store, fq, bq, vicinity.PushesMoves, 1)

	// Player starts left of the box at position 2; pushing right lands
	// the box on 3 and the player on 2 — seed the backward plane there
	// directly so the rendezvous is immediate.
	result, err := search.Run(ctx, startIdx, 0, endIdx, []int32{2})
	require.NoError(t, err)
	require.NotEmpty(t, result.Meetings, "forward push onto the seeded backward marker must be recorded as a rendezvous")
}

func TestRunHonorsCancellation(t *testing.T) {
	tables := corridorTables(t)

	seed := boxcfg.New(tables.BoxCount)
	seed.SetBox(2)
	set := boxcfg.NewBoxConfigurationSet(32, tables.BoxCount)
	_, ok := set.Insert(seed)
	require.True(t, ok)

	const secondaryMax = 64
	store := boardstore.New(set.Capacity(), tables.PlayerCount, 1, secondaryMax)
	minDelta, maxDelta := vicinity.PushesMoves.OrderDeltaBounds(secondaryMax, tables.PlayerCount)
	fq, err := bucketqueue.New(256, minDelta, maxDelta, 1)
	require.NoError(t, err)
	bq, err := bucketqueue.New(256, minDelta, maxDelta, 1)
	require.NoError(t, err)

	search := vicinity.New(tables, set, store, fq, bq, vicinity.PushesMoves, 1)
	startIdx, _ := set.IndexOf(seed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// A canceled context must make every worker return promptly rather
	// than hang draining an empty queue; cancellation itself is not
	// surfaced as a Run error — callers treat it as an early,
	// gracefully-terminated search.
	result, err := search.Run(ctx, startIdx, 0, startIdx, []int32{0})
	require.NoError(t, err)
	require.NotNil(t, result)
}
