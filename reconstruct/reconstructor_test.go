package reconstruct_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokoban-opt/vicinity/boardstore"
	"github.com/sokoban-opt/vicinity/boxcfg"
	"github.com/sokoban-opt/vicinity/bucketqueue"
	"github.com/sokoban-opt/vicinity/generator"
	"github.com/sokoban-opt/vicinity/geometry"
	"github.com/sokoban-opt/vicinity/reconstruct"
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

// TestReconstructRecoversOneBoxSidestep runs the same single-push
// corridor search as the vicinity package's own rendezvous test, then
// checks Reconstruct turns the resulting meeting point into the two
// concrete moves (walk right, push right) that produce it.
func TestReconstructRecoversOneBoxSidestep(t *testing.T) {
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
	require.True(t, ok)

	const secondaryMax = 64
	store := boardstore.New(set.Capacity(), tables.PlayerCount, 1, secondaryMax)
	minDelta, maxDelta := vicinity.PushesMoves.OrderDeltaBounds(secondaryMax, tables.PlayerCount)
	fq, err := bucketqueue.New(256, minDelta, maxDelta, 1)
	require.NoError(t, err)
	bq, err := bucketqueue.New(256, minDelta, maxDelta, 1)
	require.NoError(t, err)

	search := vicinity.New(tables, set, store, fq, bq, vicinity.PushesMoves, 1)
	result, err := search.Run(ctx, startIdx, 0, endIdx, []int32{2})
	require.NoError(t, err)
	require.NotEmpty(t, result.Meetings)

	rec := reconstruct.New(tables, set, store, vicinity.PushesMoves, 1)
	seedSolution := sokoboard.Solution{}
	sol, err := rec.Reconstruct(ctx, result.Meetings, seedSolution)
	require.NoError(t, err)

	require.Equal(t, 1, sol.PushesCount)
	require.Equal(t, []sokoboard.Direction{sokoboard.Right, sokoboard.Right}, sol.Moves)
	require.Equal(t, len(sol.Moves), sol.MovesCount)
}

// TestReconstructFallsBackToSeedWithoutRendezvous exercises the empty
// path: no meeting points means nothing was found, so Reconstruct
// hands back the seed solution unchanged rather than failing.
func TestReconstructFallsBackToSeedWithoutRendezvous(t *testing.T) {
	tables := corridorTables(t)
	set := boxcfg.NewBoxConfigurationSet(8, tables.BoxCount)
	store := boardstore.New(set.Capacity(), tables.PlayerCount, 1, 64)
	rec := reconstruct.New(tables, set, store, vicinity.PushesMoves, 1)

	seed := sokoboard.Solution{Moves: []sokoboard.Direction{sokoboard.Right}, MovesCount: 1, PushesCount: 1}
	sol, err := rec.Reconstruct(context.Background(), nil, seed)
	require.NoError(t, err)
	require.Equal(t, seed.Moves, sol.Moves)
}
