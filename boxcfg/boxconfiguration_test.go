package boxcfg_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokoban-opt/vicinity/boxcfg"
)

func TestBoxConfigurationSetClearHasBox(t *testing.T) {
	c := boxcfg.New(8)
	require.False(t, c.HasBox(3))
	c.SetBox(3)
	require.True(t, c.HasBox(3))
	c.ClearBox(3)
	require.False(t, c.HasBox(3))
}

func TestBoxConfigurationMoveBox(t *testing.T) {
	c := boxcfg.New(8)
	c.SetBox(2)
	c.MoveBox(2, 5)
	require.False(t, c.HasBox(2))
	require.True(t, c.HasBox(5))
}

func TestBoxConfigurationEqualAndHash(t *testing.T) {
	a := boxcfg.New(10)
	b := boxcfg.New(10)
	a.SetBox(1)
	a.SetBox(4)
	b.SetBox(4)
	b.SetBox(1)

	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())

	b.SetBox(7)
	require.False(t, a.Equal(b))
}

func TestBoxConfigurationCloneIsIndependent(t *testing.T) {
	a := boxcfg.New(4)
	a.SetBox(1)
	clone := a.Clone()
	clone.SetBox(2)
	require.False(t, a.HasBox(2))
	require.True(t, clone.HasBox(2))
}

func TestBoxConfigurationCopyInto(t *testing.T) {
	src := boxcfg.New(4)
	src.SetBox(0)
	src.SetBox(3)
	dst := boxcfg.New(4)
	dst.SetBox(1)

	src.CopyInto(dst)
	require.True(t, dst.HasBox(0))
	require.True(t, dst.HasBox(3))
	require.False(t, dst.HasBox(1))
}
