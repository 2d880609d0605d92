package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGame_PressUntilWon(t *testing.T) {
	gm := FromGrid(mustGrid(t, `
. O .
O O O
. O .`))
	require.Equal(t, StatePlaying, gm.State)

	won, err := gm.Press(Coord{1, 1})
	require.NoError(t, err)
	assert.True(t, won)
	assert.True(t, gm.Won())
	assert.Equal(t, 1, gm.Moves)

	_, err = gm.Press(Coord{0, 0})
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 1, gm.Moves)
}

func TestGame_PressNotWinning(t *testing.T) {
	gm := NewGame(3, 3, 1, rand.New(rand.NewSource(1)))
	won, err := gm.Press(Coord{0, 0})
	require.NoError(t, err)
	assert.False(t, won)
	assert.Equal(t, StatePlaying, gm.State)
	assert.Equal(t, 6, gm.Grid.LitCount())
}

func TestGame_OutOfBoundsPressCountsAsMove(t *testing.T) {
	gm := NewGame(3, 3, 1, rand.New(rand.NewSource(1)))
	won, err := gm.Press(Coord{-4, 9})
	require.NoError(t, err)
	assert.False(t, won)
	assert.Equal(t, 1, gm.Moves)
	assert.Equal(t, 9, gm.Grid.LitCount())
}

func TestNewGame_DarkBoardStartsWon(t *testing.T) {
	gm := NewGame(3, 3, 0, rand.New(rand.NewSource(1)))
	assert.True(t, gm.Won())
	assert.Equal(t, "won", gm.State.String())
}

func TestFromGrid_CopiesInput(t *testing.T) {
	g := mustGrid(t, "O O\nO O")
	gm := FromGrid(g)
	_, err := gm.Press(Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 4, g.LitCount())
}

func TestGame_Snapshot(t *testing.T) {
	gm := NewGame(2, 2, 1, rand.New(rand.NewSource(1)))
	snap := gm.Snapshot()
	_, err := gm.Press(Coord{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Grid.LitCount())
	assert.Equal(t, 0, snap.Moves)
}
