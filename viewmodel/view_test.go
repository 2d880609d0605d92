package viewmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightsout/game"
)

func TestBuild_Playing(t *testing.T) {
	g, err := game.ParseGrid("O .\n. O\nO O")
	require.NoError(t, err)

	view := Build("abc", game.FromGrid(g))
	assert.Equal(t, "abc", view.ID)
	assert.Equal(t, 3, view.Rows)
	assert.Equal(t, 2, view.Cols)
	assert.Equal(t, 4, view.LitCount)
	assert.False(t, view.IsWon)
	assert.Empty(t, view.Message)

	require.Len(t, view.Cells, 3)
	assert.Equal(t, CellView{Coord: "2-1", Lit: true}, view.Cells[2][1])
	assert.Equal(t, CellView{Coord: "0-1", Lit: false}, view.Cells[0][1])
}

func TestBuild_WonHidesBoard(t *testing.T) {
	g, err := game.ParseGrid(". O .\nO O O\n. O .")
	require.NoError(t, err)
	gm := game.FromGrid(g)
	_, err = gm.Press(game.Coord{Row: 1, Col: 1})
	require.NoError(t, err)

	view := Build("", gm)
	assert.True(t, view.IsWon)
	assert.Equal(t, WonMessage, view.Message)
	assert.Nil(t, view.Cells)
	assert.Equal(t, 1, view.Moves)
}

func TestNewGameView_JSON(t *testing.T) {
	assert.Equal(t, "{}", NewGameView("x", nil))

	g, err := game.ParseGrid("O")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(NewGameView("id-1", game.FromGrid(g))), &decoded))
	assert.Equal(t, "id-1", decoded["id"])
	assert.Equal(t, false, decoded["is_won"])
	assert.Contains(t, decoded, "cells")
}
