package tui

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightsout/config"
	"lightsout/viewmodel"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func newTestModel(rows, cols int, p float64) Model {
	return New(config.BoardConfig{Rows: rows, Cols: cols, LitProbability: p}, rand.New(rand.NewSource(1)))
}

func TestModel_CursorStaysOnBoard(t *testing.T) {
	m := newTestModel(3, 3, 1)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, keyRunes("h"))
	assert.Equal(t, 0, m.Cursor().Row)
	assert.Equal(t, 0, m.Cursor().Col)

	m = send(t, m, keyRunes("j"), keyRunes("j"), keyRunes("j"), tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Cursor().Row)
	assert.Equal(t, 1, m.Cursor().Col)
}

func TestModel_PressTogglesPlus(t *testing.T) {
	m := newTestModel(3, 3, 0)
	require.True(t, m.Game().Won())

	m = newTestModel(3, 3, 1)
	m = send(t, m, keyRunes("j"), keyRunes("l"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 4, m.Game().Grid.LitCount())
	assert.Equal(t, 1, m.Game().Moves)

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 9, m.Game().Grid.LitCount())
	assert.Equal(t, 2, m.Game().Moves)
}

func TestModel_HintsSolveBoard(t *testing.T) {
	m := newTestModel(3, 3, 1)
	for i := 0; i < 9 && !m.Game().Won(); i++ {
		m = send(t, m, keyRunes("?"))
	}
	require.True(t, m.Game().Won())
	assert.Equal(t, 5, m.Game().Moves)
	assert.Contains(t, m.View(), viewmodel.WonMessage)
}

func TestModel_WonIgnoresMoves(t *testing.T) {
	m := newTestModel(1, 1, 1)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Game().Won())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, keyRunes("?"))
	assert.Equal(t, 1, m.Game().Moves)

	m = send(t, m, keyRunes("n"))
	assert.False(t, m.Game().Won())
	assert.Equal(t, 0, m.Game().Moves)
}

func TestModel_ViewShowsBoard(t *testing.T) {
	m := newTestModel(2, 3, 1)
	view := m.View()
	assert.Contains(t, view, "moves: 0")
	assert.Contains(t, view, "lit: 6")
	assert.False(t, strings.Contains(view, viewmodel.WonMessage))
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(2, 2, 1)
	next, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
