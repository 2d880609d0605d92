package game

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, s string) Grid {
	t.Helper()
	g, err := ParseGrid(s)
	require.NoError(t, err)
	return g
}

func TestNewGrid_Dimensions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, size := range []struct{ rows, cols int }{{1, 1}, {3, 3}, {2, 7}, {7, 2}, {10, 10}} {
		g := NewGrid(size.rows, size.cols, 0.5, rng)
		require.Len(t, g, size.rows)
		for _, row := range g {
			assert.Len(t, row, size.cols)
		}
	}
}

func TestNewGrid_ZeroProbabilityIsWon(t *testing.T) {
	g := NewGrid(4, 5, 0, rand.New(rand.NewSource(2)))
	assert.Equal(t, 0, g.LitCount())
	assert.True(t, HasWon(g))
}

func TestNewGrid_FullProbabilityAllLit(t *testing.T) {
	g := NewGrid(4, 5, 1, rand.New(rand.NewSource(3)))
	assert.Equal(t, 20, g.LitCount())
	assert.False(t, HasWon(g))
}

func TestNewGrid_ProbabilityNotClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	assert.Equal(t, 9, NewGrid(3, 3, 2.5, rng).LitCount())
	assert.Equal(t, 0, NewGrid(3, 3, -1, rng).LitCount())
}

func TestNewGrid_DegenerateDimensions(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	assert.Empty(t, NewGrid(0, 3, 1, rng))
	assert.Empty(t, NewGrid(3, -1, 1, rng))
}

func TestNewGrid_DeterministicForSeed(t *testing.T) {
	a := NewGrid(5, 5, 0.5, rand.New(rand.NewSource(42)))
	b := NewGrid(5, 5, 0.5, rand.New(rand.NewSource(42)))
	assert.True(t, a.Equal(b))
}

func TestInitialize(t *testing.T) {
	g := Initialize(3, 4, 1)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, 12, g.LitCount())
}

func TestToggleAround_Corner(t *testing.T) {
	g := NewGrid(3, 3, 0, rand.New(rand.NewSource(1)))
	got := ToggleAround(g, Coord{0, 0})

	want := mustGrid(t, `
O O .
O . .
. . .`)
	assert.True(t, want.Equal(got), "got:\n%s", got)
	assert.Equal(t, 3, got.LitCount())
}

func TestToggleAround_Center(t *testing.T) {
	g := NewGrid(3, 3, 0, rand.New(rand.NewSource(1)))
	got := ToggleAround(g, Coord{1, 1})

	want := mustGrid(t, `
. O .
O O O
. O .`)
	assert.True(t, want.Equal(got), "got:\n%s", got)
}

func TestToggleAround_InvertsLitCells(t *testing.T) {
	g := mustGrid(t, `
O O O
O O O`)
	got := ToggleAround(g, Coord{1, 2})

	want := mustGrid(t, `
O O .
O . .`)
	assert.True(t, want.Equal(got), "got:\n%s", got)
}

func TestToggleAround_DoesNotMutateInput(t *testing.T) {
	g := NewGrid(4, 4, 0.5, rand.New(rand.NewSource(9)))
	saved := g.Clone()

	got := ToggleAround(g, Coord{2, 1})
	assert.True(t, saved.Equal(g))
	assert.False(t, got.Equal(g))

	// 返り値を書き換えても元の盤面に影響しない
	got[0][0] = !got[0][0]
	assert.True(t, saved.Equal(g))
}

func TestToggleAround_DoubleToggleCancels(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := NewGrid(5, 4, 0.5, rng)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			at := Coord{r, c}
			assert.True(t, g.Equal(ToggleAround(ToggleAround(g, at), at)), "coord %s", at)
		}
	}
}

func TestToggleAround_OutOfBounds(t *testing.T) {
	g := NewGrid(3, 3, 0, rand.New(rand.NewSource(1)))

	tests := []struct {
		name string
		at   Coord
		lit  int
	}{
		{"far away", Coord{10, 10}, 0},
		{"negative", Coord{-5, -5}, 0},
		{"row above grid", Coord{-1, 1}, 1},
		{"column left of grid", Coord{1, -1}, 1},
		{"below last row", Coord{3, 0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToggleAround(g, tt.at)
			assert.Equal(t, tt.lit, got.LitCount())
			assert.Equal(t, 3, got.Rows())
			assert.Equal(t, 3, got.Cols())
		})
	}
}

func TestToggleAround_SingleCell(t *testing.T) {
	g := Grid{{true}}
	got := ToggleAround(g, Coord{0, 0})
	assert.True(t, HasWon(got))
	assert.True(t, g[0][0])
}

func TestHasWon(t *testing.T) {
	assert.True(t, HasWon(Grid{}))
	assert.True(t, HasWon(mustGrid(t, ". . .\n. . .")))

	g := mustGrid(t, ". . .\n. . .")
	g[1][2] = true
	assert.False(t, HasWon(g))
}

func TestGrid_StringRoundTrip(t *testing.T) {
	g := NewGrid(4, 6, 0.5, rand.New(rand.NewSource(21)))
	back, err := ParseGrid(g.String())
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
}

func TestParseGrid_Errors(t *testing.T) {
	_, err := ParseGrid("O x")
	assert.Error(t, err)

	_, err = ParseGrid("O O\nO")
	assert.Error(t, err)
}

func TestGrid_Equal(t *testing.T) {
	a := mustGrid(t, "O .\n. O")
	assert.True(t, a.Equal(a.Clone()))
	assert.False(t, a.Equal(mustGrid(t, "O .")))
	assert.False(t, a.Equal(mustGrid(t, "O .\nO O")))
}

func TestGrid_DebugPrint(t *testing.T) {
	g := mustGrid(t, "O .\n. O")
	var sb strings.Builder
	g.DebugPrint(&sb)
	assert.Equal(t, "   0 1 \n0: O . \n1: . O \n", sb.String())
}
