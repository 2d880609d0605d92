package game

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"
)

// Initialize は時刻で初期化した乱数源を使って盤面を作ります
func Initialize(rows, cols int, litProbability float64) Grid {
	return NewGrid(rows, cols, litProbability, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewGrid は rows x cols の盤面を作り、各マスを確率 litProbability で点灯させます
// litProbability は丸めません。1 以上なら全点灯、0 以下なら全消灯になります
func NewGrid(rows, cols int, litProbability float64, rng *rand.Rand) Grid {
	if rows <= 0 || cols <= 0 {
		return Grid{}
	}

	grid := make(Grid, rows)
	for r := 0; r < rows; r++ {
		grid[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			grid[r][c] = rng.Float64() < litProbability
		}
	}
	return grid
}

// plus は押したマスと上下左右の相対位置です
var plus = [5]Coord{{0, 0}, {0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// ToggleAround は at を中心とした十字5マスを反転した新しい盤面を返します
// 盤外のマスは無視します。引数の盤面は変更しません
func ToggleAround(g Grid, at Coord) Grid {
	next := g.Clone()
	for _, d := range plus {
		r, c := at.Row+d.Row, at.Col+d.Col
		if next.InBounds(r, c) {
			next[r][c] = !next[r][c]
		}
	}
	return next
}

// HasWon はすべてのマスが消灯していれば true を返します
func HasWon(g Grid) bool {
	for _, row := range g {
		for _, lit := range row {
			if lit {
				return false
			}
		}
	}
	return true
}

// Rows は行数を返します
func (g Grid) Rows() int { return len(g) }

// Cols は列数を返します
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBounds は (r, c) が盤内かどうかを返します
func (g Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.Rows() && c >= 0 && c < g.Cols()
}

// Clone は行ごとにコピーした独立な盤面を返します
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = append([]bool(nil), row...)
	}
	return out
}

// Equal は形と中身が同じなら true
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(other[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}

// LitCount は点灯しているマスの数を返します
func (g Grid) LitCount() int {
	n := 0
	for _, row := range g {
		for _, lit := range row {
			if lit {
				n++
			}
		}
	}
	return n
}

// String は盤面をテキストにします。点灯は「O」、消灯は「.」
func (g Grid) String() string {
	var sb strings.Builder
	for r, row := range g {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, lit := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			if lit {
				sb.WriteByte('O')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseGrid は String の出力を盤面に戻します。空白は読み飛ばします
func ParseGrid(s string) (Grid, error) {
	var grid Grid
	for i, line := range strings.Split(strings.TrimSpace(s), "\n") {
		line = strings.Join(strings.Fields(line), "")
		if line == "" {
			continue
		}
		row := make([]bool, 0, len(line))
		for _, ch := range line {
			switch ch {
			case 'O':
				row = append(row, true)
			case '.':
				row = append(row, false)
			default:
				return nil, fmt.Errorf("parse grid: line %d: unexpected %q", i+1, ch)
			}
		}
		if len(grid) > 0 && len(row) != len(grid[0]) {
			return nil, fmt.Errorf("parse grid: line %d: want %d cells, got %d", i+1, len(grid[0]), len(row))
		}
		grid = append(grid, row)
	}
	return grid, nil
}

// DebugPrint は現在の盤面を行番号・列番号つきで w に書き出します
func (g Grid) DebugPrint(w io.Writer) {
	fmt.Fprint(w, "   ")
	for c := 0; c < g.Cols(); c++ {
		fmt.Fprintf(w, "%d ", c)
	}
	fmt.Fprintln(w)

	for r, row := range g {
		fmt.Fprintf(w, "%d: ", r)
		for _, lit := range row {
			if lit {
				fmt.Fprint(w, "O ")
			} else {
				fmt.Fprint(w, ". ")
			}
		}
		fmt.Fprintln(w)
	}
}
