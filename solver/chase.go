package solver

import (
	"lightsout/game"
)

// ChaseSolver はライトチェイスで解く構造体
// 1行目の押し方を総当たりし、2行目以降は真上が点灯しているマスを押して消していく
type ChaseSolver struct {
	Grid game.Grid
}

func NewChaseSolver(g game.Grid) *ChaseSolver {
	return &ChaseSolver{Grid: g}
}

// Solve は押す数が最小の押し方を返します。解がなければ ErrUnsolvable
func (cs *ChaseSolver) Solve() ([][]bool, error) {
	rows, cols := cs.Grid.Rows(), cs.Grid.Cols()
	if rows == 0 {
		return [][]bool{}, nil
	}

	var best [][]bool
	bestCount := -1

	work := make([][]bool, rows)
	presses := make([][]bool, rows)
	for r := range work {
		work[r] = make([]bool, cols)
		presses[r] = make([]bool, cols)
	}

	for mask := 0; mask < 1<<cols; mask++ {
		for r := range work {
			copy(work[r], cs.Grid[r])
			clear(presses[r])
		}
		count := 0

		for c := 0; c < cols; c++ {
			if mask&(1<<c) != 0 {
				cs.press(work, presses, 0, c)
				count++
			}
		}
		for r := 1; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if work[r-1][c] {
					cs.press(work, presses, r, c)
					count++
				}
			}
		}

		if !lastRowDark(work) {
			continue
		}
		if bestCount < 0 || count < bestCount {
			bestCount = count
			best = copyPresses(presses)
		}
	}

	if best == nil {
		return nil, ErrUnsolvable
	}
	return best, nil
}

// press は作業用の盤面を直接書き換えて十字5マスを反転します
func (cs *ChaseSolver) press(work, presses [][]bool, r, c int) {
	presses[r][c] = !presses[r][c]
	for _, d := range [5][2]int{{0, 0}, {0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		nr, nc := r+d[0], c+d[1]
		if nr >= 0 && nr < len(work) && nc >= 0 && nc < len(work[nr]) {
			work[nr][nc] = !work[nr][nc]
		}
	}
}

func lastRowDark(work [][]bool) bool {
	for _, lit := range work[len(work)-1] {
		if lit {
			return false
		}
	}
	return true
}

func copyPresses(p [][]bool) [][]bool {
	out := make([][]bool, len(p))
	for r := range p {
		out[r] = append([]bool(nil), p[r]...)
	}
	return out
}
