package solver

import (
	"errors"
	"math/bits"

	"lightsout/game"
)

// ErrUnsolvable はどう押しても全消灯にできない盤面です
var ErrUnsolvable = errors.New("board is unsolvable")

const (
	// chaseMaxCols 以下の列数なら総当たりのライトチェイスで最小手を求める
	chaseMaxCols = 12
	// nullityLimit を超える自由度では最小化をあきらめて特殊解を返す
	nullityLimit = 16
)

type Move struct {
	Row, Col  int
	Strategy  string // "Chase", "Elimination"
	Remaining int    // この手を含めた残り手数
	Minimal   bool   // false なら Remaining は最小手数ではなく上限
}

// Coord は手の位置を返します
func (m *Move) Coord() game.Coord {
	return game.Coord{Row: m.Row, Col: m.Col}
}

// Plan は盤面を消す押し方です
type Plan struct {
	Presses  [][]bool
	Strategy string
	Minimal  bool // 押す数が最小であることが保証されているか
}

// Count は押すマスの数を返します
func (p *Plan) Count() int {
	n := 0
	for _, row := range p.Presses {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

type Solver struct {
	Grid game.Grid
}

func New(g game.Grid) *Solver {
	return &Solver{Grid: g}
}

// NextMove は解の中から最初に押すマスを返します
// クリア済み、または解けない盤面なら nil
func (s *Solver) NextMove() *Move {
	if game.HasWon(s.Grid) {
		return nil
	}

	plan, err := s.Plan()
	if err != nil {
		return nil
	}

	for r, row := range plan.Presses {
		for c, p := range row {
			if p {
				return &Move{Row: r, Col: c, Strategy: plan.Strategy, Remaining: plan.Count(), Minimal: plan.Minimal}
			}
		}
	}
	return nil
}

// Plan は盤面を消すための押し方を求めます
// 列数が chaseMaxCols 以下ならライトチェイス、それより広ければ掃き出し法
func (s *Solver) Plan() (*Plan, error) {
	if s.Grid.Cols() <= chaseMaxCols {
		presses, err := NewChaseSolver(s.Grid).Solve()
		if err != nil {
			return nil, err
		}
		return &Plan{Presses: presses, Strategy: "Chase", Minimal: true}, nil
	}
	presses, minimal, err := solve(s.Grid, nullityLimit)
	if err != nil {
		return nil, err
	}
	return &Plan{Presses: presses, Strategy: "Elimination", Minimal: minimal}, nil
}

// Solve は GF(2) 上の連立方程式として盤面を解きます
// 自由度が nullityLimit 以下なら押す数が最小の解を選び、超える場合は特殊解
// (最小とは限らない) を返します
func Solve(g game.Grid) ([][]bool, error) {
	presses, _, err := solve(g, nullityLimit)
	return presses, err
}

// solve は押し方と、それが最小手であるかを返します
// 自由度が limit を超えると最小化しません
func solve(g game.Grid, limit int) ([][]bool, bool, error) {
	rows, cols := g.Rows(), g.Cols()
	n := rows * cols
	if n == 0 {
		return [][]bool{}, true, nil
	}

	// 拡大係数行列: 列 0..n-1 が押すマス、列 n が点灯状態
	m := make([]bitset, n)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			eq := newBitset(n + 1)
			for _, d := range [5][2]int{{0, 0}, {0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
				nr, nc := r+d[0], c+d[1]
				if g.InBounds(nr, nc) {
					eq.set(nr*cols + nc)
				}
			}
			if g[r][c] {
				eq.set(n)
			}
			m[r*cols+c] = eq
		}
	}

	pivotOf := make([]int, 0, n) // ランクごとのピボット列
	isPivot := make([]bool, n)
	rank := 0
	for col := 0; col < n && rank < n; col++ {
		sel := -1
		for i := rank; i < n; i++ {
			if m[i].get(col) {
				sel = i
				break
			}
		}
		if sel < 0 {
			continue
		}
		m[rank], m[sel] = m[sel], m[rank]
		for i := 0; i < n; i++ {
			if i != rank && m[i].get(col) {
				m[i].xor(m[rank])
			}
		}
		pivotOf = append(pivotOf, col)
		isPivot[col] = true
		rank++
	}

	// 0 = 1 の行があれば解なし
	for i := rank; i < n; i++ {
		if m[i].get(n) {
			return nil, false, ErrUnsolvable
		}
	}

	var free []int
	for col := 0; col < n; col++ {
		if !isPivot[col] {
			free = append(free, col)
		}
	}

	// 自由変数をすべて 0 にした特殊解
	particular := newBitset(n)
	for i, col := range pivotOf {
		if m[i].get(n) {
			particular.set(col)
		}
	}

	best := particular
	minimal := len(free) <= limit
	if len(free) > 0 && minimal {
		// 零空間の基底: 自由変数 f を 1 にしたときのピボット変数の値
		basis := make([]bitset, len(free))
		for k, f := range free {
			v := newBitset(n)
			v.set(f)
			for i, col := range pivotOf {
				if m[i].get(f) {
					v.set(col)
				}
			}
			basis[k] = v
		}

		bestWeight := particular.count()
		for mask := 1; mask < 1<<len(free); mask++ {
			cand := particular.clone()
			for k := range basis {
				if mask&(1<<k) != 0 {
					cand.xor(basis[k])
				}
			}
			if w := cand.count(); w < bestWeight {
				best, bestWeight = cand, w
			}
		}
	}

	presses := make([][]bool, rows)
	for r := 0; r < rows; r++ {
		presses[r] = make([]bool, cols)
		for c := 0; c < cols; c++ {
			presses[r][c] = best.get(r*cols + c)
		}
	}
	return presses, minimal, nil
}

// Apply は押し方をすべて盤面に適用した結果を返します
func Apply(g game.Grid, presses [][]bool) game.Grid {
	out := g
	for r, row := range presses {
		for c, p := range row {
			if p {
				out = game.ToggleAround(out, game.Coord{Row: r, Col: c})
			}
		}
	}
	return out.Clone()
}

type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int)      { b[i/64] |= 1 << (uint(i) % 64) }
func (b bitset) get(i int) bool { return b[i/64]&(1<<(uint(i)%64)) != 0 }

func (b bitset) xor(o bitset) {
	for i := range b {
		b[i] ^= o[i]
	}
}

func (b bitset) clone() bitset {
	return append(bitset(nil), b...)
}

func (b bitset) count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}
