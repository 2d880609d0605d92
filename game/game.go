package game

import "math/rand"

// NewGame は新しい盤面でゲームを始めます
// 最初から全消灯の盤面だった場合はその時点でクリア扱いです
func NewGame(rows, cols int, litProbability float64, rng *rand.Rand) *Game {
	return FromGrid(NewGrid(rows, cols, litProbability, rng))
}

// FromGrid は既存の盤面からゲームを作ります。盤面はコピーして持ちます
func FromGrid(g Grid) *Game {
	gm := &Game{Grid: g.Clone()}
	if HasWon(gm.Grid) {
		gm.State = StateWon
	}
	return gm
}

// Press は at のマスを押します
// 戻り値: この手でクリアしたら true。クリア後の操作は ErrGameOver
func (gm *Game) Press(at Coord) (bool, error) {
	if gm.State == StateWon {
		return false, ErrGameOver
	}

	gm.Grid = ToggleAround(gm.Grid, at)
	gm.Moves++

	// 点灯数を持ち回らず毎回全体を調べる
	if HasWon(gm.Grid) {
		gm.State = StateWon
		return true, nil
	}
	return false, nil
}

// Won はクリア済みなら true
func (gm *Game) Won() bool {
	return gm.State == StateWon
}

// Snapshot は盤面を複製したコピーを返します
func (gm *Game) Snapshot() Game {
	return Game{Grid: gm.Grid.Clone(), Moves: gm.Moves, State: gm.State}
}
