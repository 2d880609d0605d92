package viewmodel

import (
	"encoding/json"

	"lightsout/game"
)

// WonMessage はクリア時に盤面の代わりに表示する文言です
const WonMessage = "You Won!"

type CellView struct {
	Coord string `json:"coord"` // "row-col"。クリック時にそのまま送り返す
	Lit   bool   `json:"lit"`
}

type GameView struct {
	ID       string       `json:"id,omitempty"`
	Cells    [][]CellView `json:"cells,omitempty"`
	Rows     int          `json:"rows"`
	Cols     int          `json:"cols"`
	Moves    int          `json:"moves"`
	LitCount int          `json:"lit_count"`
	IsWon    bool         `json:"is_won"`
	Message  string       `json:"message,omitempty"`
}

// Build は盤面の表示用データを作ります
// クリア済みならマスは含めずメッセージだけにします
func Build(id string, g *game.Game) GameView {
	view := GameView{
		ID:       id,
		Rows:     g.Grid.Rows(),
		Cols:     g.Grid.Cols(),
		Moves:    g.Moves,
		LitCount: g.Grid.LitCount(),
		IsWon:    g.Won(),
	}
	if view.IsWon {
		view.Message = WonMessage
		return view
	}

	view.Cells = make([][]CellView, view.Rows)
	for r, row := range g.Grid {
		view.Cells[r] = make([]CellView, len(row))
		for c, lit := range row {
			view.Cells[r][c] = CellView{
				Coord: game.Coord{Row: r, Col: c}.String(),
				Lit:   lit,
			}
		}
	}
	return view
}

// NewGameView は安全にJSONを返します
func NewGameView(id string, g *game.Game) string {
	if g == nil {
		return "{}"
	}
	bytes, _ := json.Marshal(Build(id, g))
	return string(bytes)
}
