//go:build js && wasm

// Command wasm は Lights Out を WebAssembly として公開します
//
//	GOOS=js GOARCH=wasm go build -o static/lightsout.wasm ./cmd/wasm
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" static/
//
// static/ は `app serve --static static` で配信します
package main

import (
	"syscall/js"

	"lightsout/config"
	"lightsout/game"
	"lightsout/solver"
	"lightsout/viewmodel"
)

// GameSession はゲームの状態を保持・管理します
// 盤面は game.Game が持ち、押すたびに新しい盤面に置き換わります
type GameSession struct {
	game *game.Game
}

var session = &GameSession{}

// NewGame は新しいゲームを開始します
func (s *GameSession) NewGame(rows, cols int, litProbability float64) string {
	s.game = game.FromGrid(game.Initialize(rows, cols, litProbability))
	return viewmodel.NewGameView("", s.game)
}

// Press は "row-col" 形式の座標のマスを押します
func (s *GameSession) Press(coord string) string {
	if s.game == nil {
		return ""
	}
	at, err := game.ParseCoord(coord)
	if err != nil {
		println("bad coord:", err.Error())
		return viewmodel.NewGameView("", s.game)
	}
	// クリア後の操作は無視して現在の表示を返す
	_, _ = s.game.Press(at)
	return viewmodel.NewGameView("", s.game)
}

// HintStep はソルバーに1手進めさせます
func (s *GameSession) HintStep() string {
	if s.game == nil || s.game.Won() {
		return ""
	}

	move := solver.New(s.game.Grid).NextMove()
	if move == nil {
		return viewmodel.NewGameView("", s.game) // 打つ手なし
	}
	_, _ = s.game.Press(move.Coord())
	return viewmodel.NewGameView("", s.game)
}

func newGameWrapper(this js.Value, args []js.Value) interface{} {
	board := config.Default().Board

	// 引数があれば上書き (JS側から goNewGame(rows, cols, p) と呼ばれる想定)
	// 数値以外で Int/Float を呼ぶと panic するので型を確かめる
	for i := 0; i < len(args) && i < 3; i++ {
		if args[i].Type() != js.TypeNumber {
			println("goNewGame: argument", i, "is not a number:", args[i].Type().String())
			return nil
		}
	}
	if len(args) >= 2 {
		board.Rows = args[0].Int()
		board.Cols = args[1].Int()
	}
	if len(args) >= 3 {
		board.LitProbability = args[2].Float()
	}
	if err := board.Validate(); err != nil {
		println(err.Error())
		return nil
	}

	return session.NewGame(board.Rows, board.Cols, board.LitProbability)
}

func pressWrapper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return nil
	}
	return session.Press(args[0].String())
}

func hintStepWrapper(this js.Value, args []js.Value) interface{} {
	return session.HintStep()
}

func main() {
	c := make(chan struct{})

	js.Global().Set("goNewGame", js.FuncOf(newGameWrapper))
	js.Global().Set("goPress", js.FuncOf(pressWrapper))
	js.Global().Set("goHintStep", js.FuncOf(hintStepWrapper))

	println("Go WebAssembly Initialized (Lights Out)")
	<-c
}
