package game

import "errors"

// Grid は盤面全体を表します。grid[r][c] が true なら点灯しています
type Grid [][]bool

// Coord は1つのマスの位置です。ホストからの入力では盤外を指すこともあります
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// State はゲームの進行状態です
type State int

const (
	StatePlaying State = iota
	StateWon           // 終端状態
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Game はホスト側で保持する1ゲーム分の状態です
type Game struct {
	Grid  Grid  // 現在の盤面
	Moves int   // 押した回数
	State State // Playing または Won
}

var (
	// ErrMalformedCoord は "row-col" 形式として読めない座標文字列です
	ErrMalformedCoord = errors.New("malformed coordinate")
	// ErrGameOver はクリア済みのゲームへの操作です
	ErrGameOver = errors.New("game already won")
)
