// Package tui はターミナル上で遊ぶための bubbletea モデルです
//
// 盤面の状態は game パッケージの純粋関数に任せ、このパッケージはカーソル位置と
// 現在の盤面を保持してキー入力ごとに作り直すだけです
package tui

import (
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lightsout/config"
	"lightsout/game"
	"lightsout/solver"
	"lightsout/viewmodel"
)

var (
	litStyle    = lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0"))
	unlitStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("244"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	wonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// Model は bubbletea のモデルです
type Model struct {
	board config.BoardConfig
	rng   *rand.Rand

	game     *game.Game
	row, col int    // カーソル
	note     string // ヒントの結果など一行メッセージ
	quitting bool
}

// New は設定に従って最初のゲームを作ったモデルを返します
func New(board config.BoardConfig, rng *rand.Rand) Model {
	m := Model{board: board, rng: rng}
	m.game = game.NewGame(board.Rows, board.Cols, board.LitProbability, rng)
	return m
}

// Game は現在のゲームです
func (m Model) Game() *game.Game { return m.game }

// Cursor はカーソル位置を返します
func (m Model) Cursor() game.Coord { return game.Coord{Row: m.row, Col: m.col} }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "n":
		m.game = game.NewGame(m.board.Rows, m.board.Cols, m.board.LitProbability, m.rng)
		m.row, m.col = 0, 0
		m.note = ""
		return m, nil
	}

	// クリア後は新規ゲームと終了以外は受け付けない
	if m.game.Won() {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < m.game.Grid.Rows()-1 {
			m.row++
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if m.col < m.game.Grid.Cols()-1 {
			m.col++
		}
	case " ", "enter":
		m.press(m.Cursor())
	case "?":
		move := solver.New(m.game.Grid).NextMove()
		if move == nil {
			m.note = "この盤面は解けません"
			return m, nil
		}
		m.row, m.col = move.Row, move.Col
		m.note = fmt.Sprintf("hint %s (%s, あと %d 手)", move.Coord(), move.Strategy, move.Remaining)
		m.press(move.Coord())
	}
	return m, nil
}

func (m *Model) press(at game.Coord) {
	// Won のときは Update の前段で弾いているのでエラーにならない
	_, _ = m.game.Press(at)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Lights Out"))
	sb.WriteString("\n\n")

	if m.game.Won() {
		sb.WriteString(wonStyle.Render(viewmodel.WonMessage))
		sb.WriteString(fmt.Sprintf("  (%d moves)\n\n", m.game.Moves))
		sb.WriteString(helpStyle.Render("n: new game • q: quit"))
		sb.WriteString("\n")
		return sb.String()
	}

	for r, row := range m.game.Grid {
		for c, lit := range row {
			cell := unlitStyle.Render(" . ")
			if lit {
				cell = litStyle.Render(" O ")
			}
			if r == m.row && c == m.col {
				cell = cursorStyle.Inherit(unlitStyle).Render("[.]")
				if lit {
					cell = cursorStyle.Inherit(litStyle).Render("[O]")
				}
			}
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("\nmoves: %d  lit: %d\n", m.game.Moves, m.game.Grid.LitCount()))
	if m.note != "" {
		sb.WriteString(noteStyle.Render(m.note))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("←↓↑→/hjkl: move • space: press • ?: hint • n: new • q: quit"))
	sb.WriteString("\n")
	return sb.String()
}

// Run はプログラムを起動してゲーム終了まで待ちます
func Run(board config.BoardConfig, rng *rand.Rand, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(board, rng), opts...).Run()
	return err
}
