package game

import (
	"fmt"
	"strconv"
	"strings"
)

// String は "row-col" 形式の文字列を返します
func (c Coord) String() string {
	return strconv.Itoa(c.Row) + "-" + strconv.Itoa(c.Col)
}

// ParseCoord は "row-col" 形式の文字列を読みます
// 負の数も受け付けます（"-1-0", "0--1", "-1--1"）。盤外かどうかは判定しません
func ParseCoord(s string) (Coord, error) {
	// 先頭の '-' は符号なので区切りの探索は2文字目から
	if len(s) < 3 {
		return Coord{}, fmt.Errorf("%w: %q", ErrMalformedCoord, s)
	}
	i := strings.IndexByte(s[1:], '-')
	if i < 0 {
		return Coord{}, fmt.Errorf("%w: %q", ErrMalformedCoord, s)
	}
	i++

	row, err := strconv.Atoi(s[:i])
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q: row: %v", ErrMalformedCoord, s, err)
	}
	col, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %q: col: %v", ErrMalformedCoord, s, err)
	}
	return Coord{Row: row, Col: col}, nil
}
