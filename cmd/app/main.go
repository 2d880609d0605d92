// Command app は Lights Out の CLI です
//
//	app serve            HTTP/JSON API を起動
//	app play             ターミナルで遊ぶ
//	app solve board.txt  盤面ファイルの解を表示
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
