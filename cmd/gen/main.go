package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"lightsout/game"
	"lightsout/solver"
)

// CSVヘッダー: 盤面サイズ・初期点灯数・解けるか・手数・手数が最小か
var header = []string{"rows", "cols", "lit_probability", "lit", "solvable", "presses", "minimal", "board"}

func main() {
	games := flag.Int("games", 1000, "boards per size")
	maxSize := flag.Int("max-size", 7, "largest square board")
	prob := flag.Float64("lit-probability", 0.5, "chance each cell starts lit")
	filename := flag.String("out", "dataset.csv", "output CSV")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	file, err := os.Create(*filename)
	if err != nil {
		slog.Error("create output", "file", *filename, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	rng := rand.New(rand.NewSource(*seed))
	slog.Info("generating", "games", *games, "max_size", *maxSize, "seed", *seed)

	if err := writeDataset(csv.NewWriter(file), os.Stdout, *games, *maxSize, *prob, rng); err != nil {
		slog.Error("write csv", "file", *filename, "error", err)
		os.Exit(1)
	}
	fmt.Println("Done! Saved to", *filename)
}

// writeDataset は 1x1 から maxSize x maxSize までの盤面を games 個ずつ生成して書き出し、
// サイズごとの解ける割合を summary に出します
func writeDataset(writer *csv.Writer, summary io.Writer, games, maxSize int, prob float64, rng *rand.Rand) error {
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for size := 1; size <= maxSize; size++ {
		solvable := 0
		for i := 0; i < games; i++ {
			ok, err := recordBoard(writer, game.NewGrid(size, size, prob, rng), prob)
			if err != nil {
				return fmt.Errorf("record %dx%d board: %w", size, size, err)
			}
			if ok {
				solvable++
			}
		}
		fmt.Fprintf(summary, "%dx%d: %d/%d solvable\n", size, size, solvable, games)
	}

	writer.Flush()
	return writer.Error()
}

// recordBoard は盤面を解いて1行書き出し、解けたかを返します
// 解けない盤面の presses は -1
func recordBoard(writer *csv.Writer, g game.Grid, prob float64) (bool, error) {
	presses, minimal := -1, false
	plan, err := solver.New(g).Plan()
	solvable := err == nil
	if solvable {
		presses, minimal = plan.Count(), plan.Minimal
	}

	err = writer.Write([]string{
		strconv.Itoa(g.Rows()),
		strconv.Itoa(g.Cols()),
		strconv.FormatFloat(prob, 'f', -1, 64),
		strconv.Itoa(g.LitCount()),
		strconv.FormatBool(solvable),
		strconv.Itoa(presses),
		strconv.FormatBool(minimal),
		g.String(),
	})
	return solvable, err
}
