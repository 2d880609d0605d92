package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"lightsout/config"
	"lightsout/game"
	"lightsout/server"
	"lightsout/solver"
	"lightsout/tui"
)

type rootOptions struct {
	configPath string
	logLevel   string
	rows       int
	cols       int
	litProb    float64
	addr       string
	seed       int64
	staticDir  string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "lightsout",
		Short:         "Lights Out puzzle: HTTP API, terminal game and solver",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	opts.register(root)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP/JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	serveCmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&opts.staticDir, "static", "static", "directory with index.html, main.js and the wasm build (empty = API only)")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return tui.Run(cfg.Board, newRand(opts.seed))
		},
	}

	solveCmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Print the presses that clear a board (O = lit, . = unlit; reads stdin without file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args, opts.verbose)
		},
	}
	solveCmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print the parsed board before the presses")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: "Print the built-in default config as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(config.DefaultsYAML())
			return err
		},
	})

	root.AddCommand(serveCmd, playCmd, solveCmd, configCmd)
	return root
}

func (o *rootOptions) register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVar(&o.configPath, "config", "", "YAML config file")
	fs.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn, error")
	fs.IntVar(&o.rows, "rows", 0, "board rows (overrides config)")
	fs.IntVar(&o.cols, "cols", 0, "board columns (overrides config)")
	fs.Float64Var(&o.litProb, "lit-probability", 0, "chance each cell starts lit (overrides config)")
	fs.Int64Var(&o.seed, "seed", 0, "random seed (0 = time based)")
}

// loadConfig は設定ファイルと環境変数を読み、明示されたフラグで上書きします
func loadConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Board.Rows = opts.rows
	}
	if flags.Changed("cols") {
		cfg.Board.Cols = opts.cols
	}
	if flags.Changed("lit-probability") {
		cfg.Board.LitProbability = opts.litProb
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = opts.addr
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// newLogger は端末なら読みやすいテキスト、それ以外は JSON で出力します
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	hopts := &slog.HandlerOptions{Level: lvl}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return slog.New(slog.NewTextHandler(w, hopts))
	}
	return slog.New(slog.NewJSONHandler(w, hopts))
}

// newServer は API サーバーを作り、静的ファイルのディレクトリがあれば配信対象にします
func newServer(cfg config.Config, opts *rootOptions, logger *slog.Logger) *server.Server {
	srv := server.NewServer(cfg, logger).WithRand(newRand(opts.seed))
	if opts.staticDir == "" {
		return srv
	}
	if info, err := os.Stat(opts.staticDir); err != nil || !info.IsDir() {
		logger.Warn("static directory not found, serving API only", "dir", opts.staticDir)
		return srv
	}
	logger.Info("serving static files", "dir", opts.staticDir)
	return srv.WithStatic(os.DirFS(opts.staticDir))
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, opts.logLevel)
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newServer(cfg, opts, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.Server.Addr,
			"rows", cfg.Board.Rows, "cols", cfg.Board.Cols, "lit_probability", cfg.Board.LitProbability)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func runSolve(cmd *cobra.Command, args []string, verbose bool) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	g, err := game.ParseGrid(string(data))
	if err != nil {
		return err
	}
	if g.Rows() > config.MaxDimension || g.Cols() > config.MaxDimension {
		return fmt.Errorf("board %dx%d exceeds %dx%d", g.Rows(), g.Cols(), config.MaxDimension, config.MaxDimension)
	}

	out := cmd.OutOrStdout()
	if verbose {
		g.DebugPrint(out)
		fmt.Fprintln(out)
	}

	plan, err := solver.New(g).Plan()
	if err != nil {
		return err
	}

	for r, row := range plan.Presses {
		for c, p := range row {
			if p {
				fmt.Fprintln(out, game.Coord{Row: r, Col: c})
			}
		}
	}
	bound := "minimal"
	if !plan.Minimal {
		bound = "upper bound"
	}
	fmt.Fprintf(out, "# %d presses (%s, %s)\n", plan.Count(), plan.Strategy, bound)
	return nil
}
