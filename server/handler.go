package server

import (
	"errors"
	"io/fs"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lightsout/config"
	"lightsout/game"
	"lightsout/solver"
	"lightsout/viewmodel"
)

// Server はゲームの状態とHTTPハンドラを管理します
type Server struct {
	cfg    config.Config
	games  *store
	logger *slog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	static fs.FS // nil なら静的ファイルは配信しない
}

// NewServer はサーバーインスタンスを初期化します
func NewServer(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:    cfg,
		games:  newStore(cfg.Server.MaxSessions),
		logger: logger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand は盤面生成に使う乱数源を差し替えます
func (s *Server) WithRand(rng *rand.Rand) *Server {
	s.rng = rng
	return s
}

// WithStatic は WebAssembly 版の html, js, wasm を配信するファイルシステムを設定します
func (s *Server) WithStatic(fsys fs.FS) *Server {
	s.static = fsys
	return s
}

// Router は全エンドポイントを登録した gin エンジンを返します
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.GET("/health", s.HandleHealth)
	v1.POST("/games", s.HandleNew)
	v1.GET("/games/:id", s.HandleGet)
	v1.DELETE("/games/:id", s.HandleDelete)
	v1.POST("/games/:id/press", s.HandlePress)
	v1.GET("/games/:id/hint", s.HandleHint)

	// API 以外のパスは静的ファイル (index.html など) として扱う
	if s.static != nil {
		r.NoRoute(gin.WrapH(http.FileServer(http.FS(s.static))))
	}
	return r
}

// NewGameRequest はゲーム作成APIのリクエストです。省略した項目は設定の既定値
type NewGameRequest struct {
	Rows           *int     `json:"rows" binding:"omitempty,min=1,max=64"`
	Cols           *int     `json:"cols" binding:"omitempty,min=1,max=64"`
	LitProbability *float64 `json:"lit_probability"`
}

// PressRequest はマスを押すAPIのリクエストです
type PressRequest struct {
	Coord string `json:"coord" binding:"required"`
}

// HintResponse はヒントAPIのレスポンスです
type HintResponse struct {
	Coord     string `json:"coord"`
	Strategy  string `json:"strategy"`
	Remaining int    `json:"remaining"`
	Minimal   bool   `json:"minimal"` // false なら remaining は上限
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleHealth は GET /v1/health
func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "games": s.games.count()})
}

// HandleNew はゲーム作成API (POST /v1/games)
func (s *Server) HandleNew(c *gin.Context) {
	logger := s.logger.With("handler", "HandleNew")

	var req NewGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("invalid request", "error", err)
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	board := s.cfg.Board
	if req.Rows != nil {
		board.Rows = *req.Rows
	}
	if req.Cols != nil {
		board.Cols = *req.Cols
	}
	if req.LitProbability != nil {
		board.LitProbability = *req.LitProbability
	}

	s.rngMu.Lock()
	g := game.NewGame(board.Rows, board.Cols, board.LitProbability, s.rng)
	s.rngMu.Unlock()

	id := s.games.add(g)
	gamesStarted.Inc()
	logger.Info("game started", "game_id", id, "rows", board.Rows, "cols", board.Cols,
		"lit_probability", board.LitProbability, "lit", g.Grid.LitCount())

	c.JSON(http.StatusCreated, viewmodel.Build(id, g))
}

// HandleGet は GET /v1/games/:id
func (s *Server) HandleGet(c *gin.Context) {
	id := c.Param("id")

	var view viewmodel.GameView
	err := s.games.with(id, func(g *game.Game) error {
		view = viewmodel.Build(id, g)
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleDelete は DELETE /v1/games/:id
func (s *Server) HandleDelete(c *gin.Context) {
	s.games.remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// HandlePress はマスを押すAPI (POST /v1/games/:id/press)
func (s *Server) HandlePress(c *gin.Context) {
	id := c.Param("id")
	logger := s.logger.With("handler", "HandlePress", "game_id", id)

	var req PressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pressesTotal.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	at, err := game.ParseCoord(req.Coord)
	if err != nil {
		pressesTotal.WithLabelValues("malformed").Inc()
		s.writeError(c, err)
		return
	}

	var view viewmodel.GameView
	err = s.games.with(id, func(g *game.Game) error {
		won, err := g.Press(at)
		if err != nil {
			return err
		}
		if won {
			gamesWon.Inc()
			movesToWin.Observe(float64(g.Moves))
			logger.Info("game won", "moves", g.Moves)
		}
		view = viewmodel.Build(id, g)
		return nil
	})
	switch {
	case errors.Is(err, ErrNotFound):
		pressesTotal.WithLabelValues("not_found").Inc()
	case errors.Is(err, game.ErrGameOver):
		pressesTotal.WithLabelValues("game_over").Inc()
	case err == nil:
		pressesTotal.WithLabelValues("ok").Inc()
	}
	if err != nil {
		s.writeError(c, err)
		return
	}

	logger.Debug("pressed", "coord", at.String(), "lit", view.LitCount)
	c.JSON(http.StatusOK, view)
}

// HandleHint は GET /v1/games/:id/hint
func (s *Server) HandleHint(c *gin.Context) {
	id := c.Param("id")

	var move *solver.Move
	err := s.games.with(id, func(g *game.Game) error {
		if g.Won() {
			return game.ErrGameOver
		}
		move = solver.New(g.Grid).NextMove()
		if move == nil {
			return solver.ErrUnsolvable
		}
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	hintsServed.WithLabelValues(move.Strategy).Inc()
	c.JSON(http.StatusOK, HintResponse{
		Coord:     move.Coord().String(),
		Strategy:  move.Strategy,
		Remaining: move.Remaining,
		Minimal:   move.Minimal,
	})
}

// writeError はエラーの種類に応じたステータスで返します
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrMalformedCoord):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrGameOver):
		status = http.StatusConflict
	case errors.Is(err, solver.ErrUnsolvable):
		status = http.StatusUnprocessableEntity
	default:
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}
