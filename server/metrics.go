package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gamesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lightsout_games_started_total",
		Help: "Number of games created",
	})

	gamesWon = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lightsout_games_won_total",
		Help: "Number of games cleared by a press",
	})

	pressesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lightsout_presses_total",
		Help: "Presses by result (ok, malformed, game_over, not_found)",
	}, []string{"result"})

	hintsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lightsout_hints_total",
		Help: "Hints by solver strategy",
	}, []string{"strategy"})

	movesToWin = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lightsout_moves_to_win",
		Help:    "Presses needed to clear a board",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lightsout_active_sessions",
		Help: "Games currently held in memory",
	})
)
