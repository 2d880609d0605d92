package server

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"lightsout/game"
)

// ErrNotFound は存在しないゲームIDです
var ErrNotFound = errors.New("game not found")

// store はゲームをメモリ上で管理します。上限を超えたら古い順に捨てます
type store struct {
	mu    sync.Mutex
	max   int
	games map[string]*game.Game
	order []string // 作成順
}

func newStore(max int) *store {
	return &store{max: max, games: make(map[string]*game.Game)}
}

// add はゲームを登録してIDを返します
func (s *store) add(g *game.Game) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.games[id] = g
	s.order = append(s.order, id)

	for len(s.games) > s.max && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.games, oldest)
	}
	activeSessions.Set(float64(len(s.games)))
	return id
}

// with はロックを取った状態で fn にゲームを渡します
func (s *store) with(id string, fn func(*game.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[id]
	if !ok {
		return ErrNotFound
	}
	return fn(g)
}

func (s *store) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[id]; !ok {
		return
	}
	delete(s.games, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	activeSessions.Set(float64(len(s.games)))
}

func (s *store) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}
