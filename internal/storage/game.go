package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
	"github.com/aliskhannn/crorepati-bot/internal/service"
)

// GameStorage provides in-memory storage for games by session ID.
type GameStorage struct {
	mu      sync.RWMutex
	games   map[string]*entities.Game
	answers map[string][]entities.Answer
}

// NewGameStorage creates a new GameStorage.
func NewGameStorage() *GameStorage {
	return &GameStorage{
		games:   make(map[string]*entities.Game),
		answers: make(map[string][]entities.Answer),
	}
}

// Save stores a copy of the game.
func (s *GameStorage) Save(_ context.Context, g *entities.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = cloneGame(g)
	return nil
}

// Get returns a copy of the game with the given ID.
func (s *GameStorage) Get(_ context.Context, id string) (*entities.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return nil, service.ErrGameNotFound
	}
	return cloneGame(g), nil
}

// SaveAnswer stores the game and appends the answer under one lock.
func (s *GameStorage) SaveAnswer(_ context.Context, g *entities.Game, a *entities.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[g.ID]; !ok {
		return service.ErrGameNotFound
	}

	s.games[g.ID] = cloneGame(g)
	s.answers[g.ID] = append(s.answers[g.ID], *a)
	return nil
}

// Answers returns the answers recorded for a game.
func (s *GameStorage) Answers(id string) []entities.Answer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Answer(nil), s.answers[id]...)
}

// Delete removes the game and its answers.
func (s *GameStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	delete(s.answers, id)
	return nil
}

// DeleteStale removes games last updated before the given time.
func (s *GameStorage) DeleteStale(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, g := range s.games {
		if g.UpdatedAt.Before(before) {
			delete(s.games, id)
			delete(s.answers, id)
			n++
		}
	}
	return n, nil
}

func cloneGame(g *entities.Game) *entities.Game {
	c := *g
	c.Questions = make([]entities.Question, len(g.Questions))
	for i, q := range g.Questions {
		q.Options = append([]string(nil), q.Options...)
		c.Questions[i] = q
	}
	return &c
}
