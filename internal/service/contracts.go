package service

import (
	"context"
	"errors"
	"time"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
)

// ErrGameNotFound is returned by every GameRepository when no game exists for an ID.
var ErrGameNotFound = errors.New("game not found")

// GameRepository persists games and their answers.
type GameRepository interface {
	Save(ctx context.Context, g *entities.Game) error
	Get(ctx context.Context, id string) (*entities.Game, error)
	// SaveAnswer stores the updated game together with the answer that changed it.
	SaveAnswer(ctx context.Context, g *entities.Game, a *entities.Answer) error
	Delete(ctx context.Context, id string) error
	// DeleteStale removes games not updated since before and returns how many were removed.
	DeleteStale(ctx context.Context, before time.Time) (int, error)
}

// QuestionSource provides the questions a game is drawn from.
type QuestionSource interface {
	GetAll() []entities.Question
}
