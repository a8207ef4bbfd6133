package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
)

var ErrGameOver = errors.New("game is over")

// GameService implements the game rules: prize ladder, safe levels and the
// answer check.
type GameService struct {
	games    GameRepository
	selector *QuestionSelector
	logger   *zap.Logger
}

// NewGameService creates a new GameService.
func NewGameService(games GameRepository, selector *QuestionSelector, logger *zap.Logger) *GameService {
	return &GameService{
		games:    games,
		selector: selector,
		logger:   logger,
	}
}

// Start creates and persists a new game with freshly shuffled questions.
func (s *GameService) Start(ctx context.Context) (*entities.Game, error) {
	questions := s.selector.Select(entities.MaxLevels)
	if len(questions) == 0 {
		return nil, errors.New("no questions available")
	}

	game := entities.NewGame(uuid.NewString(), questions)
	if err := s.games.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}

	s.logger.Info("game started",
		zap.String("game_id", game.ID),
		zap.Int("levels", game.Levels()),
	)

	return game, nil
}

// Get returns the game with the given ID.
func (s *GameService) Get(ctx context.Context, gameID string) (*entities.Game, error) {
	return s.games.Get(ctx, gameID)
}

// Page renders the current question of an active game.
func (s *GameService) Page(ctx context.Context, gameID string) (*entities.PageView, error) {
	game, err := s.activeGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	return entities.NewPageView(game), nil
}

// Check reports whether choice is correct for the current question without
// changing the game.
func (s *GameService) Check(ctx context.Context, gameID, choice string) (bool, error) {
	game, err := s.activeGame(ctx, gameID)
	if err != nil {
		return false, err
	}

	q, _ := game.Current()
	selected, err := ParseSelection(choice, q)
	if err != nil {
		return false, err
	}

	return q.IsCorrect(selected), nil
}

// Answer applies choice to the current level. A correct answer moves the game
// up the ladder, a wrong one ends it at the last safe amount.
func (s *GameService) Answer(ctx context.Context, gameID, choice string) (*entities.Game, bool, error) {
	game, err := s.activeGame(ctx, gameID)
	if err != nil {
		return nil, false, err
	}

	q, _ := game.Current()
	selected, err := ParseSelection(choice, q)
	if err != nil {
		return nil, false, err
	}

	correct := q.IsCorrect(selected)
	answer := entities.NewAnswer(game, selected, correct)

	if correct {
		game.Advance()
	} else {
		game.Lose()
	}

	if err := s.games.SaveAnswer(ctx, game, answer); err != nil {
		return nil, false, fmt.Errorf("save answer: %w", err)
	}

	s.logger.Info("answer recorded",
		zap.String("game_id", game.ID),
		zap.Int("level", answer.Level),
		zap.Bool("correct", correct),
		zap.Int64("winnings", game.Winnings),
		zap.String("status", game.Status),
	)

	return game, correct, nil
}

// Quit ends an active game keeping the current winnings.
func (s *GameService) Quit(ctx context.Context, gameID string) (*entities.Game, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	game.Quit()
	if err := s.games.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}

	return game, nil
}

// Result builds the final screen and discards the game. Unknown games get
// zero winnings and the fallback status.
func (s *GameService) Result(ctx context.Context, gameID, fallbackStatus string) (*entities.ResultView, error) {
	if fallbackStatus == "" {
		fallbackStatus = entities.GameQuit
	}

	result := &entities.ResultView{Status: fallbackStatus}
	if gameID == "" {
		return result, nil
	}

	game, err := s.games.Get(ctx, gameID)
	if errors.Is(err, ErrGameNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	result.Winnings = game.Winnings
	if !game.IsActive() {
		result.Status = game.Status
	}

	if err := s.games.Delete(ctx, gameID); err != nil {
		return nil, fmt.Errorf("delete game: %w", err)
	}

	s.logger.Info("game finished",
		zap.String("game_id", gameID),
		zap.String("status", result.Status),
		zap.Int64("winnings", result.Winnings),
	)

	return result, nil
}

func (s *GameService) activeGame(ctx context.Context, gameID string) (*entities.Game, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if !game.IsActive() || game.Finished() {
		return nil, ErrGameOver
	}

	return game, nil
}
