package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
	"github.com/aliskhannn/crorepati-bot/internal/infra/postgres"
	"github.com/aliskhannn/crorepati-bot/internal/service"
)

// TxRunner runs a function inside a transaction.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx postgres.DBTX) error) error
}

// GameRepository provides access to games and their answers in the database.
type GameRepository struct {
	db postgres.DBTX
	tx TxRunner
}

// NewGameRepository creates a new GameRepository.
func NewGameRepository(db postgres.DBTX, tx TxRunner) *GameRepository {
	return &GameRepository{db: db, tx: tx}
}

// Save inserts a new game or overwrites an existing one.
func (r *GameRepository) Save(ctx context.Context, g *entities.Game) error {
	questions, err := json.Marshal(g.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	query := `
		INSERT INTO games (id, questions, level, winnings, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			level = EXCLUDED.level,
			winnings = EXCLUDED.winnings,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.Exec(
		ctx,
		query,
		g.ID,
		string(questions),
		g.Level,
		g.Winnings,
		g.Status,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	return nil
}

// Get retrieves a game by its ID.
func (r *GameRepository) Get(ctx context.Context, id string) (*entities.Game, error) {
	query := `
		SELECT id, questions, level, winnings, status, created_at, updated_at
		FROM games
		WHERE id = $1
	`

	var (
		g         entities.Game
		questions []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&questions,
		&g.Level,
		&g.Winnings,
		&g.Status,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrGameNotFound
		}
		return nil, fmt.Errorf("get game: %w", err)
	}

	if err := json.Unmarshal(questions, &g.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}

	return &g, nil
}

// SaveAnswer updates the game and records the answer within a transaction.
func (r *GameRepository) SaveAnswer(ctx context.Context, g *entities.Game, a *entities.Answer) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context, tx postgres.DBTX) error {
		update := `
			UPDATE games
			SET level = $1, winnings = $2, status = $3, updated_at = $4
			WHERE id = $5
		`

		tag, err := tx.Exec(ctx, update, g.Level, g.Winnings, g.Status, g.UpdatedAt, g.ID)
		if err != nil {
			return fmt.Errorf("update game: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return service.ErrGameNotFound
		}

		insert := `
			INSERT INTO game_answers (game_id, level, selected, is_correct, answered_at)
			VALUES ($1, $2, $3, $4, $5)
		`

		if _, err := tx.Exec(ctx, insert, a.GameID, a.Level, a.Selected, a.IsCorrect, a.AnsweredAt); err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}

		return nil
	})
}

// Answers returns the answers of a game in the order they were given.
func (r *GameRepository) Answers(ctx context.Context, gameID string) ([]entities.Answer, error) {
	query := `
		SELECT game_id, level, selected, is_correct, answered_at
		FROM game_answers
		WHERE game_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var answers []entities.Answer
	for rows.Next() {
		var a entities.Answer
		if err := rows.Scan(&a.GameID, &a.Level, &a.Selected, &a.IsCorrect, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}

	return answers, rows.Err()
}

// Delete removes a game; its answers are removed by cascade.
func (r *GameRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM games WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// DeleteStale removes games not updated since before.
func (r *GameRepository) DeleteStale(ctx context.Context, before time.Time) (int, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM games WHERE updated_at < $1", before)
	if err != nil {
		return 0, fmt.Errorf("delete stale games: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
