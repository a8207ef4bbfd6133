package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
	"github.com/aliskhannn/crorepati-bot/internal/service"
)

// RedisGameStorage keeps games in Redis. Every key expires after the TTL, so
// stale games disappear without sweeping.
type RedisGameStorage struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisGameStorage creates a Redis backed game store.
func NewRedisGameStorage(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisGameStorage {
	return &RedisGameStorage{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisGameStorage"),
	}
}

func gameKey(id string) string    { return fmt.Sprintf("game:%s", id) }
func answersKey(id string) string { return fmt.Sprintf("game_answers:%s", id) }

// Save stores the game and refreshes its TTL.
func (s *RedisGameStorage) Save(ctx context.Context, g *entities.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}

	if err := s.client.Set(ctx, gameKey(g.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("set game: %w", err)
	}
	return nil
}

// Get loads the game with the given ID.
func (s *RedisGameStorage) Get(ctx context.Context, id string) (*entities.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}

	var g entities.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("unmarshal game: %w", err)
	}
	return &g, nil
}

// SaveAnswer stores the game and appends the answer in one transaction.
func (s *RedisGameStorage) SaveAnswer(ctx context.Context, g *entities.Game, a *entities.Answer) error {
	gameData, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal game: %w", err)
	}
	answerData, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKey(g.ID), gameData, s.ttl)
		pipe.RPush(ctx, answersKey(g.ID), answerData)
		pipe.Expire(ctx, answersKey(g.ID), s.ttl)
		return nil
	})
	if err != nil {
		s.logger.Error("failed to save answer", zap.String("game_id", g.ID), zap.Error(err))
		return fmt.Errorf("save answer: %w", err)
	}

	return nil
}

// Answers returns the answers recorded for a game.
func (s *RedisGameStorage) Answers(ctx context.Context, id string) ([]entities.Answer, error) {
	raw, err := s.client.LRange(ctx, answersKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("get answers: %w", err)
	}

	answers := make([]entities.Answer, 0, len(raw))
	for _, item := range raw {
		var a entities.Answer
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			return nil, fmt.Errorf("unmarshal answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, nil
}

// Delete removes the game and its answers.
func (s *RedisGameStorage) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, gameKey(id), answersKey(id)).Err(); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// DeleteStale is a no-op: keys expire on their own.
func (s *RedisGameStorage) DeleteStale(context.Context, time.Time) (int, error) {
	return 0, nil
}
