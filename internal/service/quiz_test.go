package service_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
	"github.com/aliskhannn/crorepati-bot/internal/service"
	"github.com/aliskhannn/crorepati-bot/internal/storage"
)

type staticSource []entities.Question

func (s staticSource) GetAll() []entities.Question {
	out := make([]entities.Question, len(s))
	for i, q := range s {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

func bank(n int) staticSource {
	qs := make(staticSource, n)
	for i := range qs {
		qs[i] = entities.Question{
			ID:      i + 1,
			Text:    "question",
			Options: []string{"right", "wrong 1", "wrong 2", "wrong 3"},
			Correct: 0,
		}
	}
	return qs
}

func newService(t *testing.T, n int) (*service.GameService, *storage.GameStorage) {
	t.Helper()
	store := storage.NewGameStorage()
	selector := service.NewQuestionSelector(bank(n), rand.New(rand.NewSource(1)))
	return service.NewGameService(store, selector, zap.NewNop()), store
}

// rightChoice returns the choice identifier of the correct option.
func rightChoice(t *testing.T, svc *service.GameService, id string) string {
	t.Helper()
	page, err := svc.Page(context.Background(), id)
	require.NoError(t, err)
	for _, o := range page.Options {
		if o.Text == "right" {
			return o.ID
		}
	}
	t.Fatal("correct option not rendered")
	return ""
}

func wrongChoice(t *testing.T, svc *service.GameService, id string) string {
	t.Helper()
	page, err := svc.Page(context.Background(), id)
	require.NoError(t, err)
	for _, o := range page.Options {
		if o.Text != "right" {
			return o.ID
		}
	}
	t.Fatal("no wrong option rendered")
	return ""
}

func TestStart_LimitsToLadder(t *testing.T) {
	svc, _ := newService(t, 30)

	game, err := svc.Start(context.Background())
	require.NoError(t, err)

	assert.Len(t, game.Questions, entities.MaxLevels)
	assert.Equal(t, entities.GameActive, game.Status)
	for _, q := range game.Questions {
		assert.Equal(t, "right", q.Options[q.Correct])
	}
}

func TestCheck_DoesNotChangeGame(t *testing.T) {
	svc, _ := newService(t, 5)
	ctx := context.Background()

	game, err := svc.Start(ctx)
	require.NoError(t, err)

	ok, err := svc.Check(ctx, game.ID, rightChoice(t, svc, game.ID))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Check(ctx, game.ID, wrongChoice(t, svc, game.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := svc.Get(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Level)

	_, err = svc.Check(ctx, game.ID, "9")
	assert.ErrorIs(t, err, service.ErrInvalidAnswer)

	_, err = svc.Check(ctx, "missing", "0")
	assert.ErrorIs(t, err, service.ErrGameNotFound)
}

func TestAnswer_ClimbsLadderAndWins(t *testing.T) {
	svc, store := newService(t, 3)
	ctx := context.Background()

	game, err := svc.Start(ctx)
	require.NoError(t, err)

	for level := 0; level < 3; level++ {
		g, correct, err := svc.Answer(ctx, game.ID, rightChoice(t, svc, game.ID))
		require.NoError(t, err)
		assert.True(t, correct)
		assert.Equal(t, entities.PrizeLadder[level], g.Winnings)
	}

	got, err := svc.Get(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.GameWon, got.Status)
	assert.Len(t, store.Answers(game.ID), 3)

	_, err = svc.Page(ctx, game.ID)
	assert.ErrorIs(t, err, service.ErrGameOver)

	result, err := svc.Result(ctx, game.ID, "")
	require.NoError(t, err)
	assert.Equal(t, &entities.ResultView{Status: entities.GameWon, Winnings: 3000}, result)

	_, err = svc.Get(ctx, game.ID)
	assert.ErrorIs(t, err, service.ErrGameNotFound)
}

func TestAnswer_WrongDropsToSafeLevel(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		winnings int64
	}{
		{"first question", 0, 0},
		{"below first safe level", 3, 0},
		{"on first safe level", 5, 10000},
		{"between safe levels", 8, 10000},
		{"on second safe level", 10, 320000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newService(t, 25)
			ctx := context.Background()

			game, err := svc.Start(ctx)
			require.NoError(t, err)

			for i := 0; i < tt.correct; i++ {
				_, _, err := svc.Answer(ctx, game.ID, rightChoice(t, svc, game.ID))
				require.NoError(t, err)
			}

			g, correct, err := svc.Answer(ctx, game.ID, wrongChoice(t, svc, game.ID))
			require.NoError(t, err)
			assert.False(t, correct)
			assert.Equal(t, entities.GameLost, g.Status)
			assert.Equal(t, tt.winnings, g.Winnings)

			_, _, err = svc.Answer(ctx, game.ID, "0")
			assert.ErrorIs(t, err, service.ErrGameOver)
		})
	}
}

func TestQuitAndResult(t *testing.T) {
	svc, _ := newService(t, 5)
	ctx := context.Background()

	game, err := svc.Start(ctx)
	require.NoError(t, err)
	_, _, err = svc.Answer(ctx, game.ID, rightChoice(t, svc, game.ID))
	require.NoError(t, err)

	g, err := svc.Quit(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.GameQuit, g.Status)

	result, err := svc.Result(ctx, game.ID, entities.GameWon)
	require.NoError(t, err)
	assert.Equal(t, entities.GameQuit, result.Status)
	assert.Equal(t, int64(1000), result.Winnings)

	result, err = svc.Result(ctx, "unknown", "")
	require.NoError(t, err)
	assert.Equal(t, &entities.ResultView{Status: entities.GameQuit}, result)
}

func TestParseSelection(t *testing.T) {
	q := &entities.Question{Options: []string{"a", "b", "c", "d"}}

	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"0", 0, true},
		{" 3 ", 3, true},
		{"C", 2, true},
		{"b", 1, true},
		{"4", 0, false},
		{"-1", 0, false},
		{"E", 0, false},
		{"", 0, false},
		{"AB", 0, false},
	}

	for _, tt := range tests {
		got, err := service.ParseSelection(tt.raw, q)
		if !tt.ok {
			assert.ErrorIs(t, err, service.ErrInvalidAnswer, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestOptionShuffler_KeepsCorrectAnswer(t *testing.T) {
	s := service.NewOptionShuffler(rand.New(rand.NewSource(42)))
	q := entities.Question{Options: []string{"w", "x", "y", "z"}, Correct: 2}

	for i := 0; i < 20; i++ {
		out := s.Shuffle(q)
		assert.Equal(t, "y", out.Options[out.Correct])
		assert.ElementsMatch(t, q.Options, out.Options)
	}
	assert.Equal(t, []string{"w", "x", "y", "z"}, q.Options)
}

// mockGameRepository is a testify mock of GameRepository.
type mockGameRepository struct {
	mock.Mock
}

func (m *mockGameRepository) Save(ctx context.Context, g *entities.Game) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockGameRepository) Get(ctx context.Context, id string) (*entities.Game, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*entities.Game)
	return g, args.Error(1)
}

func (m *mockGameRepository) SaveAnswer(ctx context.Context, g *entities.Game, a *entities.Answer) error {
	return m.Called(ctx, g, a).Error(0)
}

func (m *mockGameRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockGameRepository) DeleteStale(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

func TestSweeper_Sweep(t *testing.T) {
	repo := new(mockGameRepository)
	repo.On("DeleteStale", mock.Anything, mock.MatchedBy(func(before time.Time) bool {
		return time.Since(before) >= time.Hour
	})).Return(3, nil).Once()

	sweeper := service.NewSweeper(repo, "@every 10m", time.Hour, zap.NewNop())

	n, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	repo.AssertExpectations(t)
}

func TestSweeper_StartStopsWithContext(t *testing.T) {
	repo := new(mockGameRepository)
	sweeper := service.NewSweeper(repo, "@every 1h", time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sweeper.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}

	bad := service.NewSweeper(repo, "not a schedule", time.Hour, zap.NewNop())
	assert.Error(t, bad.Start(context.Background()))
}

func TestAnswer_SaveFailure(t *testing.T) {
	repo := new(mockGameRepository)
	game := entities.NewGame("g1", bank(2))
	repo.On("Get", mock.Anything, "g1").Return(game, nil)
	repo.On("SaveAnswer", mock.Anything, game, mock.AnythingOfType("*entities.Answer")).
		Return(assert.AnError)

	selector := service.NewQuestionSelector(bank(2), rand.New(rand.NewSource(1)))
	svc := service.NewGameService(repo, selector, zap.NewNop())

	_, _, err := svc.Answer(context.Background(), "g1", "0")
	assert.ErrorIs(t, err, assert.AnError)
	repo.AssertExpectations(t)
}
