package entities

import (
	"time"
)

// Game statuses.
const (
	GameActive = "active"
	GameWon    = "won"
	GameLost   = "lost"
	GameQuit   = "quit"
)

// MaxLevels is the number of questions a single game can have.
const MaxLevels = 25

// Game represents a single game played by one session.
// It tracks the questions, the current level, winnings and timestamps.
type Game struct {
	ID        string     `json:"id"`         // session ID, also stored in the cookie
	Questions []Question `json:"questions"`  // shuffled questions for this game
	Level     int        `json:"level"`      // zero-based index of the current question
	Winnings  int64      `json:"winnings"`   // amount won so far
	Status    string     `json:"status"`     // "active", "won", "lost" or "quit"
	CreatedAt time.Time  `json:"created_at"` // when the game started
	UpdatedAt time.Time  `json:"updated_at"` // last answer or creation time
}

// NewGame creates a new active game with the given questions.
func NewGame(id string, questions []Question) *Game {
	now := time.Now()
	return &Game{
		ID:        id,
		Questions: questions,
		Status:    GameActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Levels returns how many levels this game has.
func (g *Game) Levels() int {
	return min(len(g.Questions), len(PrizeLadder))
}

// Finished reports whether every level has been answered.
func (g *Game) Finished() bool {
	return g.Level >= g.Levels()
}

// IsActive reports whether the game still accepts answers.
func (g *Game) IsActive() bool {
	return g.Status == GameActive
}

// Current returns the question for the current level.
func (g *Game) Current() (*Question, bool) {
	if g.Finished() {
		return nil, false
	}
	return &g.Questions[g.Level], true
}

// Prize returns the prize for the current level.
func (g *Game) Prize() int64 {
	if g.Finished() {
		return 0
	}
	return PrizeLadder[g.Level]
}

// Advance records a correct answer and moves to the next level.
func (g *Game) Advance() {
	g.Winnings = PrizeLadder[g.Level]
	g.Level++
	if g.Finished() {
		g.Status = GameWon
	}
	g.UpdatedAt = time.Now()
}

// Lose drops winnings to the last safe level and ends the game.
func (g *Game) Lose() {
	g.Winnings = LastSafeAmount(g.Winnings)
	g.Status = GameLost
	g.UpdatedAt = time.Now()
}

// Quit ends the game keeping current winnings.
func (g *Game) Quit() {
	if g.IsActive() {
		g.Status = GameQuit
	}
	g.UpdatedAt = time.Now()
}

// Answer is a single submitted answer, kept for auditing.
type Answer struct {
	GameID     string    // game the answer belongs to
	Level      int       // level the answer was given at
	Selected   int       // selected option index
	IsCorrect  bool      // whether the answer was correct
	AnsweredAt time.Time // timestamp when the answer was submitted
}

// NewAnswer creates an answer record for the current level of the game.
func NewAnswer(g *Game, selected int, isCorrect bool) *Answer {
	return &Answer{
		GameID:     g.ID,
		Level:      g.Level,
		Selected:   selected,
		IsCorrect:  isCorrect,
		AnsweredAt: time.Now(),
	}
}
