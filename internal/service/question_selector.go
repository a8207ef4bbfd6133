package service

import (
	"math/rand"
	"sync"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
)

// QuestionSelector picks the questions of a new game.
type QuestionSelector struct {
	source   QuestionSource
	shuffler *OptionShuffler

	mu  sync.Mutex // guards rng, which is not safe for concurrent use
	rng *rand.Rand
}

// NewQuestionSelector creates a new QuestionSelector.
func NewQuestionSelector(source QuestionSource, rng *rand.Rand) *QuestionSelector {
	return &QuestionSelector{
		source:   source,
		shuffler: NewOptionShuffler(rng),
		rng:      rng,
	}
}

// Select shuffles the bank, shuffles every question's options and keeps at
// most total questions.
func (s *QuestionSelector) Select(total int) []entities.Question {
	if total <= 0 {
		return nil
	}

	questions := s.source.GetAll()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	if len(questions) > total {
		questions = questions[:total]
	}

	for i := range questions {
		questions[i] = s.shuffler.Shuffle(questions[i])
	}

	return questions
}
