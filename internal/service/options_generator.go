package service

import (
	"math/rand"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
)

// OptionShuffler reorders the options of a question.
type OptionShuffler struct {
	rng *rand.Rand
}

// NewOptionShuffler creates a shuffler using rng.
func NewOptionShuffler(rng *rand.Rand) *OptionShuffler {
	return &OptionShuffler{rng: rng}
}

// Shuffle returns a copy of q with shuffled options and the correct index
// pointing at the same option text as before.
func (s *OptionShuffler) Shuffle(q entities.Question) entities.Question {
	type option struct {
		text    string
		correct bool
	}

	combined := make([]option, len(q.Options))
	for i, text := range q.Options {
		combined[i] = option{text: text, correct: i == q.Correct}
	}

	s.rng.Shuffle(len(combined), func(i, j int) {
		combined[i], combined[j] = combined[j], combined[i]
	})

	out := q
	out.Options = make([]string, len(combined))
	for i, o := range combined {
		out.Options[i] = o.text
		if o.correct {
			out.Correct = i
		}
	}

	return out
}
