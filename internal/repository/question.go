package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmptyQuestionSet = errors.New("question set is empty")
)

// QuestionRepository provides access to the question bank.
// This implementation keeps the whole bank in memory after loading it from JSON.
type QuestionRepository struct {
	questions []entities.Question
}

// NewQuestionRepository loads questions from the JSON file at path.
func NewQuestionRepository(path string) (*QuestionRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}

	return ParseQuestions(data)
}

// ParseQuestions builds a repository from a JSON array of questions.
func ParseQuestions(data []byte) (*QuestionRepository, error) {
	var questions []entities.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions JSON: %w", err)
	}

	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	for i := range questions {
		q := &questions[i]
		if q.ID == 0 {
			q.ID = i + 1
		}
		if len(q.Options) < 2 {
			return nil, fmt.Errorf("question %d: expected at least 2 options, got %d", q.ID, len(q.Options))
		}
		if !q.ValidOption(q.Correct) {
			return nil, fmt.Errorf("question %d: correct index %d out of range", q.ID, q.Correct)
		}
	}

	return &QuestionRepository{questions: questions}, nil
}

// GetAll returns a copy of every question, options included.
func (r *QuestionRepository) GetAll() []entities.Question {
	result := make([]entities.Question, len(r.questions))
	for i, q := range r.questions {
		q.Options = append([]string(nil), q.Options...)
		result[i] = q
	}
	return result
}

// GetByID retrieves a question by its ID.
func (r *QuestionRepository) GetByID(id int) (entities.Question, error) {
	for _, q := range r.questions {
		if q.ID == id {
			q.Options = append([]string(nil), q.Options...)
			return q, nil
		}
	}

	return entities.Question{}, ErrQuestionNotFound
}

// Count returns the number of questions in the bank.
func (r *QuestionRepository) Count() int {
	return len(r.questions)
}
