package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
)

var ErrInvalidAnswer = errors.New("invalid answer")

// ParseSelection converts a submitted choice into an option index of q.
// Choices are option indexes ("0".."3"); option letters ("A".."D") are accepted too.
func ParseSelection(raw string, q *entities.Question) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty choice", ErrInvalidAnswer)
	}

	idx, err := strconv.Atoi(s)
	if err != nil {
		idx = letterIndex(s)
	}

	if !q.ValidOption(idx) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAnswer, raw)
	}

	return idx, nil
}

func letterIndex(s string) int {
	if len(s) != 1 {
		return -1
	}

	c := strings.ToUpper(s)[0]
	if c < 'A' || c > 'Z' {
		return -1
	}

	return int(c - 'A')
}
