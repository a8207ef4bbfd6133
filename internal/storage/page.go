package storage

import (
	"sync"
	"time"
)

// ActivePage is the page currently shown in a chat.
type ActivePage[T any] struct {
	ChatID    int64
	MessageID int
	Page      T
	ShownAt   time.Time
}

// PageStorage keeps at most one active page per chat.
type PageStorage[T any] struct {
	mu    sync.RWMutex
	pages map[int64]ActivePage[T]
}

func NewPageStorage[T any]() *PageStorage[T] {
	return &PageStorage[T]{
		pages: make(map[int64]ActivePage[T]),
	}
}

func (s *PageStorage[T]) Store(chatID int64, messageID int, page T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pages[chatID] = ActivePage[T]{
		ChatID:    chatID,
		MessageID: messageID,
		Page:      page,
		ShownAt:   time.Now(),
	}
}

func (s *PageStorage[T]) Get(chatID int64) (ActivePage[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pages[chatID]
	return p, ok
}

// GetByMessage returns the active page only if it belongs to messageID.
func (s *PageStorage[T]) GetByMessage(chatID int64, messageID int) (ActivePage[T], bool) {
	p, ok := s.Get(chatID)
	if !ok || p.MessageID != messageID {
		return ActivePage[T]{}, false
	}
	return p, true
}

func (s *PageStorage[T]) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pages, chatID)
}

func (s *PageStorage[T]) UpsertAndGetPrev(chatID int64, messageID int, page T) (prev ActivePage[T], hadPrev bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev = s.pages[chatID]

	s.pages[chatID] = ActivePage[T]{
		ChatID:    chatID,
		MessageID: messageID,
		Page:      page,
		ShownAt:   time.Now(),
	}

	return prev, hadPrev
}
