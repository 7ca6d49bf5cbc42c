package storage

import "sync"

// QuizMessages are the Telegram messages rendering one quiz in a chat.
type QuizMessages struct {
	Questions []int // message ID per question, in question order
	Control   int   // message with the check/reset buttons
}

// MessageStorage keeps the message IDs of each chat's quiz so they can be edited in place.
type MessageStorage struct {
	mu       sync.RWMutex
	messages map[int64]QuizMessages
}

// NewMessageStorage creates a new MessageStorage.
func NewMessageStorage() *MessageStorage {
	return &MessageStorage{
		messages: make(map[int64]QuizMessages),
	}
}

// Store saves the quiz messages for a chat.
func (s *MessageStorage) Store(chatID int64, m QuizMessages) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[chatID] = m
}

// Get retrieves the quiz messages for a chat.
func (s *MessageStorage) Get(chatID int64) (QuizMessages, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[chatID]
	return m, ok
}

// Delete removes the quiz messages for a chat.
func (s *MessageStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, chatID)
}
