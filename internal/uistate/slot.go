package uistate

import "sync"

// AnswerSlot is the single shared last-answer value. Each successful
// pipeline run overwrites it; the overlay reads it only at display time.
// Last write wins; there is no history.
type AnswerSlot struct {
	mu     sync.RWMutex
	answer string
}

// NewAnswerSlot creates an empty slot
func NewAnswerSlot() *AnswerSlot {
	return &AnswerSlot{}
}

// Set overwrites the stored answer
func (s *AnswerSlot) Set(answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answer = answer
}

// Get returns the most recently stored answer, or "" if none yet
func (s *AnswerSlot) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.answer
}
