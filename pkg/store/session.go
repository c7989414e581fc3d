package store

import (
	"sync"
	"sync/atomic"

	"lecturelama-be/internal/entity"
	"lecturelama-be/pkg/pages"
)

// Session represents the active user session state in memory.
// Exactly one mutating action may be in flight per session; Begin/End
// implement that gate.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`

	// Pages extracted from the most recent upload. Replaced wholesale on
	// each upload, never mutated in place.
	Pages []pages.PageImage `json:"-"`

	busy int32

	mu         sync.Mutex
	transcript []entity.Turn
}

func NewSession(id, username string) *Session {
	return &Session{
		ID:       id,
		Username: username,
	}
}

// Begin marks the session busy. Returns false if another mutating action is
// already in flight.
func (s *Session) Begin() bool {
	return atomic.CompareAndSwapInt32(&s.busy, 0, 1)
}

func (s *Session) End() {
	atomic.StoreInt32(&s.busy, 0)
}

// Append adds turns to the transcript. Order of appends is the order of All.
func (s *Session) Append(turns ...entity.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = append(s.transcript, turns...)
}

func (s *Session) ClearTranscript() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
}

// All returns a snapshot of the transcript, oldest first.
func (s *Session) All() []entity.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) TranscriptLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transcript)
}
