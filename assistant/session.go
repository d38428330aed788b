package assistant

import (
	"sync"
	"time"

	"comics/models"
)

// Session is one conversation with the assistant. Its context history only
// grows; nothing is evicted.
type Session struct {
	ID        string
	Owner     string // user id, empty for local sessions
	CreatedAt time.Time

	mu      sync.Mutex
	history []models.ContextEntry
	turns   int
}

func NewSession(id string) *Session {
	return &Session{ID: id, CreatedAt: time.Now()}
}

// History returns a copy of the context history, oldest first.
func (s *Session) History() []models.ContextEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ContextEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// fromEnd returns the n-th entry counting back from the newest (n=1 is the last).
func (s *Session) fromEnd(n int) (models.ContextEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > len(s.history) {
		return models.ContextEntry{}, false
	}
	return s.history[len(s.history)-n], true
}

// lastOf returns the newest entry of the given type that carries an entity.
func (s *Session) lastOf(entryType string) (models.ContextEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.history) - 1; i >= 0; i-- {
		if e := s.history[i]; e.Type == entryType && e.HasEntity() {
			return e, true
		}
	}
	return models.ContextEntry{}, false
}

// reserveTurns returns the transcript index for the next n turns.
func (s *Session) reserveTurns(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.turns
	s.turns += n
	return i
}

func (s *Session) push(e models.ContextEntry) {
	s.mu.Lock()
	s.history = append(s.history, e)
	s.mu.Unlock()
}
