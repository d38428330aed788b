package assistant

import (
	"sync"

	"github.com/google/uuid"
)

var (
	sessions = make(map[string]*Session)
	mu       sync.Mutex
)

// SpawnSessionFor registers a new session owned by userID.
func SpawnSessionFor(userID string) *Session {
	s := NewSession(uuid.NewString())
	s.Owner = userID

	mu.Lock()
	sessions[s.ID] = s
	mu.Unlock()

	return s
}

func GetSession(id string) (*Session, bool) {
	mu.Lock()
	defer mu.Unlock()
	s, ok := sessions[id]
	return s, ok
}

func DeleteSession(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(sessions, id)
}
