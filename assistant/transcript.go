package assistant

import (
	"context"
	"sync"
	"time"
)

// Turn is one persisted line of a conversation.
type Turn struct {
	SessionID string    `json:"session_id" bson:"session_id"`
	Role      string    `json:"role" bson:"role"` // "user" or "bot"
	Content   string    `json:"content" bson:"content"`
	Index     int       `json:"index" bson:"index"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Transcript stores conversation turns. Writes are best-effort: callers log
// failures and carry on.
type Transcript interface {
	Append(ctx context.Context, turns ...Turn) error
	// History returns turns oldest first, paginated, and the total count.
	History(ctx context.Context, sessionID string, limit, offset int) ([]Turn, int64, error)
}

// Record appends a question and its reply to the transcript.
func Record(ctx context.Context, tr Transcript, s *Session, question, reply string, at time.Time) error {
	i := s.reserveTurns(2)
	return tr.Append(ctx,
		Turn{SessionID: s.ID, Role: "user", Content: question, Index: i, Timestamp: at},
		Turn{SessionID: s.ID, Role: "bot", Content: reply, Index: i + 1, Timestamp: at},
	)
}

// MemoryTranscript keeps turns in process memory.
type MemoryTranscript struct {
	mu    sync.Mutex
	turns map[string][]Turn
}

func NewMemoryTranscript() *MemoryTranscript {
	return &MemoryTranscript{turns: make(map[string][]Turn)}
}

func (m *MemoryTranscript) Append(_ context.Context, turns ...Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range turns {
		m.turns[t.SessionID] = append(m.turns[t.SessionID], t)
	}
	return nil
}

func (m *MemoryTranscript) History(_ context.Context, sessionID string, limit, offset int) ([]Turn, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.turns[sessionID]
	total := int64(len(all))
	if offset >= len(all) {
		return []Turn{}, total, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]Turn, end-offset)
	copy(out, all[offset:end])
	return out, total, nil
}
