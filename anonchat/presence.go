package anonchat

import (
	"context"
	"sync"
	"time"

	"comics/models"
)

// PresenceStore is the shared table of anonymous users, keyed by public key.
type PresenceStore interface {
	// Announce upserts p.
	Announce(ctx context.Context, p models.Presence) error
	// Remove marks the key offline as of at.
	Remove(ctx context.Context, publicKey string, at time.Time) error
	Rename(ctx context.Context, publicKey, pseudonym string) error
	// Online returns rows that are online and were seen at or after since.
	Online(ctx context.Context, since time.Time) ([]models.Presence, error)
}

type MemoryPresence struct {
	mu   sync.Mutex
	rows map[string]models.Presence
}

func NewMemoryPresence() *MemoryPresence {
	return &MemoryPresence{rows: make(map[string]models.Presence)}
}

func (m *MemoryPresence) Announce(_ context.Context, p models.Presence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[p.PublicKey] = p
	return nil
}

func (m *MemoryPresence) Remove(_ context.Context, publicKey string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.rows[publicKey]; ok {
		p.IsOnline = false
		p.LastSeen = at
		m.rows[publicKey] = p
	}
	return nil
}

func (m *MemoryPresence) Rename(_ context.Context, publicKey, pseudonym string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.rows[publicKey]; ok {
		p.Pseudonym = pseudonym
		m.rows[publicKey] = p
	}
	return nil
}

func (m *MemoryPresence) Online(_ context.Context, since time.Time) ([]models.Presence, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Presence
	for _, p := range m.rows {
		if p.IsOnline && !p.LastSeen.Before(since) {
			out = append(out, p)
		}
	}
	return out, nil
}
