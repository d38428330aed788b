package anonchat

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// Sessions tracks live chat sessions by id.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	clock    clock.Clock
	log      *zap.Logger
}

func NewSessions(clk clock.Clock, log *zap.Logger) *Sessions {
	return &Sessions{sessions: make(map[string]*Session), clock: clk, log: log}
}

func (r *Sessions) Add(s *Session) {
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
}

func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Sessions) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Run disconnects idle sessions every PresenceInterval until ctx is done.
func (r *Sessions) Run(ctx context.Context) {
	t := r.clock.Ticker(PresenceInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.ReapIdle(ctx); n > 0 {
				r.log.Info("reaped idle chat sessions", zap.Int("reaped", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}

// ReapIdle disconnects and forgets sessions with no client activity for
// longer than OnlineWindow. It returns how many were removed.
func (r *Sessions) ReapIdle(ctx context.Context) int {
	now := r.clock.Now()

	r.mu.Lock()
	var idle []*Session
	for id, s := range r.sessions {
		if s.IdleFor(now) > OnlineWindow {
			idle = append(idle, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range idle {
		if err := s.Disconnect(ctx); err != nil {
			r.log.Warn("failed to disconnect idle session", zap.String("session", s.ID), zap.Error(err))
		}
	}
	return len(idle)
}

// CloseAll disconnects every session, used on shutdown.
func (r *Sessions) CloseAll(ctx context.Context) {
	r.mu.Lock()
	all := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for id, s := range all {
		if err := s.Disconnect(ctx); err != nil {
			r.log.Warn("failed to disconnect session", zap.String("session", id), zap.Error(err))
		}
	}
}
