package anonchat

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"comics/models"
)

const (
	SweepInterval    = 60 * time.Second
	PresenceInterval = 10 * time.Second
	// OnlineWindow is how recently a user must have announced to be listed.
	// A session without client activity for this long is disconnected.
	OnlineWindow = 60 * time.Second
)

// Session is one browser tab's worth of anonymous chat state. Messages live
// only here; presence is shared through the PresenceStore.
type Session struct {
	ID string
	// Owner is the id of the signed-in user the session belongs to.
	Owner string

	client   *Client
	presence PresenceStore
	clock    clock.Clock
	log      *zap.Logger

	mu         sync.Mutex
	messages   []models.ChatMessage
	online     []models.OnlineUser
	lastActive time.Time
	stop       context.CancelFunc
	done       chan struct{}
}

func NewSession(id string, blobs BlobStore, presence PresenceStore, clk clock.Clock, log *zap.Logger) *Session {
	return &Session{
		ID:         id,
		client:     NewClient(blobs, clk),
		presence:   presence,
		clock:      clk,
		log:        log.With(zap.String("session", id)),
		lastActive: clk.Now(),
	}
}

// touch records client activity. The background tickers never call it.
func (s *Session) touch() {
	now := s.clock.Now()
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

// IdleFor reports how long the session has gone without client activity.
func (s *Session) IdleFor(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}

// Connect creates a new identity, announces it and starts the sweep and
// presence tickers. Connecting again swaps the identity and keeps the
// tickers running. If the announce fails the previous identity stays.
func (s *Session) Connect(ctx context.Context) (models.AnonymousIdentity, error) {
	prev, hadPrev := s.client.Identity()

	id, err := s.client.GenerateIdentity()
	if err != nil {
		return models.AnonymousIdentity{}, err
	}
	if err := s.announce(ctx); err != nil {
		s.client.restore(prev, hadPrev)
		return models.AnonymousIdentity{}, err
	}
	s.touch()
	if hadPrev {
		if err := s.presence.Remove(ctx, prev.PublicKey, s.clock.Now()); err != nil {
			s.log.Warn("failed to remove previous identity", zap.Error(err))
		}
	}
	if err := s.RefreshOnline(ctx); err != nil {
		s.log.Warn("failed to load online users", zap.Error(err))
	}

	s.mu.Lock()
	if s.stop == nil {
		loopCtx, cancel := context.WithCancel(context.Background())
		s.stop = cancel
		s.done = make(chan struct{})
		sweep := s.clock.Ticker(SweepInterval)
		beat := s.clock.Ticker(PresenceInterval)
		go s.loop(loopCtx, sweep, beat, s.done)
	}
	s.mu.Unlock()

	s.log.Info("anonymous identity connected", zap.String("pseudonym", id.Pseudonym))
	return id, nil
}

func (s *Session) loop(ctx context.Context, sweep, beat *clock.Ticker, done chan struct{}) {
	defer close(done)
	defer sweep.Stop()
	defer beat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sweep.C:
			if n := s.Sweep(s.clock.Now()); n > 0 {
				s.log.Debug("swept messages", zap.Int("removed", n))
			}
		case <-beat.C:
			if err := s.announce(ctx); err != nil {
				s.log.Warn("presence announce failed", zap.Error(err))
				continue
			}
			if err := s.RefreshOnline(ctx); err != nil {
				s.log.Warn("presence refresh failed", zap.Error(err))
			}
		}
	}
}

func (s *Session) announce(ctx context.Context) error {
	id, ok := s.client.Identity()
	if !ok {
		return ErrNoIdentity
	}
	return s.presence.Announce(ctx, models.Presence{
		PublicKey: id.PublicKey,
		Pseudonym: id.Pseudonym,
		LastSeen:  s.clock.Now(),
		IsOnline:  true,
	})
}

func (s *Session) Identity() (models.AnonymousIdentity, bool) {
	return s.client.Identity()
}

func (s *Session) Send(ctx context.Context, receiver, content string, opts SendOptions) (models.ChatMessage, error) {
	s.touch()
	msg, err := s.client.Send(ctx, receiver, content, opts)
	if err != nil {
		return models.ChatMessage{}, err
	}
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()
	return msg, nil
}

// Burn marks a message burned. It disappears at the next sweep.
func (s *Session) Burn(id string) bool {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].IsBurned = true
			return true
		}
	}
	return false
}

// Sweep drops burned messages and expired ephemeral ones, returning how many
// were removed.
func (s *Session) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.IsBurned || m.Expired(now) {
			continue
		}
		kept = append(kept, m)
	}
	removed := len(s.messages) - len(kept)
	s.messages = kept
	return removed
}

// Messages lists messages not yet burned. Burn-after-read messages are
// burned once listed.
func (s *Session) Messages() []models.ChatMessage {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ChatMessage
	for i := range s.messages {
		m := &s.messages[i]
		if m.IsBurned {
			continue
		}
		out = append(out, *m)
		if m.BurnAfterRead {
			m.IsBurned = true
		}
	}
	return out
}

func (s *Session) OnlineUsers() []models.OnlineUser {
	s.touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.OnlineUser, len(s.online))
	copy(out, s.online)
	return out
}

// RefreshOnline reloads the users seen within OnlineWindow.
func (s *Session) RefreshOnline(ctx context.Context) error {
	rows, err := s.presence.Online(ctx, s.clock.Now().Add(-OnlineWindow))
	if err != nil {
		return err
	}
	users := make([]models.OnlineUser, 0, len(rows))
	for _, p := range rows {
		users = append(users, models.OnlineUser{
			Address:    p.PublicKey,
			Pseudonym:  p.Pseudonym,
			Reputation: Reputation(p.PublicKey),
			IsOnline:   p.IsOnline,
			LastSeen:   p.LastSeen,
		})
	}
	s.mu.Lock()
	s.online = users
	s.mu.Unlock()
	return nil
}

func (s *Session) UpdatePseudonym(ctx context.Context, name string) error {
	s.touch()
	if err := s.client.UpdatePseudonym(name); err != nil {
		return err
	}
	id, _ := s.client.Identity()
	return s.presence.Rename(ctx, id.PublicKey, name)
}

// Disconnect stops the tickers, marks the identity offline and drops all
// messages.
func (s *Session) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.messages = nil
	s.online = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}

	id, ok := s.client.Identity()
	if !ok {
		return nil
	}
	s.client.Forget()
	if err := s.presence.Remove(ctx, id.PublicKey, s.clock.Now()); err != nil {
		return err
	}
	s.log.Info("anonymous identity disconnected", zap.String("pseudonym", id.Pseudonym))
	return nil
}
