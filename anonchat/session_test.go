package anonchat

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"comics/models"
)

func newTestSession(t *testing.T) (*Session, *clock.Mock, *MemoryPresence, *LocalStore) {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	presence := NewMemoryPresence()
	blobs := NewLocalStore()
	s := NewSession("test", blobs, presence, clk, zap.NewNop())
	t.Cleanup(func() { _ = s.Disconnect(context.Background()) })
	return s, clk, presence, blobs
}

func (s *Session) stored() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func TestSendRequiresIdentity(t *testing.T) {
	c := NewClient(NewLocalStore(), clock.NewMock())
	_, err := c.Send(context.Background(), "someone", "hi", SendOptions{})
	assert.ErrorIs(t, err, ErrNoIdentity)
	assert.EqualError(t, err, "no anonymous identity")
}

func TestSendStoresRecord(t *testing.T) {
	s, clk, _, blobs := newTestSession(t)
	ctx := context.Background()

	id, err := s.Connect(ctx)
	require.NoError(t, err)

	msg, err := s.Send(ctx, "receiver-key", "hello", SendOptions{Ephemeral: true, ExpiresIn: time.Minute})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, id.Address, msg.Sender)
	require.NotNil(t, msg.ExpiresAt)
	assert.Equal(t, clk.Now().Add(time.Minute), *msg.ExpiresAt)

	data, err := blobs.Get(ctx, msg.ContentID)
	require.NoError(t, err)
	var rec Record
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, "hello", rec.Content)
	assert.Equal(t, Encode("hello", "receiver-key"), rec.Encoded)
	assert.True(t, rec.Ephemeral)

	read, err := ReadRecord(ctx, blobs, msg.ContentID)
	require.NoError(t, err)
	assert.Equal(t, rec, read)
}

func TestReadRecord(t *testing.T) {
	ctx := context.Background()
	blobs := NewLocalStore()

	put := func(rec Record) string {
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		id, err := blobs.Put(ctx, data)
		require.NoError(t, err)
		return id
	}

	testCases := []struct {
		name    string
		id      string
		wantErr error
	}{
		{
			name: "intact",
			id:   put(Record{Content: "hi", Receiver: "r", Encoded: Encode("hi", "r")}),
		},
		{
			name:    "envelope for another receiver",
			id:      put(Record{Content: "hi", Receiver: "r", Encoded: Encode("hi", "someone-else")}),
			wantErr: ErrMalformedEnvelope,
		},
		{
			name:    "envelope not base64",
			id:      put(Record{Content: "hi", Receiver: "r", Encoded: "%%%"}),
			wantErr: ErrMalformedEnvelope,
		},
		{
			name:    "unknown content id",
			id:      "missing",
			wantErr: ErrBlobNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := ReadRecord(ctx, blobs, tc.id)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "hi", rec.Content)
		})
	}
}

func TestTwoIdentitiesDiffer(t *testing.T) {
	s, _, presence, _ := newTestSession(t)
	ctx := context.Background()

	first, err := s.Connect(ctx)
	require.NoError(t, err)
	second, err := s.Connect(ctx)
	require.NoError(t, err)

	assert.Regexp(t, pseudonymPattern, first.Pseudonym)
	assert.Regexp(t, pseudonymPattern, second.Pseudonym)
	assert.NotEqual(t, first.Pseudonym, second.Pseudonym)
	assert.NotEqual(t, first.PublicKey, second.PublicKey)

	online, err := presence.Online(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, second.PublicKey, online[0].PublicKey)
}

func TestSweep(t *testing.T) {
	s, clk, _, _ := newTestSession(t)
	ctx := context.Background()
	_, err := s.Connect(ctx)
	require.NoError(t, err)

	burned, err := s.Send(ctx, "r", "burn me", SendOptions{})
	require.NoError(t, err)
	_, err = s.Send(ctx, "r", "short lived", SendOptions{Ephemeral: true, ExpiresIn: 30 * time.Second})
	require.NoError(t, err)
	_, err = s.Send(ctx, "r", "expiry ignored", SendOptions{ExpiresIn: 30 * time.Second})
	require.NoError(t, err)
	_, err = s.Send(ctx, "r", "stays", SendOptions{})
	require.NoError(t, err)

	assert.True(t, s.Burn(burned.ID))
	assert.False(t, s.Burn("unknown"))

	assert.Equal(t, 1, s.Sweep(clk.Now()))
	assert.Equal(t, 3, s.stored())

	assert.Equal(t, 1, s.Sweep(clk.Now().Add(time.Minute)))
	var contents []string
	for _, m := range s.Messages() {
		contents = append(contents, m.Content)
	}
	assert.Equal(t, []string{"expiry ignored", "stays"}, contents)
}

func TestBurnAfterRead(t *testing.T) {
	s, clk, _, _ := newTestSession(t)
	ctx := context.Background()
	_, err := s.Connect(ctx)
	require.NoError(t, err)

	_, err = s.Send(ctx, "r", "read once", SendOptions{BurnAfterRead: true})
	require.NoError(t, err)

	require.Len(t, s.Messages(), 1)
	assert.Empty(t, s.Messages())
	assert.Equal(t, 1, s.Sweep(clk.Now()))
}

func TestTickerSweepsMessages(t *testing.T) {
	s, clk, _, _ := newTestSession(t)
	ctx := context.Background()
	_, err := s.Connect(ctx)
	require.NoError(t, err)

	_, err = s.Send(ctx, "r", "short lived", SendOptions{Ephemeral: true, ExpiresIn: 30 * time.Second})
	require.NoError(t, err)
	_, err = s.Send(ctx, "r", "stays", SendOptions{})
	require.NoError(t, err)

	clk.Add(SweepInterval)

	require.Eventually(t, func() bool {
		return s.stored() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestOnlineUsersAndDisconnect(t *testing.T) {
	s, clk, presence, _ := newTestSession(t)
	ctx := context.Background()

	id, err := s.Connect(ctx)
	require.NoError(t, err)

	users := s.OnlineUsers()
	require.Len(t, users, 1)
	assert.Equal(t, id.Address, users[0].Address)
	assert.Equal(t, id.Pseudonym, users[0].Pseudonym)

	require.NoError(t, s.UpdatePseudonym(ctx, "CustomName#0001"))
	online, err := presence.Online(ctx, clk.Now().Add(-OnlineWindow))
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, "CustomName#0001", online[0].Pseudonym)

	require.NoError(t, s.Disconnect(ctx))
	online, err = presence.Online(ctx, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, online)

	_, ok := s.Identity()
	assert.False(t, ok)
	assert.Empty(t, s.Messages())
}

func TestOnlineWindowExcludesStaleRows(t *testing.T) {
	s, clk, presence, _ := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, presence.Announce(ctx, presenceRow("stale", clk.Now().Add(-2*OnlineWindow))))
	_, err := s.Connect(ctx)
	require.NoError(t, err)

	users := s.OnlineUsers()
	require.Len(t, users, 1)
	assert.NotEqual(t, "stale", users[0].Address)
}

// flakyPresence fails announces while failing is set.
type flakyPresence struct {
	*MemoryPresence
	failing atomic.Bool
}

var errPresenceDown = errors.New("presence down")

func (f *flakyPresence) Announce(ctx context.Context, p models.Presence) error {
	if f.failing.Load() {
		return errPresenceDown
	}
	return f.MemoryPresence.Announce(ctx, p)
}

func TestConnectFailureKeepsPreviousIdentity(t *testing.T) {
	ctx := context.Background()
	presence := &flakyPresence{MemoryPresence: NewMemoryPresence()}
	s := NewSession("test", NewLocalStore(), presence, clock.NewMock(), zap.NewNop())
	t.Cleanup(func() { _ = s.Disconnect(ctx) })

	presence.failing.Store(true)
	_, err := s.Connect(ctx)
	assert.ErrorIs(t, err, errPresenceDown)
	_, ok := s.Identity()
	assert.False(t, ok, "a failed first connect leaves no identity")

	presence.failing.Store(false)
	first, err := s.Connect(ctx)
	require.NoError(t, err)

	presence.failing.Store(true)
	_, err = s.Connect(ctx)
	assert.ErrorIs(t, err, errPresenceDown)

	got, ok := s.Identity()
	require.True(t, ok)
	assert.Equal(t, first, got)

	online, err := presence.Online(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, first.PublicKey, online[0].PublicKey)
}

func TestReapIdleSessions(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMock()
	presence := NewMemoryPresence()
	reg := NewSessions(clk, zap.NewNop())
	t.Cleanup(func() { reg.CloseAll(ctx) })

	idle := NewSession("idle", NewLocalStore(), presence, clk, zap.NewNop())
	active := NewSession("active", NewLocalStore(), presence, clk, zap.NewNop())
	for _, s := range []*Session{idle, active} {
		_, err := s.Connect(ctx)
		require.NoError(t, err)
		reg.Add(s)
	}

	clk.Add(OnlineWindow / 2)
	_, err := active.Send(ctx, "r", "still here", SendOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, reg.ReapIdle(ctx))
	assert.Equal(t, 2, reg.Len())

	clk.Add(OnlineWindow/2 + time.Second)
	assert.Equal(t, 1, reg.ReapIdle(ctx))

	_, ok := reg.Get("idle")
	assert.False(t, ok)
	_, ok = reg.Get("active")
	assert.True(t, ok)
	_, ok = idle.Identity()
	assert.False(t, ok, "reaped session is disconnected")

	activeID, _ := active.Identity()
	online, err := presence.Online(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, activeID.PublicKey, online[0].PublicKey)
}

func TestRunReapsOnTicker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clk := clock.NewMock()
	reg := NewSessions(clk, zap.NewNop())
	t.Cleanup(func() { reg.CloseAll(context.Background()) })

	s := NewSession("abandoned", NewLocalStore(), NewMemoryPresence(), clk, zap.NewNop())
	_, err := s.Connect(ctx)
	require.NoError(t, err)
	reg.Add(s)

	go reg.Run(ctx)

	require.Eventually(t, func() bool {
		clk.Add(PresenceInterval)
		_, ok := reg.Get("abandoned")
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSessionsRegistry(t *testing.T) {
	reg := NewSessions(clock.NewMock(), zap.NewNop())
	s, _, presence, _ := newTestSession(t)
	_, err := s.Connect(context.Background())
	require.NoError(t, err)

	reg.Add(s)
	got, ok := reg.Get("test")
	require.True(t, ok)
	assert.Same(t, s, got)

	reg.CloseAll(context.Background())
	_, ok = reg.Get("test")
	assert.False(t, ok)

	online, err := presence.Online(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, online)
}
