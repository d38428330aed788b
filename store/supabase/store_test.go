package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	supa "github.com/supabase-community/supabase-go"
)

type recorded struct {
	method string
	path   string
	query  string
}

func newTestStore(t *testing.T, respond func(w http.ResponseWriter, r *http.Request) string) (*Store, func() []recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		body := respond(w, r)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := supa.NewClient(server.URL, "test-key", nil)
	require.NoError(t, err)

	return New(client), func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func TestCountAndMarkRead(t *testing.T) {
	store, requests := newTestStore(t, func(w http.ResponseWriter, r *http.Request) string {
		if r.Method == http.MethodGet {
			w.Header().Set("Content-Range", "0-1/2")
			return `[{"user_id":"u1","story_id":"atom-1"},{"user_id":"u1","story_id":"dictator-1"}]`
		}
		return `[{"user_id":"u1","story_id":"atom-1"}]`
	})
	ctx := context.Background()

	n, err := store.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, store.MarkRead(ctx, "u1", "atom-1"))

	reqs := requests()
	require.Len(t, reqs, 2)
	assert.True(t, strings.HasSuffix(reqs[0].path, "/"+readsTable))
	assert.Contains(t, reqs[0].query, "user_id=eq.u1")
	assert.Equal(t, http.MethodPost, reqs[1].method)
	assert.Contains(t, reqs[1].query, "on_conflict=user_id")
}

func TestCountUsesExactCount(t *testing.T) {
	// The server caps the rows it returns, the header carries the real total.
	store, requests := newTestStore(t, func(w http.ResponseWriter, r *http.Request) string {
		w.Header().Set("Content-Range", "0-0/7")
		return `[{"user_id":"u1","story_id":"atom-1"}]`
	})

	n, err := store.Count(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].query, "select=story_id")
}

func TestOnline(t *testing.T) {
	store, requests := newTestStore(t, func(http.ResponseWriter, *http.Request) string {
		return `[{"public_key":"pk","pseudonym":"ShadowNomad#0001","last_seen":"2024-05-01T09:00:00Z","is_online":true}]`
	})

	rows, err := store.Online(context.Background(), time.Date(2024, 5, 1, 8, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ShadowNomad#0001", rows[0].Pseudonym)
	assert.True(t, rows[0].IsOnline)

	reqs := requests()
	require.Len(t, reqs, 1)
	assert.True(t, strings.HasSuffix(reqs[0].path, "/"+presenceTable))
	assert.Contains(t, reqs[0].query, "is_online=eq.true")
	assert.Contains(t, reqs[0].query, "last_seen=gte.")
}
