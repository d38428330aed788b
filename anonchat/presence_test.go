package anonchat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comics/models"
)

func presenceRow(key string, seen time.Time) models.Presence {
	return models.Presence{PublicKey: key, Pseudonym: "p-" + key, LastSeen: seen, IsOnline: true}
}

func TestMemoryPresence(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryPresence()

	require.NoError(t, store.Announce(ctx, presenceRow("a", now)))
	require.NoError(t, store.Announce(ctx, presenceRow("b", now.Add(-2*time.Minute))))
	require.NoError(t, store.Announce(ctx, presenceRow("a", now.Add(time.Second))))

	online, err := store.Online(ctx, now.Add(-OnlineWindow))
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, "a", online[0].PublicKey)

	require.NoError(t, store.Remove(ctx, "a", now))
	online, err = store.Online(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, "b", online[0].PublicKey)

	assert.NoError(t, store.Remove(ctx, "missing", now))
}
