// Package supabase keeps story reads and anonymous presence in a Supabase
// project's PostgREST tables.
package supabase

import (
	"context"
	"fmt"
	"time"

	supa "github.com/supabase-community/supabase-go"

	"comics/anonchat"
	"comics/models"
	"comics/reading"
)

const (
	readsTable    = "user_story_reads"
	presenceTable = "anonymous_online_users"
)

var (
	_ reading.ReadStore      = (*Store)(nil)
	_ anonchat.PresenceStore = (*Store)(nil)
)

type Store struct {
	client *supa.Client
}

func New(client *supa.Client) *Store {
	return &Store{client: client}
}

type readRow struct {
	UserID  string `json:"user_id"`
	StoryID string `json:"story_id"`
}

func (s *Store) Count(_ context.Context, userID string) (int, error) {
	var rows []readRow
	n, err := s.client.From(readsTable).
		Select("story_id", "exact", false).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return 0, fmt.Errorf("count reads: %w", err)
	}
	// The exact count comes from Content-Range and survives a max-rows cap.
	return int(n), nil
}

// MarkRead upserts on (user_id, story_id) so repeat reads are ignored.
func (s *Store) MarkRead(_ context.Context, userID, storyID string) error {
	var rows []readRow
	_, err := s.client.From(readsTable).
		Insert(readRow{UserID: userID, StoryID: storyID}, true, "user_id,story_id", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (s *Store) Announce(_ context.Context, p models.Presence) error {
	var rows []models.Presence
	_, err := s.client.From(presenceTable).
		Insert(p, true, "public_key", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("announce presence: %w", err)
	}
	return nil
}

func (s *Store) Remove(_ context.Context, publicKey string, at time.Time) error {
	var rows []models.Presence
	_, err := s.client.From(presenceTable).
		Update(map[string]interface{}{"is_online": false, "last_seen": at.UTC()}, "representation", "").
		Eq("public_key", publicKey).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("remove presence: %w", err)
	}
	return nil
}

func (s *Store) Rename(_ context.Context, publicKey, pseudonym string) error {
	var rows []models.Presence
	_, err := s.client.From(presenceTable).
		Update(map[string]interface{}{"pseudonym": pseudonym}, "representation", "").
		Eq("public_key", publicKey).
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("rename presence: %w", err)
	}
	return nil
}

func (s *Store) Online(_ context.Context, since time.Time) ([]models.Presence, error) {
	var rows []models.Presence
	_, err := s.client.From(presenceTable).
		Select("*", "", false).
		Eq("is_online", "true").
		Gte("last_seen", since.UTC().Format(time.RFC3339)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list online users: %w", err)
	}
	return rows, nil
}
