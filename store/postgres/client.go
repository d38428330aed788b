// Package postgres keeps story reads and anonymous presence in PostgreSQL,
// using the same tables as the hosted Supabase schema.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"comics/anonchat"
	"comics/reading"
)

var (
	_ reading.ReadStore      = (*Client)(nil)
	_ anonchat.PresenceStore = (*Client)(nil)
)

type Client struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Client, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &Client{pool: pool}, nil
}

func (c *Client) Close() {
	c.pool.Close()
}

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS user_story_reads (
    user_id  TEXT NOT NULL,
    story_id TEXT NOT NULL,
    read_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT uq_user_story UNIQUE (user_id, story_id)
);

CREATE TABLE IF NOT EXISTS anonymous_online_users (
    public_key TEXT PRIMARY KEY,
    pseudonym  TEXT NOT NULL,
    last_seen  TIMESTAMPTZ NOT NULL,
    is_online  BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE INDEX IF NOT EXISTS idx_reads_user ON user_story_reads (user_id);
CREATE INDEX IF NOT EXISTS idx_presence_seen ON anonymous_online_users (is_online, last_seen);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
