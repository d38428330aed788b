package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"comics/models"
)

func (c *Client) Announce(ctx context.Context, p models.Presence) error {
	_, err := c.pool.Exec(ctx, `
INSERT INTO anonymous_online_users (public_key, pseudonym, last_seen, is_online)
VALUES ($1, $2, $3, $4)
ON CONFLICT (public_key) DO UPDATE SET
    pseudonym = EXCLUDED.pseudonym,
    last_seen = EXCLUDED.last_seen,
    is_online = EXCLUDED.is_online`,
		p.PublicKey, p.Pseudonym, p.LastSeen, p.IsOnline)
	if err != nil {
		return fmt.Errorf("announcing presence: %w", err)
	}
	return nil
}

func (c *Client) Remove(ctx context.Context, publicKey string, at time.Time) error {
	_, err := c.pool.Exec(ctx,
		`UPDATE anonymous_online_users SET is_online = FALSE, last_seen = $2 WHERE public_key = $1`,
		publicKey, at)
	if err != nil {
		return fmt.Errorf("removing presence: %w", err)
	}
	return nil
}

func (c *Client) Rename(ctx context.Context, publicKey, pseudonym string) error {
	_, err := c.pool.Exec(ctx,
		`UPDATE anonymous_online_users SET pseudonym = $2 WHERE public_key = $1`,
		publicKey, pseudonym)
	if err != nil {
		return fmt.Errorf("renaming presence: %w", err)
	}
	return nil
}

func (c *Client) Online(ctx context.Context, since time.Time) ([]models.Presence, error) {
	rows, err := c.pool.Query(ctx, `
SELECT public_key, pseudonym, last_seen, is_online
FROM anonymous_online_users
WHERE is_online AND last_seen >= $1
ORDER BY last_seen DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("listing online users: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Presence, error) {
		var p models.Presence
		err := row.Scan(&p.PublicKey, &p.Pseudonym, &p.LastSeen, &p.IsOnline)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning online users: %w", err)
	}
	return out, nil
}
