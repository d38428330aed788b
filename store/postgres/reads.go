package postgres

import (
	"context"
	"fmt"
)

func (c *Client) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := c.pool.QueryRow(ctx,
		`SELECT count(*) FROM user_story_reads WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting reads: %w", err)
	}
	return n, nil
}

func (c *Client) MarkRead(ctx context.Context, userID, storyID string) error {
	_, err := c.pool.Exec(ctx, `
INSERT INTO user_story_reads (user_id, story_id)
VALUES ($1, $2)
ON CONFLICT (user_id, story_id) DO NOTHING`, userID, storyID)
	if err != nil {
		return fmt.Errorf("marking read: %w", err)
	}
	return nil
}
