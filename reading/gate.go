// Package reading enforces the per-user limit on how many distinct stories
// may be opened.
package reading

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"comics/catalog"
	"comics/models"
)

var (
	ErrLimitReached  = errors.New("reading limit reached")
	ErrStoryNotFound = errors.New("story not found")
)

// LimitError is returned by Gate.Open once a user has used up the limit.
// It matches ErrLimitReached.
type LimitError struct {
	Limit int
	Count int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("You've reached your limit of %d stories. You've read %d stories so far.", e.Limit, e.Count)
}

func (e *LimitError) Is(target error) bool {
	return target == ErrLimitReached
}

// ReadStore records which stories each user has opened.
type ReadStore interface {
	// Count returns how many distinct stories the user has read.
	Count(ctx context.Context, userID string) (int, error)
	// MarkRead records a read. Marking the same story twice is not an error.
	MarkRead(ctx context.Context, userID, storyID string) error
}

// Access is the result of a successful Open.
type Access struct {
	Story     models.Story `json:"story"`
	ReadCount int          `json:"read_count"`
	Limit     int          `json:"limit"`
}

// Remaining is how many more new stories the user may open.
func (a Access) Remaining() int {
	return max(0, a.Limit-a.ReadCount)
}

type Gate struct {
	store   ReadStore
	catalog *catalog.Store
	limit   int
	log     *zap.Logger
}

func NewGate(store ReadStore, cat *catalog.Store, limit int, log *zap.Logger) *Gate {
	return &Gate{store: store, catalog: cat, limit: limit, log: log.Named("reading")}
}

func (g *Gate) Limit() int {
	return g.limit
}

// Count returns the user's read count as the store reports it.
func (g *Gate) Count(ctx context.Context, userID string) (int, error) {
	n, err := g.store.Count(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count reads: %w", err)
	}
	return n, nil
}

// Open checks the user's count, blocks at the limit, and otherwise records
// the read. The returned count is the store's count after recording.
func (g *Gate) Open(ctx context.Context, userID, storyID string) (Access, error) {
	story, ok := g.catalog.Get().Story(storyID)
	if !ok {
		return Access{}, fmt.Errorf("%w: %s", ErrStoryNotFound, storyID)
	}

	count, err := g.Count(ctx, userID)
	if err != nil {
		return Access{}, err
	}
	if count >= g.limit {
		g.log.Info("read blocked", zap.String("user", userID), zap.String("story", storyID), zap.Int("count", count))
		return Access{}, &LimitError{Limit: g.limit, Count: count}
	}

	if err := g.store.MarkRead(ctx, userID, storyID); err != nil {
		return Access{}, fmt.Errorf("mark read: %w", err)
	}
	count, err = g.Count(ctx, userID)
	if err != nil {
		return Access{}, err
	}
	return Access{Story: story, ReadCount: count, Limit: g.limit}, nil
}
