package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"comics/catalog"
	"comics/models"
)

// Fallback answers questions no rule could handle. Implementations may call
// out to a hosted model; errors make the router use its default reply.
type Fallback interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Router resolves questions against the current catalog.
type Router struct {
	store    *catalog.Store
	fallback Fallback
	log      *zap.Logger
}

// NewRouter builds a router. fallback may be nil.
func NewRouter(store *catalog.Store, fallback Fallback, log *zap.Logger) *Router {
	return &Router{store: store, fallback: fallback, log: log.Named("assistant")}
}

// Ask runs input through the rule table and returns the first reply. Identity
// questions return ErrDeflected instead of a reply.
func (r *Router) Ask(ctx context.Context, s *Session, input string) (string, error) {
	t := r.newTurn(ctx, s, input)
	for _, rule := range rules {
		if !rule.Match(t) {
			continue
		}
		reply, ok := rule.Reply(t)
		if t.err != nil {
			return "", t.err
		}
		if ok {
			r.log.Debug("rule matched",
				zap.String("session", s.ID),
				zap.String("rule", rule.Name),
				zap.Int("history", s.Len()))
			return reply, nil
		}
	}
	return say(defaultReply), nil
}

// turn is the working state of one Ask call.
type turn struct {
	ctx     context.Context
	router  *Router
	cat     *catalog.Catalog
	session *Session

	input string // as typed
	raw   string // lowercased input
	query string // lowercased input after pronoun substitution
	words []string

	entity *models.ContextEntry // extracted from the query this turn
	added  []models.ContextEntry
	err    error
}

func (r *Router) newTurn(ctx context.Context, s *Session, input string) *turn {
	lower := strings.ToLower(input)
	return &turn{
		ctx:     ctx,
		router:  r,
		cat:     r.store.Get(),
		session: s,
		input:   input,
		raw:     lower,
		query:   lower,
		words:   keywords(lower),
	}
}

// remember appends e to the session history unless this turn already did.
func (t *turn) remember(e models.ContextEntry) {
	for _, a := range t.added {
		if a.Same(e) {
			return
		}
	}
	t.added = append(t.added, e)
	t.session.push(e)
}

func characterEntry(c models.Character) models.ContextEntry {
	return models.ContextEntry{Type: models.EntryCharacter, Character: &c}
}

func storyEntry(s models.Story) models.ContextEntry {
	return models.ContextEntry{Type: models.EntryStory, Story: &s}
}

func marker(entryType string) models.ContextEntry {
	return models.ContextEntry{Type: entryType}
}
