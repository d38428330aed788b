package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"comics/catalog"
	"comics/models"
)

type stubFallback struct {
	answer string
	err    error
	asked  []string
}

func (f *stubFallback) Answer(_ context.Context, question string) (string, error) {
	f.asked = append(f.asked, question)
	return f.answer, f.err
}

func newTestRouter(fallback Fallback) *Router {
	return NewRouter(catalog.NewStore(catalog.Default()), fallback, zap.NewNop())
}

func ask(t *testing.T, r *Router, s *Session, input string) string {
	t.Helper()
	reply, err := r.Ask(context.Background(), s, input)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(reply, replyPrefix), "reply %q lacks the assistant prefix", reply)
	return strings.TrimPrefix(reply, replyPrefix)
}

func TestIdentityQuestionsAreDeflected(t *testing.T) {
	r := newTestRouter(nil)

	testCases := []string{"Who are you?", "what is your name", "Tell me who is assistant"}
	for _, input := range testCases {
		t.Run(input, func(t *testing.T) {
			s := NewSession("s")
			reply, err := r.Ask(context.Background(), s, input)
			require.ErrorIs(t, err, ErrDeflected)
			assert.Empty(t, reply)
			assert.Equal(t, "Someone very important for this Comic World, maybe a Fourth Wall breaker perhaps!", err.Error())
			assert.Zero(t, s.Len())
		})
	}
}

func TestFullCharacterNameAddsOneEntry(t *testing.T) {
	r := newTestRouter(nil)

	for _, c := range catalog.Default().Characters() {
		for _, input := range []string{c.Name, "Tell me about " + c.Name} {
			t.Run(input, func(t *testing.T) {
				s := NewSession("s")
				reply := ask(t, r, s, input)

				assert.Contains(t, reply, "**"+c.Name+"**")
				assert.Contains(t, reply, "**Role:** "+c.Role)
				assert.Contains(t, reply, c.Description)

				history := s.History()
				require.Len(t, history, 1)
				assert.Equal(t, models.EntryCharacter, history[0].Type)
				assert.Equal(t, c.ID, history[0].Character.ID)
			})
		}
	}
}

func TestLongestCharacterNameWins(t *testing.T) {
	r := newTestRouter(nil)

	testCases := []struct {
		input       string
		characterID string
	}{
		{input: "what powers does yuvi's son in beast form have", characterID: "yuvis-son-beast"},
		{input: "is reviver's clone evil", characterID: "reviver-clone"},
		{input: "origin lawyer (kusam's grandmother) role", characterID: "origin-lawyer"},
		{input: "kusam", characterID: "kusam"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			s := NewSession("s")
			ask(t, r, s, tc.input)

			history := s.History()
			require.NotEmpty(t, history)
			require.NotNil(t, history[0].Character)
			assert.Equal(t, tc.characterID, history[0].Character.ID)
		})
	}
}

func TestAuthorWordsOutsideNameStillReachAuthor(t *testing.T) {
	r := newTestRouter(nil)
	reply := ask(t, r, NewSession("s"), "who is the author")

	assert.Contains(t, reply, "Jashan")
}

func TestCharacterDetailListsStoryAndOtherRoles(t *testing.T) {
	r := newTestRouter(nil)
	reply := ask(t, r, NewSession("s"), "Kusam (The Lawyer)")

	assert.Contains(t, reply, "**Appears in:** Atom: The Dark Room")
	assert.Contains(t, reply, "**Other key characters in this story:** Origin Lawyer (Kusam's Grandmother)")
}

func TestPronounFollowUpUsesLastCharacter(t *testing.T) {
	r := newTestRouter(nil)
	s := NewSession("s")

	ask(t, r, s, "Pandey")
	reply := ask(t, r, s, "what are his abilities")

	assert.Contains(t, reply, "**Pandey**")
	assert.Equal(t, 2, s.Len())
}

func TestUnmatchedInputGetsDefaultReply(t *testing.T) {
	r := newTestRouter(nil)
	reply := ask(t, r, NewSession("s"), "xyzzy plugh")
	assert.Equal(t, defaultReply, reply)
}

func TestClarificationWithoutHistory(t *testing.T) {
	r := newTestRouter(nil)
	s := NewSession("s")

	assert.Equal(t, clarifyReply, ask(t, r, s, "what did he do"))
	assert.Equal(t, unresolvedReply, ask(t, r, s, "he"))
	assert.Zero(t, s.Len())
}

func TestWhatHappenedNextWalksTheArc(t *testing.T) {
	r := newTestRouter(nil)
	s := NewSession("s")

	ask(t, r, s, "videogamer-1")

	reply := ask(t, r, s, "what happened next")
	assert.Contains(t, reply, "**Next in the Videogamer Arc:**")
	assert.Contains(t, reply, "The Videogamer: Infatuator's Castle")

	reply = ask(t, r, s, "what happened next")
	assert.Contains(t, reply, "The Videogamer: Revoked")

	reply = ask(t, r, s, "what happened next")
	assert.Equal(t, "That was the last story in the Videogamer Arc.", reply)
}

func TestKnowledgeRules(t *testing.T) {
	r := newTestRouter(nil)

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "author style", input: "tell me about the author's writing style", want: "**Jashan Bansal's Writing Style:**"},
		{name: "author contact", input: "how do I contact the author", want: "- LinkedIn: https://www.linkedin.com/in/jashan-bansal-02309b317"},
		{name: "universe concepts", input: "core concepts of the universe", want: "**Core Concepts of Life Could Be A Dream:**"},
		{name: "all stories", input: "list all stories", want: "**All Stories (11):**"},
		{name: "atom stories", input: "atom stories", want: "**Atom Stories (3):**"},
		{name: "villain characters", input: "show me the villain characters", want: "**Main Antagonists:**"},
		{name: "character counts", input: "characters", want: "**Character Categories:**"},
		{name: "help", input: "help", want: "**I can help you with:**"},
		{name: "story neighbours", input: "what comes after the dictator", want: "**The Dictator** is part of the Dictator Arc."},
		{name: "timeline", input: "show the timeline", want: "**Timeline of Life Could Be A Dream:**"},
		{name: "power detail", input: "white room creation", want: "**Limitations:** Requires sacrifice and can be emotionally taxing"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, ask(t, r, NewSession("s"), tc.input), tc.want)
		})
	}
}

func TestArcKeywordNeedsWholeWord(t *testing.T) {
	r := newTestRouter(nil)
	reply := ask(t, r, NewSession("s"), "the archaeologist")
	assert.NotContains(t, reply, "Story Arcs")
	assert.Contains(t, reply, "**The Archaeologist**")
}

func TestCompareTwoCharacters(t *testing.T) {
	r := newTestRouter(nil)
	s := NewSession("s")

	reply := ask(t, r, s, "compare pandey and pushp")
	assert.Contains(t, reply, "Comparing **Pandey** and **Pushp**")
	assert.Contains(t, reply, "Key differences: Pandey is a Supporting Character, Pushp is a Supporting Character.")
	assert.Equal(t, 2, s.Len())
}

func TestBattlesInLastStory(t *testing.T) {
	r := newTestRouter(nil)
	s := NewSession("s")

	ask(t, r, s, "dictator-1")
	reply := ask(t, r, s, "list all battles")

	assert.Contains(t, reply, "Epic battles in **The Dictator**:")
	assert.Contains(t, reply, "executed Yuvi's son")
}

func TestGenerativeFallback(t *testing.T) {
	t.Run("answer is used", func(t *testing.T) {
		fb := &stubFallback{answer: "  Forty-two capes.  "}
		r := newTestRouter(fb)

		assert.Equal(t, "Forty-two capes.", ask(t, r, NewSession("s"), "Xyzzy plugh"))
		assert.Equal(t, []string{"Xyzzy plugh"}, fb.asked)
	})

	t.Run("errors fall through to default", func(t *testing.T) {
		r := newTestRouter(&stubFallback{err: errors.New("quota")})
		assert.Equal(t, defaultReply, ask(t, r, NewSession("s"), "xyzzy plugh"))
	})
}

func TestRulesOrder(t *testing.T) {
	names := Rules()
	require.NotEmpty(t, names)
	assert.Equal(t, "identity", names[0])
	assert.Equal(t, "default", names[len(names)-1])

	pos := make(map[string]int, len(names))
	for i, n := range names {
		_, dup := pos[n]
		require.False(t, dup, "duplicate rule %q", n)
		pos[n] = i
	}

	ordered := []string{
		"identity", "pronoun-substitution", "pronoun-only", "entity-extraction", "clarify",
		"character-name", "what-happened-next", "relationship-context", "theme-context", "author", "universe",
		"arcs", "story-categories", "character-categories", "character-profile",
		"story-content", "relationship-pairs", "theme-list", "help", "story-neighbours",
		"keyword-search", "generative-fallback", "default",
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, pos[ordered[i-1]], pos[ordered[i]], "%s must run before %s", ordered[i-1], ordered[i])
	}
}
