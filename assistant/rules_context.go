package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"comics/catalog"
	"comics/models"
)

var identityPattern = regexp.MustCompile(`who are you|what are you|your name|who is assistant`)

func asksIdentity(t *turn) bool {
	return identityPattern.MatchString(t.raw)
}

func deflect(t *turn) (string, bool) {
	t.err = ErrDeflected
	return "", true
}

func hasHistory(t *turn) bool {
	return t.session.Len() > 0
}

// substitutions replace the words that refer back to an entry of each type.
var substitutions = map[string]*regexp.Regexp{
	models.EntryCharacter: regexp.MustCompile(`\b(he|him|his|she|her|they|them|their)\b`),
	models.EntryStory:     regexp.MustCompile(`\b(the story|story|title|name|he|him|his)\b`),
	models.EntryArc:       regexp.MustCompile(`\b(the arc|arc|series|saga|he|him|his)\b`),
	models.EntryTheme:     regexp.MustCompile(`\b(the theme|theme|significance|meaning|why important|what does.*represent)\b`),
}

// substitutePronouns rewrites the query using the last entry, then the one
// before it. Markers carry no entity and are skipped.
func substitutePronouns(t *turn) (string, bool) {
	for n := 1; n <= 2; n++ {
		e, ok := t.session.fromEnd(n)
		if !ok || !e.HasEntity() {
			continue
		}
		if re, ok := substitutions[e.Type]; ok {
			t.query = re.ReplaceAllLiteralString(t.query, strings.ToLower(e.Label()))
		}
	}
	return "", false
}

var (
	barePronouns = map[string]bool{"he": true, "she": true, "they": true, "him": true, "her": true, "them": true}
	authorNames  = map[string]bool{"the author": true, "author": true, "writer": true, "creator": true}
)

func isBarePronoun(t *turn) bool {
	q := strings.TrimSpace(t.query)
	return barePronouns[q] || authorNames[q]
}

func resolveBarePronoun(t *turn) (string, bool) {
	if authorNames[strings.TrimSpace(t.query)] {
		a := t.cat.Knowledge().Author
		return say(fmt.Sprintf("**%s**\n\n**Education:** %s\n\n**Bio:** %s\n\n**Writing Style:** %s",
			a.Name, a.Education, a.Bio, a.WritingStyle)), true
	}
	if e, ok := t.session.fromEnd(1); ok && e.Character != nil {
		return say(characterProfile(*e.Character)), true
	}
	return say(unresolvedReply), true
}

func extractEntity(t *turn) (string, bool) {
	if e, ok := findEntity(t.cat, t.query); ok {
		t.entity = &e
		t.remember(e)
	}
	return "", false
}

// findEntity looks for characters, then stories, powers, arcs and themes
// named in q, and returns the first hit.
func findEntity(cat *catalog.Catalog, q string) (models.ContextEntry, bool) {
	if c, ok := namedIn(cat, q); ok {
		return characterEntry(c), true
	}
	for _, s := range cat.Stories() {
		if containsAnyWord(q, strings.ToLower(s.Title), strings.ToLower(s.ID)) {
			return storyEntry(s), true
		}
	}
	k := cat.Knowledge()
	for _, p := range k.PowerTypes {
		if containsWord(q, strings.ToLower(p.Name)) {
			return models.ContextEntry{Type: models.EntryPower, Power: &p}, true
		}
	}
	for _, a := range k.StoryArcs {
		if containsWord(q, strings.ToLower(a.Name)) {
			return models.ContextEntry{Type: models.EntryArc, Arc: &a}, true
		}
	}
	for _, theme := range k.Author.Themes {
		if containsWord(q, strings.ToLower(theme)) {
			return models.ContextEntry{Type: models.EntryTheme, Theme: theme}, true
		}
	}
	return models.ContextEntry{}, false
}

// namedIn picks the character with the longest full name occurring in q, then
// the one with the longest id. "yuvi's son" names Yuvi's Son, not Yuvi.
func namedIn(cat *catalog.Catalog, q string) (models.Character, bool) {
	var best models.Character
	found := false
	for _, c := range cat.Characters() {
		if containsWord(q, strings.ToLower(c.Name)) && (!found || len(c.Name) > len(best.Name)) {
			best, found = c, true
		}
	}
	if found {
		return best, true
	}
	for _, c := range cat.Characters() {
		if containsWord(q, strings.ToLower(c.ID)) && (!found || len(c.ID) > len(best.ID)) {
			best, found = c, true
		}
	}
	return best, found
}

// fullyNamed returns the extracted character when the query spells out its
// full name.
func fullyNamed(t *turn) (models.Character, bool) {
	if t.entity == nil || t.entity.Character == nil {
		return models.Character{}, false
	}
	c := *t.entity.Character
	return c, containsWord(t.query, strings.ToLower(c.Name))
}

// withoutName is the query with the fully named character cut out.
func withoutName(t *turn) string {
	c, ok := fullyNamed(t)
	if !ok {
		return t.query
	}
	return strings.Replace(t.query, strings.ToLower(c.Name), " ", 1)
}

// asksForNamedCharacter matches a query that is nothing but a character's
// full name, give or take filler like "tell me about".
func asksForNamedCharacter(t *turn) bool {
	_, ok := fullyNamed(t)
	return ok && len(keywords(withoutName(t))) == 0
}

func namedCharacter(t *turn) (string, bool) {
	c, _ := fullyNamed(t)
	return say(characterDetail(t.cat, c)), true
}

var vaguePronoun = regexp.MustCompile(`\b(he|she|they|it|this|that|him|her|them)\b`)

func needsClarification(t *turn) bool {
	return t.entity == nil && t.session.Len() == 0 && vaguePronoun.MatchString(t.query)
}

func clarify(*turn) (string, bool) {
	return say(clarifyReply), true
}
