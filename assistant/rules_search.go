package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"comics/catalog"
	"comics/models"
)

var (
	roleWithStoryPattern = regexp.MustCompile(`(protagonist|antagonist|villain|hero|supporting)[^\w]*(of|in)?[^\w]*([\w\s-]+)`)
	rolePattern          = regexp.MustCompile(`protagonist|antagonist|villain|hero|supporting`)
	roleAliases          = map[string]string{"villain": "antagonist", "hero": "protagonist"}
)

func characterByNameOrRole(t *turn) (string, bool) {
	c, ok := findCharacter(t.cat, t.query)
	if !ok {
		return "", false
	}
	t.remember(characterEntry(c))
	return say(characterDetail(t.cat, c)), true
}

// findCharacter tries the longest full name or id in q, then a fuzzy name or
// id match, then a role tied to a story ("antagonist of dictator 1"), then the
// role alone.
func findCharacter(cat *catalog.Catalog, q string) (models.Character, bool) {
	if c, ok := namedIn(cat, q); ok {
		return c, true
	}
	for _, c := range cat.Characters() {
		if fuzzyMatch(q, c.Name) || fuzzyMatch(q, c.ID) {
			return c, true
		}
	}
	role := rolePattern.FindString(q)
	if role == "" {
		return models.Character{}, false
	}
	if alias, ok := roleAliases[role]; ok {
		role = alias
	}
	if m := roleWithStoryPattern.FindStringSubmatch(q); m != nil {
		hint := strings.TrimSpace(m[3])
		for _, c := range cat.Characters() {
			if !strings.Contains(strings.ToLower(c.Role), role) {
				continue
			}
			if s, ok := cat.Story(c.RelatedStory); ok && (fuzzyMatch(s.Title, hint) || fuzzyMatch(s.ID, hint)) {
				return c, true
			}
		}
	}
	for _, c := range cat.Characters() {
		if strings.Contains(strings.ToLower(c.Role), role) {
			return c, true
		}
	}
	return models.Character{}, false
}

func disambiguateCharacter(t *turn) (string, bool) {
	var possible []models.Character
	for _, c := range t.cat.Characters() {
		for _, k := range t.words {
			if fuzzyMatch(c.Name, k) {
				possible = append(possible, c)
				break
			}
		}
	}
	if len(possible) < 2 {
		return "", false
	}

	var options []models.Character
	for _, c := range t.cat.Characters() {
		if words := keywords(c.Name); len(words) > 0 && containsWord(t.query, words[0]) {
			options = append(options, c)
		}
	}
	if len(options) > 1 {
		return say(fmt.Sprintf("I found multiple possible matches: %s. Who do you mean?", names(options))), true
	}
	return say(fmt.Sprintf("I found multiple characters matching your question: %s. Who do you mean?", names(possible))), true
}

var contentPattern = regexp.MustCompile(`\b(content|plot)\b|what happens`)

// contentWords never score a story on their own.
var contentWords = map[string]bool{"content": true, "plot": true, "happens": true}

func asksContent(t *turn) bool {
	return contentPattern.MatchString(t.query)
}

// storyContent scores each story: two points for its title or id in the
// question, one for any other question word in its text. Ties keep catalog order.
func storyContent(t *turn) (string, bool) {
	var words, quoteWords []string
	for _, w := range t.words {
		if contentWords[w] {
			continue
		}
		words = append(words, w)
		if len(w) > 3 {
			quoteWords = append(quoteWords, w)
		}
	}

	var best models.Story
	bestScore := 0
	for _, s := range t.cat.Stories() {
		score := 0
		if strings.Contains(t.query, strings.ToLower(s.Title)) {
			score += 2
		}
		if containsWord(t.query, strings.ToLower(s.ID)) {
			score += 2
		}
		content := strings.ToLower(s.Content)
		for _, w := range words {
			if strings.Contains(content, w) {
				score++
				break
			}
		}
		if score > bestScore {
			best, bestScore = s, score
		}
	}
	if bestScore == 0 {
		return "", false
	}
	t.remember(storyEntry(best))
	return say(storyDetail(best, quoteFrom(best, quoteWords))), true
}

var relatedPattern = regexp.MustCompile(`\b(relationship|connection|related)\b`)

var relationshipPairs = []struct {
	a, b  string
	reply string
}{
	{"atom", "pandey", "**Atom and Pandey's Relationship:**\n\nAtom and Pandey were former classmates and competitive rivals. They were both teleported to the White Room where Atom sacrificed himself to help Pandey escape. This traumatic experience led to Pandey being placed in mental health care, while Atom gained supernatural powers after death."},
	{"kid", "variant", "**The Kid and The Evil Videogamer's Relationship:**\n\nThe Evil Videogamer is an alternate timeline version of The Kid who has mastered his gaming powers. He rules over a dimensional city and seeks to steal the original Kid's powers. They engage in epic gaming battles across different video game dimensions."},
}

func asksRelated(t *turn) bool {
	return relatedPattern.MatchString(t.query)
}

func relationshipPair(t *turn) (string, bool) {
	for _, p := range relationshipPairs {
		if containsWord(t.query, p.a) && containsWord(t.query, p.b) {
			return say(p.reply), true
		}
	}
	return "", false
}

var neighboursPattern = regexp.MustCompile(`relationship|related|connection|how.*connected|how.*related|timeline|before|after|next|previous`)

func asksNeighbours(t *turn) bool {
	return neighboursPattern.MatchString(t.raw)
}

// storyNeighbours relates two characters who share a story, or places a named
// story between its neighbours in its arc.
func storyNeighbours(t *turn) (string, bool) {
	if chars := mentionedCharacters(t.cat, t.raw); len(chars) == 2 && chars[0].RelatedStory == chars[1].RelatedStory {
		if s, ok := t.cat.Story(chars[0].RelatedStory); ok {
			a, b := chars[0], chars[1]
			return say(fmt.Sprintf("**%s** and **%s** both appear in **%s**.\n\n%s: %s\n%s: %s\n\nTheir relationship: %s is a %s, %s is a %s.",
				a.Name, b.Name, s.Title,
				a.Name, summarize(a.Description, 200),
				b.Name, summarize(b.Description, 200),
				a.Name, a.Role, b.Name, b.Role)), true
		}
	}
	for _, s := range t.cat.Stories() {
		if !strings.Contains(t.raw, strings.ToLower(s.Title)) {
			continue
		}
		arc, ok := t.cat.ArcOf(s.ID)
		if !ok {
			continue
		}
		i := arc.IndexOf(s.ID)
		var b strings.Builder
		fmt.Fprintf(&b, "**%s** is part of the %s.", s.Title, arc.Name)
		if i > 0 {
			if before, ok := t.cat.Story(arc.Stories[i-1]); ok {
				fmt.Fprintf(&b, "\n\nBefore: **%s** — %s", before.Title, summarize(before.Summary, 200))
			}
		}
		if i < len(arc.Stories)-1 {
			if after, ok := t.cat.Story(arc.Stories[i+1]); ok {
				fmt.Fprintf(&b, "\n\nAfter: **%s** — %s", after.Title, summarize(after.Summary, 200))
			}
		}
		t.remember(storyEntry(s))
		return say(b.String()), true
	}
	return "", false
}

func hasKeywords(t *turn) bool {
	return len(t.words) > 0
}

func containsAny(text string, words []string) bool {
	text = strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// keywordSearch looks for the question's keywords across every story and
// character. Several hits are listed; a single hit is described in full.
func keywordSearch(t *turn) (string, bool) {
	var stories []models.Story
	for _, s := range t.cat.Stories() {
		if containsAny(s.Title, t.words) || containsAny(s.Summary, t.words) || containsAny(s.Content, t.words) {
			stories = append(stories, s)
		}
	}
	var chars []models.Character
	for _, c := range t.cat.Characters() {
		if containsAny(c.Name, t.words) || containsAny(c.Description, t.words) || containsAny(strings.Join(c.Abilities, "\n"), t.words) {
			chars = append(chars, c)
		}
	}

	switch {
	case len(stories) > 1:
		lines := make([]string, 0, len(stories))
		for _, s := range stories {
			lines = append(lines, fmt.Sprintf("**%s**: %s", s.Title, s.Summary))
		}
		return say("I found several stories related to your question:\n" + bullets(lines)), true
	case len(chars) > 1:
		lines := make([]string, 0, len(chars))
		for _, c := range chars {
			lines = append(lines, fmt.Sprintf("**%s**: %s", c.Name, c.Description))
		}
		return say("I found several characters related to your question:\n" + bullets(lines)), true
	case len(stories) == 1:
		s := stories[0]
		return say(storyDetail(s, quoteFrom(s, t.words))), true
	case len(chars) == 1:
		return say(characterWithMatches(chars[0], t.words)), true
	}
	return "", false
}

// characterWithMatches appends every field that contains one of the words.
func characterWithMatches(c models.Character, words []string) string {
	var b strings.Builder
	b.WriteString(characterProfile(c))
	fields := []struct{ label, value string }{
		{"Role", c.Role},
		{"Description", c.Description},
		{"Related Story", c.RelatedStory},
	}
	for _, f := range fields {
		if containsAny(f.value, words) {
			fmt.Fprintf(&b, "\n\n**%s:** %s", f.label, f.value)
		}
	}
	for _, a := range c.Abilities {
		if containsAny(a, words) {
			fmt.Fprintf(&b, "\n\n**Abilities:** %s", strings.Join(c.Abilities, ", "))
			break
		}
	}
	return b.String()
}

func hasFallback(t *turn) bool {
	return t.router.fallback != nil
}

func generativeFallback(t *turn) (string, bool) {
	answer, err := t.router.fallback.Answer(t.ctx, t.input)
	if err != nil {
		t.router.log.Warn("generative fallback failed", zap.String("session", t.session.ID), zap.Error(err))
		return "", false
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false
	}
	return say(answer), true
}
