package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"comics/catalog"
	"comics/models"
)

var whatNextPattern = regexp.MustCompile(`what happened next|then what|after that|continue`)

func asksWhatNext(t *turn) bool {
	e, ok := t.session.fromEnd(1)
	return ok && e.Story != nil && whatNextPattern.MatchString(t.raw)
}

func nextInArc(t *turn) (string, bool) {
	e, _ := t.session.fromEnd(1)
	arc, ok := t.cat.ArcOf(e.Story.ID)
	if !ok {
		return say("I'm not sure what comes next. Can you specify the arc or story?"), true
	}
	if i := arc.IndexOf(e.Story.ID); i < len(arc.Stories)-1 {
		if next, ok := t.cat.Story(arc.Stories[i+1]); ok {
			t.remember(storyEntry(next))
			return say(fmt.Sprintf("**Next in the %s:**\n\n**%s**\n%s", arc.Name, next.Title, next.Summary)), true
		}
	}
	return say(fmt.Sprintf("That was the last story in the %s.", arc.Name)), true
}

var goBackPattern = regexp.MustCompile(`\b(go back|previous|last discussed)\b`)

func asksGoBack(t *turn) bool {
	return t.session.Len() > 1 && goBackPattern.MatchString(t.raw)
}

func goBack(t *turn) (string, bool) {
	for n := 2; ; n++ {
		e, ok := t.session.fromEnd(n)
		if !ok {
			return "", false
		}
		if e.HasEntity() {
			return say("Back to previous: " + e.Label()), true
		}
	}
}

var arcSummaryPattern = regexp.MustCompile(`summari[sz]e (this|the) arc`)

func asksArcSummary(t *turn) bool {
	return arcSummaryPattern.MatchString(t.raw)
}

func summarizeArc(t *turn) (string, bool) {
	e, ok := t.session.lastOf(models.EntryArc)
	if !ok {
		return "", false
	}
	a := e.Arc
	return say(fmt.Sprintf("**%s**: %s. Main character: %s. Stories: %s",
		a.Name, a.Theme, a.MainCharacter, strings.Join(a.Stories, ", "))), true
}

var (
	battlesPattern  = regexp.MustCompile(`\b(list all battles|battles|fights|conflicts)\b`)
	battleWords     = regexp.MustCompile(`\b(fight|fights|fought|battle|battles|war|wars|duel|confront\w*|attack\w*|assault\w*|kill\w*|defeat\w*|execut\w*|conflicts?|ended him)\b`)
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)
)

func asksBattles(t *turn) bool {
	return battlesPattern.MatchString(t.raw)
}

// listBattles quotes the sentences of the most recent story that describe a fight.
func listBattles(t *turn) (string, bool) {
	e, ok := t.session.lastOf(models.EntryStory)
	if !ok {
		return "", false
	}
	var found []string
	for _, sentence := range sentencePattern.FindAllString(e.Story.Content, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence != "" && battleWords.MatchString(strings.ToLower(sentence)) {
			found = append(found, sentence)
		}
	}
	if len(found) == 0 {
		return say(fmt.Sprintf("No battles are recorded in **%s**.", e.Story.Title)), true
	}
	return say(fmt.Sprintf("Epic battles in **%s**:\n%s", e.Story.Title, bullets(found))), true
}

var alliesPattern = regexp.MustCompile(`\b(allies|enemies) of\b`)

func asksAlliesEnemies(t *turn) bool {
	return alliesPattern.MatchString(t.raw)
}

// alliesEnemies splits the other characters of a story by whether they stand
// on the same side as the character last discussed.
func alliesEnemies(t *turn) (string, bool) {
	e, ok := t.session.lastOf(models.EntryCharacter)
	if !ok {
		return "", false
	}
	c := *e.Character
	wantAllies := alliesPattern.FindStringSubmatch(t.raw)[1] == "allies"

	var picked []models.Character
	for _, o := range t.cat.CharactersInStory(c.RelatedStory) {
		if o.ID == c.ID {
			continue
		}
		sameSide := (o.Role == models.RoleAntagonist) == (c.Role == models.RoleAntagonist)
		if sameSide == wantAllies {
			picked = append(picked, o)
		}
	}

	label := "Enemies"
	if wantAllies {
		label = "Allies"
	}
	if len(picked) == 0 {
		return say(fmt.Sprintf("No known %s of **%s** in their story.", strings.ToLower(label), c.Name)), true
	}
	return say(fmt.Sprintf("**%s of %s** in **%s**:\n%s", label, c.Name, storyTitle(t.cat, c.RelatedStory), bullets(nameList(picked)))), true
}

var comparePattern = regexp.MustCompile(`\b(compare|difference|similarity|both|vs|versus|between)\b`)

func asksComparison(t *turn) bool {
	return comparePattern.MatchString(t.query)
}

func compareCharacters(t *turn) (string, bool) {
	found := mentionedCharacters(t.cat, t.query)
	if len(found) != 2 {
		return "", false
	}
	a, b := found[0], found[1]
	t.remember(characterEntry(a))
	t.remember(characterEntry(b))
	return say(fmt.Sprintf("Comparing **%s** and **%s**:\n\n- %s: %s\n- %s: %s\n\nKey differences: %s is a %s, %s is a %s.\n\nWant to know about their powers or battles?",
		a.Name, b.Name,
		a.Name, summarize(a.Description, 200),
		b.Name, summarize(b.Description, 200),
		a.Name, a.Role, b.Name, b.Role)), true
}

// mentionedCharacters returns the characters whose name or id appears in q.
func mentionedCharacters(cat *catalog.Catalog, q string) []models.Character {
	var out []models.Character
	for _, c := range cat.Characters() {
		if containsAnyWord(q, strings.ToLower(c.Name), strings.ToLower(c.ID)) {
			out = append(out, c)
		}
	}
	return out
}

func storyTitle(cat *catalog.Catalog, id string) string {
	if s, ok := cat.Story(id); ok {
		return s.Title
	}
	return "this story"
}
