package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"comics/models"
)

var relationshipPattern = regexp.MustCompile(`relationship|connection|how.*related|who.*fought|who.*helped|who.*saved`)

func asksRelationship(t *turn) bool {
	return relationshipPattern.MatchString(t.query)
}

func relationshipInContext(t *turn) (string, bool) {
	e, ok := t.session.fromEnd(1)
	if !ok {
		return "", false
	}
	switch {
	case e.Character != nil && e.Character.RelatedStory != "":
		c := e.Character
		return say(fmt.Sprintf("**%s**'s role in **%s**: %s", c.Name, storyTitle(t.cat, c.RelatedStory), c.Description)), true
	case e.Arc != nil && e.Arc.MainCharacter != "":
		return say(fmt.Sprintf("**%s** is the main character of the %s arc.", e.Arc.MainCharacter, e.Arc.Name)), true
	}
	return "", false
}

// Matched on the raw input: substitution rewrites these very words when the
// last entry is a theme.
var themeMeaningPattern = regexp.MustCompile(`\b(themes?|motifs?|significance|meaning|why important)\b|what does.*represent`)

func asksThemeMeaning(t *turn) bool {
	return themeMeaningPattern.MatchString(t.raw)
}

func themeInContext(t *turn) (string, bool) {
	e, ok := t.session.fromEnd(1)
	if !ok {
		return "", false
	}
	k := t.cat.Knowledge()
	switch {
	case e.Type == models.EntryTheme && e.Theme != "":
		var arcs []string
		for _, a := range k.StoryArcs {
			if strings.Contains(strings.ToLower(a.Theme), strings.ToLower(e.Theme)) {
				arcs = append(arcs, a.Name)
			}
		}
		where := "the wider universe"
		if len(arcs) > 0 {
			where = strings.Join(arcs, ", ")
		}
		return say(fmt.Sprintf("**Theme: %s**\nThis theme is explored through various characters and storylines, such as %s.", e.Theme, where)), true
	case e.Story != nil:
		var themes []string
		summary := strings.ToLower(e.Story.Summary)
		for _, th := range k.Author.Themes {
			if strings.Contains(summary, strings.ToLower(th)) {
				themes = append(themes, th)
			}
		}
		listed := "None of the recurring themes are named in its summary."
		if len(themes) > 0 {
			listed = strings.Join(themes, ", ")
		}
		return say(fmt.Sprintf("**Themes in %s:**\n%s", e.Story.Title, listed)), true
	}
	return "", false
}

// mentionsAuthor ignores author words that are part of a named character,
// such as "The Creator".
func mentionsAuthor(t *turn) bool {
	return containsAnyWord(withoutName(t), "author", "jashan", "writer", "creator")
}

func authorInfo(t *turn) (string, bool) {
	t.remember(marker(models.EntryAuthor))
	a := t.cat.Knowledge().Author
	q := t.query
	switch {
	case containsAnyWord(q, "style", "writing"):
		return say(fmt.Sprintf("**%s's Writing Style:**\n%s\n\n**Themes:** %s", a.Name, a.WritingStyle, strings.Join(a.Themes, ", "))), true
	case containsAnyWord(q, "bio", "about"):
		return say(fmt.Sprintf("**About the Author:**\n%s\n\n**Education:** %s", a.Bio, a.Education)), true
	case containsAnyWord(q, "education", "study", "degree"):
		return say(fmt.Sprintf("**Education:** %s", a.Education)), true
	case containsWord(q, "contact"):
		var b strings.Builder
		fmt.Fprintf(&b, "**Contact %s:**", a.Name)
		if a.Contact.LinkedIn != "" {
			fmt.Fprintf(&b, "\n- LinkedIn: %s", a.Contact.LinkedIn)
		}
		if a.Contact.WhatsApp != "" {
			fmt.Fprintf(&b, "\n- WhatsApp: %s", a.Contact.WhatsApp)
		}
		if a.Contact.Email != "" {
			fmt.Fprintf(&b, "\n- Email: %s", a.Contact.Email)
		}
		return say(b.String()), true
	}
	return say(fmt.Sprintf("**Author:** %s\n\n**Education:** %s\n\n%s\n\n**Writing Style:** %s", a.Name, a.Education, a.Bio, a.WritingStyle)), true
}

func mentionsUniverse(t *turn) bool {
	return containsAnyWord(t.query, "universe", "world", "setting", "lore")
}

func universeInfo(t *turn) (string, bool) {
	t.remember(marker(models.EntryUniverse))
	u := t.cat.Knowledge().Universe
	if containsAnyWord(t.query, "concept", "concepts", "core") {
		return say(fmt.Sprintf("**Core Concepts of %s:**\n%s", u.Name, bullets(u.CoreConcepts))), true
	}
	return say(fmt.Sprintf("**Universe:** %s\n\n%s\n\n**Core Concepts:**\n%s", u.Name, u.Description, bullets(u.CoreConcepts))), true
}

func mentionsArcs(t *turn) bool {
	return containsAnyWord(t.query, "arc", "arcs", "series", "saga", "sagas")
}

func arcList(t *turn) (string, bool) {
	t.remember(marker(models.EntryArc))
	k := t.cat.Knowledge()
	items := make([]string, 0, len(k.StoryArcs))
	for _, a := range k.StoryArcs {
		items = append(items, fmt.Sprintf("**%s**\n• Stories: %s\n• Theme: %s\n• Main Character: %s",
			a.Name, strings.Join(a.Stories, ", "), a.Theme, a.MainCharacter))
	}
	return say(fmt.Sprintf("**Story Arcs in %s:**\n%s", k.Universe.Name, strings.Join(items, "\n\n"))), true
}

// storyCategoryTable is checked in order; the first whose words appear wins.
var storyCategoryTable = []struct {
	label  string
	prefix string
	words  []string
}{
	{"Videogamer Stories", "videogamer", []string{"videogamer"}},
	{"Atom Stories", "atom", []string{"atom"}},
	{"Dictator Stories", "dictator", []string{"dictator"}},
	{"Mr. Effort Stories", "mreffort", []string{"mr. effort", "mreffort"}},
}

func mentionsStories(t *turn) bool {
	return containsAnyWord(t.query, "story", "stories")
}

func storyCategories(t *turn) (string, bool) {
	t.remember(marker(models.EntryStory))
	for _, group := range storyCategoryTable {
		if containsAnyWord(t.query, group.words...) {
			return say(storyList(group.label, t.cat.StoriesWithPrefix(group.prefix), false)), true
		}
	}
	if containsAnyWord(t.query, "all", "list") {
		return say(storyList("All Stories", t.cat.Stories(), true)), true
	}
	lines := make([]string, 0, len(storyCategoryTable))
	for _, group := range storyCategoryTable {
		lines = append(lines, fmt.Sprintf("%s: %d", group.label, len(t.cat.StoriesWithPrefix(group.prefix))))
	}
	return say(fmt.Sprintf("**Story Categories:**\n%s\n\nAsk about specific categories for detailed information!", bullets(lines))), true
}

func mentionsCharacters(t *turn) bool {
	return containsAnyWord(t.query, "character", "characters")
}

func characterCategories(t *turn) (string, bool) {
	t.remember(marker(models.EntryCharacter))
	q := t.query
	switch {
	case containsAnyWord(q, "protagonist", "protagonists", "hero", "heroes"):
		return say(characterList("Main Protagonists", t.cat.CharactersByRole(models.RoleProtagonist))), true
	case containsAnyWord(q, "antagonist", "antagonists", "villain", "villains"):
		return say(characterList("Main Antagonists", t.cat.CharactersByRole(models.RoleAntagonist))), true
	case containsWord(q, "supporting"):
		return say(characterList("Supporting Characters", t.cat.CharactersByRole(models.RoleSupporting))), true
	}
	return say(fmt.Sprintf("**Character Categories:**\n• Protagonists: %d\n• Antagonists: %d\n• Supporting Characters: %d\n\nAsk about specific categories or character names for detailed information!",
		len(t.cat.CharactersByRole(models.RoleProtagonist)),
		len(t.cat.CharactersByRole(models.RoleAntagonist)),
		len(t.cat.CharactersByRole(models.RoleSupporting)))), true
}

func mentionsThemes(t *turn) bool {
	return containsAnyWord(t.query, "theme", "themes", "concept", "concepts", "meaning")
}

func themeList(t *turn) (string, bool) {
	k := t.cat.Knowledge()
	lines := make([]string, 0, len(k.Author.Themes))
	for _, th := range k.Author.Themes {
		lines = append(lines, fmt.Sprintf("**%s**: Explored through various characters and storylines", th))
	}
	return say(fmt.Sprintf("**Themes in %s:**\n\n%s\n\nEach story explores these themes through different perspectives and power systems.",
		k.Universe.Name, bullets(lines))), true
}

func asksHelp(t *turn) bool {
	return containsWord(t.query, "help") || strings.Contains(t.query, "what can you do")
}

func help(*turn) (string, bool) {
	return say(helpReply), true
}

func asksTimeline(t *turn) bool {
	return containsAnyWord(t.query, "timeline", "chronology", "chronological", "history")
}

func timeline(t *turn) (string, bool) {
	k := t.cat.Knowledge()
	items := make([]string, 0, len(k.Timeline))
	for _, p := range k.Timeline {
		items = append(items, fmt.Sprintf("**%s**\n%s\n• Significance: %s", p.Period, bullets(p.Events), p.Significance))
	}
	return say(fmt.Sprintf("**Timeline of %s:**\n\n%s", k.Universe.Name, strings.Join(items, "\n\n"))), true
}

var powerListPattern = regexp.MustCompile(`\bpower (types|systems?)\b|\b(list|all) (the )?powers\b|\btypes of powers?\b`)

func asksPowers(t *turn) bool {
	return (t.entity != nil && t.entity.Power != nil) || powerListPattern.MatchString(t.query)
}

func powers(t *turn) (string, bool) {
	if t.entity != nil && t.entity.Power != nil {
		p := t.entity.Power
		return say(fmt.Sprintf("**%s**\n\n%s\n\n**Users:** %s\n\n**Limitations:** %s",
			p.Name, p.Description, strings.Join(p.Users, ", "), p.Limitations)), true
	}
	k := t.cat.Knowledge()
	lines := make([]string, 0, len(k.PowerTypes))
	for _, p := range k.PowerTypes {
		lines = append(lines, fmt.Sprintf("**%s**: %s", p.Name, p.Description))
	}
	return say(fmt.Sprintf("**Power Types:**\n%s", bullets(lines))), true
}
