package assistant

import (
	"fmt"
	"strings"

	"comics/catalog"
	"comics/models"
)

func characterProfile(c models.Character) string {
	return fmt.Sprintf("**%s**\n\n**Role:** %s\n\n**Description:** %s\n\n**Abilities:** %s",
		c.Name, c.Role, c.Description, strings.Join(c.Abilities, ", "))
}

// characterDetail extends the profile with the story the character appears in
// and the characters of that story who play a different role.
func characterDetail(cat *catalog.Catalog, c models.Character) string {
	var b strings.Builder
	b.WriteString(characterProfile(c))
	if s, ok := cat.Story(c.RelatedStory); ok {
		fmt.Fprintf(&b, "\n\n**Appears in:** %s", s.Title)
	}
	var others []string
	for _, o := range cat.CharactersInStory(c.RelatedStory) {
		if o.ID != c.ID && o.Role != c.Role {
			others = append(others, o.Name)
		}
	}
	if len(others) > 0 {
		fmt.Fprintf(&b, "\n\n**Other key characters in this story:** %s", strings.Join(others, ", "))
	}
	return b.String()
}

func storyDetail(s models.Story, quote string) string {
	return fmt.Sprintf("**%s**\n\n**Summary:** %s\n\n**Relevant Content:** %s\n\n**Published:** %s\n\n**Author:** %s",
		s.Title, s.Summary, quote, s.Published, s.Author)
}

// quoteFrom picks an excerpt around the first word that occurs in the story,
// or the opening of the story when none does.
func quoteFrom(s models.Story, words []string) string {
	if s.Content == "" {
		return ""
	}
	for _, w := range words {
		if q := excerpt(s.Content, w); q != "" {
			return q
		}
	}
	return opening(s.Content, 300)
}

func storyList(heading string, stories []models.Story, withID bool) string {
	items := make([]string, 0, len(stories))
	for _, s := range stories {
		title := "**" + s.Title + "**"
		if withID {
			title += " (" + s.ID + ")"
		}
		items = append(items, fmt.Sprintf("• %s\n  Summary: %s\n  Published: %s", title, s.Summary, s.Published))
	}
	return fmt.Sprintf("**%s (%d):**\n%s", heading, len(stories), strings.Join(items, "\n\n"))
}

func characterList(heading string, chars []models.Character) string {
	items := make([]string, 0, len(chars))
	for _, c := range chars {
		items = append(items, fmt.Sprintf("• **%s**\n  Description: %s\n  Abilities: %s", c.Name, c.Description, strings.Join(c.Abilities, ", ")))
	}
	return fmt.Sprintf("**%s:**\n%s", heading, strings.Join(items, "\n\n"))
}

func bullets(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "• " + l
	}
	return strings.Join(out, "\n")
}

func nameList(chars []models.Character) []string {
	out := make([]string, len(chars))
	for i, c := range chars {
		out[i] = c.Name
	}
	return out
}

func names(chars []models.Character) string {
	return strings.Join(nameList(chars), ", ")
}
