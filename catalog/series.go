package catalog

import (
	"strings"

	"comics/models"
)

// SeriesGroup is one section of the story listing.
type SeriesGroup struct {
	Name    string         `json:"name"`
	Stories []models.Story `json:"stories"`
}

var seriesPrefixes = []struct {
	prefix string
	name   string
}{
	{"videogamer", "Videogamer"},
	{"atom", "Atom"},
	{"dictator", "Dictator"},
	{"mreffort", "Mr. Effort"},
	{"scientist", "Scientist"},
	{"collab", "Collab"},
}

// Series maps a story ID to its series name by prefix.
func Series(storyID string) string {
	for _, p := range seriesPrefixes {
		if strings.HasPrefix(storyID, p.prefix) {
			return p.name
		}
	}
	return "Other"
}

// BySeries groups stories by series in first-seen order. Content is stripped.
func (c *Catalog) BySeries() []SeriesGroup {
	var groups []SeriesGroup
	pos := make(map[string]int)
	for _, s := range c.stories {
		name := Series(s.ID)
		i, ok := pos[name]
		if !ok {
			i = len(groups)
			pos[name] = i
			groups = append(groups, SeriesGroup{Name: name})
		}
		groups[i].Stories = append(groups[i].Stories, s.Card())
	}
	return groups
}
