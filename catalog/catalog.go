// Package catalog holds the static story, character and knowledge content
// that every other part of the service reads from.
package catalog

import (
	"strings"

	"comics/models"
)

// Catalog is immutable once loaded.
type Catalog struct {
	stories    []models.Story
	characters []models.Character
	knowledge  models.Knowledge

	storyIndex     map[string]int
	characterIndex map[string]int
}

func newCatalog(stories []models.Story, characters []models.Character, knowledge models.Knowledge) *Catalog {
	c := &Catalog{
		stories:        stories,
		characters:     characters,
		knowledge:      knowledge,
		storyIndex:     make(map[string]int, len(stories)),
		characterIndex: make(map[string]int, len(characters)),
	}
	for i, s := range stories {
		c.storyIndex[s.ID] = i
	}
	for i, ch := range characters {
		c.characterIndex[ch.ID] = i
	}
	return c
}

func (c *Catalog) Stories() []models.Story {
	return c.stories
}

func (c *Catalog) Characters() []models.Character {
	return c.characters
}

func (c *Catalog) Knowledge() models.Knowledge {
	return c.knowledge
}

// Story looks a story up by ID.
func (c *Catalog) Story(id string) (models.Story, bool) {
	i, ok := c.storyIndex[id]
	if !ok {
		return models.Story{}, false
	}
	return c.stories[i], true
}

// Character looks a character up by ID.
func (c *Catalog) Character(id string) (models.Character, bool) {
	i, ok := c.characterIndex[id]
	if !ok {
		return models.Character{}, false
	}
	return c.characters[i], true
}

// Featured returns the first featured story.
func (c *Catalog) Featured() (models.Story, bool) {
	for _, s := range c.stories {
		if s.Featured {
			return s, true
		}
	}
	return models.Story{}, false
}

// Others returns every story that is not featured.
func (c *Catalog) Others() []models.Story {
	var out []models.Story
	for _, s := range c.stories {
		if !s.Featured {
			out = append(out, s)
		}
	}
	return out
}

// CharactersByRole matches the role exactly, ignoring case.
func (c *Catalog) CharactersByRole(role string) []models.Character {
	var out []models.Character
	for _, ch := range c.characters {
		if strings.EqualFold(ch.Role, role) {
			out = append(out, ch)
		}
	}
	return out
}

func (c *Catalog) CharactersInStory(storyID string) []models.Character {
	var out []models.Character
	for _, ch := range c.characters {
		if ch.RelatedStory == storyID {
			out = append(out, ch)
		}
	}
	return out
}

// StoriesWithPrefix returns the stories whose ID starts with prefix, in
// catalog order.
func (c *Catalog) StoriesWithPrefix(prefix string) []models.Story {
	var out []models.Story
	for _, s := range c.stories {
		if strings.HasPrefix(s.ID, prefix) {
			out = append(out, s)
		}
	}
	return out
}

// ArcOf returns the arc containing storyID.
func (c *Catalog) ArcOf(storyID string) (models.StoryArc, bool) {
	for _, a := range c.knowledge.StoryArcs {
		if a.IndexOf(storyID) >= 0 {
			return a, true
		}
	}
	return models.StoryArc{}, false
}
