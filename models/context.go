package models

// Context entry types. Category markers reuse story/character/arc and add
// author and universe; markers carry no entity.
const (
	EntryStory     = "story"
	EntryCharacter = "character"
	EntryPower     = "power"
	EntryArc       = "arc"
	EntryTheme     = "theme"
	EntryAuthor    = "author"
	EntryUniverse  = "universe"
)

// ContextEntry is one element of an assistant session's context history.
// At most one of the entity fields is set.
type ContextEntry struct {
	Type      string     `json:"type"`
	Story     *Story     `json:"story,omitempty"`
	Character *Character `json:"character,omitempty"`
	Power     *PowerType `json:"power,omitempty"`
	Arc       *StoryArc  `json:"arc,omitempty"`
	Theme     string     `json:"theme,omitempty"`
}

// Label is the display name of the referenced entity, or "" for markers.
func (e ContextEntry) Label() string {
	switch {
	case e.Character != nil:
		return e.Character.Name
	case e.Story != nil:
		return e.Story.Title
	case e.Power != nil:
		return e.Power.Name
	case e.Arc != nil:
		return e.Arc.Name
	default:
		return e.Theme
	}
}

// HasEntity reports whether the entry references an entity rather than being
// a bare category marker.
func (e ContextEntry) HasEntity() bool {
	return e.Label() != ""
}

// Same reports whether both entries reference the same entity.
func (e ContextEntry) Same(o ContextEntry) bool {
	if e.Type != o.Type {
		return false
	}
	switch {
	case e.Character != nil && o.Character != nil:
		return e.Character.ID == o.Character.ID
	case e.Story != nil && o.Story != nil:
		return e.Story.ID == o.Story.ID
	case e.Power != nil && o.Power != nil:
		return e.Power.Name == o.Power.Name
	case e.Arc != nil && o.Arc != nil:
		return e.Arc.Name == o.Arc.Name
	}
	return e.Label() == o.Label()
}
