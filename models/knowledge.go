package models

// Knowledge is the assistant's static knowledge base beyond stories and
// characters.
type Knowledge struct {
	Author     Author           `yaml:"author" json:"author"`
	Universe   Universe         `yaml:"universe" json:"universe"`
	Timeline   []TimelinePeriod `yaml:"timeline" json:"timeline"`
	PowerTypes []PowerType      `yaml:"power_types" json:"power_types"`
	StoryArcs  []StoryArc       `yaml:"story_arcs" json:"story_arcs"`
}

type Author struct {
	Name         string        `yaml:"name" json:"name"`
	Bio          string        `yaml:"bio" json:"bio"`
	Education    string        `yaml:"education" json:"education"`
	WritingStyle string        `yaml:"writing_style" json:"writing_style"`
	Themes       []string      `yaml:"themes" json:"themes"`
	Contact      AuthorContact `yaml:"contact" json:"contact"`
}

type AuthorContact struct {
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
	WhatsApp string `yaml:"whatsapp" json:"whatsapp"`
	Email    string `yaml:"email" json:"email"`
}

type Universe struct {
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	CoreConcepts []string `yaml:"core_concepts" json:"core_concepts"`
}

type TimelinePeriod struct {
	Period       string   `yaml:"period" json:"period"`
	Events       []string `yaml:"events" json:"events"`
	Significance string   `yaml:"significance" json:"significance"`
}

type PowerType struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Users       []string `yaml:"users" json:"users"`
	Limitations string   `yaml:"limitations" json:"limitations"`
}

// StoryArc groups story IDs in reading order.
type StoryArc struct {
	Name          string   `yaml:"name" json:"name"`
	Stories       []string `yaml:"stories" json:"stories"`
	Theme         string   `yaml:"theme" json:"theme"`
	MainCharacter string   `yaml:"main_character" json:"main_character"`
}

// IndexOf returns the position of storyID in the arc, or -1.
func (a StoryArc) IndexOf(storyID string) int {
	for i, id := range a.Stories {
		if id == storyID {
			return i
		}
	}
	return -1
}
