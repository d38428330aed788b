package models

// Character roles used by the catalog.
const (
	RoleProtagonist = "Protagonist"
	RoleAntagonist  = "Antagonist"
	RoleSupporting  = "Supporting Character"
	RoleMysterious  = "Mysterious Entity"
)

// Character is a character profile. RelatedStory references a Story ID and is
// not enforced at runtime.
type Character struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Role         string   `yaml:"role" json:"role"`
	Description  string   `yaml:"description" json:"description"`
	Abilities    []string `yaml:"abilities" json:"abilities"`
	RelatedStory string   `yaml:"related_story" json:"related_story"`
}
