package catalog

import "fmt"

// Issue is a referential problem found by Validate.
type Issue struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Ref     string `json:"ref"`
}

func (i Issue) String() string {
	if i.Kind == "featured" {
		return fmt.Sprintf("story %s is marked featured but another story already is", i.Subject)
	}
	return fmt.Sprintf("%s %s references unknown story %q", i.Kind, i.Subject, i.Ref)
}

// Validate lists dangling story references and extra featured stories.
// None of these stop the catalog from being served.
func (c *Catalog) Validate() []Issue {
	var issues []Issue
	for _, ch := range c.characters {
		if _, ok := c.storyIndex[ch.RelatedStory]; !ok {
			issues = append(issues, Issue{Kind: "character", Subject: ch.ID, Ref: ch.RelatedStory})
		}
	}
	for _, a := range c.knowledge.StoryArcs {
		for _, id := range a.Stories {
			if _, ok := c.storyIndex[id]; !ok {
				issues = append(issues, Issue{Kind: "arc", Subject: a.Name, Ref: id})
			}
		}
	}
	featured := 0
	for _, s := range c.stories {
		if s.Featured {
			featured++
			if featured > 1 {
				issues = append(issues, Issue{Kind: "featured", Subject: s.ID, Ref: s.ID})
			}
		}
	}
	return issues
}
