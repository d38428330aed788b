package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"comics/catalog"
)

func TestAssistantPromptCoversCatalog(t *testing.T) {
	cat := catalog.Default()
	prompt := ConstructAssistantSystemPrompt(cat)

	for _, s := range cat.Stories() {
		assert.Contains(t, prompt, s.Title)
	}
	for _, c := range cat.Characters() {
		assert.Contains(t, prompt, c.Name)
	}
	assert.Contains(t, prompt, "Jashan Bansal")
	assert.Contains(t, prompt, "Fourth Wall breaker")
}
