package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"comics/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	featured, ok := c.Featured()
	require.True(t, ok)
	assert.Equal(t, "videogamer-1", featured.ID)
	assert.Len(t, c.Others(), len(c.Stories())-1)

	s, ok := c.Story("atom-1")
	require.True(t, ok)
	assert.Equal(t, "Atom: The White Room", s.Title)
	assert.Len(t, s.Paragraphs(), 3)

	_, ok = c.Story("missing")
	assert.False(t, ok)

	ch, ok := c.Character("pandey")
	require.True(t, ok)
	assert.Equal(t, models.RoleSupporting, ch.Role)

	assert.Empty(t, c.Validate(), "embedded catalog should have no dangling references")
}

func TestCharactersByRoleAndStory(t *testing.T) {
	c := Default()

	for _, ch := range c.CharactersByRole("antagonist") {
		assert.Equal(t, models.RoleAntagonist, ch.Role)
	}
	assert.NotEmpty(t, c.CharactersByRole(models.RoleProtagonist))

	inAtom := c.CharactersInStory("atom-1")
	var ids []string
	for _, ch := range inAtom {
		ids = append(ids, ch.ID)
	}
	assert.ElementsMatch(t, []string{"atom", "pandey", "origin-psycho"}, ids)
}

func TestSeries(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"videogamer-2", "Videogamer"},
		{"atom-3", "Atom"},
		{"dictator-1", "Dictator"},
		{"mreffort-1", "Mr. Effort"},
		{"scientist-1", "Scientist"},
		{"collab-1", "Collab"},
		{"side-story", "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Series(tt.id))
		})
	}
}

func TestBySeriesStripsContent(t *testing.T) {
	groups := Default().BySeries()
	require.NotEmpty(t, groups)
	assert.Equal(t, "Videogamer", groups[0].Name)
	total := 0
	for _, g := range groups {
		for _, s := range g.Stories {
			assert.Empty(t, s.Content)
			total++
		}
	}
	assert.Equal(t, len(Default().Stories()), total)
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no stories", "characters: []\n"},
		{"story without id", "stories:\n  - title: x\n"},
		{"duplicate story", "stories:\n  - id: a\n  - id: a\n"},
		{"character without name", "stories:\n  - id: a\ncharacters:\n  - id: c\n"},
		{"not yaml", "stories: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestValidateReportsDanglingReferences(t *testing.T) {
	doc := `
stories:
  - id: a
    featured: true
  - id: b
    featured: true
characters:
  - id: c
    name: C
    related_story: nowhere
knowledge:
  story_arcs:
    - name: Arc
      stories: [a, gone]
`
	c, err := Parse([]byte(doc))
	require.NoError(t, err)

	issues := c.Validate()
	require.Len(t, issues, 3)
	assert.Equal(t, Issue{Kind: "character", Subject: "c", Ref: "nowhere"}, issues[0])
	assert.Equal(t, Issue{Kind: "arc", Subject: "Arc", Ref: "gone"}, issues[1])
	assert.Equal(t, "featured", issues[2].Kind)

	_, ok := c.Story(c.Characters()[0].RelatedStory)
	assert.False(t, ok)
}

func TestWatcherReloadsCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stories:\n  - id: one\n"), 0o644))

	first, err := Load(path)
	require.NoError(t, err)
	store := NewStore(first)

	w, err := NewWatcher(path, store, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	w.Start(context.Background())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("not: [valid\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, store.Get().Stories(), 1, "broken file keeps the previous catalog")

	require.NoError(t, os.WriteFile(path, []byte("stories:\n  - id: one\n  - id: two\n"), 0o644))
	require.Eventually(t, func() bool {
		return len(store.Get().Stories()) == 2
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcherStopWithoutStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stories:\n  - id: one\n"), 0o644))

	w, err := NewWatcher(path, NewStore(nil), zap.NewNop())
	require.NoError(t, err)

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked on a watcher that never started")
	}
}
