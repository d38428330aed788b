package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"comics/models"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

type document struct {
	Stories    []models.Story     `yaml:"stories"`
	Characters []models.Character `yaml:"characters"`
	Knowledge  models.Knowledge   `yaml:"knowledge"`
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Load reads a catalog YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document and checks the structural rules that
// lookups depend on. Dangling references are reported by Validate instead.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(doc.Stories) == 0 {
		return nil, fmt.Errorf("catalog has no stories")
	}

	seen := make(map[string]struct{})
	for i, s := range doc.Stories {
		if s.ID == "" {
			return nil, fmt.Errorf("story %d id is required", i)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("duplicate story id: %s", s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	seen = make(map[string]struct{})
	for i, ch := range doc.Characters {
		if ch.ID == "" || ch.Name == "" {
			return nil, fmt.Errorf("character %d id and name are required", i)
		}
		if _, dup := seen[ch.ID]; dup {
			return nil, fmt.Errorf("duplicate character id: %s", ch.ID)
		}
		seen[ch.ID] = struct{}{}
	}

	return newCatalog(doc.Stories, doc.Characters, doc.Knowledge), nil
}
