package models

import "strings"

// Story is one entry of the static catalog. Content is plain text with
// paragraphs separated by blank lines.
type Story struct {
	ID        string `yaml:"id" json:"id"`
	Title     string `yaml:"title" json:"title"`
	Author    string `yaml:"author" json:"author"`
	Published string `yaml:"published" json:"published"`
	Summary   string `yaml:"summary" json:"summary"`
	Content   string `yaml:"content" json:"content,omitempty"`
	Featured  bool   `yaml:"featured" json:"featured"`
}

// Paragraphs splits the story content on blank lines.
func (s Story) Paragraphs() []string {
	var out []string
	for _, p := range strings.Split(strings.ReplaceAll(s.Content, "\r\n", "\n"), "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Card returns the story without its content, for listings.
func (s Story) Card() Story {
	s.Content = ""
	return s
}
