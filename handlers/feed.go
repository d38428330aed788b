package handlers

import (
	"net/http"

	"comics/catalog"
	"comics/models"
)

type FeedResponse struct {
	Featured *models.Story  `json:"featured,omitempty"`
	Others   []models.Story `json:"others"`
	Count    int            `json:"count"`
}

type StoriesResponse struct {
	Series []catalog.SeriesGroup `json:"series"`
	Count  int                   `json:"count"`
}

type CharactersResponse struct {
	Characters []models.Character `json:"characters"`
	Count      int                `json:"count"`
}

type CharacterDetailResponse struct {
	Character    models.Character   `json:"character"`
	Story        *models.Story      `json:"story,omitempty"`
	CoCharacters []models.Character `json:"co_characters"`
}

type AboutResponse struct {
	Author     models.Author   `json:"author"`
	Universe   models.Universe `json:"universe"`
	Stories    int             `json:"stories"`
	Characters int             `json:"characters"`
}

// FeedHandler is the home page: the featured story and the rest as cards.
func (h *Handler) FeedHandler(w http.ResponseWriter, r *http.Request) {
	cat := h.Catalog.Get()

	resp := FeedResponse{Others: []models.Story{}}
	if f, ok := cat.Featured(); ok {
		card := f.Card()
		resp.Featured = &card
	}
	for _, s := range cat.Others() {
		resp.Others = append(resp.Others, s.Card())
	}
	resp.Count = len(resp.Others)
	if resp.Featured != nil {
		resp.Count++
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) StoriesHandler(w http.ResponseWriter, r *http.Request) {
	cat := h.Catalog.Get()
	writeJSON(w, http.StatusOK, StoriesResponse{Series: cat.BySeries(), Count: len(cat.Stories())})
}

func (h *Handler) CharactersHandler(w http.ResponseWriter, r *http.Request) {
	chars := h.Catalog.Get().Characters()
	writeJSON(w, http.StatusOK, CharactersResponse{Characters: chars, Count: len(chars)})
}

func (h *Handler) CharacterDetailHandler(w http.ResponseWriter, r *http.Request) {
	cat := h.Catalog.Get()
	c, ok := cat.Character(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Character not found")
		return
	}

	resp := CharacterDetailResponse{Character: c, CoCharacters: []models.Character{}}
	if s, ok := cat.Story(c.RelatedStory); ok {
		card := s.Card()
		resp.Story = &card
	}
	for _, other := range cat.CharactersInStory(c.RelatedStory) {
		if other.ID != c.ID {
			resp.CoCharacters = append(resp.CoCharacters, other)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AboutHandler(w http.ResponseWriter, r *http.Request) {
	cat := h.Catalog.Get()
	kb := cat.Knowledge()
	writeJSON(w, http.StatusOK, AboutResponse{
		Author:     kb.Author,
		Universe:   kb.Universe,
		Stories:    len(cat.Stories()),
		Characters: len(cat.Characters()),
	})
}
