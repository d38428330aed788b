package assistant

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"comics/catalog"
	"comics/prompts"
)

// GeminiFallback answers unmatched questions with a Gemini model grounded in
// the current catalog.
type GeminiFallback struct {
	client *genai.Client
	model  string
	store  *catalog.Store
}

func NewGeminiFallback(ctx context.Context, apiKey, model string, store *catalog.Store) (*GeminiFallback, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiFallback{client: client, model: model, store: store}, nil
}

func (g *GeminiFallback) Answer(ctx context.Context, question string) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompts.ConstructAssistantSystemPrompt(g.store.Get()), genai.RoleUser),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(question, genai.RoleUser)},
		genConfig)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	return resp.Text(), nil
}
