package recommend

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/kamdem/biogate/internal/identity"
)

const geminiModel = "gemini-2.5-flash"

// Gemini is the Gemini-backed counterpart of the OpenAI recommender.
type Gemini struct {
	client  *genai.Client
	source  CategorySource
	history HistorySource
}

func NewGemini(ctx context.Context, apiKey string, source CategorySource, history HistorySource) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, source: source, history: history}, nil
}

func (g *Gemini) Recommend(ctx context.Context, id identity.Identity) (Recommendation, error) {
	categories, err := g.source.Categories(ctx)
	if err != nil {
		return Recommendation{}, err
	}

	var history []string
	if g.history != nil {
		if h, err := g.history.History(ctx, id); err == nil {
			history = h
		}
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: recommendSystemPrompt + "\n\n" + buildRecommendPrompt(id, categories, history)},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	result, err := g.client.Models.GenerateContent(ctx, geminiModel, contents, config)
	if err != nil {
		return Recommendation{}, fmt.Errorf("gemini API error: %w", err)
	}

	content := result.Text()
	if content == "" {
		return Recommendation{}, errors.New("no response from Gemini")
	}

	return parseCategoryPick(content, categories)
}
