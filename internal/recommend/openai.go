package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/kamdem/biogate/internal/identity"
)

const openAIModel = openai.ChatModelGPT4_1Mini

// OpenAI asks a chat model to pick a category for the customer, optionally
// using their purchase history as context. The picked category must come
// from the configured category set; anything else is rejected.
type OpenAI struct {
	client  *openai.Client
	source  CategorySource
	history HistorySource
}

func NewOpenAI(apiKey string, source CategorySource, history HistorySource) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{client: &client, source: source, history: history}
}

type categoryPick struct {
	Category string `json:"category"`
}

func (o *OpenAI) Recommend(ctx context.Context, id identity.Identity) (Recommendation, error) {
	categories, err := o.source.Categories(ctx)
	if err != nil {
		return Recommendation{}, err
	}

	userContent := buildRecommendPrompt(id, categories, o.fetchHistory(ctx, id))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openAIModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(recommendSystemPrompt),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(userContent),
					},
				},
			},
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		MaxTokens: openai.Int(50),
	})
	if err != nil {
		return Recommendation{}, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Recommendation{}, errors.New("no response from OpenAI")
	}

	return parseCategoryPick(resp.Choices[0].Message.Content, categories)
}

func (o *OpenAI) fetchHistory(ctx context.Context, id identity.Identity) []string {
	if o.history == nil {
		return nil
	}
	history, err := o.history.History(ctx, id)
	if err != nil {
		return nil
	}
	return history
}

const recommendSystemPrompt = `You are a product recommendation assistant.
Pick exactly one category for the customer from the allowed list.
Respond with JSON: {"category": "<name>"}.`

func buildRecommendPrompt(id identity.Identity, categories, history []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s\n", id)
	fmt.Fprintf(&b, "Allowed categories: %s\n", strings.Join(categories, ", "))
	if len(history) > 0 {
		fmt.Fprintf(&b, "Past purchases: %s\n", strings.Join(history, ", "))
	}
	return b.String()
}

func parseCategoryPick(content string, categories []string) (Recommendation, error) {
	var pick categoryPick
	if err := json.Unmarshal([]byte(content), &pick); err != nil {
		return Recommendation{}, fmt.Errorf("failed to parse category JSON: %w", err)
	}

	for _, c := range categories {
		if strings.EqualFold(c, pick.Category) {
			return Recommendation{Category: c}, nil
		}
	}
	return Recommendation{}, fmt.Errorf("model picked category %q outside the allowed set", pick.Category)
}
