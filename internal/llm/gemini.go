// README: Gemini provider using Google's official genai SDK.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"tripmaster/internal/modules/trip"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider generates itineraries with Gemini in JSON response mode.
// The client is created per call so provider instances stay cheap to build.
type GeminiProvider struct {
	apiKey string
}

func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey}
}

func (p *GeminiProvider) GenerateItinerary(ctx context.Context, opts GenerateOptions) ([]trip.Day, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	defer client.Close()

	name := opts.Model
	if name == "" {
		name = defaultGeminiModel
	}

	model := client.GenerativeModel(name)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.7)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt())}}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt(opts)))
	if err != nil {
		return nil, fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini: API returned empty candidates")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}

	days, err := decodeDays(text.String())
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return days, nil
}
