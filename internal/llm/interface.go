// README: Provider contract for itinerary generation (mock or remote LLM).
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tripmaster/internal/modules/trip"
)

// Provider keys accepted by New.
const (
	ProviderMock      = "mock"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

var (
	ErrUnknownProvider       = errors.New("unknown generation provider")
	ErrProviderUnimplemented = errors.New("generation provider not implemented yet")
)

// GenerateOptions carries everything a provider needs for one generation call.
type GenerateOptions struct {
	Prompt      string
	Model       string
	DayCount    int
	StartDate   *time.Time
	Destination string
	APIKey      string
}

// Provider produces a day-by-day itinerary from a prompt. Remote variants
// return the decoded days array without structural validation; that happens
// one layer up in the generation orchestrator.
type Provider interface {
	GenerateItinerary(ctx context.Context, opts GenerateOptions) ([]trip.Day, error)
}

// New resolves a provider by key. Unrecognised keys fail loudly rather than
// silently falling back to the mock variant.
func New(provider, apiKey string) (Provider, error) {
	switch provider {
	case ProviderMock:
		return MockProvider{}, nil
	case ProviderOpenAI:
		return NewOpenAIProvider(apiKey), nil
	case ProviderGemini:
		return NewGeminiProvider(apiKey), nil
	case ProviderAnthropic:
		return nil, fmt.Errorf("%w: %q", ErrProviderUnimplemented, provider)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}
