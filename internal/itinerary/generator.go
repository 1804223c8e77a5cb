// README: Generation orchestrator — provider selection, credential gate, bounded retry.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tripmaster/internal/llm"
	"tripmaster/internal/modules/trip"
)

var (
	// ErrCredentialRequired is returned before any provider call when a
	// non-mock provider is selected without a usable API key.
	ErrCredentialRequired = errors.New("api key required")
	// ErrGenerationFailed wraps the last underlying failure once the retry
	// budget is exhausted.
	ErrGenerationFailed = errors.New("itinerary generation failed")
)

type providerFactory func(provider, apiKey string) (llm.Provider, error)

// Generator runs schema-validated itinerary generation with bounded retry.
// Remote generation fails in mundane ways (malformed JSON, missing fields,
// transient service errors); retrying locally absorbs that without pushing
// retry loops into every caller. Attempts are immediate — the dominant
// failure mode is malformed output, not rate limiting.
type Generator struct {
	factory providerFactory
}

func NewGenerator() *Generator {
	return &Generator{factory: llm.New}
}

// Generate runs up to maxRetries+1 sequential attempts and returns the first
// result that passes structural validation. Credential and provider-selection
// errors fail fast without consuming an attempt.
func (g *Generator) Generate(ctx context.Context, req trip.GenerateRequest, maxRetries int) ([]trip.Day, error) {
	if req.Provider != llm.ProviderMock && strings.TrimSpace(req.APIKey) == "" {
		return nil, fmt.Errorf("%w for provider %q", ErrCredentialRequired, req.Provider)
	}

	provider, err := g.factory(req.Provider, req.APIKey)
	if err != nil {
		return nil, err
	}

	opts := llm.GenerateOptions{
		Prompt:      req.Prompt,
		Model:       req.Model,
		DayCount:    req.DayCount,
		StartDate:   req.StartDate,
		Destination: req.Destination,
		APIKey:      req.APIKey,
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		days, err := provider.GenerateItinerary(ctx, opts)
		if err != nil {
			lastErr = err
			continue
		}
		if err := ValidateDays(days); err != nil {
			lastErr = err
			continue
		}
		return days, nil
	}

	if lastErr == nil {
		return nil, ErrGenerationFailed
	}
	return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}
