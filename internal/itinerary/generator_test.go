// README: Tests for the generation orchestrator's retry and credential gate.
package itinerary

import (
	"context"
	"errors"
	"testing"
	"time"

	"tripmaster/internal/llm"
	"tripmaster/internal/modules/trip"
)

func validDays(n int) []trip.Day {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	days := make([]trip.Day, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, trip.Day{
			DayIndex: i,
			Date:     base.AddDate(0, 0, i),
			Items:    []trip.Item{{Title: "Stop"}},
		})
	}
	return days
}

func TestGenerateRetriesThenSucceeds(t *testing.T) {
	provider := &fakeProvider{
		results: []fakeResult{
			{err: errors.New("malformed output")},
			{days: validDays(2)},
		},
	}
	g := &Generator{factory: func(string, string) (llm.Provider, error) { return provider, nil }}

	days, err := g.Generate(context.Background(), trip.GenerateRequest{Provider: llm.ProviderMock}, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(days) != 2 {
		t.Errorf("got %d days, want 2", len(days))
	}
	if provider.calls != 2 {
		t.Errorf("provider called %d times, want 2", provider.calls)
	}
}

func TestGenerateExhaustsRetryBudget(t *testing.T) {
	provider := &fakeProvider{
		results: []fakeResult{
			{err: errors.New("bad json")},
			{err: errors.New("still bad")},
		},
	}
	g := &Generator{factory: func(string, string) (llm.Provider, error) { return provider, nil }}

	_, err := g.Generate(context.Background(), trip.GenerateRequest{Provider: llm.ProviderMock}, 1)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("error = %v, want ErrGenerationFailed", err)
	}
	if provider.calls != 2 {
		t.Errorf("provider called %d times, want 2 (maxRetries+1)", provider.calls)
	}
}

func TestGenerateRetriesOnInvalidSchema(t *testing.T) {
	provider := &fakeProvider{
		results: []fakeResult{
			{days: []trip.Day{{DayIndex: 0, Items: []trip.Item{{Title: "no date"}}}}},
			{days: validDays(1)},
		},
	}
	g := &Generator{factory: func(string, string) (llm.Provider, error) { return provider, nil }}

	days, err := g.Generate(context.Background(), trip.GenerateRequest{Provider: llm.ProviderMock}, 1)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(days) != 1 {
		t.Errorf("got %d days, want 1", len(days))
	}
}

func TestGenerateCredentialGate(t *testing.T) {
	factoryCalled := false
	g := &Generator{factory: func(string, string) (llm.Provider, error) {
		factoryCalled = true
		return &fakeProvider{}, nil
	}}

	_, err := g.Generate(context.Background(), trip.GenerateRequest{Provider: llm.ProviderOpenAI}, 1)
	if !errors.Is(err, ErrCredentialRequired) {
		t.Fatalf("error = %v, want ErrCredentialRequired", err)
	}
	if factoryCalled {
		t.Error("factory should not be called when the credential gate fails")
	}
}

func TestGenerateMockNeedsNoCredential(t *testing.T) {
	provider := &fakeProvider{results: []fakeResult{{days: validDays(1)}}}
	g := &Generator{factory: func(string, string) (llm.Provider, error) { return provider, nil }}

	if _, err := g.Generate(context.Background(), trip.GenerateRequest{Provider: llm.ProviderMock}, 0); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestGenerateUnknownProviderPassesThrough(t *testing.T) {
	g := NewGenerator()
	_, err := g.Generate(context.Background(), trip.GenerateRequest{Provider: "llama", APIKey: "k"}, 1)
	if !errors.Is(err, llm.ErrUnknownProvider) {
		t.Fatalf("error = %v, want ErrUnknownProvider", err)
	}
}

type fakeResult struct {
	days []trip.Day
	err  error
}

type fakeProvider struct {
	calls   int
	results []fakeResult
}

func (p *fakeProvider) GenerateItinerary(_ context.Context, _ llm.GenerateOptions) ([]trip.Day, error) {
	if p.calls >= len(p.results) {
		return nil, errors.New("unexpected extra call")
	}
	r := p.results[p.calls]
	p.calls++
	return r.days, r.err
}
