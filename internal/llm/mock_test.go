// README: Tests for the deterministic mock provider.
package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockProviderDayShape(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	days, err := MockProvider{}.GenerateItinerary(context.Background(), GenerateOptions{
		DayCount:    3,
		StartDate:   &start,
		Destination: "Kyoto",
	})
	if err != nil {
		t.Fatalf("GenerateItinerary: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}

	for i, day := range days {
		if day.DayIndex != i {
			t.Errorf("day %d: dayIndex = %d", i, day.DayIndex)
		}
		want := start.AddDate(0, 0, i)
		if !day.Date.Equal(want) {
			t.Errorf("day %d: date = %v, want %v", i, day.Date, want)
		}
		if len(day.Items) != 3 {
			t.Fatalf("day %d: got %d items, want 3", i, len(day.Items))
		}
		if day.Items[0].Title != "Morning explore Kyoto" {
			t.Errorf("day %d: first item title = %q", i, day.Items[0].Title)
		}
		if day.Items[1].Title != "Midday highlight" {
			t.Errorf("day %d: second item title = %q", i, day.Items[1].Title)
		}
		if day.Items[2].Title != "Evening unwind" {
			t.Errorf("day %d: third item title = %q", i, day.Items[2].Title)
		}
	}
}

func TestMockProviderDefaults(t *testing.T) {
	days, err := MockProvider{}.GenerateItinerary(context.Background(), GenerateOptions{})
	if err != nil {
		t.Fatalf("GenerateItinerary: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("got %d days, want 1 for zero dayCount", len(days))
	}
	if days[0].Items[0].Title != "Morning explore the city" {
		t.Errorf("first item title = %q, want destination fallback", days[0].Items[0].Title)
	}
	if days[0].Date.IsZero() {
		t.Error("date should default to now, got zero")
	}
}

func TestNewProviderSelection(t *testing.T) {
	tests := []struct {
		provider string
		wantErr  error
	}{
		{ProviderMock, nil},
		{ProviderOpenAI, nil},
		{ProviderGemini, nil},
		{ProviderAnthropic, ErrProviderUnimplemented},
		{"llama", ErrUnknownProvider},
	}
	for _, tc := range tests {
		p, err := New(tc.provider, "key")
		if tc.wantErr == nil {
			if err != nil {
				t.Errorf("New(%q): unexpected error %v", tc.provider, err)
			} else if p == nil {
				t.Errorf("New(%q): nil provider", tc.provider)
			}
			continue
		}
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("New(%q): error = %v, want %v", tc.provider, err, tc.wantErr)
		}
	}
}
