// README: Deterministic offline provider used without credentials.
package llm

import (
	"context"
	"fmt"
	"time"

	"tripmaster/internal/modules/trip"
)

// MockProvider generates a fixed three-item template per day. It never fails
// on valid input and makes no network calls.
type MockProvider struct{}

func (MockProvider) GenerateItinerary(_ context.Context, opts GenerateOptions) ([]trip.Day, error) {
	base := time.Now().UTC()
	if opts.StartDate != nil {
		base = *opts.StartDate
	}
	dest := opts.Destination
	if dest == "" {
		dest = "the city"
	}
	count := opts.DayCount
	if count < 1 {
		count = 1
	}

	days := make([]trip.Day, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, trip.Day{
			DayIndex: i,
			Date:     base.AddDate(0, 0, i),
			Items: []trip.Item{
				{
					Title: fmt.Sprintf("Morning explore %s", dest),
					Notes: "Coffee and a short walk to get familiar with the area.",
				},
				{
					Title: "Midday highlight",
					Notes: "Visit a landmark and grab lunch nearby.",
				},
				{
					Title: "Evening unwind",
					Notes: "Dinner at a local spot and a relaxing stroll.",
				},
			},
		})
	}
	return days, nil
}
