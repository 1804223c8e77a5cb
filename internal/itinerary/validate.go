// README: Structural validation of generated days before they reach the trip.
package itinerary

import (
	"errors"
	"fmt"
	"strings"

	"tripmaster/internal/modules/trip"
)

// ValidateDays checks the structural schema of a generated itinerary:
// required fields present, indices sane, enums constrained to their legal
// values. Primitive typing is already enforced by JSON decoding.
func ValidateDays(days []trip.Day) error {
	if len(days) == 0 {
		return errors.New("generated itinerary has no days")
	}

	for i, day := range days {
		if day.DayIndex < 0 {
			return fmt.Errorf("day %d: negative dayIndex %d", i, day.DayIndex)
		}
		if day.Date.IsZero() {
			return fmt.Errorf("day %d: missing date", i)
		}
		for j, item := range day.Items {
			if strings.TrimSpace(item.Title) == "" {
				return fmt.Errorf("day %d item %d: missing title", i, j)
			}
			for k, link := range item.Links {
				if link.Label == "" || link.URL == "" {
					return fmt.Errorf("day %d item %d link %d: label and url are required", i, j, k)
				}
			}
		}
		if day.Route != nil && day.Route.Mode != "" && !day.Route.Mode.Valid() {
			return fmt.Errorf("day %d: invalid travel mode %q", i, day.Route.Mode)
		}
	}
	return nil
}
