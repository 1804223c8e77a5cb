// README: Shared prompt construction and response decoding for remote providers.
package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tripmaster/internal/modules/trip"
)

// systemPrompt pins the exact output shape remote providers must return.
func systemPrompt() string {
	return strings.Join([]string{
		"You are an expert travel planner.",
		`Return ONLY JSON in the shape: { "days": [ { "dayIndex": number, "date": ISO8601 string, "items": [ { "title": string, "description"?: string, "category"?: string, "startTime"?: string, "endTime"?: string, "location"?: { "name"?: string, "address"?: string, "placeId"?: string, "lat"?: number, "lng"?: number }, "links"?: [ { "label": string, "url": string } ], "notes"?: string } ], "routes"?: { "mode"?: "driving" | "transit" | "walking", "polyline"?: string, "distanceMeters"?: number, "durationSeconds"?: number } } ] }.`,
		"Dates must be ISO 8601 with a timezone offset.",
		"If a field is unknown, omit it.",
		"Do not include any extra keys or text outside the JSON.",
	}, " ")
}

func userPrompt(opts GenerateOptions) string {
	dest := opts.Destination
	if dest == "" {
		dest = "Unknown"
	}
	parts := []string{
		fmt.Sprintf("Destination: %s.", dest),
		fmt.Sprintf("Day count: %d.", opts.DayCount),
	}
	if opts.StartDate != nil {
		parts = append(parts, fmt.Sprintf("Start date: %s.", opts.StartDate.Format(time.RFC3339)))
	}
	if opts.Prompt != "" {
		parts = append(parts, "User prompt: "+opts.Prompt)
	}
	return strings.Join(parts, " ")
}

// decodeDays parses a remote provider's text output. It fails on empty input,
// invalid JSON, or a payload without a days array.
func decodeDays(content string) ([]trip.Day, error) {
	content = stripJSONFences(content)
	if content == "" {
		return nil, errors.New("empty generation response")
	}

	var payload struct {
		Days []trip.Day `json:"days"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("parse generation response: %w", err)
	}
	if payload.Days == nil {
		return nil, errors.New("generation response missing days array")
	}
	return payload.Days, nil
}

// stripJSONFences removes markdown code fences some models wrap around JSON.
func stripJSONFences(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
