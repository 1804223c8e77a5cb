// README: Google Places wrapper — free text to one best-match place.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"tripmaster/internal/modules/trip"
)

// PlacesService handles interactions with the Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a PlacesService with the given API key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// FindPlace resolves free text to at most one candidate place. A nil result
// means no match, which the enrichment engine treats as a silent skip.
func (s *PlacesService) FindPlace(ctx context.Context, query string) (*trip.Place, error) {
	r := &maps.FindPlaceFromTextRequest{
		Input:     query,
		InputType: maps.FindPlaceFromTextInputTypeTextQuery,
		Fields: []maps.PlaceSearchFieldMask{
			maps.PlaceSearchFieldMaskPlaceID,
			maps.PlaceSearchFieldMaskName,
			maps.PlaceSearchFieldMaskFormattedAddress,
			maps.PlaceSearchFieldMaskGeometry,
		},
	}

	resp, err := s.client.FindPlaceFromText(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, nil
	}

	candidate := resp.Candidates[0]
	if candidate.PlaceID == "" {
		return nil, nil
	}

	return &trip.Place{
		PlaceID: candidate.PlaceID,
		Name:    candidate.Name,
		Address: candidate.FormattedAddress,
		Lat:     candidate.Geometry.Location.Lat,
		Lng:     candidate.Geometry.Location.Lng,
	}, nil
}
