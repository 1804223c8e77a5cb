// README: Google Directions wrapper — ordered points to one aggregate route.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"tripmaster/internal/modules/trip"
)

// RouteService handles interactions with the Google Directions API.
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// Directions requests one route from the first point to the last, with
// interior points as ordered waypoints. A nil plan means no route was found.
func (s *RouteService) Directions(ctx context.Context, points []trip.LatLng, mode trip.TravelMode) (*trip.RoutePlan, error) {
	if len(points) < 2 {
		return nil, nil
	}

	r := &maps.DirectionsRequest{
		Origin:      formatPoint(points[0]),
		Destination: formatPoint(points[len(points)-1]),
		Mode:        travelMode(mode),
	}
	for _, p := range points[1 : len(points)-1] {
		r.Waypoints = append(r.Waypoints, formatPoint(p))
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("directions api error: %w", err)
	}
	if len(routes) == 0 || routes[0].OverviewPolyline.Points == "" {
		return nil, nil
	}

	route := routes[0]
	plan := &trip.RoutePlan{Polyline: route.OverviewPolyline.Points}
	for _, leg := range route.Legs {
		plan.Legs = append(plan.Legs, trip.RouteLeg{
			DistanceMeters:  leg.Distance.Meters,
			DurationSeconds: int(leg.Duration.Seconds()),
		})
	}
	return plan, nil
}

func formatPoint(p trip.LatLng) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}

func travelMode(mode trip.TravelMode) maps.Mode {
	switch mode {
	case trip.ModeTransit:
		return maps.TravelModeTransit
	case trip.ModeWalking:
		return maps.TravelModeWalking
	default:
		return maps.TravelModeDriving
	}
}
