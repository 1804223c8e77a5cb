// README: Route computation engine — aggregates directions over a day's resolved stops.
package trip

import (
	"context"
	"fmt"
)

// LatLng is a resolved coordinate pair handed to the directions lookup.
type LatLng struct {
	Lat float64
	Lng float64
}

type RouteLeg struct {
	DistanceMeters  int
	DurationSeconds int
}

// RoutePlan is the raw directions result: one overview polyline plus per-leg
// metrics, before aggregation.
type RoutePlan struct {
	Polyline string
	Legs     []RouteLeg
}

// DirectionsFinder computes one aggregate route over ordered points.
// A nil plan with a nil error means no route exists.
type DirectionsFinder interface {
	Directions(ctx context.Context, points []LatLng, mode TravelMode) (*RoutePlan, error)
}

type RouteResult struct {
	Updated     bool `json:"updated"`
	UpdatedDays int  `json:"updatedDays"`
}

type RouteOptions struct {
	DayIndex *int
	Mode     TravelMode
}

// ComputeRoutes issues one directions lookup per selected day, treating the
// first resolved item location as origin, the last as destination, and
// interior points as ordered waypoints. Days with fewer than two resolved
// points are skipped. The stored route replaces any prior one entirely.
func ComputeRoutes(ctx context.Context, t *Trip, finder DirectionsFinder, opts RouteOptions) (RouteResult, error) {
	var res RouteResult

	for di := range t.Days {
		day := &t.Days[di]
		if opts.DayIndex != nil && day.DayIndex != *opts.DayIndex {
			continue
		}

		points := resolvedPoints(day.Items)
		if len(points) < 2 {
			continue
		}

		plan, err := finder.Directions(ctx, points, opts.Mode)
		if err != nil {
			return res, fmt.Errorf("directions for day %d: %w", day.DayIndex, err)
		}
		if plan == nil || plan.Polyline == "" {
			continue
		}

		var distance, duration int
		for _, leg := range plan.Legs {
			distance += leg.DistanceMeters
			duration += leg.DurationSeconds
		}

		day.Route = &Route{
			Mode:            opts.Mode,
			Polyline:        plan.Polyline,
			DistanceMeters:  distance,
			DurationSeconds: duration,
		}
		res.Updated = true
		res.UpdatedDays++
	}

	return res, nil
}

// resolvedPoints collects coordinates for items whose locations carry both
// lat and lng, preserving item order.
func resolvedPoints(items []Item) []LatLng {
	var points []LatLng
	for _, item := range items {
		if item.Location.Resolved() {
			points = append(points, LatLng{Lat: *item.Location.Lat, Lng: *item.Location.Lng})
		}
	}
	return points
}
