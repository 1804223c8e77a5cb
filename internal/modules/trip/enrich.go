// README: Place enrichment engine — fills missing item locations via place lookup.
package trip

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Place is the best-match result from an external place lookup.
type Place struct {
	PlaceID string
	Name    string
	Address string
	Lat     float64
	Lng     float64
}

// PlaceFinder resolves free text to at most one best-match place.
// A nil result with a nil error means no match.
type PlaceFinder interface {
	FindPlace(ctx context.Context, query string) (*Place, error)
}

type EnrichResult struct {
	Updated      bool `json:"updated"`
	UpdatedItems int  `json:"updatedItems"`
}

// EnrichPlaces resolves missing location data for items on the selected days
// (all days when dayIndex is nil). Lookups run sequentially, one per item that
// still needs resolution. A single lookup failure aborts the whole pass; the
// caller must not persist the trip in that case.
func EnrichPlaces(ctx context.Context, t *Trip, finder PlaceFinder, dayIndex *int) (EnrichResult, error) {
	var res EnrichResult

	for di := range t.Days {
		day := &t.Days[di]
		if dayIndex != nil && day.DayIndex != *dayIndex {
			continue
		}
		for ii := range day.Items {
			item := &day.Items[ii]
			if !needsLocation(item.Location) {
				continue
			}

			query := buildLocationQuery(item.Title, item.Location, t.Destination)
			if query == "" {
				continue
			}

			place, err := finder.FindPlace(ctx, query)
			if err != nil {
				return res, fmt.Errorf("find place %q: %w", query, err)
			}
			if place == nil {
				continue
			}

			item.Location = mergeLocation(item.Location, place)
			attachReferenceLinks(item, place.PlaceID, query)

			res.Updated = true
			res.UpdatedItems++
		}
	}

	return res, nil
}

// needsLocation is true when any of placeId, lat, lng, or address is missing.
// Fully resolved items are skipped, which makes repeated enrichment a no-op.
func needsLocation(l *Location) bool {
	return l == nil || l.PlaceID == "" || l.Lat == nil || l.Lng == nil || l.Address == ""
}

// buildLocationQuery joins the location name (or the item title), the known
// address, and the trip destination, dropping empty parts.
func buildLocationQuery(itemTitle string, l *Location, destination string) string {
	name := itemTitle
	if l != nil && l.Name != "" {
		name = l.Name
	}
	var address string
	if l != nil {
		address = l.Address
	}

	var parts []string
	for _, p := range []string{name, address, destination} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// mergeLocation fills missing fields from the lookup result. Existing values
// always win so enrichment never clobbers manual edits.
func mergeLocation(existing *Location, p *Place) *Location {
	merged := Location{Name: p.Name, Address: p.Address, PlaceID: p.PlaceID}
	lat, lng := p.Lat, p.Lng
	merged.Lat, merged.Lng = &lat, &lng

	if existing == nil {
		return &merged
	}
	if existing.Name != "" {
		merged.Name = existing.Name
	}
	if existing.Address != "" {
		merged.Address = existing.Address
	}
	if existing.PlaceID != "" {
		merged.PlaceID = existing.PlaceID
	}
	if existing.Lat != nil {
		merged.Lat = existing.Lat
	}
	if existing.Lng != nil {
		merged.Lng = existing.Lng
	}
	return &merged
}

// attachReferenceLinks appends up to three reference links for a freshly
// resolved place, skipping any the item already carries.
func attachReferenceLinks(item *Item, placeID, query string) {
	mapsQuery := query
	if placeID != "" {
		mapsQuery = "place_id:" + placeID
	}
	mapsURL := "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(mapsQuery)
	searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query)
	bookingURL := "https://www.google.com/search?q=" + url.QueryEscape(query+" booking")

	item.Links = ensureLink(item.Links, "Google Maps", mapsURL)
	item.Links = ensureLink(item.Links, "Search", searchURL)
	item.Links = ensureLink(item.Links, "Booking", bookingURL)
}

// ensureLink appends the link unless one with the same label (case-insensitive)
// or the exact same URL is already present.
func ensureLink(links []Link, label, u string) []Link {
	for _, l := range links {
		if strings.EqualFold(l.Label, label) || l.URL == u {
			return links
		}
	}
	return append(links, Link{Label: label, URL: u})
}
