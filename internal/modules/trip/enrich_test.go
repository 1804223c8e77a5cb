// README: Tests for the place enrichment engine.
package trip

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeFinder struct {
	queries []string
	place   *Place
	err     error
}

func (f *fakeFinder) FindPlace(_ context.Context, query string) (*Place, error) {
	f.queries = append(f.queries, query)
	return f.place, f.err
}

func testTrip(days ...Day) *Trip {
	return &Trip{
		ID:          "trip-1",
		Title:       "Test",
		Destination: "Kyoto",
		Days:        days,
	}
}

func day(index int, items ...Item) Day {
	return Day{
		DayIndex: index,
		Date:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, index),
		Items:    items,
	}
}

func ptr[T any](v T) *T { return &v }

func TestEnrichPlacesFillsMissingLocation(t *testing.T) {
	finder := &fakeFinder{place: &Place{
		PlaceID: "pid-1",
		Name:    "Fushimi Inari",
		Address: "68 Fukakusa",
		Lat:     34.9671,
		Lng:     135.7727,
	}}
	tr := testTrip(day(0, Item{Title: "Fushimi Inari"}))

	res, err := EnrichPlaces(context.Background(), tr, finder, nil)
	if err != nil {
		t.Fatalf("EnrichPlaces: %v", err)
	}
	if !res.Updated || res.UpdatedItems != 1 {
		t.Fatalf("result = %+v, want 1 updated item", res)
	}

	loc := tr.Days[0].Items[0].Location
	if loc == nil || loc.PlaceID != "pid-1" || loc.Address != "68 Fukakusa" {
		t.Fatalf("location = %+v", loc)
	}
	if loc.Lat == nil || *loc.Lat != 34.9671 {
		t.Errorf("lat = %v", loc.Lat)
	}

	if len(finder.queries) != 1 {
		t.Fatalf("queries = %v", finder.queries)
	}
	if finder.queries[0] != "Fushimi Inari, Kyoto" {
		t.Errorf("query = %q, want title joined with destination", finder.queries[0])
	}
}

func TestEnrichPlacesQueryUsesLocationNameAndAddress(t *testing.T) {
	finder := &fakeFinder{place: &Place{PlaceID: "pid", Lat: 1, Lng: 2}}
	tr := testTrip(day(0, Item{
		Title:    "Lunch",
		Location: &Location{Name: "Nishiki Market", Address: "Nakagyo Ward"},
	}))

	if _, err := EnrichPlaces(context.Background(), tr, finder, nil); err != nil {
		t.Fatalf("EnrichPlaces: %v", err)
	}
	if got := finder.queries[0]; got != "Nishiki Market, Nakagyo Ward, Kyoto" {
		t.Errorf("query = %q", got)
	}
}

func TestEnrichPlacesExistingFieldsWin(t *testing.T) {
	finder := &fakeFinder{place: &Place{
		PlaceID: "pid-new",
		Name:    "Lookup Name",
		Address: "Lookup Address",
		Lat:     10,
		Lng:     20,
	}}
	tr := testTrip(day(0, Item{
		Title:    "Stop",
		Location: &Location{Name: "Manual Name", Lat: ptr(1.0)},
	}))

	if _, err := EnrichPlaces(context.Background(), tr, finder, nil); err != nil {
		t.Fatalf("EnrichPlaces: %v", err)
	}

	loc := tr.Days[0].Items[0].Location
	if loc.Name != "Manual Name" {
		t.Errorf("name = %q, manual edit should survive", loc.Name)
	}
	if *loc.Lat != 1.0 {
		t.Errorf("lat = %v, manual edit should survive", *loc.Lat)
	}
	if loc.Address != "Lookup Address" || loc.PlaceID != "pid-new" || *loc.Lng != 20 {
		t.Errorf("missing fields not filled: %+v", loc)
	}
}

func TestEnrichPlacesSkipsResolvedItems(t *testing.T) {
	finder := &fakeFinder{place: &Place{PlaceID: "pid", Lat: 1, Lng: 2}}
	tr := testTrip(day(0, Item{
		Title: "Done",
		Location: &Location{
			PlaceID: "already",
			Address: "addr",
			Lat:     ptr(1.0),
			Lng:     ptr(2.0),
		},
	}))

	res, err := EnrichPlaces(context.Background(), tr, finder, nil)
	if err != nil {
		t.Fatalf("EnrichPlaces: %v", err)
	}
	if res.Updated || len(finder.queries) != 0 {
		t.Errorf("resolved item should be skipped: res=%+v queries=%v", res, finder.queries)
	}
}

func TestEnrichPlacesDayFilter(t *testing.T) {
	finder := &fakeFinder{place: &Place{PlaceID: "pid", Lat: 1, Lng: 2}}
	tr := testTrip(
		day(0, Item{Title: "A"}),
		day(1, Item{Title: "B"}),
	)

	res, err := EnrichPlaces(context.Background(), tr, finder, ptr(1))
	if err != nil {
		t.Fatalf("EnrichPlaces: %v", err)
	}
	if res.UpdatedItems != 1 {
		t.Fatalf("updatedItems = %d, want 1", res.UpdatedItems)
	}
	if tr.Days[0].Items[0].Location != nil {
		t.Error("day 0 should be untouched")
	}
	if tr.Days[1].Items[0].Location == nil {
		t.Error("day 1 should be enriched")
	}
}

func TestEnrichPlacesNoMatchSkips(t *testing.T) {
	finder := &fakeFinder{place: nil}
	tr := testTrip(day(0, Item{Title: "Obscure"}))

	res, err := EnrichPlaces(context.Background(), tr, finder, nil)
	if err != nil {
		t.Fatalf("EnrichPlaces: %v", err)
	}
	if res.Updated {
		t.Error("no match should not count as an update")
	}
	if tr.Days[0].Items[0].Location != nil {
		t.Error("item should be unchanged on no match")
	}
}

func TestEnrichPlacesLookupErrorAborts(t *testing.T) {
	finder := &fakeFinder{err: errors.New("quota exceeded")}
	tr := testTrip(day(0, Item{Title: "A"}, Item{Title: "B"}))

	_, err := EnrichPlaces(context.Background(), tr, finder, nil)
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error = %v, want wrapped lookup failure", err)
	}
	if len(finder.queries) != 1 {
		t.Errorf("lookup should abort after the first failure, got %d calls", len(finder.queries))
	}
}

func TestEnrichPlacesReferenceLinks(t *testing.T) {
	finder := &fakeFinder{place: &Place{PlaceID: "pid-9", Lat: 1, Lng: 2}}
	tr := testTrip(day(0, Item{
		Title: "Temple",
		Links: []Link{{Label: "google maps", URL: "https://existing"}},
	}))

	if _, err := EnrichPlaces(context.Background(), tr, finder, nil); err != nil {
		t.Fatalf("EnrichPlaces: %v", err)
	}

	links := tr.Days[0].Items[0].Links
	if len(links) != 3 {
		t.Fatalf("got %d links, want 3 (existing maps label deduped): %+v", len(links), links)
	}
	if links[0].URL != "https://existing" {
		t.Errorf("existing link replaced: %+v", links[0])
	}
	if links[1].Label != "Search" || links[2].Label != "Booking" {
		t.Errorf("labels = %q, %q", links[1].Label, links[2].Label)
	}
	if !strings.Contains(links[2].URL, "booking") {
		t.Errorf("booking link url = %q", links[2].URL)
	}
}

func TestEnrichPlacesIdempotent(t *testing.T) {
	finder := &fakeFinder{place: &Place{PlaceID: "pid", Name: "N", Address: "A", Lat: 1, Lng: 2}}
	tr := testTrip(day(0, Item{Title: "Stop"}))

	if _, err := EnrichPlaces(context.Background(), tr, finder, nil); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	res, err := EnrichPlaces(context.Background(), tr, finder, nil)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if res.Updated {
		t.Error("second pass should be a no-op")
	}
	if got := len(tr.Days[0].Items[0].Links); got != 3 {
		t.Errorf("links duplicated on second pass: %d", got)
	}
}
