package trip

import (
	"testing"

	"tripplanner/models"
)

func coord(lat, lng float64) *models.Coordinate {
	return &models.Coordinate{Lat: &lat, Lng: &lng}
}

func TestNormalizeDayPrefersGenericCoord(t *testing.T) {
	day := models.Day{
		Description: "Harbor walk",
		Coords:      coord(32.08, 34.77),
		Coordinates: coord(0, 0),
		Slots: map[string]models.SlotPoint{
			"morning": {Coords: coord(99, 99)},
		},
	}

	wp := NormalizeDay(day)
	if wp == nil {
		t.Fatal("Expected a waypoint")
	}
	if wp.Lat != 32.08 || wp.Lng != 34.77 {
		t.Errorf("Expected the generic coordinate to win, got %+v", wp)
	}
	if wp.Description != "Harbor walk" {
		t.Errorf("Day description not carried over: %q", wp.Description)
	}
}

func TestNormalizeDayLegacyFallback(t *testing.T) {
	day := models.Day{
		Coordinates: coord(35.68, 139.69),
	}
	wp := NormalizeDay(day)
	if wp == nil || wp.Lat != 35.68 {
		t.Fatalf("Legacy coordinate fallback failed: %+v", wp)
	}
}

func TestNormalizeDaySlotFallback(t *testing.T) {
	// Neither day-level coordinate is usable; the first canonical slot with a
	// valid coordinate supplies the waypoint.
	lat := 31.77
	day := models.Day{
		Coords: &models.Coordinate{Lat: &lat}, // lng missing, invalid
		Slots: map[string]models.SlotPoint{
			"evening": {Coords: coord(3, 3), PlaceName: "Night market"},
			"noon":    {Coords: coord(2, 2), PlaceName: "Museum"},
			"morning": {Coordinates: coord(1, 1), PlaceName: "Old town"},
		},
	}

	wp := NormalizeDay(day)
	if wp == nil {
		t.Fatal("Expected a waypoint from a slot")
	}
	if wp.PlaceName != "Old town" || wp.Lat != 1 {
		t.Errorf("Expected the morning slot to win, got %+v", wp)
	}
}

func TestNormalizeDayUnplaceable(t *testing.T) {
	day := models.Day{
		Description: "Free day",
		Slots: map[string]models.SlotPoint{
			"morning": {Coords: &models.Coordinate{}}, // null lat/lng
		},
	}
	if wp := NormalizeDay(day); wp != nil {
		t.Errorf("Expected nil for an unplaceable day, got %+v", wp)
	}
}

func TestMarkers(t *testing.T) {
	plan := &models.TripPlan{Days: []models.Day{
		{Slots: map[string]models.SlotPoint{
			"noon":    {Coords: coord(2, 2)},
			"morning": {Coords: coord(1, 1)},
		}},
		{Description: "Transit day"}, // no slots, contributes nothing
		{Slots: map[string]models.SlotPoint{
			"evening": {Coords: coord(3, 3)},
			"sunrise": {Coords: &models.Coordinate{}}, // invalid, skipped
		}},
	}}

	markers := Markers(plan)
	if len(markers) != 3 {
		t.Fatalf("Expected 3 markers, got %d", len(markers))
	}

	want := []struct {
		day  int
		slot string
		lat  float64
	}{
		{0, "morning", 1},
		{0, "noon", 2},
		{2, "evening", 3},
	}
	for i, w := range want {
		m := markers[i]
		if m.DayIndex != w.day || m.Slot != w.slot || m.Waypoint.Lat != w.lat {
			t.Errorf("Marker %d: expected day %d slot %q lat %v, got %+v", i, w.day, w.slot, w.lat, m)
		}
	}

	if Markers(nil) != nil {
		t.Error("Nil plan should yield nil markers")
	}
}
