package trip

import (
	"testing"

	"tripplanner/geo"
	"tripplanner/models"
)

func envelopeFor(segments ...[]geo.Point) *models.RouteEnvelope {
	var steps []models.Step
	for _, seg := range segments {
		steps = append(steps, models.Step{
			Polyline: models.EncodedPolyline{Points: geo.EncodePolyline(seg)},
		})
	}
	return &models.RouteEnvelope{Routes: []models.Route{
		{Legs: []models.Leg{{Steps: steps}}},
	}}
}

func TestBuildRouteGeometry(t *testing.T) {
	plan := &models.TripPlan{
		GoogleRoute: envelopeFor(
			[]geo.Point{{Lat: 31.77, Lng: 35.21}, {Lat: 32.08, Lng: 34.77}},
			[]geo.Point{{Lat: 32.08, Lng: 34.77}, {Lat: 32.79, Lng: 34.98}},
		),
	}

	route := BuildRouteGeometry(plan)
	if route == nil {
		t.Fatal("Expected route geometry")
	}
	if len(route.Points) != 4 {
		t.Fatalf("Expected 4 merged points, got %d", len(route.Points))
	}

	b, err := route.Bounds()
	if err != nil {
		t.Fatalf("Bounds failed: %v", err)
	}
	for _, p := range route.Points {
		if !b.Contains(p) {
			t.Errorf("Bounds %+v do not contain route point %+v", b, p)
		}
	}
}

func TestBuildRouteGeometryMalformed(t *testing.T) {
	plan := &models.TripPlan{
		GoogleRoute: &models.RouteEnvelope{Routes: []models.Route{
			{Legs: []models.Leg{{Steps: []models.Step{
				{Polyline: models.EncodedPolyline{Points: "_p~iF"}}, // truncated
			}}}},
		}},
	}
	if route := BuildRouteGeometry(plan); route != nil {
		t.Errorf("Malformed segment should yield no geometry, got %+v", route)
	}
}

func TestBuildRouteGeometryDegenerate(t *testing.T) {
	plan := &models.TripPlan{
		GoogleRoute: envelopeFor([]geo.Point{{Lat: 10, Lng: 10}}),
	}
	if route := BuildRouteGeometry(plan); route != nil {
		t.Error("A single-point path is not a renderable route")
	}
	if route := BuildRouteGeometry(&models.TripPlan{}); route != nil {
		t.Error("A plan without a route envelope has no geometry")
	}
	if route := BuildRouteGeometry(nil); route != nil {
		t.Error("A nil plan has no geometry")
	}
}

func TestViewportPrefersRouteBounds(t *testing.T) {
	plan := &models.TripPlan{
		Days: []models.Day{{Coords: coord(50, 50)}},
		GoogleRoute: envelopeFor(
			[]geo.Point{{Lat: 10, Lng: 20}, {Lat: 30, Lng: 40}},
		),
	}

	center, bounds := Viewport(plan)
	if bounds == nil {
		t.Fatal("Expected route bounds")
	}
	if center.Lat != 20 || center.Lng != 30 {
		t.Errorf("Expected center (20, 30), got %+v", center)
	}
}

func TestViewportFallsBackToFirstWaypoint(t *testing.T) {
	plan := &models.TripPlan{
		Days: []models.Day{
			{Description: "Free day"}, // unplaceable
			{Coords: coord(48.85, 2.29)},
		},
	}

	center, bounds := Viewport(plan)
	if bounds != nil {
		t.Errorf("Expected no bounds without a route, got %+v", bounds)
	}
	if center.Lat != 48.85 || center.Lng != 2.29 {
		t.Errorf("Expected the first placeable day's coordinate, got %+v", center)
	}
}

func TestViewportWorldFallback(t *testing.T) {
	center, bounds := Viewport(&models.TripPlan{Days: []models.Day{{Description: "Nothing placeable"}}})
	if bounds != nil {
		t.Errorf("Expected no bounds, got %+v", bounds)
	}
	if center != WorldViewCenter {
		t.Errorf("Expected world view center, got %+v", center)
	}
}

func TestPlaceableWaypoints(t *testing.T) {
	plan := &models.TripPlan{Days: []models.Day{
		{Coords: coord(1, 1)},
		{Description: "Free day"},
		{Coordinates: coord(3, 3)},
	}}

	waypoints := PlaceableWaypoints(plan)
	if len(waypoints) != 2 {
		t.Fatalf("Expected 2 placeable waypoints, got %d", len(waypoints))
	}
	if waypoints[0].Lat != 1 || waypoints[1].Lat != 3 {
		t.Errorf("Day order not preserved: %+v", waypoints)
	}
}
