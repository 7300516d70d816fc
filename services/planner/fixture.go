package planner

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"tripplanner/geo"
	"tripplanner/models"
)

// FixturePlanner produces a deterministic itinerary derived from the request
// alone. It stands in for the real generation backend in development and
// tests: same request, same plan, every time.
type FixturePlanner struct{}

var _ Planner = (*FixturePlanner)(nil)

func (FixturePlanner) Plan(_ context.Context, req models.TripRequest) (*models.TripPlan, error) {
	days := req.DayCount()
	if days <= 0 {
		return nil, fmt.Errorf("planner: request %q has no plannable days", req.StartLocation)
	}

	base := anchorFor(req.StartLocation)
	plan := &models.TripPlan{Days: make([]models.Day, 0, days)}

	var dayPoints []geo.Point
	for i := 0; i < days; i++ {
		// Walk roughly north-east, one stop cluster per day.
		center := geo.Point{
			Lat: base.Lat + float64(i)*0.045,
			Lng: base.Lng + float64(i)*0.03,
		}
		dayPoints = append(dayPoints, center)

		day := models.Day{
			Description: fmt.Sprintf("Day %d in %s", i+1, req.StartLocation),
			Slots:       make(map[string]models.SlotPoint, len(models.CanonicalSlots)),
		}
		for j, slot := range models.CanonicalSlots {
			lat := center.Lat + float64(j)*0.008
			lng := center.Lng - float64(j)*0.005
			day.Slots[slot] = models.SlotPoint{
				Coords:      &models.Coordinate{Lat: &lat, Lng: &lng},
				PlaceName:   fmt.Sprintf("%s stop %d.%d", req.StartLocation, i+1, j+1),
				Description: slotDescription(slot, req.Interests),
			}
		}
		plan.Days = append(plan.Days, day)
	}

	plan.GoogleRoute = routeBetween(dayPoints)
	return plan, nil
}

// anchorFor maps a destination name onto a stable coordinate. Purely a
// hash-derived fixture anchor, not geocoding.
func anchorFor(destination string) geo.Point {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(destination))))
	sum := h.Sum64()

	lat := math.Mod(float64(sum%18000)/100.0, 180) - 80 // [-80, 80)
	lng := math.Mod(float64((sum>>16)%36000)/100.0, 360) - 180
	return geo.Point{Lat: lat, Lng: lng}
}

func slotDescription(slot string, interests []string) string {
	if len(interests) == 0 {
		return fmt.Sprintf("A relaxed %s stop", slot)
	}
	return fmt.Sprintf("A %s stop for %s", slot, strings.Join(interests, " and "))
}

// routeBetween builds a Directions-shaped envelope with one leg per pair of
// consecutive day anchors and one encoded step per leg.
func routeBetween(points []geo.Point) *models.RouteEnvelope {
	if len(points) < 2 {
		return nil
	}
	route := models.Route{
		OverviewPolyline: models.EncodedPolyline{Points: geo.EncodePolyline(points)},
	}
	for i := 0; i+1 < len(points); i++ {
		step := models.Step{
			Polyline: models.EncodedPolyline{Points: geo.EncodePolyline(points[i : i+2])},
		}
		route.Legs = append(route.Legs, models.Leg{Steps: []models.Step{step}})
	}
	return &models.RouteEnvelope{Routes: []models.Route{route}}
}
