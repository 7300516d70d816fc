package trip

import "tripplanner/models"

// Waypoint extraction is a prioritized list of strategies tried in order, not
// conditional branching scattered through rendering code. The order is fixed:
// generic coordinate field, legacy coordinate field, then per-slot points.
type extractor func(models.Day) *models.Waypoint

var dayExtractors = []extractor{
	extractGenericCoord,
	extractLegacyCoord,
	extractSlotCoord,
}

// NormalizeDay extracts a canonical waypoint from a day record regardless of
// which field supplied it. Returns nil when no candidate is structurally
// valid; an unplaceable day is an expected outcome and is simply excluded
// from map rendering, never an error.
func NormalizeDay(day models.Day) *models.Waypoint {
	for _, extract := range dayExtractors {
		if wp := extract(day); wp != nil {
			return wp
		}
	}
	return nil
}

func extractGenericCoord(day models.Day) *models.Waypoint {
	return dayWaypoint(day, day.Coords)
}

func extractLegacyCoord(day models.Day) *models.Waypoint {
	return dayWaypoint(day, day.Coordinates)
}

func dayWaypoint(day models.Day, c *models.Coordinate) *models.Waypoint {
	if !c.Valid() {
		return nil
	}
	return &models.Waypoint{
		Lat:         *c.Lat,
		Lng:         *c.Lng,
		Description: day.Description,
		ImageURL:    day.ImageURL,
	}
}

func extractSlotCoord(day models.Day) *models.Waypoint {
	for _, label := range day.SlotLabels() {
		point := day.Slots[label]
		c := point.Coordinate()
		if !c.Valid() {
			continue
		}
		return &models.Waypoint{
			Lat:         *c.Lat,
			Lng:         *c.Lng,
			PlaceName:   point.PlaceName,
			Description: point.Description,
			ImageURL:    point.ImageURL,
		}
	}
	return nil
}

// Marker is one renderable map pin: a day/slot pair with its waypoint.
type Marker struct {
	DayIndex int
	Slot     string
	Waypoint models.Waypoint
}

// Markers collects every placeable slot point of every day, in day order with
// canonical slots first within a day.
func Markers(plan *models.TripPlan) []Marker {
	if plan == nil {
		return nil
	}
	var markers []Marker
	for i, day := range plan.Days {
		for _, label := range day.SlotLabels() {
			point := day.Slots[label]
			c := point.Coordinate()
			if !c.Valid() {
				continue
			}
			markers = append(markers, Marker{
				DayIndex: i,
				Slot:     label,
				Waypoint: models.Waypoint{
					Lat:         *c.Lat,
					Lng:         *c.Lng,
					PlaceName:   point.PlaceName,
					Description: point.Description,
					ImageURL:    point.ImageURL,
				},
			})
		}
	}
	return markers
}
