package trip

import (
	"tripplanner/geo"
	"tripplanner/models"
	"tripplanner/utils"

	"go.uber.org/zap"
)

// WorldViewCenter is the fallback viewport center when a plan has no
// placeable geometry at all.
var WorldViewCenter = geo.Point{Lat: 20, Lng: 0}

// RouteGeometry is the single renderable path derived from a plan's per-step
// polyline segments. Derived, never persisted independently of a plan.
type RouteGeometry struct {
	Points []geo.Point
}

// Bounds computes the viewport-fitting region for the route.
func (g *RouteGeometry) Bounds() (geo.Bounds, error) {
	if g == nil {
		return geo.Bounds{}, geo.ErrEmptyInput
	}
	return geo.ComputeBounds(g.Points)
}

// BuildRouteGeometry concatenates every step's decoded polyline of the plan's
// route in traversal order. A malformed segment or a degenerate path means
// "no route geometry available": the trip still renders, just without the
// route line.
func BuildRouteGeometry(plan *models.TripPlan) *RouteGeometry {
	if plan == nil {
		return nil
	}
	segments := plan.GoogleRoute.StepPolylines()
	if len(segments) == 0 {
		return nil
	}
	points, err := geo.MergeSegments(segments)
	if err != nil {
		utils.GetLogger().Warn("Discarding malformed route geometry", zap.Error(err))
		return nil
	}
	if len(points) < 2 {
		return nil
	}
	return &RouteGeometry{Points: points}
}

// PlaceableWaypoints normalizes every day and returns the waypoints of the
// days that have one, in day order. Unplaceable days stay in the plan's day
// list; they are only excluded here, from map rendering.
func PlaceableWaypoints(plan *models.TripPlan) []models.Waypoint {
	if plan == nil {
		return nil
	}
	var waypoints []models.Waypoint
	for _, day := range plan.Days {
		if wp := NormalizeDay(day); wp != nil {
			waypoints = append(waypoints, *wp)
		}
	}
	return waypoints
}

// Viewport picks the initial map view for a plan: the route's bounding region
// when there is a route, else the first placeable day's coordinate, else the
// default world view.
func Viewport(plan *models.TripPlan) (center geo.Point, bounds *geo.Bounds) {
	if route := BuildRouteGeometry(plan); route != nil {
		if b, err := route.Bounds(); err == nil {
			return b.Center(), &b
		}
	}
	if waypoints := PlaceableWaypoints(plan); len(waypoints) > 0 {
		return geo.Point{Lat: waypoints[0].Lat, Lng: waypoints[0].Lng}, nil
	}
	return WorldViewCenter, nil
}
