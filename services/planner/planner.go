// Package planner defines the boundary to the trip-generation algorithm. The
// algorithm itself is external to this system; everything here programs
// against the Planner interface.
package planner

import (
	"context"

	"tripplanner/models"
)

// Planner computes a full itinerary for a trip request.
type Planner interface {
	Plan(ctx context.Context, req models.TripRequest) (*models.TripPlan, error)
}
