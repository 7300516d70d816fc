package models

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the wire format for all trip dates.
const DateLayout = "2006-01-02"

// MaxInterests caps how many interests a single request may carry.
const MaxInterests = 6

// TripRequest holds the user-submitted parameters describing a desired
// itinerary. It is immutable once submitted; equality over all four fields
// defines "the same request" for history lookups.
type TripRequest struct {
	StartLocation string   `json:"start_location"` // Destination, e.g. "Israel"
	StartDate     string   `json:"start_date"`     // "YYYY-MM-DD"
	EndDate       string   `json:"end_date"`       // "YYYY-MM-DD"
	Interests     []string `json:"interests"`
}

// Validate checks the request is well formed before it goes on the wire.
func (r TripRequest) Validate() error {
	if strings.TrimSpace(r.StartLocation) == "" {
		return fmt.Errorf("start_location is required")
	}
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date %q: %w", r.StartDate, err)
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date %q: %w", r.EndDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s", r.EndDate, r.StartDate)
	}
	if len(r.Interests) > MaxInterests {
		return fmt.Errorf("at most %d interests are allowed, got %d", MaxInterests, len(r.Interests))
	}
	return nil
}

// DayCount returns the number of itinerary days the request spans, inclusive
// of both endpoints. Returns 0 when the dates do not parse.
func (r TripRequest) DayCount() int {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(DateLayout, r.EndDate)
	if err != nil || end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Key returns a canonical identity string for the request. Interests are a
// set, so they are sorted before joining.
func (r TripRequest) Key() string {
	interests := append([]string(nil), r.Interests...)
	sort.Strings(interests)
	return strings.Join([]string{
		strings.ToLower(strings.TrimSpace(r.StartLocation)),
		r.StartDate,
		r.EndDate,
		strings.ToLower(strings.Join(interests, ",")),
	}, "|")
}

// HistoryEntry is a lightweight summary of a previously resolved trip, used
// to re-fetch the full plan on demand.
type HistoryEntry struct {
	TripID      string   `json:"trip_id"`
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Interests   []string `json:"interests"`
}

// Request reconstructs the trip request that produced this entry.
func (e HistoryEntry) Request() TripRequest {
	return TripRequest{
		StartLocation: e.Destination,
		StartDate:     e.StartDate,
		EndDate:       e.EndDate,
		Interests:     e.Interests,
	}
}
