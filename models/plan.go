package models

import (
	"encoding/json"
	"sort"
)

// Canonical slot labels, in traversal order. Payloads may carry other labels;
// these just sort first when normalizing.
var CanonicalSlots = []string{"morning", "noon", "evening"}

// Coordinate is a nullable lat/lng pair as it appears on the wire. Backends
// have been observed to emit null (or omit) either field, so presence is
// tracked explicitly.
type Coordinate struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// Valid reports whether both latitude and longitude are present.
func (c *Coordinate) Valid() bool {
	return c != nil && c.Lat != nil && c.Lng != nil
}

// Waypoint is a normalized, renderable geographic point.
type Waypoint struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	PlaceName   string  `json:"place_name,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
}

// SlotPoint is a single time-of-day stop within a day. The coordinate may
// arrive under the current "coords" key or the legacy "coordinates" key.
type SlotPoint struct {
	Coords      *Coordinate `json:"coords,omitempty"`
	Coordinates *Coordinate `json:"coordinates,omitempty"`
	PlaceName   string      `json:"place_name,omitempty"`
	Description string      `json:"description,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
}

// Coordinate returns the slot's coordinate, preferring the current field name.
func (p SlotPoint) Coordinate() *Coordinate {
	if p.Coords.Valid() {
		return p.Coords
	}
	return p.Coordinates
}

// Day is one itinerary day. Besides the fixed fields, a day object carries an
// arbitrary set of slot-labelled stops ("morning", "noon", "evening", ...)
// which land in Slots.
type Day struct {
	Description string
	Coords      *Coordinate // generic single-point coordinate
	Coordinates *Coordinate // legacy single-point coordinate
	ImageURL    string
	Slots       map[string]SlotPoint
}

// fixed keys of a day object; everything else is treated as a slot label.
var dayFixedKeys = map[string]bool{
	"description": true,
	"coords":      true,
	"coordinates": true,
	"image_url":   true,
	"date":        true,
}

// UnmarshalJSON decodes the fixed day fields and collects every remaining
// object-valued key as a slot point. Non-object extras are ignored rather
// than failing the day.
func (d *Day) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["description"]; ok {
		if err := json.Unmarshal(v, &d.Description); err != nil {
			return err
		}
	}
	if v, ok := raw["image_url"]; ok {
		// Tolerate null.
		_ = json.Unmarshal(v, &d.ImageURL)
	}
	if v, ok := raw["coords"]; ok {
		_ = json.Unmarshal(v, &d.Coords)
	}
	if v, ok := raw["coordinates"]; ok {
		_ = json.Unmarshal(v, &d.Coordinates)
	}

	for key, v := range raw {
		if dayFixedKeys[key] {
			continue
		}
		if len(v) == 0 || v[0] != '{' {
			continue
		}
		var point SlotPoint
		if err := json.Unmarshal(v, &point); err != nil {
			continue
		}
		if d.Slots == nil {
			d.Slots = make(map[string]SlotPoint)
		}
		d.Slots[key] = point
	}
	return nil
}

// MarshalJSON emits the day in its wire shape: fixed fields plus slot labels
// at the top level.
func (d Day) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Slots)+4)
	out["description"] = d.Description
	if d.Coords != nil {
		out["coords"] = d.Coords
	}
	if d.Coordinates != nil {
		out["coordinates"] = d.Coordinates
	}
	if d.ImageURL != "" {
		out["image_url"] = d.ImageURL
	}
	for label, point := range d.Slots {
		out[label] = point
	}
	return json.Marshal(out)
}

// SlotLabels returns the day's slot labels with canonical slots first and the
// remainder sorted, giving normalization a deterministic visit order.
func (d Day) SlotLabels() []string {
	labels := make([]string, 0, len(d.Slots))
	for _, canonical := range CanonicalSlots {
		if _, ok := d.Slots[canonical]; ok {
			labels = append(labels, canonical)
		}
	}
	var rest []string
	for label := range d.Slots {
		isCanonical := false
		for _, canonical := range CanonicalSlots {
			if label == canonical {
				isCanonical = true
				break
			}
		}
		if !isCanonical {
			rest = append(rest, label)
		}
	}
	sort.Strings(rest)
	return append(labels, rest...)
}

// EncodedPolyline wraps an encoded polyline string, Directions-style.
type EncodedPolyline struct {
	Points string `json:"points"`
}

// Step is one turn-by-turn segment of a route leg.
type Step struct {
	Polyline EncodedPolyline `json:"polyline"`
}

// Leg is one leg of a computed route.
type Leg struct {
	Steps []Step `json:"steps"`
}

// Route mirrors the Google Directions response shape attached to a plan.
type Route struct {
	OverviewPolyline EncodedPolyline `json:"overview_polyline"`
	Legs             []Leg           `json:"legs"`
}

// RouteEnvelope is the "google_route" payload carried by a resolved plan.
type RouteEnvelope struct {
	Routes []Route `json:"routes"`
}

// StepPolylines returns every step's encoded polyline of the first route, in
// traversal order (leg 0 step 0, leg 0 step 1, ..., leg 1 step 0, ...).
func (e *RouteEnvelope) StepPolylines() []string {
	if e == nil || len(e.Routes) == 0 {
		return nil
	}
	var encoded []string
	for _, leg := range e.Routes[0].Legs {
		for _, step := range leg.Steps {
			encoded = append(encoded, step.Polyline.Points)
		}
	}
	return encoded
}

// TripPlan is a fully computed itinerary as returned by the backend.
type TripPlan struct {
	TripID      string         `json:"trip_id,omitempty"`
	Days        []Day          `json:"days"`
	GoogleRoute *RouteEnvelope `json:"google_route,omitempty"`
}
