package geo

import "errors"

// ErrEmptyInput is returned when there are no points to bound. Callers must
// guard with a length check and fall back to a default viewport instead of
// propagating the error to the user.
var ErrEmptyInput = errors.New("geo: no points to bound")

// Bounds is the minimal bounding region covering a set of points, used for
// viewport fitting.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLng float64 `json:"max_lng"`
}

// Center returns the midpoint of the bounding region.
func (b Bounds) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

// Contains reports whether the point lies within the region.
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// ComputeBounds computes the minimal bounding region covering the points.
// Defined only for non-empty inputs.
func ComputeBounds(points []Point) (Bounds, error) {
	if len(points) == 0 {
		return Bounds{}, ErrEmptyInput
	}
	b := Bounds{
		MinLat: points[0].Lat,
		MaxLat: points[0].Lat,
		MinLng: points[0].Lng,
		MaxLng: points[0].Lng,
	}
	for _, p := range points[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lng < b.MinLng {
			b.MinLng = p.Lng
		}
		if p.Lng > b.MaxLng {
			b.MaxLng = p.Lng
		}
	}
	return b, nil
}
