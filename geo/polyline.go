package geo

import (
	"errors"
	"math"
)

// Point is a single geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ErrMalformedPolyline is returned when an encoded polyline ends in the
// middle of a coordinate. Callers should treat it as "no route geometry
// available" rather than failing the whole plan.
var ErrMalformedPolyline = errors.New("geo: malformed polyline")

// precision is the standard polyline scale factor (5 decimal digits).
const precision = 1e5

// DecodePolyline converts an encoded polyline string to a slice of lat/lng
// coordinates. Implementation based on Google's Encoded Polyline Algorithm
// Format at the standard 1e-5 precision.
func DecodePolyline(encoded string) ([]Point, error) {
	var points []Point
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		dLat, next, err := decodeSigned(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lat += dLat

		if index >= len(encoded) {
			// Latitude without a longitude: stream ended mid-coordinate.
			return nil, ErrMalformedPolyline
		}
		dLng, next, err := decodeSigned(encoded, index)
		if err != nil {
			return nil, err
		}
		index = next
		lng += dLng

		points = append(points, Point{
			Lat: float64(lat) / precision,
			Lng: float64(lng) / precision,
		})
	}

	return points, nil
}

// decodeSigned reads one zigzag-encoded delta starting at index and returns
// the delta plus the index of the next unread byte.
func decodeSigned(encoded string, index int) (int, int, error) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, ErrMalformedPolyline
		}
		b := int(encoded[index]) - 63
		if b < 0 {
			return 0, index, ErrMalformedPolyline
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// EncodePolyline encodes points into a polyline string at the standard 1e-5
// precision. Decoding the result reproduces the input coordinates rounded to
// five decimal places.
func EncodePolyline(points []Point) string {
	result := make([]byte, 0, len(points)*12)
	prevLat, prevLng := 0, 0

	for _, p := range points {
		lat := int(math.Round(p.Lat * precision))
		lng := int(math.Round(p.Lng * precision))

		result = appendSigned(result, lat-prevLat)
		result = appendSigned(result, lng-prevLng)

		prevLat = lat
		prevLng = lng
	}

	return string(result)
}

func appendSigned(dst []byte, value int) []byte {
	v := value << 1
	if value < 0 {
		v = ^v
	}
	for v >= 0x20 {
		dst = append(dst, byte((0x20|(v&0x1f))+63))
		v >>= 5
	}
	return append(dst, byte(v+63))
}

// MergeSegments decodes each encoded segment and concatenates the resulting
// points in input order. Duplicate boundary points between segments are kept:
// travel direction and continuity matter more here than point-count
// minimality. Any malformed segment fails the whole merge.
func MergeSegments(segments []string) ([]Point, error) {
	var merged []Point
	for _, segment := range segments {
		points, err := DecodePolyline(segment)
		if err != nil {
			return nil, err
		}
		merged = append(merged, points...)
	}
	return merged, nil
}
