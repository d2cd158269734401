// Package geo holds the canonical coordinate representation and the codec
// between it and the parenthesized string form the database uses.
package geo

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rileysklar/BookNook/pkg/e"
)

// Point is an ordered (longitude, latitude) pair. This is the only
// coordinate shape that exists past the system boundary: wire and storage
// forms are normalized into it on receipt.
type Point [2]float64

func NewPoint(lng, lat float64) Point { return Point{lng, lat} }

func (p Point) Lng() float64 { return p[0] }
func (p Point) Lat() float64 { return p[1] }

// Valid reports whether both components are finite and inside WGS84 range.
func (p Point) Valid() bool {
	if math.IsNaN(p[0]) || math.IsInf(p[0], 0) || math.IsNaN(p[1]) || math.IsInf(p[1], 0) {
		return false
	}
	return p[0] >= -180 && p[0] <= 180 && p[1] >= -90 && p[1] <= 90
}

// String renders the point in the database's "(lng,lat)" form, with no
// rounding beyond the values' own precision.
func (p Point) String() string {
	return "(" + strconv.FormatFloat(p[0], 'g', -1, 64) + "," + strconv.FormatFloat(p[1], 'g', -1, 64) + ")"
}

// ParsePoint decodes the "(lng,lat)" string form. A bare "lng,lat" without
// parentheses is accepted too. Anything that does not yield exactly two
// finite floats fails with ErrMalformedCoordinate; NaN and Inf never leak
// out as a Point.
func ParsePoint(raw string) (Point, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("parse %q: want 2 components, got %d: %w", raw, len(parts), e.ErrMalformedCoordinate)
	}
	var p Point
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Point{}, fmt.Errorf("parse %q: %w", raw, e.ErrMalformedCoordinate)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Point{}, fmt.Errorf("parse %q: non-finite component: %w", raw, e.ErrMalformedCoordinate)
		}
		p[i] = v
	}
	return p, nil
}

// MarshalJSON emits the wire form, a [lng, lat] array.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64(p))
}

// UnmarshalJSON accepts either the [lng, lat] array form used in request
// bodies or the "(lng,lat)" string form the store persists.
func (p *Point) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("coordinates: %w", e.ErrMalformedCoordinate)
		}
		parsed, err := ParsePoint(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinates: %w", e.ErrMalformedCoordinate)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinates: want 2 components, got %d: %w", len(pair), e.ErrMalformedCoordinate)
	}
	if math.IsNaN(pair[0]) || math.IsInf(pair[0], 0) || math.IsNaN(pair[1]) || math.IsInf(pair[1], 0) {
		return fmt.Errorf("coordinates: non-finite component: %w", e.ErrMalformedCoordinate)
	}
	*p = Point{pair[0], pair[1]}
	return nil
}
