// Package geo holds the pure containment and validation primitives shared by
// the store and the tracker. All functions are side-effect free.
package geo

import (
	"fmt"
	"math"

	"github.com/nandanugg/geofence-tracker/module/core/domain"
)

// MetersPerDegree is the fixed planar scale used for circle containment:
// 1 degree ~ 111,000 meters. This is a flat-Earth approximation, accurate
// only near the equator and for small radii. It intentionally matches the
// original tracking behavior and must not be swapped for geodesic distance.
const MetersPerDegree = 111000.0

// PointInCircle reports whether p lies within radiusMeters of center,
// boundary inclusive. Distance is Euclidean in degree space scaled by
// MetersPerDegree (see the note above).
func PointInCircle(p, center domain.LatLng, radiusMeters float64) bool {
	dLat := p.Lat - center.Lat
	dLng := p.Lng - center.Lng
	distMeters := math.Sqrt(dLat*dLat+dLng*dLng) * MetersPerDegree
	return distMeters <= radiusMeters
}

// PointInPolygon runs the standard even-odd ray-casting test over consecutive
// edges, including the wrap-around edge from the last vertex to the first.
// Fewer than 3 vertices is a hard error, never a silent false.
func PointInPolygon(p domain.LatLng, vertices []domain.LatLng) (bool, error) {
	n := len(vertices)
	if n < 3 {
		return false, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", domain.ErrInvalidGeometry, n)
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := vertices[i], vertices[j]
		intersects := (vi.Lat > p.Lat) != (vj.Lat > p.Lat) &&
			p.Lng < (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lng
		if intersects {
			inside = !inside
		}
	}
	return inside, nil
}

// RoundRadius normalizes a drawn radius to whole meters.
func RoundRadius(radiusMeters float64) float64 {
	return math.Round(radiusMeters)
}

// DistanceMeters is the planar distance between two points, used to recompute
// a circle radius from a dragged handle.
func DistanceMeters(a, b domain.LatLng) float64 {
	dLat := a.Lat - b.Lat
	dLng := a.Lng - b.Lng
	return math.Sqrt(dLat*dLat+dLng*dLng) * MetersPerDegree
}

// ValidateCircle enforces the circle shape invariant.
func ValidateCircle(radiusMeters float64) error {
	if radiusMeters < 0 {
		return fmt.Errorf("%w: radius must be non-negative, got %f", domain.ErrInvalidGeometry, radiusMeters)
	}
	return nil
}

// ValidatePolygon enforces the polygon shape invariant.
func ValidatePolygon(vertices []domain.LatLng) error {
	if len(vertices) < 3 {
		return fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", domain.ErrInvalidGeometry, len(vertices))
	}
	return nil
}
