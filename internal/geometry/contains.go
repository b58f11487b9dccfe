package geometry

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Contains reports whether the point (x, y) lies inside the polygon.
//
// Boundary policy: a point on the exterior ring (edge or vertex) is
// contained; a point inside or on a hole ring is not. The same rule applied
// to both ring roles keeps boundary classification deterministic instead of
// depending on floating-point luck.
func Contains(poly *geom.Polygon, x, y float64) bool {
	if poly == nil || poly.NumLinearRings() == 0 {
		return false
	}

	p := geom.Coord{x, y}
	if !xy.IsPointInRing(geom.XY, p, poly.LinearRing(0).FlatCoords()) {
		return false
	}

	for i := 1; i < poly.NumLinearRings(); i++ {
		if xy.IsPointInRing(geom.XY, p, poly.LinearRing(i).FlatCoords()) {
			return false
		}
	}

	return true
}
