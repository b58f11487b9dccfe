// Package geometry assembles raw boundary rings into polygons and provides
// the exact point-in-polygon test used to resolve queries.
package geometry

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// Role tags a ring as a polygon exterior or a hole.
type Role int

const (
	// Outer rings start a new polygon boundary.
	Outer Role = iota
	// Inner rings are holes in the preceding outer ring.
	Inner
)

// Ring is one closed loop of a polygon boundary as flat XY coordinates.
type Ring struct {
	Coords []float64
	Role   Role
}

// ClassifyRing tags a ring by its winding order, following the shapefile
// convention: clockwise rings are exteriors, counter-clockwise rings are
// holes. A shape's sole ring is always an exterior regardless of winding.
func ClassifyRing(coords []float64, soleRing bool) Ring {
	role := Outer
	if !soleRing && xy.IsRingCounterClockwise(geom.XY, coords) {
		role = Inner
	}
	return Ring{Coords: coords, Role: role}
}
