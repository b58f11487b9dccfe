package geometry

import (
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// Assemble converts one shape's ordered ring sequence into polygons. An outer
// ring starts a new polygon (finalizing any polygon in progress); an inner
// ring becomes a hole of the polygon in progress. An inner ring that arrives
// before any outer ring cannot be attributed unambiguously and is discarded
// with a warning. Returns the assembled polygons and the number of discarded
// rings.
func Assemble(rings []Ring) ([]*geom.Polygon, int) {
	log := zap.L().With(zap.String("component", "geometry.assemble"))

	var polys []*geom.Polygon
	var current *geom.Polygon
	var discarded int

	for i, r := range rings {
		coords := closeRing(r.Coords)
		if len(coords) < 8 {
			log.Warn("discarding degenerate ring", zap.Int("ring", i), zap.Int("coords", len(coords)/2))
			discarded++
			// A dropped outer ring still ends the polygon in progress;
			// otherwise later holes would attach to the wrong exterior.
			if r.Role == Outer && current != nil {
				polys = append(polys, current)
				current = nil
			}
			continue
		}

		switch r.Role {
		case Outer:
			if current != nil {
				polys = append(polys, current)
			}
			current = geom.NewPolygon(geom.XY)
			if err := current.Push(geom.NewLinearRingFlat(geom.XY, coords)); err != nil {
				log.Warn("skipping malformed exterior ring", zap.Int("ring", i), zap.Error(err))
				current = nil
				discarded++
			}
		case Inner:
			if current == nil {
				log.Warn("discarding inner ring with no preceding outer ring", zap.Int("ring", i))
				discarded++
				continue
			}
			if err := current.Push(geom.NewLinearRingFlat(geom.XY, coords)); err != nil {
				log.Warn("skipping malformed hole ring", zap.Int("ring", i), zap.Error(err))
				discarded++
			}
		}
	}

	if current != nil {
		polys = append(polys, current)
	}

	return polys, discarded
}

// closeRing appends the first vertex when the ring is not explicitly closed.
// Shapefile rings normally close themselves, but the containment test walks
// consecutive segments and needs the closing edge present.
func closeRing(coords []float64) []float64 {
	n := len(coords)
	if n < 4 || n%2 != 0 {
		return coords
	}
	if coords[0] == coords[n-2] && coords[1] == coords[n-1] {
		return coords
	}
	closed := make([]float64, n, n+2)
	copy(closed, coords)
	return append(closed, coords[0], coords[1])
}
