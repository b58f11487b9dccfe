// Package index pairs assembled polygons with their attribute records and
// resolves point queries through a bulk-loaded R-tree.
package index

import (
	"github.com/dhconnelly/rtreego"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/polygon-api/internal/attr"
)

// envelopeEps pads zero-extent envelopes; rtreego rejects rectangles with
// non-positive side lengths, and widening the filter never loses a candidate.
const envelopeEps = 1e-9

// Entry is one indexed polygon: geometry, its shared attribute record, and
// the axis-aligned envelope of its exterior ring.
type Entry struct {
	Poly  *geom.Polygon
	Props *attr.Record
	rect  rtreego.Rect
}

// NewEntry wraps a polygon and its attributes, computing the envelope from
// the exterior ring at construction. Hole coordinates are excluded; holes lie
// within the exterior by assembly. A polygon with an empty exterior ring has
// no definable envelope and is a construction error.
func NewEntry(poly *geom.Polygon, props *attr.Record) (*Entry, error) {
	if poly == nil || poly.NumLinearRings() == 0 || len(poly.LinearRing(0).FlatCoords()) == 0 {
		return nil, eris.New("index: polygon has empty exterior ring")
	}

	b := poly.LinearRing(0).Bounds()
	lengths := []float64{b.Max(0) - b.Min(0), b.Max(1) - b.Min(1)}
	for i := range lengths {
		if lengths[i] <= 0 {
			lengths[i] = envelopeEps
		}
	}

	rect, err := rtreego.NewRect(rtreego.Point{b.Min(0), b.Min(1)}, lengths)
	if err != nil {
		return nil, eris.Wrap(err, "index: build envelope")
	}

	return &Entry{Poly: poly, Props: props, rect: rect}, nil
}

// Bounds implements rtreego.Spatial.
func (e *Entry) Bounds() rtreego.Rect {
	return e.rect
}
