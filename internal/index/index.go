package index

import (
	"github.com/dhconnelly/rtreego"

	"github.com/sells-group/polygon-api/internal/attr"
	"github.com/sells-group/polygon-api/internal/geometry"
)

// pointTol is the half-width of the degenerate query rectangle used for
// point lookups. It only widens the envelope filter, which stays
// conservative: an entry whose polygon contains the point is never omitted.
const pointTol = 1e-9

// rtreego branching factors.
const (
	minBranch = 25
	maxBranch = 50
)

// Index is an immutable R-tree over polygon entries. It is built once in
// bulk and shared read-only across all query handlers; no locking is needed
// on the query path.
type Index struct {
	tree *rtreego.Rtree
	size int
}

// Build bulk-loads the index from the complete entry set.
func Build(entries []*Entry) *Index {
	spatials := make([]rtreego.Spatial, len(entries))
	for i, e := range entries {
		spatials[i] = e
	}
	return &Index{
		tree: rtreego.NewTree(2, minBranch, maxBranch, spatials...),
		size: len(entries),
	}
}

// Len returns the number of indexed polygons.
func (ix *Index) Len() int { return ix.size }

// At returns every entry whose envelope contains or touches the point, in
// unspecified order. This is the cheap pre-filter; callers must still apply
// the exact containment test.
func (ix *Index) At(x, y float64) []*Entry {
	hits := ix.tree.SearchIntersect(rtreego.Point{x, y}.ToRect(pointTol))
	entries := make([]*Entry, len(hits))
	for i, h := range hits {
		entries[i] = h.(*Entry)
	}
	return entries
}

// Lookup resolves a coordinate pair to the attribute record of the first
// candidate whose polygon exactly contains the point, or nil when no polygon
// matches. The query point uses x = lon, y = lat, matching envelope space.
func (ix *Index) Lookup(lat, lon float64) *attr.Record {
	x, y := lon, lat
	for _, e := range ix.At(x, y) {
		if geometry.Contains(e.Poly, x, y) {
			return e.Props
		}
	}
	return nil
}
