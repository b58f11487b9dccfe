package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func squareWithHole(t *testing.T) *geom.Polygon {
	t.Helper()
	poly := geom.NewPolygon(geom.XY)
	require.NoError(t, poly.Push(geom.NewLinearRingFlat(geom.XY, outerSquare())))
	require.NoError(t, poly.Push(geom.NewLinearRingFlat(geom.XY, holeSquare(2, 6))))
	return poly
}

func TestContains_Interior(t *testing.T) {
	poly := squareWithHole(t)

	assert.True(t, Contains(poly, 1, 1))
	assert.True(t, Contains(poly, 8, 8))
}

func TestContains_Exterior(t *testing.T) {
	poly := squareWithHole(t)

	assert.False(t, Contains(poly, 11, 5))
	assert.False(t, Contains(poly, -1, -1))
	assert.False(t, Contains(poly, 50, 50))
}

func TestContains_PointInHoleExcluded(t *testing.T) {
	poly := squareWithHole(t)

	// Inside the hole but inside the exterior ring: not contained.
	assert.False(t, Contains(poly, 4, 4))
}

func TestContains_BoundaryPolicy(t *testing.T) {
	poly := squareWithHole(t)

	// Exterior boundary (vertex and edge) counts as contained.
	assert.True(t, Contains(poly, 0, 0))
	assert.True(t, Contains(poly, 5, 0))

	// Hole boundary counts as inside the hole, hence not contained.
	assert.False(t, Contains(poly, 2, 2))
	assert.False(t, Contains(poly, 4, 2))
}

func TestContains_NoRings(t *testing.T) {
	assert.False(t, Contains(nil, 0, 0))
	assert.False(t, Contains(geom.NewPolygon(geom.XY), 0, 0))
}
