// Package dataset ingests a boundary shapefile into spatial index entries.
// Ingestion runs once at startup; everything it produces is immutable for
// the life of the process.
package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/polygon-api/internal/attr"
	"github.com/sells-group/polygon-api/internal/geometry"
	"github.com/sells-group/polygon-api/internal/index"
)

// Stats counts what ingestion saw and what it set aside.
type Stats struct {
	Shapes         int
	Polygons       int
	SkippedShapes  int
	DiscardedRings int
}

// Dataset is the fully ingested boundary collection.
type Dataset struct {
	Entries []*index.Entry
	Stats   Stats
}

// Load reads the boundary source, assembles polygons, and returns index
// entries paired with their attribute records. A missing or unreadable file,
// or a polygon with an empty exterior ring, is a fatal error; unsupported
// shape types and orphan rings are logged and skipped.
func Load(ctx context.Context, source, tempDir string) (*Dataset, error) {
	log := zap.L().With(zap.String("component", "dataset.load"))

	shpPath, err := resolveSource(ctx, source, tempDir)
	if err != nil {
		return nil, err
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	// go-shp swallows a missing .dbf and reports zero fields, which would
	// silently strip every feature's attributes. Records that cannot be
	// paired with their geometry are a fatal startup error.
	if err := requireCompanionDBF(shpPath); err != nil {
		return nil, err
	}

	fields := reader.Fields()
	ds := &Dataset{}

	for reader.Next() {
		_, shape := reader.Shape()
		ds.Stats.Shapes++

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			log.Info("skipping unsupported geometry",
				zap.String("type", shapeTypeName(shape)),
				zap.Int("shape", ds.Stats.Shapes-1),
			)
			ds.Stats.SkippedShapes++
			continue
		}

		props := decodeRecord(reader, fields)

		polys, discarded := geometry.Assemble(splitRings(poly))
		ds.Stats.DiscardedRings += discarded

		for _, p := range polys {
			entry, err := index.NewEntry(p, props)
			if err != nil {
				return nil, eris.Wrapf(err, "dataset: shape %d", ds.Stats.Shapes-1)
			}
			ds.Entries = append(ds.Entries, entry)
			ds.Stats.Polygons++
		}
	}

	log.Info("boundary dataset loaded",
		zap.String("path", shpPath),
		zap.Int("shapes", ds.Stats.Shapes),
		zap.Int("polygons", ds.Stats.Polygons),
		zap.Int("skipped_shapes", ds.Stats.SkippedShapes),
		zap.Int("discarded_rings", ds.Stats.DiscardedRings),
	)

	return ds, nil
}

// requireCompanionDBF verifies the attribute file next to the .shp exists.
func requireCompanionDBF(shpPath string) error {
	base := strings.TrimSuffix(shpPath, filepath.Ext(shpPath))
	for _, ext := range []string{".dbf", ".DBF"} {
		if _, err := os.Stat(base + ext); err == nil {
			return nil
		}
	}
	return eris.Errorf("dataset: no attribute file (.dbf) found for %s", shpPath)
}

// splitRings cuts a shapefile polygon into its parts and tags each ring by
// winding order.
func splitRings(p *shp.Polygon) []geometry.Ring {
	sole := p.NumParts == 1
	rings := make([]geometry.Ring, 0, p.NumParts)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		coords := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			coords = append(coords, p.Points[j].X, p.Points[j].Y)
		}
		rings = append(rings, geometry.ClassifyRing(coords, sole))
	}

	return rings
}

// decodeRecord converts the reader's current DBF row into an attribute
// record, preserving field order.
func decodeRecord(reader *shp.Reader, fields []shp.Field) *attr.Record {
	out := make([]attr.Field, 0, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		out = append(out, attr.Field{
			Name:  name,
			Value: attr.DecodeValue(f.Fieldtype, reader.Attribute(i)),
		})
	}
	return attr.NewRecord(out)
}

// shapeTypeName names a go-shp shape for skip diagnostics.
func shapeTypeName(s shp.Shape) string {
	switch s.(type) {
	case nil:
		return "nil"
	case *shp.Null:
		return "Null"
	case *shp.Point:
		return "Point"
	case *shp.PolyLine:
		return "PolyLine"
	case *shp.MultiPoint:
		return "MultiPoint"
	case *shp.PointZ:
		return "PointZ"
	case *shp.PolyLineZ:
		return "PolyLineZ"
	case *shp.PolygonZ:
		return "PolygonZ"
	case *shp.MultiPointZ:
		return "MultiPointZ"
	case *shp.PointM:
		return "PointM"
	case *shp.PolyLineM:
		return "PolyLineM"
	case *shp.PolygonM:
		return "PolygonM"
	case *shp.MultiPointM:
		return "MultiPointM"
	case *shp.MultiPatch:
		return "MultiPatch"
	default:
		return fmt.Sprintf("%T", s)
	}
}
