package dataset

import (
	"context"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
)

// FieldInfo describes one DBF field.
type FieldInfo struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Size int    `yaml:"size"`
}

// Summary describes a boundary dataset without building an index.
type Summary struct {
	Path       string         `yaml:"path"`
	Shapes     int            `yaml:"shapes"`
	ShapeTypes map[string]int `yaml:"shape_types"`
	Rings      int            `yaml:"rings"`
	Vertices   int            `yaml:"vertices"`
	Fields     []FieldInfo    `yaml:"fields"`
}

// Inspect reads a boundary source and reports its contents.
func Inspect(ctx context.Context, source, tempDir string) (*Summary, error) {
	shpPath, err := resolveSource(ctx, source, tempDir)
	if err != nil {
		return nil, err
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	sum := &Summary{
		Path:       shpPath,
		ShapeTypes: make(map[string]int),
	}

	for _, f := range reader.Fields() {
		sum.Fields = append(sum.Fields, FieldInfo{
			Name: strings.TrimRight(f.String(), "\x00"),
			Type: string(f.Fieldtype),
			Size: int(f.Size),
		})
	}

	for reader.Next() {
		_, shape := reader.Shape()
		sum.Shapes++
		sum.ShapeTypes[shapeTypeName(shape)]++

		if poly, ok := shape.(*shp.Polygon); ok {
			sum.Rings += int(poly.NumParts)
			sum.Vertices += len(poly.Points)
		}
	}

	return sum, nil
}
