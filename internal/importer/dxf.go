package importer

import (
	"fmt"
	"math"

	"github.com/piwi3910/cento/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// ImportDXF imports every axis-aligned four-corner LWPOLYLINE in a DXF file
// as a rectangle. Other polylines are skipped with a warning; other entity
// types are counted and ignored.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.fail("Cannot open DXF file: %v", err)
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.fail("DXF file contains no entities")
		return result
	}

	ignored := 0
	for i, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			ignored++
			continue
		}
		r, err := polylineRect(lw.Vertices)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Entity %d: Skipped invalid rectangle: %v", i+1, err))
			continue
		}
		result.Rects = append(result.Rects, r)
	}
	if ignored > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d non-polyline entities", ignored))
	}
	if len(result.Rects) == 0 {
		result.Errors = append(result.Errors, "No rectangles found in DXF file")
	}
	return result
}

// polylineRect converts four corners, optionally followed by a repeat of the
// first, into a rectangle. Every edge must be horizontal or vertical and all
// coordinates integral.
func polylineRect(vertices [][]float64) (model.Rect, error) {
	if n := len(vertices); n == 5 && samePoint(vertices[0], vertices[4]) {
		vertices = vertices[:4]
	}
	if len(vertices) != 4 {
		return model.Rect{}, fmt.Errorf("%d vertices", len(vertices))
	}

	pts := make([]model.Point, 4)
	for i, v := range vertices {
		if len(v) < 2 {
			return model.Rect{}, fmt.Errorf("vertex %d has no coordinates", i)
		}
		x, okx := integral(v[0])
		y, oky := integral(v[1])
		if !okx || !oky {
			return model.Rect{}, fmt.Errorf("vertex (%g, %g) is not on the integer grid", v[0], v[1])
		}
		pts[i] = model.Point{X: x, Y: y}
	}

	for i := range pts {
		a, b := pts[i], pts[(i+1)%4]
		if a.X != b.X && a.Y != b.Y {
			return model.Rect{}, fmt.Errorf("edge %s - %s is not axis-aligned", a, b)
		}
	}
	r := model.R(pts[0].X, pts[0].Y, pts[2].X, pts[2].Y)
	if r.Empty() {
		return model.Rect{}, fmt.Errorf("degenerate %s", r)
	}
	return r, nil
}

func samePoint(a, b []float64) bool {
	return len(a) >= 2 && len(b) >= 2 && a[0] == b[0] && a[1] == b[1]
}

func integral(v float64) (int32, bool) {
	if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}
