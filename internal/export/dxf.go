package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
)

// DXF layer names.
const (
	LayerSolid = "solid"
	LayerSpace = "space"
)

// ExportDXF writes rep as a DXF drawing. Solid tiles become closed
// LWPOLYLINEs on the solid layer, so the drawing can be imported again;
// space tiles are outlined with LINEs on the space layer.
func ExportDXF(path string, rep Report) error {
	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerSpace, dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerSpace, err)
	}
	if _, err := d.AddLayer(LayerSolid, color.Red, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerSolid, err)
	}

	bounds := rep.Bounds()
	for _, rec := range rep.Snapshot {
		r := rec.Rect.Clip(bounds)
		x0, y0 := float64(r.LL.X), float64(r.LL.Y)
		x1, y1 := float64(r.UR.X), float64(r.UR.Y)

		if !rec.Body.IsSpace() {
			if err := d.ChangeLayer(LayerSolid); err != nil {
				return err
			}
			if _, err := d.LwPolyline(true, []float64{x0, y0}, []float64{x1, y0}, []float64{x1, y1}, []float64{x0, y1}); err != nil {
				return fmt.Errorf("failed to draw tile %s: %w", rec.Rect, err)
			}
			continue
		}

		if err := d.ChangeLayer(LayerSpace); err != nil {
			return err
		}
		for _, e := range [][4]float64{{x0, y0, x1, y0}, {x1, y0, x1, y1}, {x1, y1, x0, y1}, {x0, y1, x0, y0}} {
			if _, err := d.Line(e[0], e[1], 0, e[2], e[3], 0); err != nil {
				return fmt.Errorf("failed to draw tile %s: %w", rec.Rect, err)
			}
		}
	}

	return d.SaveAs(path)
}
