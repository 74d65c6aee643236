package export

import (
	"fmt"

	"github.com/piwi3910/cento/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the Excel report. The solids sheet comes first and uses
// the importer's column names, so the workbook can be imported again.
const (
	SheetSolids  = "Solids"
	SheetTiles   = "Tiles"
	SheetSummary = "Summary"
)

// ExportXLSX writes rep as a workbook with a solid tile list, a full tile
// table including stitches, and a summary sheet.
func ExportXLSX(path string, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSolids); err != nil {
		return err
	}
	for _, name := range []string{SheetTiles, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	solids := [][]interface{}{{"x0", "y0", "x1", "y1", "body"}}
	for _, rec := range rep.Snapshot.Solids() {
		r := rec.Rect
		solids = append(solids, []interface{}{r.LL.X, r.LL.Y, r.UR.X, r.UR.Y, uint64(rec.Body)})
	}
	if err := writeRows(f, SheetSolids, solids); err != nil {
		return err
	}

	tiles := [][]interface{}{{"body", "x0", "y0", "x1", "y1", "below", "left", "above", "right"}}
	for _, rec := range rep.Snapshot {
		r := rec.Rect
		tiles = append(tiles, []interface{}{
			rec.Body.String(),
			cellCoord(r.LL.X), cellCoord(r.LL.Y), cellCoord(r.UR.X), cellCoord(r.UR.Y),
			neighborCell(rec.Below), neighborCell(rec.Left), neighborCell(rec.Above), neighborCell(rec.Right),
		})
	}
	if err := writeRows(f, SheetTiles, tiles); err != nil {
		return err
	}

	sum := rep.Summarize()
	summary := [][]interface{}{
		{"Run", sum.RunID},
		{"Snapshot", sum.Title},
		{"Source", rep.Source},
		{"Tiles", sum.Tiles},
		{"Solid", sum.Solids},
		{"Space", sum.Space},
		{"Bounds", sum.Bounds},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("sheet %s cell %s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

// cellCoord keeps finite coordinates numeric and spells out the infinities.
func cellCoord(v int32) interface{} {
	switch v {
	case model.NegInfinity:
		return "-inf"
	case model.PosInfinity:
		return "+inf"
	}
	return v
}

func neighborCell(r *model.Rect) string {
	if r == nil {
		return ""
	}
	return r.String()
}
