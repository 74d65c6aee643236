package export

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/cento/internal/model"
	"github.com/segmentio/encoding/json"
	qrcode "github.com/skip2/go-qrcode"
)

// bodyColor represents an RGB fill for a solid tile.
type bodyColor struct {
	R, G, B int
}

// bodyColors is indexed by body modulo its length.
var bodyColors = []bodyColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorOf(b model.Body) bodyColor {
	return bodyColors[uint64(b)%uint64(len(bodyColors))]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	pageQRSize   = 28.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF renders each report on its own page, followed by a summary page.
// Every report page carries a QR code encoding its Summary as JSON.
func ExportPDF(path string, reports ...Report) error {
	if len(reports) == 0 {
		return fmt.Errorf("no snapshots to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, rep := range reports {
		pdf.AddPage()
		if err := renderPlanePage(pdf, rep, i+1); err != nil {
			return err
		}
	}

	pdf.AddPage()
	renderSummaryPage(pdf, reports)

	return pdf.OutputFileAndClose(path)
}

// renderPlanePage draws one snapshot on the current PDF page. The plane's y
// axis points up, the page's down.
func renderPlanePage(pdf *fpdf.Fpdf, rep Report, pageNum int) error {
	sum := rep.Summarize()
	bounds := rep.Bounds()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Snapshot %d: %s", pageNum, rep.Title)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-pageQRSize, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Tiles: %d | Solid: %d | Space: %d | Bounds: %s", sum.Tiles, sum.Solids, sum.Space, sum.Bounds)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-pageQRSize, 5, stats, "", 0, "L", false, 0, "")

	if err := drawSummaryQR(pdf, sum, pageNum); err != nil {
		return err
	}

	drawWidth := pageWidth - marginLeft - marginRight - pageQRSize - 5
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	bw, bh := math.Max(float64(bounds.Width()), 1), math.Max(float64(bounds.Height()), 1)
	scale := math.Min(drawWidth/bw, drawHeight/bh)
	canvasW := bw * scale
	canvasH := bh * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	toPage := func(r model.Rect) (x, y, w, h float64) {
		r = r.Clip(bounds)
		x = offsetX + float64(int64(r.LL.X)-int64(bounds.LL.X))*scale
		y = offsetY + float64(int64(bounds.UR.Y)-int64(r.UR.Y))*scale
		return x, y, float64(r.Width()) * scale, float64(r.Height()) * scale
	}

	// Space first so solid outlines stay on top.
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(170, 170, 170)
	pdf.SetLineWidth(0.2)
	for _, rec := range rep.Snapshot {
		if rec.Body.IsSpace() {
			x, y, w, h := toPage(rec.Rect)
			pdf.Rect(x, y, w, h, "FD")
		}
	}

	for _, rec := range rep.Snapshot {
		if rec.Body.IsSpace() {
			continue
		}
		col := colorOf(rec.Body)
		x, y, w, h := toPage(rec.Rect)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, h, "FD")

		if w > 10 && h > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(w, h))
			pdf.SetTextColor(0, 0, 0)
			label := rec.Body.String()
			if lw := pdf.GetStringWidth(label); lw < w-2 {
				pdf.SetXY(x+(w-lw)/2, y+h/2-2)
				pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, bounds, offsetX, offsetY, canvasW, canvasH)
	drawBodyLegend(pdf, rep.Snapshot, offsetY+canvasH+6)
	return nil
}

// drawSummaryQR places a QR code of the page summary in the top right corner.
func drawSummaryQR(pdf *fpdf.Fpdf, sum Summary, pageNum int) error {
	data, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	name := fmt.Sprintf("summary_qr_%d", pageNum)
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(name, pageWidth-marginRight-pageQRSize, marginTop, pageQRSize, pageQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// drawDimensionAnnotations labels the clip box corners outside the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, bounds model.Rect, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	ll := bounds.LL.String()
	pdf.SetXY(offsetX, offsetY+canvasH+1)
	pdf.CellFormat(pdf.GetStringWidth(ll), 4, ll, "", 0, "L", false, 0, "")

	ur := bounds.UR.String()
	urW := pdf.GetStringWidth(ur)
	pdf.SetXY(offsetX+canvasW-urW, offsetY-4)
	pdf.CellFormat(urW, 4, ur, "", 0, "R", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
}

// drawBodyLegend lists each solid tile below the drawing.
func drawBodyLegend(pdf *fpdf.Fpdf, snap model.Snapshot, startY float64) {
	solids := snap.Solids()
	if len(solids) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Solid tiles:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight
	maxY := pageHeight - marginBottom

	for _, rec := range solids {
		col := colorOf(rec.Body)
		label := fmt.Sprintf("%s %s", rec.Body, rec.Rect)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > maxY {
			pdf.SetXY(xPos, startY-5)
			pdf.CellFormat(10, 4, "...", "", 0, "L", false, 0, "")
			return
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage tabulates every report.
func renderSummaryPage(pdf *fpdf.Fpdf, reports []Report) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Tiling Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "", 10)
	items := []struct {
		label string
		value string
	}{
		{"Run", reports[0].RunID},
		{"Source", reports[0].Source},
	}
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(150, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	colWidths := []float64{20, 80, 30, 30, 30, 77}
	headers := []string{"Page", "Snapshot", "Tiles", "Solid", "Space", "Bounds"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, rep := range reports {
		if y > pageHeight-marginBottom-10 {
			break
		}
		sum := rep.Summarize()
		row := []string{
			fmt.Sprintf("%d", i+1),
			sum.Title,
			fmt.Sprintf("%d", sum.Tiles),
			fmt.Sprintf("%d", sum.Solids),
			fmt.Sprintf("%d", sum.Space),
			sum.Bounds,
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by cento - corner-stitched tiling plane", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
