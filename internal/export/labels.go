package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/cento/internal/model"
	"github.com/segmentio/encoding/json"
	qrcode "github.com/skip2/go-qrcode"
)

// TileLabel holds the data encoded into each solid tile's QR code.
type TileLabel struct {
	RunID  string     `json:"run"`
	Index  int        `json:"index"`
	Body   model.Body `json:"body"`
	Rect   model.Rect `json:"rect"`
	Width  int64      `json:"width"`
	Height int64      `json:"height"`
}

// labelSheet is a grid of equally sized labels on one page, in mm.
type labelSheet struct {
	top, left     float64
	width, height float64
	cols, rows    int
	qr, pad       float64
}

// Avery 5160 on US Letter.
var avery5160 = labelSheet{
	top: 12.7, left: 4.8,
	width: 66.7, height: 25.4,
	cols: 3, rows: 10,
	qr: 20, pad: 2,
}

func (s labelSheet) perPage() int { return s.cols * s.rows }

// origin returns the upper-left corner of the i-th label on its page.
func (s labelSheet) origin(i int) (x, y float64) {
	i %= s.perPage()
	return s.left + float64(i%s.cols)*s.width, s.top + float64(i/s.cols)*s.height
}

// CollectTileLabels returns a label for every solid tile of rep, in snapshot order.
func CollectTileLabels(rep Report) []TileLabel {
	var labels []TileLabel
	for i, rec := range rep.Snapshot.Solids() {
		labels = append(labels, TileLabel{
			RunID:  rep.RunID,
			Index:  i + 1,
			Body:   rec.Body,
			Rect:   rec.Rect,
			Width:  rec.Rect.Width(),
			Height: rec.Rect.Height(),
		})
	}
	return labels
}

// ExportLabels writes one QR-coded label per solid tile of rep.
func ExportLabels(path string, rep Report) error {
	labels := CollectTileLabels(rep)
	if len(labels) == 0 {
		return fmt.Errorf("no solid tiles to label")
	}

	sheet := avery5160
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	for i, l := range labels {
		if i%sheet.perPage() == 0 {
			doc.AddPage()
		}
		x, y := sheet.origin(i)
		if err := sheet.draw(doc, x, y, l); err != nil {
			return fmt.Errorf("label %d for %s: %w", l.Index, l.Rect, err)
		}
	}
	return doc.OutputFileAndClose(path)
}

// draw renders one label: the tile outline scaled into a square on the left,
// text in the middle and the QR code on the right.
func (s labelSheet) draw(doc *fpdf.Fpdf, x, y float64, l TileLabel) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("qr code: %w", err)
	}

	doc.SetDrawColor(200, 200, 200)
	doc.SetLineWidth(0.1)
	doc.Rect(x, y, s.width, s.height, "D")

	box := s.height - 2*s.pad
	drawOutline(doc, x+s.pad, y+s.pad, box, l)

	name := fmt.Sprintf("label_%d", l.Index)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
	doc.ImageOptions(name, x+s.width-s.qr-s.pad, y+(s.height-s.qr)/2, s.qr, s.qr, false, opts, 0, "")

	tx := x + 2*s.pad + box
	tw := s.width - s.qr - box - 4*s.pad
	lines := []struct {
		style string
		size  float64
		gray  int
		text  string
	}{
		{"B", 9, 0, fmt.Sprintf("Body %s", l.Body)},
		{"", 7, 0, fmt.Sprintf("%d x %d", l.Width, l.Height)},
		{"", 6, 100, l.Rect.LL.String()},
		{"", 6, 100, fmt.Sprintf("#%d", l.Index)},
	}
	ty := y + s.pad
	for _, line := range lines {
		doc.SetFont("Helvetica", line.style, line.size)
		doc.SetTextColor(line.gray, line.gray, line.gray)
		doc.SetXY(tx, ty)
		doc.CellFormat(tw, line.size*0.45, line.text, "", 0, "L", false, 0, "")
		ty += line.size*0.45 + 0.8
	}
	doc.SetTextColor(0, 0, 0)
	return nil
}

// drawOutline draws the tile's aspect ratio inside a size x size square.
func drawOutline(doc *fpdf.Fpdf, x, y, size float64, l TileLabel) {
	w, h := float64(l.Width), float64(l.Height)
	if w <= 0 || h <= 0 {
		return
	}
	scale := size / max(w, h)
	w, h = max(w*scale, 0.5), max(h*scale, 0.5)

	c := colorOf(l.Body)
	doc.SetFillColor(c.R, c.G, c.B)
	doc.SetDrawColor(60, 60, 60)
	doc.Rect(x+(size-w)/2, y+(size-h)/2, w, h, "FD")
}
