// Package export writes plane snapshots to files: OBJ meshes for quick
// inspection, DXF drawings, PDF reports with QR-coded tile labels, and
// Excel tile tables.
package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/cento/internal/model"
)

// Report is one snapshot together with the context it was taken in.
type Report struct {
	RunID    string
	Title    string
	Source   string
	Snapshot model.Snapshot
	// Margin pads the solid bounds that infinite tiles are clipped to.
	Margin int32
}

// Bounds returns the clip box for the report's tiles.
func (r Report) Bounds() model.Rect { return r.Snapshot.Bounds(r.Margin) }

// Summary counts the tiles of a report.
type Summary struct {
	RunID  string `json:"run"`
	Title  string `json:"title"`
	Tiles  int    `json:"tiles"`
	Solids int    `json:"solids"`
	Space  int    `json:"space"`
	Bounds string `json:"bounds"`
}

// Summarize counts the report's tiles.
func (r Report) Summarize() Summary {
	space := r.Snapshot.CountSpace()
	return Summary{
		RunID:  r.RunID,
		Title:  r.Title,
		Tiles:  len(r.Snapshot),
		Solids: len(r.Snapshot) - space,
		Space:  space,
		Bounds: r.Bounds().String(),
	}
}

// Extension returns the file extension, with the dot, for an export format.
func Extension(format string) string {
	return "." + strings.ToLower(format)
}

// Export writes rep to path in the given format.
func Export(path, format string, rep Report) error {
	switch strings.ToLower(format) {
	case model.FormatOBJ:
		return ExportOBJ(path, rep)
	case model.FormatDXF:
		return ExportDXF(path, rep)
	case model.FormatPDF:
		return ExportPDF(path, rep)
	case model.FormatXLSX:
		return ExportXLSX(path, rep)
	}
	return fmt.Errorf("unsupported export format %q", format)
}
