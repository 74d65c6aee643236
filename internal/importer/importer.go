// Package importer reads rectangle lists for the tiling plane. It supports
// line-oriented quadrilateral files, a symbolic placement language, DXF
// drawings, and CSV or Excel tables.
//
// Every importer follows the same failure rules: an unreadable file or a
// syntax error yields no rectangles and an entry in Errors; an entry that
// parses but does not describe a usable rectangle is skipped with a warning.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/piwi3910/cento/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rects    []model.Rect
	Errors   []string
	Warnings []string
}

// OK reports whether the import produced rectangles without errors.
func (r ImportResult) OK() bool { return len(r.Errors) == 0 && len(r.Rects) > 0 }

// fail discards any rectangles collected so far and records msg.
func (r *ImportResult) fail(format string, args ...interface{}) {
	r.Rects = nil
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// ImportFile picks an importer from the file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lisp", ".lsp":
		return ImportLisp(path)
	case ".dxf":
		return ImportDXF(path)
	case ".csv":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportMidi(path)
	}
}

// ColumnMapping maps rectangle corner coordinates to their indices in a row.
type ColumnMapping struct {
	X0 int
	Y0 int
	X1 int
	Y1 int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"x0": {"x0", "left", "llx", "xmin", "min x", "ll.x"},
	"y0": {"y0", "bottom", "lly", "ymin", "min y", "ll.y"},
	"x1": {"x1", "right", "urx", "xmax", "max x", "ur.x"},
	"y1": {"y1", "top", "ury", "ymax", "max y", "ur.y"},
}

// DetectCSVDelimiter returns the delimiter among comma, semicolon, tab and
// pipe that splits the data into the most consistent multi-column rows.
func DetectCSVDelimiter(data []byte) rune {
	best, bestScore := ',', 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) == 0 || len(records[0]) < 2 {
			continue
		}
		cols := len(records[0])
		score := 0
		for _, row := range records {
			if len(row) == cols {
				score++
			}
		}
		if weighted := score*10 + cols; weighted > bestScore {
			best, bestScore = delim, weighted
		}
	}
	return best
}

// DetectColumns matches a header row against the known aliases. Without a
// recognizable header it returns the positional mapping x0, y0, x1, y1.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{X0: -1, Y0: -1, X1: -1, Y1: -1}
	slots := map[string]*int{"x0": &mapping.X0, "y0": &mapping.Y0, "x1": &mapping.X1, "y1": &mapping.Y1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias && *slots[role] == -1 {
					*slots[role] = i
					isHeader = true
				}
			}
		}
	}
	if !isHeader {
		return ColumnMapping{X0: 0, Y0: 1, X1: 2, Y1: 3}, false
	}
	return mapping, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseCoord(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// parseRow reads one rectangle. A non-empty error message is a syntax error.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.Rect, string) {
	var c [4]int32
	names := [4]string{"x0", "y0", "x1", "y1"}
	for i, idx := range [4]int{mapping.X0, mapping.Y0, mapping.X1, mapping.Y1} {
		s := getCell(row, idx)
		if s == "" {
			return model.Rect{}, fmt.Sprintf("%s: Missing %s value", rowLabel, names[i])
		}
		v, err := parseCoord(s)
		if err != nil {
			return model.Rect{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, names[i], s)
		}
		c[i] = v
	}
	return model.R(c[0], c[1], c[2], c[3]), ""
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports rectangles from a CSV file, detecting the delimiter and
// header automatically.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.fail("Cannot open file: %v", err)
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.fail("File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", name))
	}

	result = ImportCSVFromReader(bytes.NewReader(data), delimiter)
	result.Warnings = append(warnings, result.Warnings...)
	return result
}

// ImportCSVFromReader imports rectangles from CSV data with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result := ImportResult{}
		result.fail("Cannot read CSV: %v", err)
		return result
	}
	return importFromRows(records, "Line")
}

// ImportExcel imports rectangles from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.fail("Cannot open Excel file: %v", err)
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.fail("Excel file has no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.fail("Cannot read Excel data: %v", err)
		return result
	}
	return importFromRows(rows, "Row")
}

// importFromRows is the shared table logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	result := ImportResult{}
	if len(rows) == 0 {
		result.fail("File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
		var missing []string
		for name, idx := range map[string]int{"x0": mapping.X0, "y0": mapping.Y0, "x1": mapping.X1, "y1": mapping.Y1} {
			if idx == -1 {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			result.fail("Required columns not found in header: %s", strings.Join(missing, ", "))
			return result
		}
	} else if len(rows[0]) >= 4 {
		if _, err := parseCoord(strings.TrimSpace(rows[0][0])); err != nil {
			// An unrecognized header; keep the positional mapping.
			start = 1
			result.Warnings = append(result.Warnings, "Skipped unrecognized header row")
		}
	}

	for i := start; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		label := fmt.Sprintf("%s %d", rowPrefix, i+1)
		r, errMsg := parseRow(rows[i], mapping, label)
		if errMsg != "" {
			result.fail("%s", errMsg)
			return result
		}
		if r.Empty() {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Skipped invalid rectangle: %s", label, r))
			continue
		}
		result.Rects = append(result.Rects, r)
	}

	if len(result.Rects) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No rectangles found")
	}
	return result
}
