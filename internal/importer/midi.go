package importer

import (
	"fmt"
	"os"

	"github.com/piwi3910/cento/internal/model"
)

// quad is one line of a midi file: four corners as x0 y0 x1 y1 x2 y2 x3 y3.
type quad [8]int32

// rect reports the axis-aligned box the quad describes. The corners must run
// lower-left, upper-left, upper-right, lower-right.
func (q quad) rect() (model.Rect, bool) {
	if q[0] != q[2] || q[3] != q[5] || q[4] != q[6] || q[7] != q[1] {
		return model.Rect{}, false
	}
	r := model.R(q[0], q[1], q[4], q[5])
	return r, !r.Empty()
}

func (q quad) String() string {
	return fmt.Sprintf("(%d, %d) - (%d, %d) - (%d, %d) - (%d, %d)",
		q[0], q[1], q[2], q[3], q[4], q[5], q[6], q[7])
}

// ImportMidi reads a midi polygon file: one quadrilateral per line as eight
// integers separated by blanks or commas, with '#' starting a comment.
func ImportMidi(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		result := ImportResult{}
		result.fail("Cannot open file: %v", err)
		return result
	}
	return ParseMidi(data)
}

// ParseMidi parses midi data held in memory.
func ParseMidi(data []byte) ImportResult {
	result := ImportResult{}
	l := newLexer(data, '#')
	l.newlines = true
	l.commas = true

	var q quad
	n := 0
	for {
		tt, text := l.Next()
		switch tt {
		case intToken:
			if n == len(q) {
				l.errorf("more than %d coordinates on a line", len(q))
				break
			}
			v, err := parseCoord(string(text))
			if err != nil {
				l.errorf("coordinate %s out of range", text)
				break
			}
			q[n] = v
			n++
			continue
		case newlineToken, eofToken:
			if n != 0 && n != len(q) {
				l.errorf("expected %d coordinates, found %d", len(q), n)
				break
			}
			if n == len(q) {
				if r, ok := q.rect(); ok {
					result.Rects = append(result.Rects, r)
				} else {
					result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped invalid rectangle: %s", q))
				}
			}
			n = 0
			if tt == eofToken {
				return result
			}
			continue
		case errorToken:
		default:
			l.errorf("unexpected %s", tt)
		}

		result.fail("Syntax error: %v", l.Err())
		return result
	}
}
