package importer

import (
	"fmt"
	"os"

	"github.com/piwi3910/cento/internal/model"
)

// Symbol is a named group of pads declared in a placement file.
type Symbol struct {
	Name string
	Pads []model.Rect
}

// Instance places a symbol with its origin at Origin.
type Instance struct {
	Symbol string
	Origin model.Point
}

// Placement is the parsed form of a placement file.
type Placement struct {
	Symbols   []Symbol
	Instances []Instance
}

// Rects expands every instance into its translated pads, in file order.
// Instances of unknown symbols and pads translated off the plane are
// reported as warnings.
func (p Placement) Rects() ([]model.Rect, []string) {
	symbols := make(map[string]Symbol, len(p.Symbols))
	for _, s := range p.Symbols {
		symbols[s.Name] = s
	}
	var rects []model.Rect
	var warnings []string
	for _, inst := range p.Instances {
		sym, ok := symbols[inst.Symbol]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Skipped instance of unknown symbol %q", inst.Symbol))
			continue
		}
		for _, pad := range sym.Pads {
			r, ok := pad.Translate(inst.Origin.X, inst.Origin.Y)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("Skipped pad %s of symbol %q at %s: outside the plane", pad, inst.Symbol, inst.Origin))
				continue
			}
			rects = append(rects, r)
		}
	}
	return rects, warnings
}

// ImportLisp reads a placement file made of forms
//
//	(symbol "name" ((x0 y0 x1 y1) ...))
//	(inst "name" (x y))
//
// with ';' starting a comment. Each instance contributes its symbol's pads
// translated to the instance origin.
func ImportLisp(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		result := ImportResult{}
		result.fail("Cannot open file: %v", err)
		return result
	}
	return ParseLisp(data)
}

// ParseLisp parses placement data held in memory.
func ParseLisp(data []byte) ImportResult {
	result := ImportResult{}
	placement, warnings, err := parsePlacement(data)
	result.Warnings = warnings
	if err != nil {
		result.fail("Syntax error: %v", err)
		return result
	}
	rects, more := placement.Rects()
	result.Rects = rects
	result.Warnings = append(result.Warnings, more...)
	return result
}

func parsePlacement(data []byte) (Placement, []string, error) {
	var p Placement
	var warnings []string
	seen := map[string]bool{}
	l := newLexer(data, ';')

	for {
		tt, _ := l.Next()
		if tt == eofToken {
			return p, warnings, nil
		}
		if tt != openToken {
			if tt != errorToken {
				l.errorf("expected '(' to start a form, found %s", tt)
			}
			return Placement{}, warnings, l.Err()
		}
		head, ok := l.expect(identToken)
		if !ok {
			return Placement{}, warnings, l.Err()
		}
		name, ok := l.expect(stringToken)
		if !ok {
			return Placement{}, warnings, l.Err()
		}

		switch string(head) {
		case "symbol":
			sym := Symbol{Name: string(name)}
			pads, skipped, ok := parsePads(l)
			if !ok {
				return Placement{}, warnings, l.Err()
			}
			sym.Pads = pads
			for _, r := range skipped {
				warnings = append(warnings, fmt.Sprintf("Skipped invalid rectangle in symbol %q: %s", sym.Name, r))
			}
			if seen[sym.Name] {
				warnings = append(warnings, fmt.Sprintf("Symbol %q redefined", sym.Name))
			}
			seen[sym.Name] = true
			p.Symbols = append(p.Symbols, sym)
		case "inst":
			origin, ok := parsePoint(l)
			if !ok {
				return Placement{}, warnings, l.Err()
			}
			p.Instances = append(p.Instances, Instance{Symbol: string(name), Origin: origin})
		default:
			l.errorf("unknown form %q", head)
			return Placement{}, warnings, l.Err()
		}

		if _, ok := l.expect(closeToken); !ok {
			return Placement{}, warnings, l.Err()
		}
	}
}

// parsePads reads ((x0 y0 x1 y1) ...). Empty rectangles are returned
// separately so the caller can warn about them.
func parsePads(l *lexer) (pads, skipped []model.Rect, ok bool) {
	if _, ok := l.expect(openToken); !ok {
		return nil, nil, false
	}
	for {
		tt, _ := l.Next()
		switch tt {
		case closeToken:
			return pads, skipped, true
		case openToken:
		default:
			if tt != errorToken {
				l.errorf("expected a rectangle, found %s", tt)
			}
			return nil, nil, false
		}
		var c [4]int32
		for i := range c {
			if c[i], ok = l.int32(); !ok {
				return nil, nil, false
			}
		}
		if _, ok := l.expect(closeToken); !ok {
			return nil, nil, false
		}
		r := model.R(c[0], c[1], c[2], c[3])
		if r.Empty() {
			skipped = append(skipped, r)
			continue
		}
		pads = append(pads, r)
	}
}

func parsePoint(l *lexer) (model.Point, bool) {
	if _, ok := l.expect(openToken); !ok {
		return model.Point{}, false
	}
	x, ok := l.int32()
	if !ok {
		return model.Point{}, false
	}
	y, ok := l.int32()
	if !ok {
		return model.Point{}, false
	}
	if _, ok := l.expect(closeToken); !ok {
		return model.Point{}, false
	}
	return model.Point{X: x, Y: y}, true
}
