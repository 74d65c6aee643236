package engine

import (
	"fmt"
	"strings"

	"github.com/piwi3910/cento/internal/model"
)

// ViolationKind classifies a broken tiling property.
type ViolationKind string

const (
	ViolationStitch           ViolationKind = "stitch"
	ViolationUnmergedLeft     ViolationKind = "unmerged-left"
	ViolationUnmergedRight    ViolationKind = "unmerged-right"
	ViolationUnmergedVertical ViolationKind = "unmerged-vertical"
	ViolationCoverage         ViolationKind = "coverage"
)

// Violation describes one broken property. Neighbor is the zero Rect when the
// violation concerns a single tile.
type Violation struct {
	Kind     ViolationKind
	Tile     model.TileRecord
	Neighbor model.Rect
	Detail   string
}

func (v Violation) String() string {
	if v.Neighbor == (model.Rect{}) {
		return fmt.Sprintf("%s: %s %s: %s", v.Kind, v.Tile.Body, v.Tile.Rect, v.Detail)
	}
	return fmt.Sprintf("%s: %s %s with %s: %s", v.Kind, v.Tile.Body, v.Tile.Rect, v.Neighbor, v.Detail)
}

// ValidationError carries every violation found by Validate.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%d tiling violations: %s", len(e.Violations), strings.Join(parts, "; "))
}

// Validate returns a *ValidationError when the plane breaks any tiling
// property.
func (p *Plane) Validate() error {
	if vs := p.Violations(); len(vs) > 0 {
		return &ValidationError{Violations: vs}
	}
	return nil
}

// Violations checks stitch geometry, maximality of space strips, fusion of
// aligned mergeable solids, and that enumeration reaches every live tile.
func (p *Plane) Violations() []Violation {
	var out []Violation
	visited := map[TileID]int{}
	p.QueryAll(func(ref Ref) Step {
		visited[ref.id]++
		return Continue
	})

	for i := range p.tiles.slots {
		id := TileID(i)
		if !p.tiles.alive(id) {
			continue
		}
		if visited[id] != 1 {
			out = append(out, Violation{
				Kind:   ViolationCoverage,
				Tile:   p.record(id),
				Detail: fmt.Sprintf("enumerated %d times", visited[id]),
			})
		}
		out = append(out, p.stitchViolations(id)...)
		out = append(out, p.mergeViolations(id)...)
	}
	return out
}

func (p *Plane) stitchViolations(id TileID) []Violation {
	t := p.t(id)
	r := t.rect
	var out []Violation
	check := func(name string, n TileID, unbounded bool, corner model.Point, edge func(model.Rect) bool) {
		switch {
		case unbounded && n != None:
			out = append(out, p.violation(ViolationStitch, id, n, name+" set on an unbounded edge"))
		case unbounded:
		case n == None || !p.tiles.alive(n):
			out = append(out, p.violation(ViolationStitch, id, None, name+" missing"))
		case !p.t(n).rect.Contains(corner) || !edge(p.t(n).rect):
			out = append(out, p.violation(ViolationStitch, id, n, name+" does not touch its corner"))
		}
	}
	check("below", t.below, r.Bottom() == model.NegInfinity,
		model.Point{X: r.Left(), Y: r.Bottom() - 1},
		func(n model.Rect) bool { return n.Top() == r.Bottom() })
	check("left", t.left, r.Left() == model.NegInfinity,
		model.Point{X: r.Left() - 1, Y: r.Bottom()},
		func(n model.Rect) bool { return n.Right() == r.Left() })
	check("above", t.above, r.Top() == model.PosInfinity,
		model.Point{X: r.Right() - 1, Y: r.Top()},
		func(n model.Rect) bool { return n.Bottom() == r.Top() })
	check("right", t.right, r.Right() == model.PosInfinity,
		model.Point{X: r.Right(), Y: r.Top() - 1},
		func(n model.Rect) bool { return n.Left() == r.Right() })
	return out
}

func (p *Plane) mergeViolations(id TileID) []Violation {
	t := p.t(id)
	var out []Violation
	if t.isSpace() {
		// Space runs as maximal horizontal strips.
		if t.left != None {
			for _, n := range p.neighbors(id, sideLeft) {
				if p.t(n).isSpace() {
					out = append(out, p.violation(ViolationUnmergedLeft, id, n, "space beside space"))
				}
			}
		}
		if t.right != None {
			for _, n := range p.neighbors(id, sideRight) {
				if p.t(n).isSpace() {
					out = append(out, p.violation(ViolationUnmergedRight, id, n, "space beside space"))
				}
			}
		}
	} else if n := t.right; n != None && p.alignedY(id, n) && p.canMerge(t.body, p.t(n).body) {
		out = append(out, p.violation(ViolationUnmergedRight, id, n, "mergeable solids share an edge"))
	}
	if n := t.above; n != None && p.alignedX(id, n) && p.canMerge(t.body, p.t(n).body) {
		out = append(out, p.violation(ViolationUnmergedVertical, id, n, "mergeable tiles share an edge"))
	}
	return out
}

func (p *Plane) violation(kind ViolationKind, id, n TileID, detail string) Violation {
	v := Violation{Kind: kind, Tile: p.record(id), Detail: detail}
	if n != None && p.tiles.alive(n) {
		v.Neighbor = p.t(n).rect
	}
	return v
}
