package engine

import "github.com/piwi3910/cento/internal/model"

type stepKind uint8

const (
	stepContinue stepKind = iota
	stepStop
	stepResume
)

// Step tells a traversal how to proceed after visiting a tile.
type Step struct {
	kind stepKind
	next Ref
}

var (
	// Continue moves on to the next tile.
	Continue = Step{kind: stepContinue}
	// Stop ends the traversal.
	Stop = Step{kind: stepStop}
)

// ResumeFrom continues an edge walk at ref instead of the tile it would have
// visited next. Area queries treat it as Continue.
func ResumeFrom(ref Ref) Step { return Step{kind: stepResume, next: ref} }

// Visitor is called once per tile during a traversal.
type Visitor func(Ref) Step

type side uint8

const (
	sideTop side = iota
	sideLeft
	sideBottom
	sideRight
)

// first returns the stitch that enters the neighbors along s.
func (t *Tile) first(s side) TileID {
	switch s {
	case sideTop:
		return t.above
	case sideLeft:
		return t.left
	case sideBottom:
		return t.below
	}
	return t.right
}

// along returns the stitch that steps to the next neighbor along s: top
// neighbors run right to left, left neighbors bottom to top, bottom neighbors
// left to right and right neighbors top to bottom.
func (t *Tile) along(s side) TileID {
	switch s {
	case sideTop:
		return t.left
	case sideLeft:
		return t.above
	case sideBottom:
		return t.right
	}
	return t.below
}

// touches reports whether n still borders edge s of r.
func touches(n model.Rect, r model.Rect, s side) bool {
	switch s {
	case sideTop:
		return n.Right() > r.Left()
	case sideLeft:
		return n.Bottom() < r.Top()
	case sideBottom:
		return n.Left() < r.Right()
	}
	return n.Top() > r.Bottom()
}

func (p *Plane) walk(id TileID, s side, visit Visitor) {
	r := p.t(id).rect
	n := p.ref(p.t(id).first(s))
	for {
		nid, ok := p.tiles.resolve(n)
		if !ok || !touches(p.t(nid).rect, r, s) {
			return
		}
		next := p.ref(p.t(nid).along(s))
		step := visit(n)
		switch step.kind {
		case stepStop:
			return
		case stepResume:
			next = step.next
		}
		n = next
	}
}

// neighbors collects the tiles along edge s of id.
func (p *Plane) neighbors(id TileID, s side) []TileID {
	var out []TileID
	r := p.t(id).rect
	for n := p.t(id).first(s); n != None && touches(p.t(n).rect, r, s); n = p.t(n).along(s) {
		out = append(out, n)
	}
	return out
}

// TopTiles visits the tiles along the top edge of ref, right to left.
func (p *Plane) TopTiles(ref Ref, visit Visitor) { p.walkRef(ref, sideTop, visit) }

// LeftTiles visits the tiles along the left edge of ref, bottom to top.
func (p *Plane) LeftTiles(ref Ref, visit Visitor) { p.walkRef(ref, sideLeft, visit) }

// BottomTiles visits the tiles along the bottom edge of ref, left to right.
func (p *Plane) BottomTiles(ref Ref, visit Visitor) { p.walkRef(ref, sideBottom, visit) }

// RightTiles visits the tiles along the right edge of ref, top to bottom.
func (p *Plane) RightTiles(ref Ref, visit Visitor) { p.walkRef(ref, sideRight, visit) }

func (p *Plane) walkRef(ref Ref, s side, visit Visitor) {
	if id, ok := p.tiles.resolve(ref); ok {
		p.walk(id, s, visit)
	}
}

// IsEmpty reports whether no solid tile overlaps r.
func (p *Plane) IsEmpty(r model.Rect) bool {
	if r.Empty() {
		return true
	}
	y := int64(r.Top()) - 1
	for y >= int64(r.Bottom()) {
		// Every tile crossing row y inside r, left to right. The band down to
		// the highest bottom among them is fully covered by this row.
		floor := int64(r.Bottom())
		x := int64(r.Left())
		for x < int64(r.Right()) {
			t := p.t(p.find(model.Point{X: int32(x), Y: int32(y)}))
			if !t.isSpace() {
				return false
			}
			floor = max(floor, int64(t.rect.Bottom()))
			x = int64(t.rect.Right())
			if t.rect.Right() == model.PosInfinity {
				break
			}
		}
		y = floor - 1
	}
	return true
}

// Query visits every tile overlapping r exactly once, provided the visitor
// does not restructure the plane.
//
// Order: the tiles crossing r's left edge are visited top to bottom. Right
// after each of them come the tiles it owns to its right, that is, the column
// touching its right edge whose lower-left corners lie within its vertical
// span, again top to bottom and each followed by the tiles it owns in turn.
// Every tile is therefore visited before any tile to its right in the same
// horizontal band, and before the tiles below it along the left edge.
//
// Geometry is captured before each visit, so a visitor may modify or recycle
// the tile it is handed.
func (p *Plane) Query(r model.Rect, visit Visitor) {
	if r.Empty() {
		return
	}
	y := int64(r.Top()) - 1
	for y >= int64(r.Bottom()) {
		id := p.find(model.Point{X: r.Left(), Y: int32(y)})
		rect := p.t(id).rect
		floor := max(rect.Bottom(), r.Bottom())
		if visit(p.ref(id)).kind == stepStop {
			return
		}
		if rect.Right() < r.Right() {
			if p.areaEnum(rect.Right(), rect.Top(), floor, floor <= r.Bottom(), r, visit) {
				return
			}
		}
		y = int64(rect.Bottom()) - 1
	}
}

// QueryAll visits every tile of the plane.
func (p *Plane) QueryAll(visit Visitor) {
	p.Query(model.Universe(), visit)
}

// areaEnum walks down the column of tiles whose left edge is at x, starting
// below ownerTop, and visits those whose lower-left corner lies at or above
// floor. With atBottom set the column is owned down to the query's bottom.
// It reports whether the visitor asked to stop.
func (p *Plane) areaEnum(x, ownerTop, floor int32, atBottom bool, r model.Rect, visit Visitor) bool {
	y := int64(min(ownerTop, r.Top())) - 1
	for y >= int64(floor) {
		id := p.find(model.Point{X: x, Y: int32(y)})
		rect := p.t(id).rect
		if !atBottom && rect.Bottom() < floor {
			return false
		}
		sub := max(rect.Bottom(), r.Bottom())
		if visit(p.ref(id)).kind == stepStop {
			return true
		}
		if rect.Right() < r.Right() {
			if p.areaEnum(rect.Right(), rect.Top(), sub, sub <= r.Bottom(), r, visit) {
				return true
			}
		}
		y = int64(rect.Bottom()) - 1
	}
	return false
}
